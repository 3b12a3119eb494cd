package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SampleDatasetName is the starter spreadsheet written by ScaffoldProject.
const SampleDatasetName = "vignettes.csv"

// ScaffoldProject creates a vignette station in the given directory: the
// vignette.toml, a sample dataset with the expected header row, and a
// .gitignore entry for the delivery log. Files that already exist are left
// untouched. Returns the list of created paths.
func ScaffoldProject(dir string) ([]string, error) {
	var created []string

	tomlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		if _, initErr := InitFile(dir); initErr != nil {
			return created, initErr
		}
		created = append(created, tomlPath)
	}

	samplePath := filepath.Join(dir, SampleDatasetName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if writeErr := os.WriteFile(samplePath, []byte(sampleDataset), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", samplePath, writeErr)
		}
		created = append(created, samplePath)
	}

	// .gitignore: keep the delivery log out of version control
	gitignoreEntry := Defaults().Log.Path
	gitignorePath := filepath.Join(dir, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(gitignorePath, []byte(gitignoreEntry+"\n"), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	} else if err != nil {
		return created, fmt.Errorf("scaffold: read %s: %w", gitignorePath, err)
	} else if !strings.Contains(string(existing), gitignoreEntry) {
		content := string(existing)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content += "\n"
		}
		content += gitignoreEntry + "\n"
		if writeErr := os.WriteFile(gitignorePath, []byte(content), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	}

	return created, nil
}

const sampleDataset = `ID,Length,Warning,Content,Page_No,Author_last,Author_first,Publication_date,Title,Publisher_Journal_Website,Q1,Q2,Q3,Q4,Lesson_title,Lesson_link
1,1,,"Replace this row with an excerpt from your reading list.",1,Author,Given,2024,Book Title,Publisher,What stands out to you?,,,,,
`
