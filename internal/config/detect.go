package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// datasetExts are the spreadsheet formats the dataset loader understands.
var datasetExts = map[string]bool{".xlsx": true, ".xlsm": true, ".csv": true}

// DetectDataset looks for the vignette spreadsheet in dir. It returns the
// single .xlsx/.csv file found there, skipping the delivery log and Office
// lock files. Zero or several candidates is an error naming what was found,
// so the operator can set dataset.path explicitly.
func DetectDataset(dir, logPath string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("config: read dir %q: %w", dir, err)
	}

	logBase := filepath.Base(logPath)
	var found []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || name == logBase {
			continue
		}
		if datasetExts[strings.ToLower(filepath.Ext(name))] {
			found = append(found, name)
		}
	}
	sort.Strings(found)

	switch len(found) {
	case 0:
		return "", fmt.Errorf("config: no .xlsx or .csv dataset in %s (set dataset.path)", dir)
	case 1:
		return filepath.Join(dir, found[0]), nil
	default:
		return "", fmt.Errorf("config: several datasets in %s: %s (set dataset.path)", dir, strings.Join(found, ", "))
	}
}
