// Package dataset loads the vignette spreadsheet into typed records. It
// checks that the expected columns are present and that ids are unique;
// everything else about the content is taken as-is.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// ErrNoFile is returned when no dataset path was given.
var ErrNoFile = errors.New("dataset: no file selected")

// LoadError wraps a failure to read or interpret the dataset file.
type LoadError struct {
	Path string
	Row  int // 1-based spreadsheet row; 0 when not row-specific
	Err  error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("dataset: %s row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("dataset: %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Column names as they appear in the spreadsheet header row.
const (
	ColID          = "ID"
	ColLength      = "Length"
	ColWarning     = "Warning"
	ColContent     = "Content"
	ColPage        = "Page_No"
	ColAuthorLast  = "Author_last"
	ColAuthorFirst = "Author_first"
	ColDate        = "Publication_date"
	ColTitle       = "Title"
	ColVenue       = "Publisher_Journal_Website"
	ColLessonTitle = "Lesson_title"
	ColLessonLink  = "Lesson_link"
)

// reflectionCols hold the optional discussion prompts.
var reflectionCols = [4]string{"Q1", "Q2", "Q3", "Q4"}

// requiredCols must be present in the header row.
var requiredCols = []string{
	ColID, ColLength, ColContent,
	ColPage, ColAuthorLast, ColAuthorFirst, ColDate, ColTitle, ColVenue,
}

// Load reads the dataset at path. The format is chosen by extension: .xlsx
// and .xlsm go through excelize (sheet selects the worksheet, empty for the
// first), .csv through encoding/csv.
func Load(path, sheet string) ([]vignette.Record, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFile
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return parseRows(path, rows)
}

// parseRows maps the header row to column indexes and converts each data row.
// Fully blank rows are skipped.
func parseRows(path string, rows [][]string) ([]vignette.Record, error) {
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("file is empty")}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range requiredCols {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))}
	}

	seen := make(map[string]int)
	var records []vignette.Record
	for n, row := range rows[1:] {
		rowNum := n + 2
		if blank(row) {
			continue
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id := get(ColID)
		if id == "" {
			return nil, &LoadError{Path: path, Row: rowNum, Err: errors.New("empty ID")}
		}
		if first, dup := seen[id]; dup {
			return nil, &LoadError{Path: path, Row: rowNum, Err: fmt.Errorf("duplicate ID %q (first on row %d)", id, first)}
		}
		seen[id] = rowNum

		cat, err := vignette.ParseCategory(get(ColLength))
		if err != nil {
			return nil, &LoadError{Path: path, Row: rowNum, Err: err}
		}

		r := vignette.Record{
			ID:       id,
			Category: cat,
			Content:  get(ColContent),
			Warning:  get(ColWarning),
			Citation: vignette.Citation{
				Page:            get(ColPage),
				AuthorLast:      get(ColAuthorLast),
				AuthorFirst:     get(ColAuthorFirst),
				PublicationDate: get(ColDate),
				Title:           get(ColTitle),
				Venue:           get(ColVenue),
			},
			LessonTitle: get(ColLessonTitle),
			LessonLink:  get(ColLessonLink),
		}
		for i, col := range reflectionCols {
			r.Reflections[i] = get(col)
		}
		records = append(records, r)
	}
	return records, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
