package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// readCSV returns every record of a comma-separated file. A leading UTF-8
// byte order mark, as written by Excel's "CSV UTF-8" export, is dropped.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}
	return rows, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
