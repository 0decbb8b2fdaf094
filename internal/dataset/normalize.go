// Package dataset cleans the local safety-index CSV used as background
// reference data: coerces numeric columns, clamps the perceived-safety
// index to [0,1], drops incomplete rows, and rewrites the file.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

type Row struct {
	City                 string
	AgeGroup             string
	Year                 int
	ReportedCasesPer100k float64
	PerceivedSafetyIndex float64
}

var header = []string{"city", "age_group", "year", "reported_cases_per_100k", "perceived_safety_index"}

// Normalize reads the CSV at path, drops rows with missing or unparsable
// values, clamps perceived safety to [0,1], writes the cleaned file back,
// and returns the surviving rows.
func Normalize(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	records, err := csv.NewReader(f).ReadAll()
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	cols, err := columnIndexes(records[0])
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	var rows []Row
	for _, rec := range records[1:] {
		row, ok := parseRow(rec, cols)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	if err := writeRows(path, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func columnIndexes(head []string) (map[string]int, error) {
	cols := make(map[string]int, len(head))
	for i, name := range head {
		cols[name] = i
	}
	for _, name := range header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (Row, bool) {
	get := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	city := get("city")
	ageGroup := get("age_group")
	if city == "" || ageGroup == "" {
		return Row{}, false
	}
	year, err := strconv.Atoi(get("year"))
	if err != nil {
		return Row{}, false
	}
	cases, err := strconv.ParseFloat(get("reported_cases_per_100k"), 64)
	if err != nil {
		return Row{}, false
	}
	safety, err := strconv.ParseFloat(get("perceived_safety_index"), 64)
	if err != nil {
		return Row{}, false
	}
	if safety < 0 {
		safety = 0
	}
	if safety > 1 {
		safety = 1
	}

	return Row{
		City:                 city,
		AgeGroup:             ageGroup,
		Year:                 year,
		ReportedCasesPer100k: cases,
		PerceivedSafetyIndex: safety,
	}, true
}

func writeRows(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewrite dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.City,
			row.AgeGroup,
			strconv.Itoa(row.Year),
			strconv.FormatFloat(row.ReportedCasesPer100k, 'f', -1, 64),
			strconv.FormatFloat(row.PerceivedSafetyIndex, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
