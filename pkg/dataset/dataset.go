// Package dataset loads CSV files into in-memory rows the query engine can
// scan. It is the one place in the engine that touches I/O; everything
// downstream (sampler, aggregator, executor) operates on Row values already
// resident in memory.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is an unordered mapping from column name to cell value. Rows are
// immutable once loaded; numeric interpretation is deferred to the
// aggregator that consumes a given column.
type Row map[string]string

// Dataset is a named, fully materialized table.
type Dataset struct {
	Name string
	Rows []Row
}

// LoadCSV reads headers from the first line and assigns subsequent
// non-empty lines positionally to those headers. Fields are split on
// commas and trimmed. A value whose line has fewer fields than the header
// leaves the corresponding key absent from the row rather than empty —
// callers distinguish "missing" from "empty string".
//
// Quoting, escaping, and embedded newlines are not supported.
func LoadCSV(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("dataset: reading header: %w", err)
		}
		return nil, nil
	}
	headers := splitCSV(scanner.Text())

	var rows []Row
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitCSV(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i >= len(fields) {
				break
			}
			row[h] = fields[i]
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: reading rows: %w", err)
	}
	return rows, nil
}

// LoadCSVFile opens path and delegates to LoadCSV.
func LoadCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadCSV(f)
}

func splitCSV(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
