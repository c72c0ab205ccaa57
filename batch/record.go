// Package batch implements the batch runner described by SPEC_FULL.md
// §4.10: reading CSV or JSON-Lines specimen records, running a Parser per
// record across a bounded worker pool, and writing the resulting Traits
// back out as CSV or JSON while preserving input order.
package batch

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Record is one input specimen row: a set of named fields, one of which
// (selected via Field) holds the free-form text to parse.
type Record struct {
	Fields map[string]string
}

// Text returns the named field, or "" if absent.
func (r Record) Text(field string) string { return r.Fields[field] }

// ReadCSV reads CSV records from r, using the header row for field names.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("batch: reading csv header: %w", err)
	}
	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("batch: reading csv row: %w", err)
		}
		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		records = append(records, Record{Fields: fields})
	}
	return records, nil
}

// ReadJSONLines reads one JSON object per line from r.
func ReadJSONLines(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var records []Record
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var fields map[string]string
		if err := json.Unmarshal(line, &fields); err != nil {
			return nil, fmt.Errorf("batch: parsing json line: %w", err)
		}
		records = append(records, Record{Fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("batch: reading json lines: %w", err)
	}
	return records, nil
}
