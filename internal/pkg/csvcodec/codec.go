// Package csvcodec round-trips the header-first tabular format used for the
// shift log. Quoting follows RFC 4180 (quote doubling), so field values may
// contain the delimiter, quote and line-break characters losslessly.
package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Decode parses content into its ordered column names and rows. Rows map
// column name to string value; missing trailing columns read as empty
// strings, and rows whose values are all empty are dropped as blank lines.
func Decode(content string) ([]string, []map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	columns, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row := make(map[string]string, len(columns))
		empty := true
		for i, col := range columns {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			if value != "" {
				empty = false
			}
			row[col] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

// Encode serializes the header and rows, preserving column order exactly.
func Encode(columns []string, rows []map[string]string) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write(columns); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(recordFor(columns, row)); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return builder.String(), nil
}

// EncodeRow serializes a single row (with trailing newline) so callers can
// append it to existing content without rewriting the whole file body.
func EncodeRow(columns []string, row map[string]string) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)
	if err := writer.Write(recordFor(columns, row)); err != nil {
		return "", fmt.Errorf("failed to write csv row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return builder.String(), nil
}

func recordFor(columns []string, row map[string]string) []string {
	record := make([]string, len(columns))
	for i, col := range columns {
		record[i] = row[col]
	}
	return record
}
