package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders the same column projection as the PDF exporter.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Generate produces CSV bytes with a header row followed by one record per row.
func (e *CSVExporter) Generate(columns []Column, rows []map[string]any, filename string) (*Document, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = cellText(row, col.Key)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return &Document{Filename: filename + ".csv", ContentType: "text/csv; charset=utf-8", Data: buf.Bytes()}, nil
}
