package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a spreadsheet, treating its
// first row as the header row.
func ReadXLSX(r io.Reader, maxRows int) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Document{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Document{}, nil
	}

	doc := &Document{Headers: trimHeaders(rows[0])}
	for _, row := range rows[1:] {
		if maxRows > 0 && len(doc.Rows) >= maxRows {
			doc.Truncated = true
			break
		}
		doc.Rows = append(doc.Rows, rowMap(doc.Headers, row))
	}
	return doc, nil
}
