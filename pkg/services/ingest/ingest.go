// Package ingest reads delimited text and spreadsheet uploads into
// header + raw-row form for schema resolution. Readers enforce the
// configured row ceiling and tolerate ragged rows; type coercion is
// someone else's job.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Document is a parsed upload: the observed header row plus every
// data row as a header-to-cell mapping. Truncated is set when the row
// ceiling stopped the read early.
type Document struct {
	Headers   []string
	Rows      []map[string]string
	Truncated bool
}

// Read parses an upload, choosing the reader by file extension:
// .xlsx/.xls go through the spreadsheet reader, everything else is
// treated as delimited text. maxRows <= 0 means no ceiling.
func Read(name string, r io.Reader, maxRows int) (*Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		doc, err := ReadXLSX(r, maxRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read spreadsheet %q: %w", name, err)
		}
		return doc, nil
	default:
		doc, err := ReadCSV(r, maxRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read delimited file %q: %w", name, err)
		}
		return doc, nil
	}
}

// rowMap pairs a data row with the header row positionally. Ragged
// rows map their missing cells to empty strings; on duplicate headers
// the first occurrence wins.
func rowMap(headers, row []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if _, seen := m[h]; seen {
			continue
		}
		if i < len(row) {
			m[h] = row[i]
		} else {
			m[h] = ""
		}
	}
	return m
}

func trimHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}
