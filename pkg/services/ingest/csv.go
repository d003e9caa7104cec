package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ReadCSV parses comma-delimited text. Invalid UTF-8 input falls back
// to a Latin-1 decode, matching how exported spreadsheets commonly
// arrive. Quoting is lenient and ragged rows are tolerated.
func ReadCSV(r io.Reader, maxRows int) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if !utf8.Valid(raw) {
		raw = decodeLatin1(raw)
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	doc := &Document{Headers: trimHeaders(header)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// A single malformed row is a data quality issue,
				// not a reason to abort the file.
				continue
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if maxRows > 0 && len(doc.Rows) >= maxRows {
			doc.Truncated = true
			break
		}
		doc.Rows = append(doc.Rows, rowMap(doc.Headers, row))
	}
	return doc, nil
}

// decodeLatin1 maps each byte to its equivalent code point.
func decodeLatin1(raw []byte) []byte {
	out := make([]byte, 0, len(raw)*2)
	for _, b := range raw {
		out = utf8.AppendRune(out, rune(b))
	}
	return out
}
