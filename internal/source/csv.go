package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// EncodeCSV writes rows as CSV. The header is the sorted union of all keys;
// missing cells are written empty.
func EncodeCSV(rows []Row) ([]byte, error) {
	keys := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			keys[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	rec := make([]string, len(header))
	for _, r := range rows {
		for i, k := range header {
			rec[i] = r[k]
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV reads rows written by EncodeCSV or exported by a spreadsheet.
// Empty cells are omitted from the row so they read as missing.
func DecodeCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) && rec[i] != "" {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
