package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV/TSV file into a Dataset. Cells that parse as numbers
// become numeric cells; everything else becomes text; empty cells stay
// missing. Delimiter 0 auto-detects by file extension.
func LoadCSV(path string, delimiter rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if delimiter == 0 {
		delimiter = sniffDelimiter(path)
	}

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	ds := New(cols...)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", ds.Len()+1, err)
		}
		row := NewRow()
		for j, name := range cols {
			if j >= len(rec) {
				break
			}
			cell := strings.TrimSpace(rec[j])
			if cell == "" {
				continue
			}
			if x, ok := parseNumeric(cell); ok {
				row.Num[name] = x
			} else {
				row.Text[name] = cell
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// WriteCSV writes ds to path, one header row plus one record per row.
// Missing cells become empty fields.
func WriteCSV(ds *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for j, name := range ds.Columns {
			switch {
			case hasNum(row, name):
				rec[j] = strconv.FormatFloat(row.Num[name], 'f', -1, 64)
			default:
				rec[j] = row.Text[name]
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func hasNum(r Row, name string) bool {
	_, ok := r.Num[name]
	return ok
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
