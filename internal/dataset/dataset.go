// Package dataset holds the in-memory tabular model shared by the index
// engine, the insight rules, and the descriptive analyzer. A cell is either
// numeric, text, or missing; missing cells are simply absent keys, so
// optional columns degrade without sentinel values.
package dataset

// Row is a single observation. Numeric and text cells live in separate maps;
// a column name absent from both means the cell is missing.
type Row struct {
	Num  map[string]float64
	Text map[string]string
}

// Dataset is an ordered sequence of rows plus the column order used for
// rendering. Transformations return new datasets; rows are never mutated
// in place once a dataset has been handed to a consumer.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New returns an empty dataset with the given column order.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...)}
}

// NewRow returns a Row with both cell maps allocated.
func NewRow() Row {
	return Row{Num: make(map[string]float64), Text: make(map[string]string)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn reports whether name is part of the dataset's column set.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Numeric returns the numeric cell for column name in row i.
func (d *Dataset) Numeric(i int, name string) (float64, bool) {
	v, ok := d.Rows[i].Num[name]
	return v, ok
}

// Label returns the text cell for column name in row i.
func (d *Dataset) Label(i int, name string) (string, bool) {
	s, ok := d.Rows[i].Text[name]
	return s, ok
}

// Column returns the numeric values of a column in row order together with
// a per-row presence mask. Missing or non-numeric cells are masked out.
func (d *Dataset) Column(name string) (vals []float64, present []bool) {
	vals = make([]float64, len(d.Rows))
	present = make([]bool, len(d.Rows))
	for i, r := range d.Rows {
		if v, ok := r.Num[name]; ok {
			vals[i] = v
			present[i] = true
		}
	}
	return vals, present
}

// ColumnValues returns the present numeric values of a column, dropping
// missing cells.
func (d *Dataset) ColumnValues(name string) []float64 {
	out := make([]float64, 0, len(d.Rows))
	for _, r := range d.Rows {
		if v, ok := r.Num[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a deep copy. Derived-column writers clone first so the
// caller's snapshot stays untouched.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		nr := NewRow()
		for k, v := range r.Num {
			nr.Num[k] = v
		}
		for k, v := range r.Text {
			nr.Text[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}

// AddColumn appends name to the column order if not already present.
func (d *Dataset) AddColumn(name string) {
	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
}

// Select returns a new dataset holding only the rows whose index passes
// keep, preserving order.
func (d *Dataset) Select(keep func(i int) bool) *Dataset {
	out := &Dataset{Columns: append([]string(nil), d.Columns...)}
	for i, r := range d.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Labels returns the text values of a column in row order, substituting
// fallback for missing cells.
func (d *Dataset) Labels(name, fallback string) []string {
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		if s, ok := r.Text[name]; ok {
			out[i] = s
		} else {
			out[i] = fallback
		}
	}
	return out
}
