package motion

import (
	"fmt"
)

// Table is an immutable, time-ordered matrix of samples.
//
// Every row has the same number of columns. Column 0 is time.
type Table struct {
	columns []string
	rows    [][]float64
	width   int
}

// NewTable builds a Table from rows, copying them.
//
// Returns an error matching ErrMalformedData when the rows are ragged.
// Column names are optional; when given, their count must equal the row width.
func NewTable(columns []string, rows [][]float64) (*Table, error) {
	t := &Table{rows: make([][]float64, len(rows))}
	for i, r := range rows {
		if i == 0 {
			t.width = len(r)
		} else if len(r) != t.width {
			return nil, &ParseError{Line: i + 1, Err: fmt.Errorf("row has %d values, want %d", len(r), t.width)}
		}
		t.rows[i] = append([]float64(nil), r...)
	}
	if len(columns) > 0 && len(rows) > 0 && len(columns) != t.width {
		return nil, fmt.Errorf("%w: %d column names for %d columns", ErrMalformedData, len(columns), t.width)
	}
	t.columns = append([]string(nil), columns...)
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Width returns the number of columns, including time.
func (t *Table) Width() int { return t.width }

// Columns returns the column names read from the header, if any.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 { return append([]float64(nil), t.rows[i]...) }

// At returns the value at row i, column j.
func (t *Table) At(i, j int) float64 { return t.rows[i][j] }

// Column returns a copy of column j in row order.
func (t *Table) Column(j int) ([]float64, error) {
	if j < 0 || j >= t.width {
		return nil, fmt.Errorf("column %d out of range [0, %d)", j, t.width)
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, nil
}

// Time returns column 0.
func (t *Table) Time() []float64 {
	if t.width == 0 {
		return nil
	}
	c, _ := t.Column(0)
	return c
}
