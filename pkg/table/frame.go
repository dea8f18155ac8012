// Package table provides the in-memory tabular structure produced by the file
// reading backends and consumed by the document converter. A Frame holds an
// ordered set of uniquely named columns and ordered rows; every row carries a
// value, possibly null, for every column.
package table

import (
	"fmt"

	"github.com/framedoc/framedoc/pkg/errors"
)

// Frame is an immutable-once-built table. It is created fresh per file read,
// converted once, then discarded.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty frame with the given column order. Column names must
// be non-empty and unique.
func New(columns []string) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, errors.New(errors.ErrorTypeValidation,
				fmt.Sprintf("column %d has an empty name", i))
		}
		if _, dup := index[name]; dup {
			return nil, errors.New(errors.ErrorTypeValidation,
				fmt.Sprintf("duplicate column name %q", name))
		}
		index[name] = i
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int { return len(f.columns) }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return len(f.rows) }

// HasColumn reports whether the frame declares the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// AppendRow adds a row. The row must carry exactly one value per column, in
// column order.
func (f *Frame) AppendRow(row []Value) error {
	if len(row) != len(f.columns) {
		return errors.New(errors.ErrorTypeValidation,
			fmt.Sprintf("row has %d values, frame has %d columns", len(row), len(f.columns)))
	}
	f.rows = append(f.rows, append([]Value(nil), row...))
	return nil
}

// At returns the value at the given row and column position.
func (f *Frame) At(row, col int) Value {
	return f.rows[row][col]
}

// Row returns the values of one row in column order. The returned slice is
// owned by the frame and must not be mutated.
func (f *Frame) Row(i int) []Value {
	return f.rows[i]
}

// Select returns a new frame containing only the named columns, in the given
// order. Every missing name is reported in a single error.
func (f *Frame) Select(columns []string) (*Frame, error) {
	var missing []string
	indices := make([]int, 0, len(columns))
	for _, name := range columns {
		i, ok := f.index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		indices = append(indices, i)
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingColumns(missing)
	}

	out, err := New(columns)
	if err != nil {
		return nil, err
	}
	for _, row := range f.rows {
		selected := make([]Value, len(indices))
		for j, i := range indices {
			selected[j] = row[i]
		}
		if err := out.AppendRow(selected); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Concat vertically concatenates frames, preserving frame order and row order
// within each frame. All frames must declare identical columns in identical
// order.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "no frames to concatenate")
	}

	first := frames[0]
	for _, other := range frames[1:] {
		if err := sameColumns(first.columns, other.columns); err != nil {
			return nil, err
		}
	}

	out, err := New(first.columns)
	if err != nil {
		return nil, err
	}
	for _, frame := range frames {
		for _, row := range frame.rows {
			if err := out.AppendRow(row); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func sameColumns(a, b []string) error {
	if len(a) != len(b) {
		return errors.New(errors.ErrorTypeValidation,
			fmt.Sprintf("cannot concatenate frames with %d and %d columns", len(a), len(b)))
	}
	for i := range a {
		if a[i] != b[i] {
			return errors.New(errors.ErrorTypeValidation,
				fmt.Sprintf("column %d differs between frames: %q vs %q", i, a[i], b[i]))
		}
	}
	return nil
}
