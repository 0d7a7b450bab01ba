// Package frame provides a minimal column-named table backed by a gonum
// dense matrix. It covers what the cross-validation layer needs from a data
// frame: column lookup by name, dropping columns, row selection and
// in-place column updates. Every value is a float64; booleans are stored as
// 0/1 and unwritten cells as NaN.
package frame

import (
	"fmt"
	"math"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Frame is a table with named columns.
type Frame struct {
	columns []string
	index   map[string]int
	data    *mat.Dense
}

// New creates a Frame over data, whose column count must match columns.
// The frame takes ownership of data.
func New(columns []string, data *mat.Dense) (*Frame, error) {
	if data == nil || len(columns) == 0 {
		return nil, errors.NewModelError("frame.New", "empty frame", errors.ErrEmptyData)
	}
	_, c := data.Dims()
	if c != len(columns) {
		return nil, errors.NewDimensionError("frame.New", len(columns), c, 1)
	}
	index := make(map[string]int, len(columns))
	for j, name := range columns {
		if _, dup := index[name]; dup {
			return nil, errors.NewValidationError("columns", "duplicate column name", name)
		}
		index[name] = j
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
		data:    data,
	}, nil
}

// FromColumns builds a Frame from column slices of equal length.
func FromColumns(names []string, cols [][]float64) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, errors.NewDimensionError("frame.FromColumns", len(names), len(cols), 1)
	}
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, errors.NewModelError("frame.FromColumns", "empty frame", errors.ErrEmptyData)
	}
	rows := len(cols[0])
	data := mat.NewDense(rows, len(cols), nil)
	for j, col := range cols {
		if len(col) != rows {
			return nil, errors.NewDimensionError(fmt.Sprintf("frame.FromColumns(%s)", names[j]), rows, len(col), 0)
		}
		data.SetCol(j, col)
	}
	return New(names, data)
}

// MustFromColumns is FromColumns that panics on error. Intended for tests
// and examples with literal data.
func MustFromColumns(names []string, cols [][]float64) *Frame {
	f, err := FromColumns(names, cols)
	if err != nil {
		panic(err)
	}
	return f
}

// Dims returns the number of rows and columns.
func (f *Frame) Dims() (rows, cols int) {
	return f.data.Dims()
}

// NRows returns the number of rows.
func (f *Frame) NRows() int {
	r, _ := f.data.Dims()
	return r
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// HasColumn reports whether the frame has a column called name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) colIndex(op, name string) (int, error) {
	j, ok := f.index[name]
	if !ok {
		return 0, errors.NewValueError(op, fmt.Sprintf("column %q not found", name))
	}
	return j, nil
}

// Col returns a copy of the named column.
func (f *Frame) Col(name string) ([]float64, error) {
	j, err := f.colIndex("Frame.Col", name)
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, j, f.data), nil
}

// ColVec returns the named column as an n × 1 matrix.
func (f *Frame) ColVec(name string) (*mat.Dense, error) {
	col, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(col), 1, col), nil
}

// SetCol overwrites an existing column.
func (f *Frame) SetCol(name string, values []float64) error {
	j, err := f.colIndex("Frame.SetCol", name)
	if err != nil {
		return err
	}
	if len(values) != f.NRows() {
		return errors.NewDimensionError("Frame.SetCol", f.NRows(), len(values), 0)
	}
	f.data.SetCol(j, values)
	return nil
}

// SetRows writes values[k] into the named column at row rows[k].
func (f *Frame) SetRows(name string, rows []int, values []float64) error {
	j, err := f.colIndex("Frame.SetRows", name)
	if err != nil {
		return err
	}
	if len(rows) != len(values) {
		return errors.NewDimensionError("Frame.SetRows", len(rows), len(values), 0)
	}
	n := f.NRows()
	for k, i := range rows {
		if i < 0 || i >= n {
			return errors.NewValueError("Frame.SetRows", fmt.Sprintf("row %d out of range [0,%d)", i, n))
		}
		f.data.Set(i, j, values[k])
	}
	return nil
}

// AddCol appends a column filled with fill. Use math.NaN() for an
// unwritten column.
func (f *Frame) AddCol(name string, fill float64) error {
	if f.HasColumn(name) {
		return errors.NewValidationError("column", "already exists", name)
	}
	r, c := f.data.Dims()
	grown := mat.NewDense(r, c+1, nil)
	grown.Slice(0, r, 0, c).(*mat.Dense).Copy(f.data)
	for i := 0; i < r; i++ {
		grown.Set(i, c, fill)
	}
	f.data = grown
	f.columns = append(f.columns, name)
	f.index[name] = c
	return nil
}

// Drop returns a new frame without the named columns. Every name must exist.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := f.colIndex("Frame.Drop", name); err != nil {
			return nil, err
		}
		drop[name] = true
	}

	keep := make([]string, 0, len(f.columns))
	for _, name := range f.columns {
		if !drop[name] {
			keep = append(keep, name)
		}
	}
	return f.Select(keep...)
}

// Select returns a new frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if len(names) == 0 {
		return nil, errors.NewModelError("Frame.Select", "no columns selected", errors.ErrEmptyData)
	}
	r := f.NRows()
	data := mat.NewDense(r, len(names), nil)
	col := make([]float64, r)
	for k, name := range names {
		j, err := f.colIndex("Frame.Select", name)
		if err != nil {
			return nil, err
		}
		mat.Col(col, j, f.data)
		data.SetCol(k, col)
	}
	return New(names, data)
}

// Rows returns a new frame holding the given rows, in the given order.
func (f *Frame) Rows(indices []int) (*Frame, error) {
	if len(indices) == 0 {
		return nil, errors.NewModelError("Frame.Rows", "no rows selected", errors.ErrEmptyData)
	}
	n, c := f.data.Dims()
	data := mat.NewDense(len(indices), c, nil)
	for k, i := range indices {
		if i < 0 || i >= n {
			return nil, errors.NewValueError("Frame.Rows", fmt.Sprintf("row %d out of range [0,%d)", i, n))
		}
		data.SetRow(k, f.data.RawRowView(i))
	}
	return New(f.columns, data)
}

// Where returns the indices of rows whose value in the named column
// satisfies pred.
func (f *Frame) Where(name string, pred func(v float64) bool) ([]int, error) {
	j, err := f.colIndex("Frame.Where", name)
	if err != nil {
		return nil, err
	}
	var rows []int
	n := f.NRows()
	for i := 0; i < n; i++ {
		if pred(f.data.At(i, j)) {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	data := mat.DenseCopyOf(f.data)
	index := make(map[string]int, len(f.index))
	for k, v := range f.index {
		index[k] = v
	}
	return &Frame{
		columns: append([]string(nil), f.columns...),
		index:   index,
		data:    data,
	}
}

// Matrix returns the underlying matrix. Callers must not modify it.
func (f *Frame) Matrix() mat.Matrix {
	return f.data
}

// CountNaN returns the number of NaN cells in the named column.
func (f *Frame) CountNaN(name string) (int, error) {
	col, err := f.Col(name)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, v := range col {
		if math.IsNaN(v) {
			count++
		}
	}
	return count, nil
}
