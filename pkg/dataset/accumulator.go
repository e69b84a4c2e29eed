// Package dataset accumulates labeled color samples and serializes them
// to a delimited text file.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"balllabel/internal/models"
)

// Accumulator is the growing table of labeled samples. It starts with
// zero rows, grows only by Append, and never removes or reorders rows,
// so the serialized row order reproduces image order followed by
// in-image scan order.
type Accumulator struct {
	// cols is the column count fixed by the first appended sample.
	// Zero until the first non-empty append.
	cols int

	// rows holds the appended samples in arrival order.
	rows [][]float64
}

// NewAccumulator returns an empty accumulator. The column count is fixed
// by the first sample appended to it.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Append adds the given samples as new rows. Every sample must have the
// same channel count as the dataset's established column count; a
// mismatch is reported as a SchemaMismatchError and leaves the dataset
// unchanged. Appending zero samples is valid and a no-op.
func (a *Accumulator) Append(samples [][]float64) error {
	cols := a.cols
	for _, s := range samples {
		if cols == 0 {
			cols = len(s)
		}
		if len(s) != cols {
			return &models.SchemaMismatchError{Want: cols, Got: len(s)}
		}
	}

	a.cols = cols
	a.rows = append(a.rows, samples...)
	return nil
}

// Rows returns the current row count.
func (a *Accumulator) Rows() int { return len(a.rows) }

// Cols returns the column count, or 0 before the first non-empty append.
func (a *Accumulator) Cols() int { return a.cols }

// Row returns the i-th row. The returned slice must not be modified.
func (a *Accumulator) Row(i int) []float64 { return a.rows[i] }

// Matrix returns a copy of the dataset as a gonum dense matrix, or nil
// for an empty dataset.
func (a *Accumulator) Matrix() *mat.Dense {
	if len(a.rows) == 0 {
		return nil
	}
	m := mat.NewDense(len(a.rows), a.cols, nil)
	for i, row := range a.rows {
		m.SetRow(i, row)
	}
	return m
}
