package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteFile serializes the dataset to path as delimited text: one row
// per line, no header, fields separated by delim. Numeric fields use the
// shortest decimal form that round-trips exactly through a float64
// parse, and are locale-independent. Existing content at path is
// overwritten. Write failures propagate to the caller; there is no
// retry.
func (a *Accumulator) WriteFile(path string, delim rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = delim

	record := make([]string, a.cols)
	for _, row := range a.rows {
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
