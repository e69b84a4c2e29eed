package dataset

import "gonum.org/v1/gonum/stat"

// Summary holds per-channel statistics over the accumulated samples,
// reported to the operator after a run as a quick sanity check on the
// labeled color class.
type Summary struct {
	// Rows is the total number of labeled samples.
	Rows int

	// Mean and StdDev hold one entry per channel column.
	Mean   []float64
	StdDev []float64
}

// Summarize computes the per-channel mean and sample standard deviation
// of the dataset. An empty dataset yields a zero-row summary with no
// channel entries.
func (a *Accumulator) Summarize() Summary {
	s := Summary{Rows: len(a.rows)}
	if len(a.rows) == 0 {
		return s
	}

	col := make([]float64, len(a.rows))
	for c := 0; c < a.cols; c++ {
		for i, row := range a.rows {
			col[i] = row[c]
		}
		mean, std := stat.MeanStdDev(col, nil)
		s.Mean = append(s.Mean, mean)
		s.StdDev = append(s.StdDev, std)
	}

	return s
}
