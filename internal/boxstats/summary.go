// Package boxstats computes the mini boxplot summary and Tukey outlier
// classification for a group.
package boxstats

import (
	"math"

	"github.com/montanaflynn/stats"

	"cmplot/domain/core"
	"cmplot/domain/plot"
)

// Summarize computes quartiles, whisker bounds and outliers for a sample.
// Whisker ends are clipped to the innermost data points inside the
// 1.5-IQR fences; anything strictly beyond a fence is an outlier.
// A singleton sample collapses the box onto its one value so the summary
// stays finite and serializable.
func Summarize(sample plot.Sample) (plot.BoxSummary, error) {
	values := sample.Values()
	if len(values) == 0 {
		return plot.BoxSummary{}, core.ErrEmptySample
	}

	q, err := stats.Quartile(values)
	if err != nil {
		return plot.BoxSummary{}, core.NewInputError(err.Error())
	}
	// stats.Quartile yields NaN halves for a singleton instead of an
	// error; collapse the box onto the median
	if math.IsNaN(q.Q1) || math.IsNaN(q.Q3) {
		q.Q1, q.Q3 = q.Q2, q.Q2
	}
	iqr := q.Q3 - q.Q1
	fenceLow := q.Q1 - 1.5*iqr
	fenceHigh := q.Q3 + 1.5*iqr

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	summary := plot.BoxSummary{
		Q1:          q.Q1,
		Median:      q.Q2,
		Q3:          q.Q3,
		WhiskerLow:  max,
		WhiskerHigh: min,
	}
	for _, v := range values {
		if v >= fenceLow && v < summary.WhiskerLow {
			summary.WhiskerLow = v
		}
		if v <= fenceHigh && v > summary.WhiskerHigh {
			summary.WhiskerHigh = v
		}
		if v < fenceLow || v > fenceHigh {
			summary.Outliers = append(summary.Outliers, v)
		}
	}
	return summary, nil
}
