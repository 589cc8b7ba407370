// Package density computes 1-D Gaussian kernel density estimates for the
// mountain shape of a group.
package density

import (
	"math"

	"github.com/montanaflynn/stats"

	"cmplot/domain/plot"
)

// gridSize is the number of support points the curve is sampled on
const gridSize = 128

// softPadBandwidths is how far, in bandwidths, a soft span extends the
// grid beyond the sample extremes
const softPadBandwidths = 3.0

// Estimator computes kernel density curves with a Silverman bandwidth rule
type Estimator struct {
	spanMode plot.SpanMode
}

// NewEstimator creates an estimator for the given span mode
func NewEstimator(spanMode plot.SpanMode) *Estimator {
	return &Estimator{spanMode: spanMode}
}

// Estimate returns the kernel density curve of the sample. Zero-variance
// and singleton samples fall back to a minimum bandwidth so the result is
// a narrow spike rather than a failure.
func (e *Estimator) Estimate(sample plot.Sample) plot.DensityCurve {
	values := sample.Values()
	n := len(values)

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	bw := bandwidth(values)

	lo, hi := min, max
	if e.spanMode == plot.SpanSoft {
		lo -= softPadBandwidths * bw
		hi += softPadBandwidths * bw
	} else if lo == hi {
		// hard span of a constant sample still needs nonzero width
		lo -= bw
		hi += bw
	}

	step := (hi - lo) / float64(gridSize-1)
	points := make([]plot.DensityPoint, gridSize)
	norm := 1.0 / (float64(n) * bw * math.Sqrt(2*math.Pi))
	peak := 0.0
	for i := range points {
		x := lo + float64(i)*step
		d := 0.0
		for _, v := range values {
			z := (x - v) / bw
			d += math.Exp(-0.5 * z * z)
		}
		d *= norm
		if d > peak {
			peak = d
		}
		points[i] = plot.DensityPoint{Value: x, Density: d}
	}

	return plot.DensityCurve{Points: points, Peak: peak}
}

// bandwidth applies Silverman's rule of thumb,
// 0.9 * min(sd, IQR/1.34) * n^(-1/5), with a floor for degenerate samples
func bandwidth(values []float64) float64 {
	n := float64(len(values))
	spread := 0.0
	if len(values) >= 2 {
		sd, _ := stats.StandardDeviationSample(values)
		q, err := stats.Quartile(values)
		spread = sd
		if err == nil {
			if iqr := (q.Q3 - q.Q1) / 1.34; iqr > 0 && iqr < spread {
				spread = iqr
			}
		}
	}
	bw := 0.9 * spread * math.Pow(n, -0.2)
	if bw <= 0 || math.IsNaN(bw) {
		return fallbackBandwidth(values[0])
	}
	return bw
}

// fallbackBandwidth keeps constant samples drawable: proportional to the
// value's magnitude, never below an absolute floor
func fallbackBandwidth(v float64) float64 {
	return math.Max(1e-3, math.Abs(v)*1e-3)
}
