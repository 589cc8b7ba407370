// Package inference estimates the central-tendency interval drawn as the
// band of a cloudy mountain plot.
package inference

import (
	"math"
	randv2 "math/rand/v2"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"cmplot/domain/core"
	"cmplot/domain/plot"
)

// Estimator computes hdi, ci or iqr intervals for a sample
type Estimator struct {
	method plot.InferenceMethod
	level  float64 // confidence level (ci) or credible mass (hdi)
	iter   int     // posterior simulation draws (hdi)
	seed   int64
}

// NewEstimator validates the method and its parameters up front
func NewEstimator(method plot.InferenceMethod, level float64, iter int, seed int64) (*Estimator, error) {
	switch method {
	case plot.InferenceHDI, plot.InferenceCI, plot.InferenceIQR, plot.InferenceNone:
	default:
		return nil, core.NewOptionError("inf", string(method), "hdi|ci|iqr|none")
	}
	if method != plot.InferenceNone && (level <= 0 || level >= 1) {
		return nil, core.NewRangeError("conf_level", level, "(0,1)")
	}
	if method == plot.InferenceHDI && iter <= 0 {
		return nil, core.NewRangeError("hdi_iter", iter, "(0,inf)")
	}
	return &Estimator{method: method, level: level, iter: iter, seed: seed}, nil
}

// Estimate returns the interval for the sample, or nil when the method is
// none or the sample is too small to infer from (n < 2). A nil interval is
// not an error; the geometry assembler simply omits the band.
func (e *Estimator) Estimate(sample plot.Sample) *plot.Interval {
	if e.method == plot.InferenceNone || sample.Len() < 2 {
		return nil
	}
	values := sample.Values()
	switch e.method {
	case plot.InferenceCI:
		return e.studentCI(values)
	case plot.InferenceIQR:
		return e.quartileRange(values)
	default:
		return e.bayesHDI(values)
	}
}

// studentCI is the classic t confidence interval for the mean
func (e *Estimator) studentCI(values []float64) *plot.Interval {
	n := float64(len(values))
	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationSample(values)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	tCrit := tDist.Quantile(1 - (1-e.level)/2)
	half := tCrit * sd / math.Sqrt(n)

	return &plot.Interval{
		Method: plot.InferenceCI,
		Center: mean,
		Low:    mean - half,
		High:   mean + half,
	}
}

// quartileRange centers on the median and bounds at Q1 and Q3. The same
// quartile computation backs the box summary so the two always agree.
func (e *Estimator) quartileRange(values []float64) *plot.Interval {
	q, err := stats.Quartile(values)
	if err != nil {
		return nil
	}
	return &plot.Interval{
		Method: plot.InferenceIQR,
		Center: q.Q2,
		Low:    q.Q1,
		High:   q.Q3,
	}
}

// bayesHDI simulates the posterior of the mean under a noninformative
// model: draws are mean + stderr * T with T ~ StudentsT(n-1), then the
// highest density interval is the narrowest window covering the credible
// mass. Deterministic for a fixed seed.
func (e *Estimator) bayesHDI(values []float64) *plot.Interval {
	n := float64(len(values))
	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationSample(values)
	stdErr := sd / math.Sqrt(n)

	src := randv2.NewPCG(uint64(e.seed), uint64(e.seed)+1)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1, Src: src}

	draws := make([]float64, e.iter)
	for i := range draws {
		draws[i] = mean + stdErr*tDist.Rand()
	}
	low, high := hdiFromDraws(draws, e.level)

	return &plot.Interval{
		Method: plot.InferenceHDI,
		Center: mean,
		Low:    low,
		High:   high,
	}
}

// hdiFromDraws finds the shortest interval covering credibleMass of the
// draws: sort, then scan every window spanning ceil(mass*k) points and
// keep the narrowest.
func hdiFromDraws(draws []float64, credibleMass float64) (float64, float64) {
	sorted := make([]float64, len(draws))
	copy(sorted, draws)
	sort.Float64s(sorted)

	k := len(sorted)
	span := int(math.Ceil(credibleMass * float64(k)))
	if span >= k {
		return sorted[0], sorted[k-1]
	}

	best := 0
	bestWidth := math.Inf(1)
	for i := 0; i+span < k; i++ {
		if w := sorted[i+span] - sorted[i]; w < bestWidth {
			bestWidth = w
			best = i
		}
	}
	return sorted[best], sorted[best+span]
}
