// Package cloud selects and jitters the displayed subset of raw points,
// the "cloud" hugging the density mountain.
package cloud

import (
	"math/rand"
	"sort"

	"cmplot/domain/core"
	"cmplot/domain/plot"
)

// Sampler draws a display-limited, jittered point cloud from a sample
type Sampler struct {
	maxDisplayed int     // 0 = unlimited
	distance     float64 // fractional distance from the curve base, scales jitter
	rng          *rand.Rand
}

// NewSampler validates the display cap and distance before any sampling
func NewSampler(maxDisplayed int, distance float64, seed int64) (*Sampler, error) {
	if maxDisplayed < 0 {
		return nil, core.NewRangeError("pointsmaxdisplayed", maxDisplayed, "[0,inf)")
	}
	if distance < 0 || distance > 1 {
		return nil, core.NewRangeError("pointsdistance", distance, "[0,1]")
	}
	return &Sampler{
		maxDisplayed: maxDisplayed,
		distance:     distance,
		rng:          rand.New(rand.NewSource(seed)),
	}, nil
}

// Sample returns the cloud points for the group. When the display cap is
// smaller than the sample this is a lossy display subsample, selected
// uniformly without replacement; the dropped points are not used anywhere
// else. Each point keeps its exact value; only the perpendicular offset is
// jittered, bounded by the normalized local density so the cloud width
// tracks the mountain.
func (s *Sampler) Sample(sample plot.Sample, curve plot.DensityCurve) []plot.CloudPoint {
	values := sample.Values()

	selected := values
	if s.maxDisplayed > 0 && len(values) > s.maxDisplayed {
		idx := s.rng.Perm(len(values))[:s.maxDisplayed]
		sort.Ints(idx) // keep the original observation order
		selected = make([]float64, len(idx))
		for i, j := range idx {
			selected[i] = values[j]
		}
	}

	points := make([]plot.CloudPoint, len(selected))
	for i, v := range selected {
		amplitude := s.distance * curve.NormalizedAt(v)
		points[i] = plot.CloudPoint{
			Value:  v,
			Offset: (2*s.rng.Float64() - 1) * amplitude,
		}
	}
	return points
}
