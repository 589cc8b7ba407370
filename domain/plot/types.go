package plot

import (
	"math"
	"strings"

	"cmplot/domain/core"
)

// Orientation selects which axis carries the categorical positions
type Orientation string

const (
	Horizontal Orientation = "h" // values on X, categories on Y
	Vertical   Orientation = "v" // categories on X, values on Y
)

// Side is the direction a density mountain extends from its axis position
type Side string

const (
	SidePositive Side = "pos"
	SideNegative Side = "neg"
	SideBoth     Side = "both"
	SideAlt      Side = "alt" // resolved to pos/neg per group by the layout planner
)

// Sign returns the axis-offset sign of a resolved side (0 for both)
func (s Side) Sign() float64 {
	switch s {
	case SidePositive:
		return 1
	case SideNegative:
		return -1
	default:
		return 0
	}
}

// InferenceMethod selects the algorithm for the central-tendency band
type InferenceMethod string

const (
	InferenceHDI  InferenceMethod = "hdi"  // Bayesian highest density interval
	InferenceCI   InferenceMethod = "ci"   // Student's-t confidence interval
	InferenceIQR  InferenceMethod = "iqr"  // interquantile range
	InferenceNone InferenceMethod = "none" // no band
)

// SpanMode controls how far the density curve extends beyond the data
type SpanMode string

const (
	SpanSoft SpanMode = "soft" // pad the grid beyond [min, max]
	SpanHard SpanMode = "hard" // clip the grid to exactly [min, max]
)

// Sample is the ordered raw observations for one (category, variable) pair.
// Non-finite values are excluded at construction and never reach the
// estimators.
type Sample struct {
	values []float64
}

// NewSample builds a Sample from raw observations, dropping NaN and Inf.
// At least one finite value must survive.
func NewSample(raw []float64) (Sample, error) {
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return Sample{}, core.ErrEmptySample
	}
	return Sample{values: values}, nil
}

// Values returns the finite observations. Callers must not mutate the slice.
func (s Sample) Values() []float64 { return s.values }

// Len returns the number of finite observations
func (s Sample) Len() int { return len(s.values) }

// Group owns one Sample for one combination of categorical values and one
// dependent variable
type Group struct {
	Categories []string `json:"categories"` // categorical column values, in column order
	Variable   string   `json:"variable"`   // dependent variable name
	Sample     Sample   `json:"-"`
}

// Label joins the categorical values the way the plot labels a position
func (g Group) Label() string {
	return strings.Join(g.Categories, "&")
}

// SubLabel returns the last categorical value, used to key side alternation
// when positions are superimposed
func (g Group) SubLabel() string {
	if len(g.Categories) == 0 {
		return ""
	}
	return g.Categories[len(g.Categories)-1]
}

// DensityPoint is one (support value, density) pair of a kernel density curve
type DensityPoint struct {
	Value   float64 `json:"value"`
	Density float64 `json:"density"`
}

// DensityCurve is a kernel density estimate sampled on a bounded grid,
// monotonic in Value with non-negative densities
type DensityCurve struct {
	Points []DensityPoint `json:"points"`
	Peak   float64        `json:"peak"` // maximum density, used for width normalization
}

// NormalizedAt interpolates the curve at v and scales it to [0, 1] by the
// peak density. Values outside the support yield 0.
func (c DensityCurve) NormalizedAt(v float64) float64 {
	n := len(c.Points)
	if n == 0 || c.Peak <= 0 {
		return 0
	}
	if v < c.Points[0].Value || v > c.Points[n-1].Value {
		return 0
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c.Points[mid].Value <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	p, q := c.Points[lo], c.Points[hi]
	d := p.Density
	if q.Value > p.Value {
		t := (v - p.Value) / (q.Value - p.Value)
		d = p.Density + t*(q.Density-p.Density)
	}
	return d / c.Peak
}

// Interval is a central estimate with (low, high) bounds around it.
// For hdi and ci the center is the sample mean; for iqr it is the median.
type Interval struct {
	Method InferenceMethod `json:"method"`
	Center float64         `json:"center"`
	Low    float64         `json:"low"`
	High   float64         `json:"high"`
}

// BoxSummary holds the quartile box, the whisker bounds and the values
// classified as outliers by the 1.5-IQR Tukey rule
type BoxSummary struct {
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	WhiskerLow  float64   `json:"whisker_low"`  // innermost value above Q1 - 1.5*IQR
	WhiskerHigh float64   `json:"whisker_high"` // innermost value below Q3 + 1.5*IQR
	Outliers    []float64 `json:"outliers"`
}

// CloudPoint is one jittered raw observation of the display cloud.
// Offset is perpendicular to the value axis, in units of the normalized
// local density (the assembler scales it into axis units).
type CloudPoint struct {
	Value  float64 `json:"value"`
	Offset float64 `json:"offset"`
}

// PlacementPlan is the deterministic per-group layout decision
type PlacementPlan struct {
	Position      float64 `json:"position"`       // offset along the categorical axis
	PositionLabel string  `json:"position_label"` // tick label at Position
	Side          Side    `json:"side"`           // resolved: pos, neg or both
	ColorIndex    int     `json:"color_index"`
	ColorCount    int     `json:"color_count"` // size of the color wheel the index cycles
	Symbol        string  `json:"symbol"`      // point marker symbol
	Superimposed  bool    `json:"superimposed"`
	PointsOffset  float64 `json:"points_offset"` // cloud base, fraction of max width, signed
}

// Point is a 2-D coordinate in the final plot space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a straight line between two plot-space points
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Rect is an axis-aligned plot-space rectangle
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// GroupGeometry is the final per-group bundle handed to a rendering
// adapter: every visual element already placed in the shared 2-D space.
type GroupGeometry struct {
	Group Group         `json:"group"`
	Plan  PlacementPlan `json:"plan"`

	DensityPolygon []Point `json:"density_polygon"` // closed filled outline of the mountain

	Points []Point `json:"points,omitempty"` // jittered display cloud

	Box      *Rect     `json:"box,omitempty"`    // Q1..Q3 box
	Median   *Segment  `json:"median,omitempty"` // median line across the box
	Whiskers []Segment `json:"whiskers,omitempty"`
	Outliers []Point   `json:"outliers,omitempty"`

	Band *Rect `json:"band,omitempty"` // inference interval band

	Stats GroupStats `json:"stats"`
}

// GroupStats keeps the statistical artifacts next to their geometry so
// adapters can label and hover without recomputation
type GroupStats struct {
	Density  DensityCurve `json:"density"`
	Box      BoxSummary   `json:"box"`
	Interval *Interval    `json:"interval,omitempty"` // nil when method is none or n < 2
	Mean     float64      `json:"mean"`
	N        int          `json:"n"`
}

// AxisTick labels one categorical axis position
type AxisTick struct {
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// Result is the full output of a plot computation
type Result struct {
	Geometries []GroupGeometry `json:"geometries"`
	Ticks      []AxisTick      `json:"ticks"`
	Title      string          `json:"title"`
}
