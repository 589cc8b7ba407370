package plot

import (
	"cmplot/domain/core"
)

// Options is the complete configuration surface of a plot computation.
// Zero values are not meaningful defaults; start from DefaultOptions.
type Options struct {
	Orientation   Orientation `json:"orientation"`
	XSuperimposed bool        `json:"xsuperimposed"` // collapse category positions onto shared slots
	Side          Side        `json:"side"`
	AltSidesFlip  bool        `json:"altsidesflip"` // flip the pos/neg alternation order
	YColorGroups  bool        `json:"ycolorgroups"` // color keys off the variable, not the category

	Inference InferenceMethod `json:"inf"`
	ConfLevel float64         `json:"conf_level"` // confidence level for ci, credible mass for hdi
	HDIIter   int             `json:"hdi_iter"`   // posterior simulation draws for hdi

	ShowBoxplot  bool `json:"showboxplot"`
	MarkOutliers bool `json:"markoutliers"`

	ShowPoints         bool     `json:"showpoints"`
	PointsOverDens     bool     `json:"pointsoverdens"` // overlay the cloud on the density side
	PointsOpacity      float64  `json:"pointsopacity"`
	PointShapes        []string `json:"pointshapes,omitempty"` // explicit marker symbols, cycled
	PointsDistance     float64  `json:"pointsdistance"`        // cloud base distance from the curve base
	PointsMaxDisplayed int      `json:"pointsmaxdisplayed"`    // 0 = unlimited

	ColorRange int `json:"colorrange,omitempty"` // total color wheel size when joining plots
	ColorShift int `json:"colorshift"`           // colors to skip when joining plots

	SpanMode SpanMode `json:"spanmode"`

	// Seed drives symbol shuffling, point subsampling and the hdi posterior
	// simulation. The same seed and group order reproduce the plot exactly.
	Seed int64 `json:"seed"`
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		Orientation:        Horizontal,
		Side:               SideAlt,
		YColorGroups:       true,
		Inference:          InferenceHDI,
		ConfLevel:          0.95,
		HDIIter:            10000,
		ShowBoxplot:        true,
		MarkOutliers:       true,
		ShowPoints:         true,
		PointsOpacity:      0.4,
		PointsDistance:     0.6,
		PointsMaxDisplayed: 0,
		SpanMode:           SpanSoft,
		Seed:               1,
	}
}

// Validate checks every option before any per-group computation starts.
// The first violation is returned; a valid Options never fails later for
// configuration reasons.
func (o Options) Validate() error {
	switch o.Orientation {
	case Horizontal, Vertical:
	default:
		return core.NewOptionError("orientation", string(o.Orientation), "h|v")
	}
	switch o.Side {
	case SidePositive, SideNegative, SideBoth, SideAlt:
	default:
		return core.NewOptionError("side", string(o.Side), "pos|neg|both|alt")
	}
	switch o.Inference {
	case InferenceHDI, InferenceCI, InferenceIQR, InferenceNone:
	default:
		return core.NewOptionError("inf", string(o.Inference), "hdi|ci|iqr|none")
	}
	switch o.SpanMode {
	case SpanSoft, SpanHard:
	default:
		return core.NewOptionError("spanmode", string(o.SpanMode), "soft|hard")
	}
	if o.Inference != InferenceNone {
		if o.ConfLevel <= 0 || o.ConfLevel >= 1 {
			return core.NewRangeError("conf_level", o.ConfLevel, "(0,1)")
		}
	}
	if o.Inference == InferenceHDI && o.HDIIter <= 0 {
		return core.NewRangeError("hdi_iter", o.HDIIter, "(0,inf)")
	}
	if o.PointsOpacity < 0 || o.PointsOpacity > 1 {
		return core.NewRangeError("pointsopacity", o.PointsOpacity, "[0,1]")
	}
	if o.PointsDistance < 0 || o.PointsDistance > 1 {
		return core.NewRangeError("pointsdistance", o.PointsDistance, "[0,1]")
	}
	if o.PointsMaxDisplayed < 0 {
		return core.NewRangeError("pointsmaxdisplayed", o.PointsMaxDisplayed, "[0,inf)")
	}
	if o.ColorRange < 0 {
		return core.NewRangeError("colorrange", o.ColorRange, "[0,inf)")
	}
	if o.ColorShift < 0 {
		return core.NewRangeError("colorshift", o.ColorShift, "[0,inf)")
	}
	return nil
}
