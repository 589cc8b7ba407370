// Package geometry places the statistical artifacts of a group into the
// shared 2-D plot space according to its placement plan.
package geometry

import (
	"cmplot/domain/plot"
)

// maxHalfWidth is the axis-unit half-width a density peak maps to; all
// other widths are fractions of the slot this reserves
const maxHalfWidth = 0.4

// boxHalfWidth is the half-width of the mini boxplot
const boxHalfWidth = 0.1

// bandHalfWidth is the half-width of the inference band
const bandHalfWidth = 0.2

// Assembler merges per-group statistics with placement into geometry
type Assembler struct {
	opts plot.Options
}

// NewAssembler creates an assembler honoring the display toggles and
// orientation of the options
func NewAssembler(opts plot.Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble produces the final GroupGeometry for one group. A nil interval
// (method none, or too few observations) simply yields no band.
func (a *Assembler) Assemble(g plot.Group, plan plot.PlacementPlan, st plot.GroupStats, cloud []plot.CloudPoint) plot.GroupGeometry {
	geom := plot.GroupGeometry{
		Group:          g,
		Plan:           plan,
		DensityPolygon: a.densityPolygon(st.Density, plan),
		Stats:          st,
	}

	if a.opts.ShowPoints {
		geom.Points = a.cloudPoints(cloud, plan)
	}
	if a.opts.ShowBoxplot {
		a.boxGeometry(&geom, st.Box, plan)
	}
	if a.opts.MarkOutliers {
		geom.Outliers = make([]plot.Point, len(st.Box.Outliers))
		for i, v := range st.Box.Outliers {
			geom.Outliers[i] = a.point(plan.Position, v)
		}
	}
	if st.Interval != nil {
		geom.Band = a.rect(
			plan.Position-bandHalfWidth, plan.Position+bandHalfWidth,
			st.Interval.Low, st.Interval.High,
		)
	}
	return geom
}

// densityPolygon maps the curve to a closed filled outline: peak density
// reaches maxHalfWidth toward the planned side, both-sided mountains are
// mirrored, one-sided ones close along the baseline.
func (a *Assembler) densityPolygon(curve plot.DensityCurve, plan plot.PlacementPlan) []plot.Point {
	scale := 0.0
	if curve.Peak > 0 {
		scale = maxHalfWidth / curve.Peak
	}
	n := len(curve.Points)

	if plan.Side == plot.SideBoth {
		poly := make([]plot.Point, 0, 2*n)
		for _, dp := range curve.Points {
			poly = append(poly, a.point(plan.Position+dp.Density*scale, dp.Value))
		}
		for i := n - 1; i >= 0; i-- {
			dp := curve.Points[i]
			poly = append(poly, a.point(plan.Position-dp.Density*scale, dp.Value))
		}
		return poly
	}

	sign := plan.Side.Sign()
	poly := make([]plot.Point, 0, n+2)
	poly = append(poly, a.point(plan.Position, curve.Points[0].Value))
	for _, dp := range curve.Points {
		poly = append(poly, a.point(plan.Position+sign*dp.Density*scale, dp.Value))
	}
	poly = append(poly, a.point(plan.Position, curve.Points[n-1].Value))
	return poly
}

// cloudPoints shifts the jittered cloud to its planned base beside (or
// over) the mountain
func (a *Assembler) cloudPoints(cloud []plot.CloudPoint, plan plot.PlacementPlan) []plot.Point {
	points := make([]plot.Point, len(cloud))
	for i, cp := range cloud {
		cat := plan.Position + maxHalfWidth*(plan.PointsOffset+cp.Offset)
		points[i] = a.point(cat, cp.Value)
	}
	return points
}

// boxGeometry adds the quartile box, median line and whiskers
func (a *Assembler) boxGeometry(geom *plot.GroupGeometry, box plot.BoxSummary, plan plot.PlacementPlan) {
	pos := plan.Position
	geom.Box = a.rect(pos-boxHalfWidth, pos+boxHalfWidth, box.Q1, box.Q3)
	geom.Median = &plot.Segment{
		From: a.point(pos-boxHalfWidth, box.Median),
		To:   a.point(pos+boxHalfWidth, box.Median),
	}
	geom.Whiskers = []plot.Segment{
		{From: a.point(pos, box.Q1), To: a.point(pos, box.WhiskerLow)},
		{From: a.point(pos, box.Q3), To: a.point(pos, box.WhiskerHigh)},
	}
}

// point maps (categorical coordinate, value coordinate) into plot space
// per the orientation: horizontal plots carry values on X
func (a *Assembler) point(cat, val float64) plot.Point {
	if a.opts.Orientation == plot.Vertical {
		return plot.Point{X: cat, Y: val}
	}
	return plot.Point{X: val, Y: cat}
}

// rect builds an orientation-aware rectangle from categorical and value
// extents
func (a *Assembler) rect(catMin, catMax, valMin, valMax float64) *plot.Rect {
	if valMin > valMax {
		valMin, valMax = valMax, valMin
	}
	return &plot.Rect{
		Min: a.point(catMin, valMin),
		Max: a.point(catMax, valMax),
	}
}
