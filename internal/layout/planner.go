// Package layout turns an ordered list of groups into deterministic
// placement decisions: axis positions, sides, colors and point symbols.
package layout

import (
	"math/rand"

	"cmplot/domain/core"
	"cmplot/domain/plot"
)

// defaultSymbols is the marker pool used when no explicit pointshapes are
// configured; the planner shuffles it once per run with the run seed
var defaultSymbols = []string{
	"circle", "diamond", "cross", "triangle-up",
	"triangle-left", "triangle-right",
	"triangle-down", "pentagon", "hexagon", "star",
	"hexagram", "star-triangle-up",
	"star-square", "star-diamond",
}

// Planner assigns one PlacementPlan per group
type Planner struct {
	opts    plot.Options
	symbols []string
}

// NewPlanner validates the placement policy and fixes the symbol pool
func NewPlanner(opts plot.Options) (*Planner, error) {
	switch opts.Side {
	case plot.SidePositive, plot.SideNegative, plot.SideBoth, plot.SideAlt:
	default:
		return nil, core.NewOptionError("side", string(opts.Side), "pos|neg|both|alt")
	}
	switch opts.Orientation {
	case plot.Horizontal, plot.Vertical:
	default:
		return nil, core.NewOptionError("orientation", string(opts.Orientation), "h|v")
	}

	symbols := opts.PointShapes
	if len(symbols) == 0 {
		symbols = make([]string, len(defaultSymbols))
		copy(symbols, defaultSymbols)
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(symbols), func(i, j int) {
			symbols[i], symbols[j] = symbols[j], symbols[i]
		})
	}
	return &Planner{opts: opts, symbols: symbols}, nil
}

// accumulator carries the fold state while iterating groups in caller
// order: first-appearance indexes for positions, variables and
// superimposition sub-labels. No hidden globals; the same input order
// always reproduces the same plans.
type accumulator struct {
	positions map[string]int
	posOrder  []string
	variables map[string]int
	subLabels map[string]int
}

// Plan assigns placements for every group, in the caller-supplied order.
// The caller must pass all groups at once: color-wheel sizing and position
// assignment need the complete set present.
func (p *Planner) Plan(groups []plot.Group) ([]plot.PlacementPlan, []plot.AxisTick) {
	acc := accumulator{
		positions: make(map[string]int),
		variables: make(map[string]int),
		subLabels: make(map[string]int),
	}

	// the color wheel must be sized before any index is assigned
	for _, g := range groups {
		if _, ok := acc.variables[g.Variable]; !ok {
			acc.variables[g.Variable] = len(acc.variables)
		}
	}
	colorCount := len(groups)
	if p.opts.YColorGroups {
		colorCount = len(acc.variables)
	}
	if p.opts.ColorRange > 0 {
		colorCount = p.opts.ColorRange
	}

	plans := make([]plot.PlacementPlan, len(groups))
	for i, g := range groups {
		posLabel := p.positionLabel(g)
		if _, ok := acc.positions[posLabel]; !ok {
			acc.positions[posLabel] = len(acc.positions)
			acc.posOrder = append(acc.posOrder, posLabel)
		}
		if _, ok := acc.subLabels[g.SubLabel()]; !ok {
			acc.subLabels[g.SubLabel()] = len(acc.subLabels)
		}

		// with ycolorgroups every group of a variable shares that
		// variable's color; otherwise each group advances the wheel
		keyIndex := i
		if p.opts.YColorGroups {
			keyIndex = acc.variables[g.Variable]
		}
		colorIndex := (keyIndex + p.opts.ColorShift) % colorCount

		// alternation advances past each variable boundary, or past each
		// secondary category value when positions are superimposed
		altIndex := keyIndex
		if p.opts.XSuperimposed {
			altIndex = acc.subLabels[g.SubLabel()]
		}
		side := p.resolveSide(altIndex)

		plans[i] = plot.PlacementPlan{
			Position:      float64(acc.positions[posLabel]),
			PositionLabel: posLabel,
			Side:          side,
			ColorIndex:    colorIndex,
			ColorCount:    colorCount,
			Symbol:        p.symbols[colorIndex%len(p.symbols)],
			Superimposed:  p.opts.XSuperimposed,
			PointsOffset:  p.pointsOffset(side),
		}
	}

	ticks := make([]plot.AxisTick, len(acc.posOrder))
	for i, label := range acc.posOrder {
		ticks[i] = plot.AxisTick{Position: float64(i), Label: label}
	}
	return plans, ticks
}

// positionLabel decides which axis slot a group occupies. Superimposed
// plots collapse every group sharing a primary category onto one slot.
func (p *Planner) positionLabel(g plot.Group) string {
	if !p.opts.XSuperimposed {
		return g.Label()
	}
	if len(g.Categories) > 1 {
		return g.Categories[0]
	}
	// single category column: everything shares one unnamed slot
	return ""
}

// resolveSide maps the policy plus alternation index to a concrete side
func (p *Planner) resolveSide(altIndex int) plot.Side {
	switch p.opts.Side {
	case plot.SidePositive:
		return plot.SidePositive
	case plot.SideNegative:
		return plot.SideNegative
	case plot.SideBoth:
		return plot.SideBoth
	}
	even := altIndex%2 == 0
	if p.opts.AltSidesFlip {
		even = !even
	}
	if even {
		return plot.SidePositive
	}
	return plot.SideNegative
}

// pointsOffset places the cloud base opposite the mountain by default,
// over it with pointsoverdens, centered for both-sided mountains
func (p *Planner) pointsOffset(side plot.Side) float64 {
	if side == plot.SideBoth {
		return 0
	}
	offset := -side.Sign() * p.opts.PointsDistance
	if p.opts.PointsOverDens {
		offset = -offset
	}
	return offset
}
