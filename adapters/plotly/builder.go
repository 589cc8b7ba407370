package plotly

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"cmplot/domain/plot"
	"cmplot/ports"
)

var _ ports.RendererPort = (*FigureBuilder)(nil)

// FigureBuilder renders computed geometry as a plotly figure document
type FigureBuilder struct{}

// NewFigureBuilder creates a figure builder
func NewFigureBuilder() *FigureBuilder {
	return &FigureBuilder{}
}

// Render implements ports.RendererPort: one figure JSON document from a
// computed result
func (b *FigureBuilder) Render(result *plot.Result, opts plot.Options) ([]byte, error) {
	fig, err := b.Figure(result, opts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fig)
}

// Figure builds the trace list and layout for a computed result
func (b *FigureBuilder) Figure(result *plot.Result, opts plot.Options) (*Figure, error) {
	colorCount := 1
	if len(result.Geometries) > 0 {
		colorCount = result.Geometries[0].Plan.ColorCount
	}
	colors := newPalette(colorCount)

	// a short per-figure token keeps traces distinguishable when several
	// figures are joined into one document
	token := uuid.NewString()[:8]

	var traces []Trace
	legendSeen := make(map[string]bool)
	for _, geom := range result.Geometries {
		label, legendGroup := legendLabel(geom, opts)
		showLegend := !legendSeen[label]
		legendSeen[label] = true

		traces = append(traces, b.densityTrace(geom, colors, label, legendGroup, showLegend, token))
		if len(geom.Points) > 0 {
			traces = append(traces, b.pointsTrace(geom, colors, legendGroup, opts, token))
		}
		if geom.Box != nil {
			traces = append(traces, b.boxTrace(geom, colors, legendGroup, token))
		}
		if len(geom.Outliers) > 0 {
			traces = append(traces, b.outlierTrace(geom, colors, legendGroup, token))
		}
		if geom.Band != nil {
			traces = append(traces, b.bandTrace(geom, colors, legendGroup, token))
		}
	}

	return &Figure{Data: traces, Layout: b.layout(result, opts)}, nil
}

// densityTrace is the filled mountain outline
func (b *FigureBuilder) densityTrace(geom plot.GroupGeometry, colors palette, label, legendGroup string, showLegend bool, token string) Trace {
	i := geom.Plan.ColorIndex
	x, y := coords(geom.DensityPolygon)
	return Trace{
		Type:        "scatter",
		Mode:        "lines",
		Name:        label,
		X:           x,
		Y:           y,
		Fill:        "toself",
		FillColor:   pick(colors.fill, i),
		Line:        &Line{Width: 1, Color: pick(colors.line, i)},
		LegendGroup: legendGroup,
		ShowLegend:  showLegend,
		HoverInfo:   "name",
		Meta:        token,
	}
}

// pointsTrace is the jittered cloud of raw observations
func (b *FigureBuilder) pointsTrace(geom plot.GroupGeometry, colors palette, legendGroup string, opts plot.Options, token string) Trace {
	i := geom.Plan.ColorIndex
	x, y := coords(geom.Points)
	return Trace{
		Type: "scatter",
		Mode: "markers",
		X:    x,
		Y:    y,
		Marker: &Marker{
			Symbol:  geom.Plan.Symbol,
			Size:    9,
			Opacity: opts.PointsOpacity,
			Color:   pick(colors.markerFill, i),
			Line:    &Line{Width: 0.5, Color: pick(colors.markerLine, i)},
		},
		LegendGroup: legendGroup,
		ShowLegend:  false,
		HoverInfo:   "x+y",
		Meta:        token,
	}
}

// boxTrace draws the quartile box, median line and whiskers as one line
// trace with null gaps between the pieces
func (b *FigureBuilder) boxTrace(geom plot.GroupGeometry, colors palette, legendGroup string, token string) Trace {
	var x, y []*float64
	appendRect(&x, &y, geom.Box)
	if geom.Median != nil {
		appendSegment(&x, &y, *geom.Median)
	}
	for _, w := range geom.Whiskers {
		appendSegment(&x, &y, w)
	}
	return Trace{
		Type:        "scatter",
		Mode:        "lines",
		X:           x,
		Y:           y,
		Line:        &Line{Width: 0.5, Color: pick(colors.boxLine, geom.Plan.ColorIndex)},
		LegendGroup: legendGroup,
		ShowLegend:  false,
		HoverInfo:   "none",
		Meta:        token,
	}
}

// outlierTrace marks the Tukey outliers beside the box
func (b *FigureBuilder) outlierTrace(geom plot.GroupGeometry, colors palette, legendGroup string, token string) Trace {
	i := geom.Plan.ColorIndex
	x, y := coords(geom.Outliers)
	return Trace{
		Type: "scatter",
		Mode: "markers",
		X:    x,
		Y:    y,
		Marker: &Marker{
			Symbol: geom.Plan.Symbol,
			Size:   11,
			Color:  pick(colors.outlier, i),
			Line:   &Line{Width: 0.5, Color: pick(colors.markerLine, i)},
		},
		LegendGroup: legendGroup,
		ShowLegend:  false,
		HoverInfo:   "x+y",
		Meta:        token,
	}
}

// bandTrace is the shaded inference interval
func (b *FigureBuilder) bandTrace(geom plot.GroupGeometry, colors palette, legendGroup string, token string) Trace {
	var x, y []*float64
	appendRect(&x, &y, geom.Band)
	return Trace{
		Type:        "scatter",
		Mode:        "lines",
		X:           x,
		Y:           y,
		Fill:        "toself",
		FillColor:   pick(colors.band, geom.Plan.ColorIndex),
		Line:        &Line{Width: 0},
		LegendGroup: legendGroup,
		ShowLegend:  false,
		HoverInfo:   "none",
		Meta:        token,
	}
}

// layout mirrors the original chart framing: light paper, white plot
// area, centered title, grid only along the value axis
func (b *FigureBuilder) layout(result *plot.Result, opts plot.Options) Layout {
	tickVals := make([]float64, len(result.Ticks))
	tickText := make([]string, len(result.Ticks))
	for i, tk := range result.Ticks {
		tickVals[i] = tk.Position
		tickText[i] = tk.Label
	}
	variables := distinctVariables(result)

	valueAxis := Axis{
		Title:         strings.Join(variables, ", "),
		ShowLine:      true,
		ShowGrid:      true,
		ZeroLine:      true,
		ShowTickLabel: true,
	}
	categoryAxis := Axis{
		ShowLine:      true,
		ZeroLine:      true,
		ShowTickLabel: true,
		TickVals:      tickVals,
		TickText:      tickText,
	}

	layout := Layout{
		Title:        result.Title,
		TitleX:       0.5,
		PaperBGColor: "#eeeeff",
		PlotBGColor:  "#ffffff",
		ShowLegend:   true,
		Legend:       Legend{X: 1.1, Y: 1.1, XAnchor: "right"},
		Margin:       Margin{L: 80, R: 10, T: 10, B: 40},
	}
	if opts.Orientation == plot.Vertical {
		layout.XAxis = categoryAxis
		layout.YAxis = valueAxis
	} else {
		layout.XAxis = valueAxis
		layout.YAxis = categoryAxis
	}
	return layout
}

// legendLabel matches the original legend behavior: one entry per
// variable when colors key off variables, one per group otherwise
func legendLabel(geom plot.GroupGeometry, opts plot.Options) (label, legendGroup string) {
	if opts.YColorGroups {
		return geom.Group.Variable, geom.Group.Variable
	}
	return geom.Group.Variable + " " + geom.Group.Label(), geom.Group.Label()
}

func distinctVariables(result *plot.Result) []string {
	seen := make(map[string]bool)
	var variables []string
	for _, g := range result.Geometries {
		if !seen[g.Group.Variable] {
			seen[g.Group.Variable] = true
			variables = append(variables, g.Group.Variable)
		}
	}
	return variables
}

func fp(v float64) *float64 { return &v }

func coords(points []plot.Point) (x, y []*float64) {
	x = make([]*float64, len(points))
	y = make([]*float64, len(points))
	for i, p := range points {
		x[i] = fp(p.X)
		y[i] = fp(p.Y)
	}
	return x, y
}

// appendRect adds a closed rectangle outline followed by a null gap
func appendRect(x, y *[]*float64, r *plot.Rect) {
	*x = append(*x, fp(r.Min.X), fp(r.Max.X), fp(r.Max.X), fp(r.Min.X), fp(r.Min.X), nil)
	*y = append(*y, fp(r.Min.Y), fp(r.Min.Y), fp(r.Max.Y), fp(r.Max.Y), fp(r.Min.Y), nil)
}

// appendSegment adds a line segment followed by a null gap
func appendSegment(x, y *[]*float64, s plot.Segment) {
	*x = append(*x, fp(s.From.X), fp(s.To.X), nil)
	*y = append(*y, fp(s.From.Y), fp(s.To.Y), nil)
}
