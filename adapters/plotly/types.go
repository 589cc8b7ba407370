// Package plotly translates computed plot geometry into plotly-style
// trace and layout documents. It consumes plot.Result only and never
// recomputes statistics.
package plotly

// Figure is the complete document handed to a plotly-compatible frontend
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single plotly trace. Coordinates use pointers so a nil
// renders as null, which plotly treats as a line gap.
type Trace struct {
	Type        string     `json:"type"`
	Mode        string     `json:"mode,omitempty"`
	Name        string     `json:"name,omitempty"`
	X           []*float64 `json:"x"`
	Y           []*float64 `json:"y"`
	Fill        string     `json:"fill,omitempty"`
	FillColor   string     `json:"fillcolor,omitempty"`
	Line        *Line      `json:"line,omitempty"`
	Marker      *Marker    `json:"marker,omitempty"`
	Opacity     float64    `json:"opacity,omitempty"`
	LegendGroup string     `json:"legendgroup,omitempty"`
	ShowLegend  bool       `json:"showlegend"`
	HoverInfo   string     `json:"hoverinfo,omitempty"`
	Meta        string     `json:"meta,omitempty"` // figure token, keeps joined plots distinguishable
}

// Line styles a trace outline
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color,omitempty"`
}

// Marker styles trace points
type Marker struct {
	Symbol  string  `json:"symbol,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Color   string  `json:"color,omitempty"`
	Line    *Line   `json:"line,omitempty"`
}

// Axis configures one layout axis
type Axis struct {
	Title         string    `json:"title,omitempty"`
	ShowLine      bool      `json:"showline"`
	ShowGrid      bool      `json:"showgrid"`
	ZeroLine      bool      `json:"zeroline"`
	ShowTickLabel bool      `json:"showticklabels"`
	TickVals      []float64 `json:"tickvals,omitempty"`
	TickText      []string  `json:"ticktext,omitempty"`
}

// Legend configures the layout legend placement
type Legend struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	XAnchor string  `json:"xanchor,omitempty"`
}

// Margin is the plot margin in pixels
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Layout is the chart-wide configuration
type Layout struct {
	Title         string `json:"title,omitempty"`
	TitleX        float64 `json:"title_x"`
	PaperBGColor  string `json:"paper_bgcolor"`
	PlotBGColor   string `json:"plot_bgcolor"`
	ShowLegend    bool   `json:"showlegend"`
	Legend        Legend `json:"legend"`
	Margin        Margin `json:"margin"`
	XAxis         Axis   `json:"xaxis"`
	YAxis         Axis   `json:"yaxis"`
}
