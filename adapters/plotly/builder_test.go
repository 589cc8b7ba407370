package plotly

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"cmplot/app"
	"cmplot/domain/plot"
)

func computedResult(t *testing.T, opts plot.Options) *plot.Result {
	t.Helper()
	a, err := plot.NewSample([]float64{1, 2, 2, 3, 3, 3, 4, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	b, err := plot.NewSample([]float64{2, 3, 3, 4, 4, 5, 5, 20})
	if err != nil {
		t.Fatal(err)
	}
	service, err := app.NewPlotService(opts)
	if err != nil {
		t.Fatal(err)
	}
	result, err := service.Compute(context.Background(), []plot.Group{
		{Categories: []string{"setosa"}, Variable: "len", Sample: a},
		{Categories: []string{"virginica"}, Variable: "len", Sample: b},
	})
	if err != nil {
		t.Fatal(err)
	}
	result.Title = "Species ~ len"
	return result
}

func TestRender_ValidJSON(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.Inference = plot.InferenceCI
	raw, err := NewFigureBuilder().Render(computedResult(t, opts), opts)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Data   []map[string]any `json:"data"`
		Layout map[string]any   `json:"layout"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("render produced invalid JSON: %v", err)
	}
	if len(doc.Data) == 0 {
		t.Fatal("no traces in figure")
	}
	if doc.Layout["title"] != "Species ~ len" {
		t.Errorf("layout title = %v", doc.Layout["title"])
	}
}

func TestFigure_LegendShownOncePerLabel(t *testing.T) {
	opts := plot.DefaultOptions() // ycolorgroups: both groups share "len"
	fig, err := NewFigureBuilder().Figure(computedResult(t, opts), opts)
	if err != nil {
		t.Fatal(err)
	}
	var shown int
	for _, tr := range fig.Data {
		if tr.ShowLegend {
			shown++
			if tr.Name != "len" {
				t.Errorf("legend entry name = %q, want %q", tr.Name, "len")
			}
		}
	}
	if shown != 1 {
		t.Errorf("legend entries = %d, want 1 (shared variable)", shown)
	}
}

func TestFigure_TracesPerGroup(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.Inference = plot.InferenceCI
	fig, err := NewFigureBuilder().Figure(computedResult(t, opts), opts)
	if err != nil {
		t.Fatal(err)
	}
	// group 1: density + points + box + band; group 2 adds an outlier trace
	if len(fig.Data) != 9 {
		t.Errorf("got %d traces, want 9", len(fig.Data))
	}
	modes := map[string]int{}
	for _, tr := range fig.Data {
		modes[tr.Mode]++
	}
	if modes["markers"] != 3 {
		t.Errorf("marker traces = %d, want 3 (two clouds, one outlier)", modes["markers"])
	}
}

func TestFigure_BoxTraceHasNullGaps(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.Inference = plot.InferenceNone
	opts.ShowPoints = false
	fig, err := NewFigureBuilder().Figure(computedResult(t, opts), opts)
	if err != nil {
		t.Fatal(err)
	}
	// with points and band off: density then box per group
	if len(fig.Data) < 2 {
		t.Fatalf("got %d traces", len(fig.Data))
	}
	box := fig.Data[1]
	var gaps int
	for _, v := range box.X {
		if v == nil {
			gaps++
		}
	}
	// rectangle + median + two whiskers, one gap each
	if gaps != 4 {
		t.Errorf("null gaps = %d, want 4", gaps)
	}
}

func TestFigure_OrientationPicksCategoryAxis(t *testing.T) {
	opts := plot.DefaultOptions()
	result := computedResult(t, opts)

	fig, err := NewFigureBuilder().Figure(result, opts)
	if err != nil {
		t.Fatal(err)
	}
	// horizontal: categories run along Y
	if len(fig.Layout.YAxis.TickText) != 2 {
		t.Errorf("horizontal y tick labels = %v", fig.Layout.YAxis.TickText)
	}
	if len(fig.Layout.XAxis.TickText) != 0 {
		t.Errorf("horizontal x tick labels = %v", fig.Layout.XAxis.TickText)
	}

	opts.Orientation = plot.Vertical
	vresult := computedResult(t, opts)
	vfig, err := NewFigureBuilder().Figure(vresult, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(vfig.Layout.XAxis.TickText) != 2 {
		t.Errorf("vertical x tick labels = %v", vfig.Layout.XAxis.TickText)
	}
}

func TestHTMLPage_EmbedsFigure(t *testing.T) {
	opts := plot.DefaultOptions()
	fig, err := NewFigureBuilder().Figure(computedResult(t, opts), opts)
	if err != nil {
		t.Fatal(err)
	}
	page, err := HTMLPage(fig, "Species ~ len")
	if err != nil {
		t.Fatal(err)
	}
	html := string(page)
	for _, want := range []string{"<html", "Plotly.newPlot", "Species ~ len"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestWheel_MoreColorsThanHues(t *testing.T) {
	// counts beyond the hue span must still terminate; pick cycles the
	// shorter wheel via its modulo
	colors := wheel(400, "hsla(%d, 50%%, 50%%, 0.4)")
	if len(colors) == 0 {
		t.Fatal("no colors generated")
	}
	if len(colors) > 351 {
		t.Fatalf("wheel larger than the hue span: %d", len(colors))
	}
	if got := pick(colors, 399); got == "" {
		t.Error("pick must cycle an oversized index onto the wheel")
	}
}

func TestWheel_ColorCount(t *testing.T) {
	colors := wheel(4, "hsla(%d, 50%%, 50%%, 0.4)")
	if len(colors) != 4 {
		t.Fatalf("got %d colors, want 4", len(colors))
	}
	seen := map[string]bool{}
	for _, c := range colors {
		if seen[c] {
			t.Errorf("duplicate color %q", c)
		}
		seen[c] = true
		if !strings.HasPrefix(c, "hsla(") {
			t.Errorf("unexpected format %q", c)
		}
	}
}
