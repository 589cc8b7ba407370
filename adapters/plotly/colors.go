package plotly

import "fmt"

// The color wheel spreads hues across the hsla spectrum, stopping short
// of wrapping back to red; crowded wheels get a slightly wider span.
const (
	hueStart     = 0
	hueEnd       = 330
	hueEndWide   = 350
	wideAtColors = 12
)

// wheel generates one hsla string per hue step with the given saturation,
// lightness and alpha
func wheel(count int, format string) []string {
	if count < 1 {
		count = 1
	}
	end := hueEnd
	if count > wideAtColors {
		end = hueEndWide
	}
	step := end / count
	// more colors than hue degrees: walk one degree at a time and let
	// pick's modulo cycle the wheel
	if step < 1 {
		step = 1
	}
	var colors []string
	for hue := hueStart; hue <= end; hue += step {
		colors = append(colors, fmt.Sprintf(format, hue))
	}
	return colors
}

// palette bundles every color role a group needs, all derived from the
// same hue so a group's elements read as one distribution
type palette struct {
	fill        []string // density polygon fill
	line        []string // density outline, mean line
	markerFill  []string // cloud point fill
	markerLine  []string // cloud point outline
	band        []string // inference band fill
	boxLine     []string // mini boxplot lines
	outlier     []string // outlier marks
}

func newPalette(count int) palette {
	return palette{
		fill:       wheel(count, "hsla(%d, 50%%, 50%%, 0.3)"),
		line:       wheel(count, "hsla(%d, 20%%, 20%%, 0.8)"),
		markerFill: wheel(count, "hsla(%d, 70%%, 70%%, 1)"),
		markerLine: wheel(count, "hsla(%d, 20%%, 20%%, 0.4)"),
		band:       wheel(count, "hsla(%d, 45%%, 45%%, 0.4)"),
		boxLine:    wheel(count, "hsla(%d, 30%%, 30%%, 1)"),
		outlier:    wheel(count, "hsla(%d, 50%%, 50%%, 0.9)"),
	}
}

// pick cycles a color role by index
func pick(colors []string, i int) string {
	return colors[i%len(colors)]
}
