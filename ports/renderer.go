package ports

import (
	"cmplot/domain/plot"
)

// RendererPort translates computed geometry into a charting library's
// object model. The core hands over plot.Result and nothing else; the
// renderer must not recompute statistics.
type RendererPort interface {
	// Render builds the renderer-specific document (traces, layout, ...)
	// for a computed result
	Render(result *plot.Result, opts plot.Options) ([]byte, error)
}
