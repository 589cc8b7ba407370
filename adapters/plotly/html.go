package plotly

import (
	"bytes"
	"encoding/json"
	"html/template"
)

// pageTemplate embeds a figure JSON into a self-contained page rendered
// by the plotly CDN bundle
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body>
<div id="plot" style="width:100%;height:95vh;"></div>
<script>
var fig = {{.FigureJSON}};
Plotly.newPlot("plot", fig.data, fig.layout, {responsive: true});
</script>
</body>
</html>
`))

// HTMLPage renders a figure as a standalone HTML document
func HTMLPage(fig *Figure, title string) ([]byte, error) {
	raw, err := json.Marshal(fig)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title      string
		FigureJSON template.JS
	}{Title: title, FigureJSON: template.JS(raw)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
