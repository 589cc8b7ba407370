package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"cmplot/adapters/plotly"
	"cmplot/adapters/tabular"
	"cmplot/app"
	"cmplot/domain/core"
	"cmplot/domain/plot"
	"cmplot/internal"
	"cmplot/internal/config"
)

var (
	log = internal.DefaultLogger
	cfg *config.Config
)

func main() {
	godotenv.Load() // optional .env, env vars win
	cfg = config.Load()
	port := cfg.Server.Port

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Get("/", handleIndex)
	router.Post("/plot", handlePlot)

	log.Info("cmplotweb listening on :%s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Error("server failed: %v", err)
		os.Exit(1)
	}
}

// handleIndex serves the upload form
func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// handlePlot renders an uploaded CSV/XLSX as a cloudy mountain plot page
func handlePlot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	upload, header, err := r.FormFile("data")
	if err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("missing data file: %w", err))
		return
	}
	defer upload.Close()

	// the reader picks its parser from the extension, so keep it
	tmp, err := os.CreateTemp("", "cmplot-*"+filepath.Ext(header.Filename))
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, upload); err != nil {
		tmp.Close()
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	tmp.Close()

	opts := optionsFromForm(r)
	xcols := splitForm(r.FormValue("xcol"))
	ycols := splitForm(r.FormValue("ycol"))

	reader := tabular.NewDataReader(tmp.Name())
	groups, err := reader.Groups(r.Context(), xcols, ycols)
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}

	service, err := app.NewPlotService(opts)
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	result, err := service.Compute(r.Context(), groups)
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	result.Title = tabular.DefaultTitle(xcols, variableNames(groups))

	builder := plotly.NewFigureBuilder()
	fig, err := builder.Figure(result, opts)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	page, err := plotly.HTMLPage(fig, result.Title)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// optionsFromForm overlays submitted fields on the environment-resolved
// defaults; anything invalid surfaces through Options.Validate in the
// service
func optionsFromForm(r *http.Request) plot.Options {
	opts := cfg.Plot
	if v := r.FormValue("orientation"); v != "" {
		opts.Orientation = plot.Orientation(v)
	}
	if v := r.FormValue("side"); v != "" {
		opts.Side = plot.Side(v)
	}
	if v := r.FormValue("inf"); v != "" {
		opts.Inference = plot.InferenceMethod(v)
	}
	if r.FormValue("xsuperimposed") == "on" {
		opts.XSuperimposed = true
	}
	return opts
}

func variableNames(groups []plot.Group) []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range groups {
		if !seen[g.Variable] {
			seen[g.Variable] = true
			names = append(names, g.Variable)
		}
	}
	return names
}

func splitForm(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}

func statusFor(err error) int {
	if core.IsOptionError(err) || core.IsRangeError(err) || core.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func httpError(w http.ResponseWriter, status int, err error) {
	log.Warn("request failed: %v", err)
	http.Error(w, err.Error(), status)
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>cmplot</title></head>
<body>
<h1>Cloudy mountain plot</h1>
<form action="/plot" method="post" enctype="multipart/form-data">
  <p><input type="file" name="data" accept=".csv,.xlsx" required></p>
  <p><label>x column(s): <input name="xcol" required placeholder="Species"></label></p>
  <p><label>y column(s): <input name="ycol" placeholder="all numeric columns"></label></p>
  <p>
    <label>orientation <select name="orientation"><option>h</option><option>v</option></select></label>
    <label>side <select name="side"><option>alt</option><option>pos</option><option>neg</option><option>both</option></select></label>
    <label>inference <select name="inf"><option>hdi</option><option>ci</option><option>iqr</option><option>none</option></select></label>
    <label><input type="checkbox" name="xsuperimposed"> superimpose</label>
  </p>
  <p><button type="submit">Plot</button></p>
</form>
</body>
</html>
`
