package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"cmplot/adapters/plotly"
	"cmplot/adapters/tabular"
	"cmplot/app"
	"cmplot/domain/plot"
	"cmplot/internal/config"
)

func main() {
	godotenv.Load() // optional .env, env vars win
	cfg := config.Load()

	var (
		file   = flag.String("file", cfg.Data.File, "input data file (.csv or .xlsx)")
		xcol   = flag.String("xcol", strings.Join(cfg.Data.XCols, ","), "comma-separated categorical column(s)")
		ycol   = flag.String("ycol", strings.Join(cfg.Data.YCols, ","), "comma-separated dependent column(s); default: all other numeric columns")
		output = flag.String("o", "", "output file; default stdout")
		format = flag.String("format", "json", "output format: json or html")
		title  = flag.String("title", "", "plot title override")
	)
	opts, resolveOpts := bindOptions(flag.CommandLine, cfg.Plot)
	flag.Parse()
	resolveOpts()

	if *file == "" || *xcol == "" {
		fmt.Fprintln(os.Stderr, "usage: cmplot -file data.csv -xcol Species [-ycol Sepal.Length,...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(*file, splitList(*xcol), splitList(*ycol), *output, *format, *title, *opts); err != nil {
		fmt.Fprintln(os.Stderr, "cmplot:", err)
		os.Exit(1)
	}
}

func run(file string, xcols, ycols []string, output, format, title string, opts plot.Options) error {
	ctx := context.Background()

	reader := tabular.NewDataReader(file)
	groups, err := reader.Groups(ctx, xcols, ycols)
	if err != nil {
		return err
	}

	service, err := app.NewPlotService(opts)
	if err != nil {
		return err
	}
	result, err := service.Compute(ctx, groups)
	if err != nil {
		return err
	}
	if title == "" {
		title = tabular.DefaultTitle(xcols, variableNames(groups))
	}
	result.Title = title

	builder := plotly.NewFigureBuilder()
	fig, err := builder.Figure(result, opts)
	if err != nil {
		return err
	}

	var payload []byte
	switch format {
	case "html":
		payload, err = plotly.HTMLPage(fig, title)
	case "json":
		payload, err = builder.Render(result, opts)
	default:
		return fmt.Errorf("unknown format %q, use json or html", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}
	return os.WriteFile(output, payload, 0o644)
}

// bindOptions registers a flag for every plot option, starting from the
// environment-resolved defaults. The returned func resolves the
// string-typed flags into their enum fields and must run after parsing.
func bindOptions(fs *flag.FlagSet, opts plot.Options) (*plot.Options, func()) {
	var orientation, side, inf, span, shapes string

	fs.StringVar(&orientation, "orientation", string(opts.Orientation), "plot orientation: h or v")
	fs.BoolVar(&opts.XSuperimposed, "xsuperimposed", opts.XSuperimposed, "superimpose category positions")
	fs.StringVar(&side, "side", string(opts.Side), "density side: pos, neg, both or alt")
	fs.BoolVar(&opts.AltSidesFlip, "altsidesflip", opts.AltSidesFlip, "flip the side alternation order")
	fs.BoolVar(&opts.YColorGroups, "ycolorgroups", opts.YColorGroups, "color by variable instead of by group")
	fs.StringVar(&inf, "inf", string(opts.Inference), "inference band: hdi, ci, iqr or none")
	fs.Float64Var(&opts.ConfLevel, "conf-level", opts.ConfLevel, "confidence level / credible mass")
	fs.IntVar(&opts.HDIIter, "hdi-iter", opts.HDIIter, "posterior draws for hdi")
	fs.BoolVar(&opts.ShowBoxplot, "showboxplot", opts.ShowBoxplot, "draw the mini boxplot")
	fs.BoolVar(&opts.MarkOutliers, "markoutliers", opts.MarkOutliers, "mark Tukey outliers")
	fs.BoolVar(&opts.ShowPoints, "showpoints", opts.ShowPoints, "draw the raw point cloud")
	fs.BoolVar(&opts.PointsOverDens, "pointsoverdens", opts.PointsOverDens, "overlay points on the density side")
	fs.Float64Var(&opts.PointsOpacity, "pointsopacity", opts.PointsOpacity, "point opacity in [0,1]")
	fs.StringVar(&shapes, "pointshapes", strings.Join(opts.PointShapes, ","), "comma-separated marker symbols")
	fs.Float64Var(&opts.PointsDistance, "pointsdistance", opts.PointsDistance, "cloud distance from the curve base in [0,1]")
	fs.IntVar(&opts.PointsMaxDisplayed, "pointsmaxdisplayed", opts.PointsMaxDisplayed, "max displayed points, 0 = unlimited")
	fs.IntVar(&opts.ColorRange, "colorrange", opts.ColorRange, "total color wheel size when joining plots")
	fs.IntVar(&opts.ColorShift, "colorshift", opts.ColorShift, "colors to skip when joining plots")
	fs.StringVar(&span, "spanmode", string(opts.SpanMode), "density span: soft or hard")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for reproducible output")

	resolve := func() {
		opts.Orientation = plot.Orientation(orientation)
		opts.Side = plot.Side(side)
		opts.Inference = plot.InferenceMethod(inf)
		opts.SpanMode = plot.SpanMode(span)
		opts.PointShapes = splitList(shapes)
	}
	return &opts, resolve
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
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
