// Package config reads the process environment into the application
// configuration. Environment variables give deployment-level defaults;
// flags and form fields still override them per invocation.
package config

import (
	"os"
	"strconv"
	"strings"

	"cmplot/domain/plot"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Plot   plot.Options
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds default data source settings
type DataConfig struct {
	File  string // default input file for the CLI
	XCols []string
	YCols []string
}

// Load reads configuration from environment variables. Plot options start
// from the documented defaults; only CMPLOT_-prefixed variables override
// them. Validation stays with Options.Validate so env and flag values fail
// the same way.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			File:  getEnvOrDefault("CMPLOT_FILE", ""),
			XCols: splitEnvList(os.Getenv("CMPLOT_XCOL")),
			YCols: splitEnvList(os.Getenv("CMPLOT_YCOL")),
		},
		Plot: loadPlotOptions(),
	}
}

func loadPlotOptions() plot.Options {
	opts := plot.DefaultOptions()

	if v := os.Getenv("CMPLOT_ORIENTATION"); v != "" {
		opts.Orientation = plot.Orientation(v)
	}
	if v := os.Getenv("CMPLOT_SIDE"); v != "" {
		opts.Side = plot.Side(v)
	}
	if v := os.Getenv("CMPLOT_INF"); v != "" {
		opts.Inference = plot.InferenceMethod(v)
	}
	if v := os.Getenv("CMPLOT_SPANMODE"); v != "" {
		opts.SpanMode = plot.SpanMode(v)
	}
	opts.XSuperimposed = getEnvBoolOrDefault("CMPLOT_XSUPERIMPOSED", opts.XSuperimposed)
	opts.AltSidesFlip = getEnvBoolOrDefault("CMPLOT_ALTSIDESFLIP", opts.AltSidesFlip)
	opts.YColorGroups = getEnvBoolOrDefault("CMPLOT_YCOLORGROUPS", opts.YColorGroups)
	opts.ConfLevel = getEnvFloatOrDefault("CMPLOT_CONF_LEVEL", opts.ConfLevel)
	opts.HDIIter = getEnvIntOrDefault("CMPLOT_HDI_ITER", opts.HDIIter)
	opts.ShowBoxplot = getEnvBoolOrDefault("CMPLOT_SHOWBOXPLOT", opts.ShowBoxplot)
	opts.MarkOutliers = getEnvBoolOrDefault("CMPLOT_MARKOUTLIERS", opts.MarkOutliers)
	opts.ShowPoints = getEnvBoolOrDefault("CMPLOT_SHOWPOINTS", opts.ShowPoints)
	opts.PointsOverDens = getEnvBoolOrDefault("CMPLOT_POINTSOVERDENS", opts.PointsOverDens)
	opts.PointsOpacity = getEnvFloatOrDefault("CMPLOT_POINTSOPACITY", opts.PointsOpacity)
	opts.PointShapes = splitEnvList(os.Getenv("CMPLOT_POINTSHAPES"))
	opts.PointsDistance = getEnvFloatOrDefault("CMPLOT_POINTSDISTANCE", opts.PointsDistance)
	opts.PointsMaxDisplayed = getEnvIntOrDefault("CMPLOT_POINTSMAXDISPLAYED", opts.PointsMaxDisplayed)
	opts.ColorRange = getEnvIntOrDefault("CMPLOT_COLORRANGE", opts.ColorRange)
	opts.ColorShift = getEnvIntOrDefault("CMPLOT_COLORSHIFT", opts.ColorShift)
	opts.Seed = getEnvInt64OrDefault("CMPLOT_SEED", opts.Seed)
	return opts
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitEnvList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
