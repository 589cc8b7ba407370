package tabular

import (
	"context"
	"math"
	"strconv"
	"strings"

	"cmplot/domain/core"
	"cmplot/domain/plot"
)

// Groups builds one group per (distinct x-combination, y column), in
// first-appearance order of the combinations. An empty ycols selects
// every numeric column not named in xcols. Cells that do not parse as
// finite numbers are dropped; a combination whose column has no finite
// values at all is skipped with a warning instead of failing the batch.
func (r *DataReader) Groups(_ context.Context, xcols, ycols []string) ([]plot.Group, error) {
	table, err := r.ReadTable()
	if err != nil {
		return nil, err
	}

	colIndex := make(map[string]int, len(table.Columns))
	for i, name := range table.Columns {
		colIndex[name] = i
	}

	if len(xcols) == 0 {
		return nil, core.NewInputError("xcol is required, e.g. \"Species\"")
	}
	for _, x := range xcols {
		if _, ok := colIndex[x]; !ok {
			return nil, core.NewOptionError("xcol", x, "columns present in the dataset")
		}
	}

	if len(ycols) == 0 {
		ycols = r.numericColumns(table, xcols)
		if len(ycols) == 0 {
			return nil, core.NewInputError("no numeric columns left to plot")
		}
	} else {
		for _, y := range ycols {
			if _, ok := colIndex[y]; !ok {
				return nil, core.NewOptionError("ycol", y, "columns present in the dataset")
			}
		}
		for _, x := range xcols {
			for _, y := range ycols {
				if x == y {
					return nil, core.NewOptionError("ycol", y, "columns not already used as xcol")
				}
			}
		}
	}

	// partition row indexes by category combination, keeping the order
	// combinations first appear in
	type combo struct {
		categories []string
		rows       []int
	}
	seen := make(map[string]int)
	var combos []combo
	for rowIdx, row := range table.Rows {
		categories := make([]string, len(xcols))
		for i, x := range xcols {
			categories[i] = cell(row, colIndex[x])
		}
		key := strings.Join(categories, "\x00")
		ci, ok := seen[key]
		if !ok {
			ci = len(combos)
			seen[key] = ci
			combos = append(combos, combo{categories: categories})
		}
		combos[ci].rows = append(combos[ci].rows, rowIdx)
	}

	var groups []plot.Group
	for _, c := range combos {
		for _, y := range ycols {
			values := make([]float64, 0, len(c.rows))
			for _, rowIdx := range c.rows {
				if v, ok := parseNumber(cell(table.Rows[rowIdx], colIndex[y])); ok {
					values = append(values, v)
				}
			}
			sample, err := plot.NewSample(values)
			if err != nil {
				r.log.Warn("skipping %s / %s: no finite values", strings.Join(c.categories, "&"), y)
				continue
			}
			groups = append(groups, plot.Group{
				Categories: c.categories,
				Variable:   y,
				Sample:     sample,
			})
		}
	}
	if len(groups) == 0 {
		return nil, plot.ErrNoGroups
	}
	return groups, nil
}

// numericColumns returns every column outside xcols with at least one
// parsable numeric cell
func (r *DataReader) numericColumns(table *Table, xcols []string) []string {
	excluded := make(map[string]bool, len(xcols))
	for _, x := range xcols {
		excluded[x] = true
	}
	var numeric []string
	for i, name := range table.Columns {
		if excluded[name] {
			continue
		}
		for _, row := range table.Rows {
			if _, ok := parseNumber(cell(row, i)); ok {
				numeric = append(numeric, name)
				break
			}
		}
	}
	return numeric
}

// DefaultTitle composes the plot title the way the column selection reads:
// "x1 & x2 ~ y1, y2"
func DefaultTitle(xcols, ycols []string) string {
	return strings.Join(xcols, " & ") + " ~ " + strings.Join(ycols, ", ")
}

// cell tolerates ragged rows (trailing empty Excel cells are not padded)
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseNumber accepts only finite numeric cells
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
