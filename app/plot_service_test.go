package app

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"cmplot/domain/core"
	"cmplot/domain/plot"
)

func makeGroups(t *testing.T) []plot.Group {
	t.Helper()
	a, err := plot.NewSample([]float64{1, 2, 2, 3, 3, 3, 4, 4, 5})
	require.NoError(t, err)
	b, err := plot.NewSample([]float64{10, 12, 11, 14, 13, 12, 11, 30})
	require.NoError(t, err)
	return []plot.Group{
		{Categories: []string{"setosa"}, Variable: "len", Sample: a},
		{Categories: []string{"virginica"}, Variable: "len", Sample: b},
	}
}

func TestNewPlotService_FailsFast(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.ConfLevel = 1.5
	_, err := NewPlotService(opts)
	require.Error(t, err)
	require.True(t, core.IsRangeError(err))

	opts = plot.DefaultOptions()
	opts.Inference = "bogus"
	_, err = NewPlotService(opts)
	require.Error(t, err)
	require.True(t, core.IsOptionError(err))
}

func TestCompute_OneGeometryPerGroup(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.Inference = plot.InferenceCI
	service, err := NewPlotService(opts)
	require.NoError(t, err)

	result, err := service.Compute(context.Background(), makeGroups(t))
	require.NoError(t, err)
	require.Len(t, result.Geometries, 2)
	require.Len(t, result.Ticks, 2)

	for i, geom := range result.Geometries {
		require.NotEmpty(t, geom.DensityPolygon, "group %d", i)
		require.NotEmpty(t, geom.Points, "group %d", i)
		require.NotNil(t, geom.Box, "group %d", i)
		require.NotNil(t, geom.Stats.Interval, "group %d", i)
		require.NotNil(t, geom.Band, "group %d", i)
	}

	// the known scenario: mean of the first sample is exactly 3.0
	require.Equal(t, 3.0, result.Geometries[0].Stats.Interval.Center)
}

func TestCompute_DeterministicForSeed(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.HDIIter = 500
	service, err := NewPlotService(opts)
	require.NoError(t, err)

	first, err := service.Compute(context.Background(), makeGroups(t))
	require.NoError(t, err)
	second, err := service.Compute(context.Background(), makeGroups(t))
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("same groups, options and seed must reproduce the result exactly")
	}
}

func TestCompute_GroupsGetDistinctClouds(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.Inference = plot.InferenceNone
	service, err := NewPlotService(opts)
	require.NoError(t, err)

	s, err := plot.NewSample([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	groups := []plot.Group{
		{Categories: []string{"a"}, Variable: "v", Sample: s},
		{Categories: []string{"b"}, Variable: "v", Sample: s},
	}
	result, err := service.Compute(context.Background(), groups)
	require.NoError(t, err)

	// identical samples, but per-group derived seeds jitter differently
	require.NotEqual(t, result.Geometries[0].Points, result.Geometries[1].Points)
}

func TestCompute_NoneMethodSkipsBand(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.Inference = plot.InferenceNone
	service, err := NewPlotService(opts)
	require.NoError(t, err)

	result, err := service.Compute(context.Background(), makeGroups(t))
	require.NoError(t, err)
	for _, geom := range result.Geometries {
		require.Nil(t, geom.Stats.Interval)
		require.Nil(t, geom.Band)
	}
}

func TestCompute_EmptyGroupSet(t *testing.T) {
	service, err := NewPlotService(plot.DefaultOptions())
	require.NoError(t, err)

	_, err = service.Compute(context.Background(), nil)
	require.Error(t, err)
	require.True(t, core.IsInputError(err))
}

func TestCompute_DegenerateGroupDoesNotAbortBatch(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.HDIIter = 200
	service, err := NewPlotService(opts)
	require.NoError(t, err)

	constant, err := plot.NewSample([]float64{7, 7, 7})
	require.NoError(t, err)
	singleton, err := plot.NewSample([]float64{3})
	require.NoError(t, err)

	groups := append(makeGroups(t),
		plot.Group{Categories: []string{"flat"}, Variable: "len", Sample: constant},
		plot.Group{Categories: []string{"one"}, Variable: "len", Sample: singleton},
	)
	result, err := service.Compute(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, result.Geometries, 4)

	// the singleton group degrades to a spike without an interval, and
	// its box collapses onto the value rather than carrying NaN
	last := result.Geometries[3]
	require.Nil(t, last.Stats.Interval)
	require.NotEmpty(t, last.DensityPolygon)
	require.Equal(t, 3.0, last.Stats.Box.Q1)
	require.Equal(t, 3.0, last.Stats.Box.Q3)

	// the whole batch must stay serializable despite the degenerate groups
	_, err = json.Marshal(result)
	require.NoError(t, err)
}
