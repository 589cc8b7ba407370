package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cmplot/domain/core"
	"cmplot/domain/plot"
	"cmplot/internal"
	"cmplot/internal/boxstats"
	"cmplot/internal/cloud"
	"cmplot/internal/density"
	"cmplot/internal/geometry"
	"cmplot/internal/inference"
	"cmplot/internal/layout"
)

// PlotService runs the cloudy mountain pipeline: per-group statistics,
// placement planning, geometry assembly
type PlotService struct {
	opts plot.Options
	log  *internal.Logger
}

// NewPlotService validates the complete configuration before any group is
// touched; a constructed service cannot fail for configuration reasons.
func NewPlotService(opts plot.Options) (*PlotService, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &PlotService{opts: opts, log: internal.DefaultLogger}, nil
}

// groupArtifacts collects the independent statistical outputs of one group
// before the layout barrier
type groupArtifacts struct {
	stats plot.GroupStats
	cloud []plot.CloudPoint
}

// Compute runs the full pipeline over the groups in their given order.
// Statistics for different groups are computed concurrently; the layout
// step waits for all of them, since positions and color ranges need the
// complete set.
func (s *PlotService) Compute(ctx context.Context, groups []plot.Group) (*plot.Result, error) {
	if len(groups) == 0 {
		return nil, plot.ErrNoGroups
	}

	planner, err := layout.NewPlanner(s.opts)
	if err != nil {
		return nil, err
	}

	artifacts := make([]groupArtifacts, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	for i := range groups {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := s.computeGroup(groups[i], int64(i))
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// barrier passed: every group's statistics are present
	plans, ticks := planner.Plan(groups)

	assembler := geometry.NewAssembler(s.opts)
	geometries := make([]plot.GroupGeometry, len(groups))
	for i, g := range groups {
		geometries[i] = assembler.Assemble(g, plans[i], artifacts[i].stats, artifacts[i].cloud)
	}

	s.log.Debug("computed %d group geometries across %d positions", len(geometries), len(ticks))
	return &plot.Result{Geometries: geometries, Ticks: ticks}, nil
}

// computeGroup runs the four independent estimators for one group. The
// group ordinal keeps derived seeds distinct so clouds and posterior
// draws differ between groups while staying reproducible.
func (s *PlotService) computeGroup(g plot.Group, ordinal int64) (groupArtifacts, error) {
	if g.Sample.Len() == 0 {
		return groupArtifacts{}, core.ErrEmptySample
	}
	seed := s.opts.Seed + ordinal

	curve := density.NewEstimator(s.opts.SpanMode).Estimate(g.Sample)

	box, err := boxstats.Summarize(g.Sample)
	if err != nil {
		return groupArtifacts{}, err
	}

	est, err := inference.NewEstimator(s.opts.Inference, s.opts.ConfLevel, s.opts.HDIIter, seed)
	if err != nil {
		return groupArtifacts{}, err
	}
	interval := est.Estimate(g.Sample)

	var points []plot.CloudPoint
	if s.opts.ShowPoints {
		sampler, err := cloud.NewSampler(s.opts.PointsMaxDisplayed, s.opts.PointsDistance, seed)
		if err != nil {
			return groupArtifacts{}, err
		}
		points = sampler.Sample(g.Sample, curve)
	}

	mean := 0.0
	for _, v := range g.Sample.Values() {
		mean += v
	}
	mean /= float64(g.Sample.Len())

	return groupArtifacts{
		stats: plot.GroupStats{
			Density:  curve,
			Box:      box,
			Interval: interval,
			Mean:     mean,
			N:        g.Sample.Len(),
		},
		cloud: points,
	}, nil
}
