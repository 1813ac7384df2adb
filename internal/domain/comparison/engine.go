// Package comparison assembles the multi-runner comparison pipeline:
// ingest -> rest clustering -> rest selection -> segment aggregation ->
// summary projection -> report.
//
// The pipeline is a pure function of (request, raw payload); every call
// starts from fresh request-scoped structures and nothing persists across
// invocations.
package comparison

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/ingest"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/restcluster"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/segments"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/summary"
	"github.com/jasonjgarcia24/ultra-smart/pkg/logger"
	"github.com/jasonjgarcia24/ultra-smart/pkg/metrics"
)

// Engine runs comparison requests through the aggregation pipeline.
type Engine struct {
	mileThreshold  float64
	criticalLimit  int
	log            logger.Logger
	metricsEnabled bool

	ingestor   *ingest.Ingestor
	clusterer  *restcluster.Clusterer
	aggregator *segments.Aggregator

	// Running counters exposed via Stats.
	comparisons        atomic.Int64
	degradedRunners    atomic.Int64
	validationFailures atomic.Int64
	lastDurationMs     atomic.Int64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMileThreshold sets the rest-cluster admission distance in miles.
func WithMileThreshold(miles float64) Option {
	return func(e *Engine) {
		if miles > 0 {
			e.mileThreshold = miles
		}
	}
}

// WithCriticalSegmentLimit caps the critical-segments ranking.
func WithCriticalSegmentLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.criticalLimit = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetricsEnabled toggles Prometheus recording.
func WithMetricsEnabled(enabled bool) Option {
	return func(e *Engine) {
		e.metricsEnabled = enabled
	}
}

// New constructs an Engine with default thresholds.
func New(opts ...Option) *Engine {
	e := &Engine{
		mileThreshold:  5.0,
		criticalLimit:  5,
		log:            logger.Nop(),
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ingestor = ingest.New(ingest.WithLogger(e.log))
	e.clusterer = restcluster.New(restcluster.WithMileThreshold(e.mileThreshold))
	e.aggregator = segments.New(segments.WithCriticalLimit(e.criticalLimit))
	return e
}

// Compare runs one comparison request. It returns either a complete,
// immutable report or a nil report with an error; no partially built
// intermediate structure ever escapes. The context is honored between
// pipeline stages and per-runner iterations.
func (e *Engine) Compare(ctx context.Context, req model.ComparisonRequest, raw model.RawAnalysisMap) (*model.ComparisonReport, error) {
	start := time.Now()

	analyses, err := e.ingestor.Normalize(ctx, req, raw)
	if err != nil {
		e.validationFailures.Add(1)
		if e.metricsEnabled {
			metrics.RecordValidationFailure()
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clusters := e.clusterer.Cluster(analyses, req.SelectedRunnerIDs)
	rows := make([]model.RestClusterRow, 0, len(clusters))
	members := 0
	placeholders := 0
	for _, cl := range clusters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		perRunner := restcluster.SelectAll(cl, req.SelectedRunnerIDs)
		for _, rec := range perRunner {
			if rec.NoRestDetected {
				placeholders++
			}
		}
		members += len(cl.Members)
		rows = append(rows, model.RestClusterRow{
			MeanMile:   cl.MeanMile,
			AidStation: cl.AidStation,
			PerRunner:  perRunner,
		})
	}

	critical, table := e.aggregator.Aggregate(analyses, req.SelectedRunnerIDs)
	summaries := summary.BuildAll(analyses, req.SelectedRunnerIDs)

	var degraded []model.DegradedRunner
	for _, id := range req.SelectedRunnerIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ra := analyses[id]; ra.Degraded {
			degraded = append(degraded, model.DegradedRunner{RunnerID: id, Reason: ra.DegradedReason})
		}
	}

	durMs := float64(time.Since(start).Microseconds()) / 1e3
	e.comparisons.Add(1)
	e.degradedRunners.Add(int64(len(degraded)))
	e.lastDurationMs.Store(int64(durMs))
	if e.metricsEnabled {
		metrics.RecordComparison(durMs, len(req.SelectedRunnerIDs))
		metrics.RecordRestClustering(len(clusters), members)
		for range degraded {
			metrics.RecordDegradedRunner()
		}
		for i := 0; i < placeholders; i++ {
			metrics.RecordPlaceholder()
		}
	}
	e.log.Debug(ctx, "comparison complete",
		logger.Int("runners", len(req.SelectedRunnerIDs)),
		logger.Int("rest_clusters", len(clusters)),
		logger.Int("degraded", len(degraded)),
		logger.Float64("duration_ms", durMs))

	return &model.ComparisonReport{
		PerRunnerSummary: summaries,
		RestClusters:     rows,
		CriticalSegments: critical,
		SegmentTable:     table,
		DegradedRunners:  degraded,
	}, nil
}

// Stats returns running counters for the stats endpoint.
func (e *Engine) Stats() map[string]interface{} {
	return map[string]interface{}{
		"comparisons_total":         e.comparisons.Load(),
		"degraded_runners_total":    e.degradedRunners.Load(),
		"validation_failures_total": e.validationFailures.Load(),
		"last_duration_ms":          e.lastDurationMs.Load(),
	}
}
