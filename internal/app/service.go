// Package service provides the core business service that implements the
// dependencies required by the HTTP API: analysis acquisition plus the
// comparison pipeline.
package service

import (
	"context"
	"fmt"

	"github.com/jasonjgarcia24/ultra-smart/internal/adapters/analytics"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/comparison"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/ingest"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
	"github.com/jasonjgarcia24/ultra-smart/pkg/logger"
)

// Service wires the analytics provider and the comparison engine behind
// one interface for the HTTP layer. It holds no per-request state; every
// comparison is independent.
type Service struct {
	engine   *comparison.Engine
	provider analytics.Provider
	log      logger.Logger

	mileThreshold float64
	criticalLimit int
	maxRunners    int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithProvider sets the analytics producer client.
func WithProvider(p analytics.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithMileThreshold sets the rest-cluster admission distance.
func WithMileThreshold(miles float64) Option {
	return func(s *Service) {
		if miles > 0 {
			s.mileThreshold = miles
		}
	}
}

// WithCriticalSegmentLimit caps the critical-segments ranking.
func WithCriticalSegmentLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.criticalLimit = n
		}
	}
}

// WithMaxSelectedRunners caps runners per comparison request.
func WithMaxSelectedRunners(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRunners = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		log:           logger.Nop(),
		mileThreshold: 5.0,
		criticalLimit: 5,
		maxRunners:    12,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = comparison.New(
		comparison.WithLogger(s.log),
		comparison.WithMileThreshold(s.mileThreshold),
		comparison.WithCriticalSegmentLimit(s.criticalLimit),
	)
	return s
}

// Compare runs one comparison. When raw is nil the analyses are acquired
// from the configured provider; otherwise the caller-supplied payload is
// used verbatim.
func (s *Service) Compare(ctx context.Context, req model.ComparisonRequest, raw *model.RawAnalysisMap) (*model.ComparisonReport, error) {
	if len(req.SelectedRunnerIDs) > s.maxRunners {
		return nil, &ingest.ValidationError{
			Reason: fmt.Sprintf("too many runners selected: %d > %d", len(req.SelectedRunnerIDs), s.maxRunners),
		}
	}

	if raw == nil {
		if s.provider == nil {
			return nil, analytics.ErrNoBaseURL
		}
		payload, err := s.provider.Fetch(ctx, req.SelectedRunnerIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", analytics.ErrUnreachable, err)
		}
		raw = &payload
	}

	return s.engine.Compare(ctx, req, *raw)
}

// GetStats exposes engine counters for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	return s.engine.Stats()
}
