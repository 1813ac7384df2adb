// Package analytics is the client for the upstream analytics producer, the
// collaborator that computes fatigue, segment and rest numbers. The
// comparison core never computes those itself; this adapter only acquires
// and materializes them before the pipeline runs.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
	"github.com/jasonjgarcia24/ultra-smart/pkg/logger"
	"github.com/jasonjgarcia24/ultra-smart/pkg/metrics"
)

// Defaults for the HTTP provider.
const (
	defaultTimeout     = 5 * time.Second
	defaultConcurrency = 4
)

// Provider supplies one raw analysis record per requested runner. A
// runner whose record cannot be produced is returned as a failed-record
// sentinel, not as an error; only transport-level impossibility (no
// endpoint, canceled context) is an error.
type Provider interface {
	Fetch(ctx context.Context, runnerIDs []string) (model.RawAnalysisMap, error)
}

// HTTPProvider fetches per-runner analyses as JSON over HTTP with bounded
// concurrency. Per-runner failures degrade that runner only.
type HTTPProvider struct {
	baseURL     string
	client      *http.Client
	concurrency int
	log         logger.Logger
}

// HTTPOption applies a configuration option to the HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithTimeout bounds a single per-runner fetch.
func WithTimeout(d time.Duration) HTTPOption {
	return func(p *HTTPProvider) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

// WithConcurrency bounds concurrent per-runner fetches.
func WithConcurrency(n int) HTTPOption {
	return func(p *HTTPProvider) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the provider logger.
func WithLogger(log logger.Logger) HTTPOption {
	return func(p *HTTPProvider) {
		if log != nil {
			p.log = log
		}
	}
}

// NewHTTPProvider constructs an HTTPProvider for the given base URL.
func NewHTTPProvider(baseURL string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: defaultTimeout},
		concurrency: defaultConcurrency,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch acquires one record per runner with a bounded worker group. The
// result is fully materialized before returning; the pipeline never runs
// against a partially fetched map.
func (p *HTTPProvider) Fetch(ctx context.Context, runnerIDs []string) (model.RawAnalysisMap, error) {
	if p.baseURL == "" {
		return model.RawAnalysisMap{}, ErrNoBaseURL
	}

	ids := make(chan string)
	var mu sync.Mutex
	runners := make(map[string]model.RawRunnerAnalysis, len(runnerIDs))

	var wg sync.WaitGroup
	workers := p.concurrency
	if workers > len(runnerIDs) {
		workers = len(runnerIDs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				rec := p.fetchOne(ctx, id)
				mu.Lock()
				runners[id] = rec
				mu.Unlock()
			}
		}()
	}

	for _, id := range runnerIDs {
		select {
		case ids <- id:
		case <-ctx.Done():
			close(ids)
			wg.Wait()
			return model.RawAnalysisMap{}, ctx.Err()
		}
	}
	close(ids)
	wg.Wait()

	return model.RawAnalysisMap{Runners: runners}, nil
}

// fetchOne fetches a single runner's record, converting any failure into
// the failed-record sentinel so ingestion degrades only this runner.
func (p *HTTPProvider) fetchOne(ctx context.Context, id string) model.RawRunnerAnalysis {
	start := time.Now()
	url := fmt.Sprintf("%s/api/runner/%s/analysis", p.baseURL, id)

	failed := func(reason string) model.RawRunnerAnalysis {
		p.log.Warn(ctx, "analysis fetch failed",
			logger.String("runner_id", id), logger.String("reason", reason))
		metrics.RecordAnalyticsFetch("failed", float64(time.Since(start).Microseconds())/1e3)
		return model.RawRunnerAnalysis{Status: "failed", Error: reason}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failed(err.Error())
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return failed(err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return failed(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var rec model.RawRunnerAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return failed("malformed analysis payload: " + err.Error())
	}
	metrics.RecordAnalyticsFetch("ok", float64(time.Since(start).Microseconds())/1e3)
	return rec
}

// StaticProvider serves a fixed payload. Used by tests and the simulation
// CLI in place of a live producer.
type StaticProvider struct {
	payload model.RawAnalysisMap
}

// NewStaticProvider constructs a StaticProvider over the given payload.
func NewStaticProvider(payload model.RawAnalysisMap) *StaticProvider {
	return &StaticProvider{payload: payload}
}

// Fetch returns the subset of the fixed payload covering runnerIDs.
// Missing runners are simply absent, exercising the same degradation path
// a live producer would.
func (s *StaticProvider) Fetch(_ context.Context, runnerIDs []string) (model.RawAnalysisMap, error) {
	if s.payload.Failed() {
		return s.payload, nil
	}
	out := model.RawAnalysisMap{Runners: make(map[string]model.RawRunnerAnalysis, len(runnerIDs))}
	for _, id := range runnerIDs {
		if rec, ok := s.payload.Runners[id]; ok {
			out.Runners[id] = rec
		}
	}
	return out, nil
}
