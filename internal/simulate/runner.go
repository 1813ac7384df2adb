package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// Config controls one simulation run.
type Config struct {
	BaseURL      string
	Runners      int
	Requests     int
	CourseLength float64
	Seed         int64
	Timeout      time.Duration
}

// Result summarizes a simulation run.
type Result struct {
	Requests     int
	Failures     int
	ShapeErrors  int
	TotalLatency time.Duration
}

// Run posts generated payloads against POST /compare and verifies the
// structural guarantees of each report: one summary per runner and one
// rest record per runner per cluster.
func Run(ctx context.Context, cfg Config) (Result, error) {
	gen := NewGenerator(cfg.Seed, cfg.CourseLength)
	client := &http.Client{Timeout: cfg.Timeout}

	var res Result
	for i := 0; i < cfg.Requests; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ids := gen.RunnerIDs(cfg.Runners)
		payload := gen.Payload(ids)

		report, latency, err := postCompare(ctx, client, cfg.BaseURL, ids, cfg.CourseLength, payload)
		res.Requests++
		res.TotalLatency += latency
		if err != nil {
			res.Failures++
			fmt.Printf("request %d failed: %v\n", i+1, err)
			continue
		}
		if errs := verifyReport(report, ids); len(errs) > 0 {
			res.ShapeErrors += len(errs)
			for _, e := range errs {
				fmt.Printf("request %d shape error: %v\n", i+1, e)
			}
		}
	}
	return res, nil
}

func postCompare(ctx context.Context, client *http.Client, baseURL string, ids []string, courseLength float64, payload model.RawAnalysisMap) (*model.ComparisonReport, time.Duration, error) {
	body := struct {
		SelectedRunnerIDs []string             `json:"selected_runner_ids"`
		CourseLengthMiles float64              `json:"course_length_miles"`
		Analyses          model.RawAnalysisMap `json:"analyses"`
	}{ids, courseLength, payload}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/compare", bytes.NewReader(buf))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, latency, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, latency, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var report model.ComparisonReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, latency, err
	}
	return &report, latency, nil
}

// verifyReport checks the completeness guarantees the rendering layer
// relies on.
func verifyReport(report *model.ComparisonReport, ids []string) []error {
	var errs []error
	for _, id := range ids {
		if _, ok := report.PerRunnerSummary[id]; !ok {
			errs = append(errs, fmt.Errorf("runner %s missing from per_runner_summary", id))
		}
	}
	for i, row := range report.RestClusters {
		if len(row.PerRunner) != len(ids) {
			errs = append(errs, fmt.Errorf("cluster %d has %d records, want %d", i, len(row.PerRunner), len(ids)))
		}
		for _, id := range ids {
			if _, ok := row.PerRunner[id]; !ok {
				errs = append(errs, fmt.Errorf("cluster %d missing record for runner %s", i, id))
			}
		}
	}
	return errs
}

// Summary renders a human-readable run summary.
func (r Result) Summary() string {
	avg := time.Duration(0)
	if r.Requests > 0 {
		avg = r.TotalLatency / time.Duration(r.Requests)
	}
	return fmt.Sprintf("requests=%d failures=%d shape_errors=%d avg_latency=%s",
		r.Requests, r.Failures, r.ShapeErrors, avg)
}
