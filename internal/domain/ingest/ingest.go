// Package ingest validates and normalizes raw per-runner analysis records
// into the canonical shape the aggregation pipeline consumes.
//
// Failure policy: the whole request fails only when the payload itself is
// marked failed, no runners are selected, or the primary (first-selected)
// runner's record is failed. Any other per-runner fault is isolated to that
// runner by substituting sentinel defaults and marking it degraded.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
	"github.com/jasonjgarcia24/ultra-smart/pkg/logger"
)

// Value domains enforced on ingested segments.
const (
	maxDifficultyRating = 5.0
	maxPerformanceScore = 1.0
)

// Ingestor normalizes raw analysis payloads. Pure transform; the only side
// effect is warn-level logging of degraded runners.
type Ingestor struct {
	log logger.Logger
}

// Option applies a configuration option to the Ingestor.
type Option func(*Ingestor)

// WithLogger sets the logger used for degradation warnings.
func WithLogger(log logger.Logger) Option {
	return func(i *Ingestor) {
		if log != nil {
			i.log = log
		}
	}
}

// New constructs an Ingestor.
func New(opts ...Option) *Ingestor {
	i := &Ingestor{log: logger.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Normalize turns a raw payload into canonical per-runner records, one per
// selected runner, in selection order. The returned map always has an entry
// for every selected id; runners with unusable data carry sentinel defaults
// and Degraded=true.
func (i *Ingestor) Normalize(ctx context.Context, req model.ComparisonRequest, raw model.RawAnalysisMap) (map[string]model.RunnerAnalysis, error) {
	if len(req.SelectedRunnerIDs) == 0 {
		return nil, newValidationError("no runners selected")
	}
	if raw.Failed() {
		msg := raw.Error
		if msg == "" {
			msg = "analysis payload marked failed"
		}
		return nil, newValidationError(msg)
	}

	out := make(map[string]model.RunnerAnalysis, len(req.SelectedRunnerIDs))
	for idx, id := range req.SelectedRunnerIDs {
		rec, ok := raw.Runners[id]
		if !ok {
			out[id] = i.degraded(ctx, id, "analysis record missing")
			continue
		}
		if rec.Failed() {
			reason := rec.Error
			if reason == "" {
				reason = "analysis record marked failed"
			}
			if idx == 0 {
				// The primary runner anchors the comparison; without it the
				// request has nothing to compare against.
				return nil, newValidationError(fmt.Sprintf("primary runner %s: %s", id, reason))
			}
			out[id] = i.degraded(ctx, id, reason)
			continue
		}
		out[id] = i.normalizeRunner(ctx, id, rec)
	}
	return out, nil
}

func (i *Ingestor) degraded(ctx context.Context, id, reason string) model.RunnerAnalysis {
	i.log.Warn(ctx, "runner degraded to sentinel defaults",
		logger.String("runner_id", id), logger.String("reason", reason))
	return model.RunnerAnalysis{
		RunnerID: id,
		Course: model.CourseAnalysis{
			StrongestTerrain:   model.UnknownTerrain,
			ElevationTolerance: model.UnknownTerrain,
		},
		Degraded:       true,
		DegradedReason: reason,
	}
}

func (i *Ingestor) normalizeRunner(ctx context.Context, id string, rec model.RawRunnerAnalysis) model.RunnerAnalysis {
	var reasons []string

	out := model.RunnerAnalysis{RunnerID: id}

	if rec.Fatigue != nil {
		out.Fatigue = normalizeFatigue(rec.Fatigue)
	} else {
		reasons = append(reasons, "missing fatigue_analysis")
	}

	if rec.Course != nil {
		out.Course = normalizeCourse(rec.Course)
	} else {
		out.Course = model.CourseAnalysis{
			StrongestTerrain:   model.UnknownTerrain,
			ElevationTolerance: model.UnknownTerrain,
		}
		reasons = append(reasons, "missing course_analysis")
	}

	if rec.Rest != nil {
		out.Rest = normalizeRest(rec.Rest)
	}

	if rec.Recommendations != nil {
		out.Recommendations = normalizeRecommendations(rec.Recommendations)
	}

	if len(reasons) > 0 {
		out.Degraded = true
		out.DegradedReason = strings.Join(reasons, "; ")
		i.log.Warn(ctx, "runner partially degraded",
			logger.String("runner_id", id), logger.String("reason", out.DegradedReason))
	}
	return out
}

func normalizeFatigue(raw *model.RawFatigueAnalysis) model.FatigueAnalysis {
	out := model.FatigueAnalysis{
		AverageFatigue:  raw.AverageFatigue,
		PeakFatigueMile: raw.PeakFatigueMile,
	}
	if len(raw.Progression) > 0 {
		out.Progression = make([]model.FatiguePoint, 0, len(raw.Progression))
		for _, p := range raw.Progression {
			out.Progression = append(out.Progression, model.FatiguePoint{
				Mile:              p.Mile,
				FatigueFactor:     p.FatigueFactor,
				TerrainDifficulty: p.TerrainDifficulty,
			})
		}
	}
	return out
}

func normalizeCourse(raw *model.RawCourseAnalysis) model.CourseAnalysis {
	out := model.CourseAnalysis{
		StrongestTerrain:   raw.StrongestTerrain,
		ElevationTolerance: raw.ElevationTolerance,
	}
	if out.StrongestTerrain == "" {
		out.StrongestTerrain = model.UnknownTerrain
	}
	if out.ElevationTolerance == "" {
		out.ElevationTolerance = model.UnknownTerrain
	}
	for _, s := range raw.Segments {
		// Segments without a name have no cross-runner identity and cannot
		// participate in aggregation.
		if strings.TrimSpace(s.SegmentName) == "" {
			continue
		}
		out.Segments = append(out.Segments, model.SegmentPerformance{
			SegmentName:       s.SegmentName,
			StartMile:         s.StartMile,
			EndMile:           s.EndMile,
			TerrainType:       s.TerrainType,
			DifficultyRating:  clamp(s.DifficultyRating, 0, maxDifficultyRating),
			AveragePace:       max(s.AveragePace, 0),
			PerformanceScore:  clamp(s.PerformanceScore, 0, maxPerformanceScore),
			ElevationGainFeet: s.ElevationGainFeet,
			ElevationLossFeet: s.ElevationLossFeet,
			ElevationNetFeet:  s.ElevationGainFeet - s.ElevationLossFeet,
		})
	}
	return out
}

func normalizeRest(raw *model.RawRestData) model.RestData {
	out := model.RestData{
		Patterns:    raw.Patterns,
		HasPatterns: len(raw.Patterns) > 0,
	}
	for _, e := range raw.Events {
		out.Events = append(out.Events, normalizeRestEvent(e))
	}
	for _, s := range raw.AidStationStops {
		out.AidStationStops = append(out.AidStationStops, model.AidStationStop{
			StationName:         s.StationName,
			Mile:                s.Mile,
			RestDurationMinutes: s.RestDurationMinutes,
			IsSleepStation:      s.IsSleepStation,
			StationType:         s.StationType,
		})
	}
	return out
}

// normalizeRestEvent collapses the wire-level fallback chains once: the
// mile alias (mile vs start_mile) and the observed-pace chain (pace_during,
// then actual_pace, then 0). Downstream components rely on this being the
// only place those chains exist.
func normalizeRestEvent(raw model.RawRestEvent) model.RestEvent {
	out := model.RestEvent{
		AidStation: model.UnknownAidStation,
		RestType:   model.ParseRestType(raw.RestType),
		Confidence: model.ParseConfidence(raw.Confidence),
	}
	switch {
	case raw.Mile != nil:
		out.Mile, out.MileKnown = *raw.Mile, true
	case raw.StartMile != nil:
		out.Mile, out.MileKnown = *raw.StartMile, true
	}
	if raw.NearbyAidStation != nil && strings.TrimSpace(*raw.NearbyAidStation) != "" {
		out.AidStation = *raw.NearbyAidStation
	}
	out.IsSleepStation = raw.IsSleepStation
	if raw.EstimatedRestMinutes != nil {
		out.EstimatedRestMinutes = max(*raw.EstimatedRestMinutes, 0)
	}
	if raw.PaceRatio != nil {
		out.PaceRatio = max(*raw.PaceRatio, 0)
	}
	switch {
	case raw.PaceDuring != nil:
		out.ObservedPace = max(*raw.PaceDuring, 0)
	case raw.ActualPace != nil:
		out.ObservedPace = max(*raw.ActualPace, 0)
	}
	return out
}

func normalizeRecommendations(raw *model.RawRecommendations) model.Recommendations {
	out := model.Recommendations{
		OverallStrategy:  raw.OverallStrategy,
		CriticalSegments: raw.CriticalSegments,
	}
	for _, r := range raw.SegmentRecommendations {
		out.SegmentRecommendations = append(out.SegmentRecommendations, model.SegmentRecommendation{
			Segment:           r.Segment,
			Miles:             r.Miles,
			Terrain:           r.Terrain,
			Difficulty:        r.Difficulty,
			RecommendedEffort: r.RecommendedEffort,
			KeyStrategy:       r.KeyStrategy,
			ElevationChange:   r.ElevationChange,
		})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
