// Package summary derives per-runner scalar summaries for the comparison
// table. Pure projection; no branch may fail the pipeline.
package summary

import (
	"fmt"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// Build projects one runner's analysis onto the summary scalars. Missing
// upstream values surface as the documented sentinels, never as absent
// fields and never as an error.
func Build(ra model.RunnerAnalysis) model.ComparisonSummary {
	out := model.ComparisonSummary{
		AverageFatigue:     model.NotAvailable,
		PeakFatigueMile:    model.NotAvailable,
		StrongestTerrain:   model.UnknownTerrain,
		ElevationTolerance: model.UnknownTerrain,
	}
	if ra.Fatigue.AverageFatigue != nil {
		out.AverageFatigue = fmt.Sprintf("%.2f", *ra.Fatigue.AverageFatigue)
	}
	if ra.Fatigue.PeakFatigueMile != nil {
		out.PeakFatigueMile = fmt.Sprintf("%.1f", *ra.Fatigue.PeakFatigueMile)
	}
	out.RestCount = len(ra.Rest.Events)
	if ra.Course.StrongestTerrain != "" {
		out.StrongestTerrain = ra.Course.StrongestTerrain
	}
	if ra.Course.ElevationTolerance != "" {
		out.ElevationTolerance = ra.Course.ElevationTolerance
	}
	return out
}

// BuildAll projects every selected runner, in selection order. Runners
// absent from the map still get a full sentinel summary.
func BuildAll(analyses map[string]model.RunnerAnalysis, selected []string) map[string]model.ComparisonSummary {
	out := make(map[string]model.ComparisonSummary, len(selected))
	for _, id := range selected {
		out[id] = Build(analyses[id])
	}
	return out
}
