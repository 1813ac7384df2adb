// Package simulate generates synthetic analysis payloads and drives the
// compare endpoint with them, for load checks and manual verification
// against a running service.
package simulate

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// Course fixtures used by the generator. Station spacing mirrors a typical
// 250-mile course.
var stationNames = []string{
	"Crown King", "Whiskey Row", "Camp Kipa", "Mingus Mountain",
	"Jerome", "Deadhorse Ranch", "Fort Tuthill", "Walnut Canyon",
}

var terrainTypes = []string{"climb", "descent", "rolling", "flat", "technical"}

var confidences = []string{"high", "medium", "low", ""}

// Generator builds synthetic raw analysis payloads.
type Generator struct {
	rng          *rand.Rand
	courseLength float64
}

// NewGenerator creates a Generator with a deterministic seed so repeated
// runs produce identical payloads.
func NewGenerator(seed int64, courseLength float64) *Generator {
	if courseLength <= 0 {
		courseLength = 250
	}
	return &Generator{
		rng:          rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic payloads on purpose
		courseLength: courseLength,
	}
}

// RunnerIDs returns n fresh synthetic runner ids.
func (g *Generator) RunnerIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "runner-" + uuid.NewString()[:8]
	}
	return ids
}

// Payload builds one raw analysis record per runner. Roughly one in five
// records is deliberately degenerate (missing sections, failed status,
// legacy field names) to exercise the per-runner degradation paths.
func (g *Generator) Payload(runnerIDs []string) model.RawAnalysisMap {
	runners := make(map[string]model.RawRunnerAnalysis, len(runnerIDs))
	for i, id := range runnerIDs {
		// The first runner is the primary record and must stay healthy.
		if i > 0 && g.rng.Intn(5) == 0 {
			runners[id] = g.degenerateRunner()
			continue
		}
		runners[id] = g.healthyRunner()
	}
	return model.RawAnalysisMap{Runners: runners}
}

func (g *Generator) healthyRunner() model.RawRunnerAnalysis {
	avgFatigue := 0.8 + g.rng.Float64()*0.8
	peakMile := g.courseLength * (0.5 + g.rng.Float64()*0.4)
	return model.RawRunnerAnalysis{
		Fatigue: &model.RawFatigueAnalysis{
			AverageFatigue:  &avgFatigue,
			PeakFatigueMile: &peakMile,
			Progression:     g.progression(),
		},
		Course: &model.RawCourseAnalysis{
			StrongestTerrain:   terrainTypes[g.rng.Intn(len(terrainTypes))],
			ElevationTolerance: []string{"high", "moderate", "low"}[g.rng.Intn(3)],
			Segments:           g.segments(),
		},
		Rest: g.restData(),
	}
}

func (g *Generator) degenerateRunner() model.RawRunnerAnalysis {
	switch g.rng.Intn(3) {
	case 0:
		return model.RawRunnerAnalysis{Status: "failed", Error: "no split data found"}
	case 1:
		// Course only, no fatigue or rest sections.
		return model.RawRunnerAnalysis{
			Course: &model.RawCourseAnalysis{
				StrongestTerrain: terrainTypes[g.rng.Intn(len(terrainTypes))],
				Segments:         g.segments(),
			},
		}
	default:
		// Fatigue only.
		avg := 1.0 + g.rng.Float64()
		return model.RawRunnerAnalysis{
			Fatigue: &model.RawFatigueAnalysis{AverageFatigue: &avg},
		}
	}
}

func (g *Generator) progression() []model.RawFatiguePoint {
	points := make([]model.RawFatiguePoint, 0, 20)
	for mile := 10.0; mile < g.courseLength; mile += g.courseLength / 20 {
		points = append(points, model.RawFatiguePoint{
			Mile:              mile,
			FatigueFactor:     1.0 + mile/g.courseLength*g.rng.Float64(),
			TerrainDifficulty: 1 + g.rng.Float64()*4,
		})
	}
	return points
}

func (g *Generator) segments() []model.RawSegmentPerformance {
	segs := make([]model.RawSegmentPerformance, 0, len(stationNames)-1)
	spacing := g.courseLength / float64(len(stationNames))
	for i := 0; i < len(stationNames)-1; i++ {
		start := spacing * float64(i)
		segs = append(segs, model.RawSegmentPerformance{
			SegmentName:       fmt.Sprintf("%s to %s", stationNames[i], stationNames[i+1]),
			StartMile:         start,
			EndMile:           start + spacing,
			TerrainType:       terrainTypes[g.rng.Intn(len(terrainTypes))],
			DifficultyRating:  1 + g.rng.Float64()*4,
			AveragePace:       12 + g.rng.Float64()*10,
			PerformanceScore:  g.rng.Float64(),
			ElevationGainFeet: g.rng.Float64() * 4000,
			ElevationLossFeet: g.rng.Float64() * 4000,
		})
	}
	return segs
}

func (g *Generator) restData() *model.RawRestData {
	spacing := g.courseLength / float64(len(stationNames))
	var events []model.RawRestEvent
	for i, name := range stationNames {
		if g.rng.Intn(3) == 0 {
			continue // no stop at this station
		}
		mile := spacing*float64(i) + (g.rng.Float64()-0.5)*4
		minutes := 5 + g.rng.Float64()*90
		pace := 15 + g.rng.Float64()*30
		ratio := 1.5 + g.rng.Float64()*2
		station := name
		ev := model.RawRestEvent{
			NearbyAidStation:     &station,
			EstimatedRestMinutes: &minutes,
			PaceRatio:            &ratio,
			Confidence:           confidences[g.rng.Intn(len(confidences))],
			IsSleepStation:       g.rng.Intn(4) == 0,
			RestType:             []string{"crew", "medical", "resupply", "other"}[g.rng.Intn(4)],
		}
		// Exercise both wire aliases for the mile and the pace.
		if g.rng.Intn(2) == 0 {
			ev.Mile = &mile
			ev.PaceDuring = &pace
		} else {
			ev.StartMile = &mile
			ev.ActualPace = &pace
		}
		events = append(events, ev)
	}
	return &model.RawRestData{Events: events}
}
