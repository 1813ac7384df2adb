// Package segments computes cross-runner per-segment statistics and ranks
// the most critical course segments.
package segments

import (
	"sort"

	"github.com/samber/lo"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// defaultCriticalLimit caps the critical-segments ranking.
const defaultCriticalLimit = 5

// Aggregator aggregates segment performance across selected runners.
type Aggregator struct {
	criticalLimit int
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCriticalLimit overrides the size of the critical-segments ranking.
func WithCriticalLimit(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.criticalLimit = n
		}
	}
}

// New constructs an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{criticalLimit: defaultCriticalLimit}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// segmentStats accumulates one distinct segment name across runners.
type segmentStats struct {
	name           string
	startMile      float64
	endMile        float64
	terrainType    string
	difficultySum  float64
	performanceSum float64
	runnerCount    int
	paceSum        float64
	paceCount      int
	perRunnerPace  map[string]float64
}

// Aggregate groups the selected runners' segments by name and derives the
// critical-segments ranking plus the aligned comparison table.
//
// Runners missing a segment are excluded from its means, not treated as
// zero; per-segment pace averages only runners reporting a positive pace.
// The ranking sorts by mean difficulty descending with ties resolved by
// segment name, so the order never depends on which runner reported a
// segment first. The table keeps first-encountered order instead, following
// the course as the selected runners report it.
func (a *Aggregator) Aggregate(analyses map[string]model.RunnerAnalysis, selected []string) ([]model.CriticalSegment, []model.SegmentTableRow) {
	byName := make(map[string]*segmentStats)
	var order []*segmentStats

	for _, id := range selected {
		ra, ok := analyses[id]
		if !ok {
			continue
		}
		seen := make(map[string]bool, len(ra.Course.Segments))
		for _, s := range ra.Course.Segments {
			// One contribution per runner per segment name.
			if seen[s.SegmentName] {
				continue
			}
			seen[s.SegmentName] = true

			st, ok := byName[s.SegmentName]
			if !ok {
				st = &segmentStats{
					name:          s.SegmentName,
					startMile:     s.StartMile,
					endMile:       s.EndMile,
					terrainType:   s.TerrainType,
					perRunnerPace: make(map[string]float64),
				}
				byName[s.SegmentName] = st
				order = append(order, st)
			}
			st.difficultySum += s.DifficultyRating
			st.performanceSum += s.PerformanceScore
			st.runnerCount++
			if s.AveragePace > 0 {
				st.paceSum += s.AveragePace
				st.paceCount++
				st.perRunnerPace[id] = s.AveragePace
			}
		}
	}

	table := lo.Map(order, func(st *segmentStats, _ int) model.SegmentTableRow {
		row := model.SegmentTableRow{
			Name:            st.name,
			StartMile:       st.startMile,
			EndMile:         st.endMile,
			TerrainType:     st.terrainType,
			AvgDifficulty:   st.difficultySum / float64(st.runnerCount),
			PaceRunnerCount: st.paceCount,
			PerRunnerPace:   st.perRunnerPace,
		}
		if st.paceCount > 0 {
			row.AvgPace = st.paceSum / float64(st.paceCount)
		}
		return row
	})

	ranked := make([]*segmentStats, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		di := ranked[i].difficultySum / float64(ranked[i].runnerCount)
		dj := ranked[j].difficultySum / float64(ranked[j].runnerCount)
		if di != dj {
			return di > dj
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > a.criticalLimit {
		ranked = ranked[:a.criticalLimit]
	}
	critical := lo.Map(ranked, func(st *segmentStats, _ int) model.CriticalSegment {
		return model.CriticalSegment{
			Name:           st.name,
			AvgDifficulty:  st.difficultySum / float64(st.runnerCount),
			AvgPerformance: st.performanceSum / float64(st.runnerCount),
			RunnerCount:    st.runnerCount,
		}
	})

	return critical, table
}
