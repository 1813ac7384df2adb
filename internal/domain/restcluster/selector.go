package restcluster

import (
	"math"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// SelectAll returns exactly one record per selected runner for a cluster:
// the runner's representative event, or an explicit placeholder when the
// runner contributed nothing. Never fewer, never more.
func SelectAll(cl Cluster, selected []string) map[string]model.RestRecord {
	out := make(map[string]model.RestRecord, len(selected))
	for _, id := range selected {
		out[id] = Select(cl, id)
	}
	return out
}

// Select picks the representative rest record for one runner in a cluster.
//
// Zero contributed events yields a placeholder carrying the cluster's mean
// mile and aid-station name, tagged no-rest-detected, so every cluster row
// stays fully populated. With multiple candidates a strict total order
// applies pairwise: higher confidence tier wins; on tie the higher observed
// rest pace wins (the stronger rest signal); on tie the event closest to
// the cluster mean wins. Remaining ties keep the earlier candidate.
func Select(cl Cluster, runnerID string) model.RestRecord {
	var best *model.RestEvent
	for i := range cl.Members {
		if cl.Members[i].RunnerID != runnerID {
			continue
		}
		e := &cl.Members[i].Event
		if best == nil || prefer(*e, *best, cl.MeanMile) {
			best = e
		}
	}

	if best == nil {
		return model.RestRecord{
			RunnerID:       runnerID,
			Mile:           cl.MeanMile,
			AidStation:     cl.AidStation,
			NoRestDetected: true,
		}
	}
	return model.RestRecord{
		RunnerID:             runnerID,
		Mile:                 best.Mile,
		AidStation:           best.AidStation,
		Confidence:           best.Confidence,
		RestType:             best.RestType,
		EstimatedRestMinutes: best.EstimatedRestMinutes,
		ObservedPace:         best.ObservedPace,
		IsSleepStation:       best.IsSleepStation,
	}
}

// prefer reports whether a strictly beats b under the selection order.
func prefer(a, b model.RestEvent, meanMile float64) bool {
	if a.Confidence.Rank() != b.Confidence.Rank() {
		return a.Confidence.Rank() > b.Confidence.Rank()
	}
	if a.ObservedPace != b.ObservedPace {
		return a.ObservedPace > b.ObservedPace
	}
	return math.Abs(a.Mile-meanMile) < math.Abs(b.Mile-meanMile)
}
