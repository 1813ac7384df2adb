// Package restcluster aligns rest events detected at different miles and
// precisions across runners into comparable aid-station-anchored clusters,
// and picks one representative record per runner per cluster.
package restcluster

import (
	"math"
	"sort"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// defaultMileThreshold is the maximum distance between an event's mile and
// a cluster's running mean mile for the event to join the cluster.
const defaultMileThreshold = 5.0

// Member is one runner's rest event inside a cluster.
type Member struct {
	RunnerID string
	Event    model.RestEvent
}

// Cluster groups rest events sharing an aid-station identity within the
// mile threshold of the running mean. Runtime-only; rebuilt per request.
type Cluster struct {
	AidStation string
	MeanMile   float64
	Members    []Member
}

// Clusterer builds rest clusters from per-runner analyses.
type Clusterer struct {
	threshold float64
}

// Option applies a configuration option to the Clusterer.
type Option func(*Clusterer)

// WithMileThreshold overrides the cluster admission distance.
func WithMileThreshold(miles float64) Option {
	return func(c *Clusterer) {
		if miles > 0 {
			c.threshold = miles
		}
	}
}

// New constructs a Clusterer.
func New(opts ...Option) *Clusterer {
	c := &Clusterer{threshold: defaultMileThreshold}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cluster flattens the selected runners' rest events, drops events without
// a resolvable mile, and groups the rest with a single greedy pass.
//
// The pass is a local, order-dependent heuristic, not a globally optimal
// clustering: events are visited in ascending mile order (stable on ties,
// preserving selection order and per-runner event order) and join the first
// open cluster with the same aid-station identity whose running mean mile
// is within the threshold. Boundary cases near the threshold resolve by
// processing order, not by minimizing within-cluster variance.
//
// Returned clusters are sorted ascending by final mean mile.
func (c *Clusterer) Cluster(analyses map[string]model.RunnerAnalysis, selected []string) []Cluster {
	var events []Member
	for _, id := range selected {
		ra, ok := analyses[id]
		if !ok {
			continue
		}
		for _, e := range ra.Rest.Events {
			if e.MileKnown {
				events = append(events, Member{RunnerID: id, Event: e})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Event.Mile < events[j].Event.Mile
	})

	var clusters []*Cluster
	for _, m := range events {
		target := c.match(clusters, m.Event)
		if target == nil {
			clusters = append(clusters, &Cluster{
				AidStation: m.Event.AidStation,
				MeanMile:   m.Event.Mile,
				Members:    []Member{m},
			})
			continue
		}
		target.Members = append(target.Members, m)
		// Incremental running mean; admission always compares against the
		// mean as of this point in the pass.
		n := float64(len(target.Members))
		target.MeanMile += (m.Event.Mile - target.MeanMile) / n
	}

	out := make([]Cluster, len(clusters))
	for i, cl := range clusters {
		out[i] = *cl
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanMile < out[j].MeanMile
	})
	return out
}

// match returns the first open cluster the event can join: identical
// aid-station identity and mile distance within the threshold.
func (c *Clusterer) match(clusters []*Cluster, e model.RestEvent) *Cluster {
	for _, cl := range clusters {
		if cl.AidStation != e.AidStation {
			continue
		}
		if math.Abs(cl.MeanMile-e.Mile) <= c.threshold {
			return cl
		}
	}
	return nil
}
