package restcluster_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/restcluster"
)

func member(id string, e model.RestEvent) restcluster.Member {
	return restcluster.Member{RunnerID: id, Event: e}
}

func TestSelectConfidenceWins(t *testing.T) {
	Convey("Given a runner with a low and a high confidence event in one cluster", t, func() {
		low := event(76.0, "Whiskey Row", model.ConfidenceLow)
		high := event(79.0, "Whiskey Row", model.ConfidenceHigh)

		Convey("Then the high confidence event wins regardless of order", func() {
			for _, members := range [][]restcluster.Member{
				{member("z", low), member("z", high)},
				{member("z", high), member("z", low)},
			} {
				cl := restcluster.Cluster{AidStation: "Whiskey Row", MeanMile: 77.5, Members: members}
				rec := restcluster.Select(cl, "z")
				So(rec.Confidence, ShouldEqual, model.ConfidenceHigh)
				So(rec.Mile, ShouldEqual, 79.0)
			}
		})
	})
}

func TestSelectPaceAndProximityTieBreaks(t *testing.T) {
	Convey("Given equal-confidence candidates with different observed pace", t, func() {
		slow := event(76.0, "Jerome", model.ConfidenceMedium)
		slow.ObservedPace = 18
		slower := event(79.0, "Jerome", model.ConfidenceMedium)
		slower.ObservedPace = 31

		cl := restcluster.Cluster{AidStation: "Jerome", MeanMile: 77.5,
			Members: []restcluster.Member{member("z", slow), member("z", slower)}}

		Convey("Then the higher pace wins as the stronger rest signal", func() {
			So(restcluster.Select(cl, "z").ObservedPace, ShouldEqual, 31.0)
		})
	})

	Convey("Given candidates tied on confidence and pace", t, func() {
		far := event(71.0, "Jerome", model.ConfidenceMedium)
		near := event(78.0, "Jerome", model.ConfidenceMedium)

		cl := restcluster.Cluster{AidStation: "Jerome", MeanMile: 77.0,
			Members: []restcluster.Member{member("z", far), member("z", near)}}

		Convey("Then the event closest to the cluster mean wins", func() {
			So(restcluster.Select(cl, "z").Mile, ShouldEqual, 78.0)
		})
	})
}

func TestSelectPlaceholder(t *testing.T) {
	Convey("Given a cluster the runner contributed nothing to", t, func() {
		cl := restcluster.Cluster{AidStation: "Whiskey Row", MeanMile: 78.15,
			Members: []restcluster.Member{member("x", event(78.15, "Whiskey Row", model.ConfidenceHigh))}}

		Convey("Then the runner still gets an explicit placeholder", func() {
			rec := restcluster.Select(cl, "w")
			So(rec.NoRestDetected, ShouldBeTrue)
			So(rec.Mile, ShouldEqual, 78.15)
			So(rec.AidStation, ShouldEqual, "Whiskey Row")
			So(rec.RunnerID, ShouldEqual, "w")
		})
	})
}

func TestSelectAllCompleteness(t *testing.T) {
	Convey("Given a cluster and a mixed selection of contributors and absentees", t, func() {
		cl := restcluster.Cluster{AidStation: "Camp Kipa", MeanMile: 30.0,
			Members: []restcluster.Member{
				member("a", event(29.0, "Camp Kipa", model.ConfidenceLow)),
				member("a", event(31.0, "Camp Kipa", model.ConfidenceHigh)),
				member("c", event(30.0, "Camp Kipa", model.ConfidenceMedium)),
			}}
		selected := []string{"a", "b", "c"}

		Convey("Then SelectAll emits exactly one record per selected runner", func() {
			out := restcluster.SelectAll(cl, selected)
			So(out, ShouldHaveLength, 3)
			So(out["a"].NoRestDetected, ShouldBeFalse)
			So(out["b"].NoRestDetected, ShouldBeTrue)
			So(out["c"].NoRestDetected, ShouldBeFalse)
		})
	})
}

func TestSelectionOrderIsTotal(t *testing.T) {
	Convey("Given synthetic candidate pairs over all attribute combinations", t, func() {
		confs := []model.Confidence{model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh}
		paces := []float64{0, 12, 25}
		miles := []float64{74.0, 77.0, 80.0}
		const meanMile = 77.0

		var candidates []model.RestEvent
		for _, c := range confs {
			for _, p := range paces {
				for _, m := range miles {
					e := event(m, "Jerome", c)
					e.ObservedPace = p
					candidates = append(candidates, e)
				}
			}
		}

		Convey("Then for any two distinct-attribute candidates exactly one wins, independent of order", func() {
			for i, a := range candidates {
				for j, b := range candidates {
					if i == j {
						continue
					}
					ab := restcluster.Cluster{AidStation: "Jerome", MeanMile: meanMile,
						Members: []restcluster.Member{member("z", a), member("z", b)}}
					ba := restcluster.Cluster{AidStation: "Jerome", MeanMile: meanMile,
						Members: []restcluster.Member{member("z", b), member("z", a)}}

					winAB := restcluster.Select(ab, "z")
					winBA := restcluster.Select(ba, "z")

					distinct := a.Confidence != b.Confidence ||
						a.ObservedPace != b.ObservedPace ||
						a.Mile != b.Mile
					if distinct && (a.Confidence != b.Confidence ||
						a.ObservedPace != b.ObservedPace ||
						absDiff(a.Mile, meanMile) != absDiff(b.Mile, meanMile)) {
						msg := fmt.Sprintf("pair %d/%d", i, j)
						So(winAB, ShouldResemble, winBA)
						SoMsg(msg, winAB.Mile == winBA.Mile, ShouldBeTrue)
					}
				}
			}
		})
	})
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
