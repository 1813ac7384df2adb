package model_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

func TestRawAnalysisMapDecoding(t *testing.T) {
	Convey("Given a failed top-level payload", t, func() {
		raw := []byte(`{"status":"failed","error":"backend exploded"}`)

		Convey("When decoding", func() {
			var m model.RawAnalysisMap
			err := json.Unmarshal(raw, &m)

			Convey("Then the failure sentinel is carried through", func() {
				So(err, ShouldBeNil)
				So(m.Failed(), ShouldBeTrue)
				So(m.Error, ShouldEqual, "backend exploded")
				So(m.Runners, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a record carrying only an error string", t, func() {
		raw := []byte(`{"runner-1": {"error": "Analysis failed: no split data"}}`)

		Convey("When decoding", func() {
			var m model.RawAnalysisMap
			err := json.Unmarshal(raw, &m)

			Convey("Then the bare-error shape counts as a failed record", func() {
				So(err, ShouldBeNil)
				So(m.Runners["runner-1"].Failed(), ShouldBeTrue)
				So(m.Runners["runner-1"].Error, ShouldContainSubstring, "no split data")
			})
		})
	})

	Convey("Given a record with an error string alongside data sections", t, func() {
		raw := []byte(`{"runner-1": {"error": "partial", "fatigue_analysis": {"average_fatigue": 1.1}}}`)

		var m model.RawAnalysisMap
		So(json.Unmarshal(raw, &m), ShouldBeNil)

		Convey("Then the data sections keep the record alive", func() {
			So(m.Runners["runner-1"].Failed(), ShouldBeFalse)
		})
	})

	Convey("Given a payload mapping runner ids to records", t, func() {
		raw := []byte(`{
			"runner-1": {"fatigue_analysis": {"average_fatigue": 1.4}},
			"runner-2": {"status": "failed", "error": "no split data"}
		}`)

		Convey("When decoding", func() {
			var m model.RawAnalysisMap
			err := json.Unmarshal(raw, &m)

			Convey("Then each record decodes independently", func() {
				So(err, ShouldBeNil)
				So(m.Failed(), ShouldBeFalse)
				So(m.Runners, ShouldHaveLength, 2)
				So(m.Runners["runner-1"].Fatigue, ShouldNotBeNil)
				So(*m.Runners["runner-1"].Fatigue.AverageFatigue, ShouldEqual, 1.4)
				So(m.Runners["runner-2"].Failed(), ShouldBeTrue)
			})
		})
	})
}

func TestRawRestDataDecoding(t *testing.T) {
	Convey("Given rest data as a bare event array", t, func() {
		raw := []byte(`[{"mile": 77.3, "nearby_aid_station": "Whiskey Row"}]`)

		Convey("When decoding", func() {
			var r model.RawRestData
			err := json.Unmarshal(raw, &r)

			Convey("Then it normalizes to the unwrapped form", func() {
				So(err, ShouldBeNil)
				So(r.Wrapped, ShouldBeFalse)
				So(r.Events, ShouldHaveLength, 1)
				So(*r.Events[0].Mile, ShouldEqual, 77.3)
			})
		})
	})

	Convey("Given rest data as a wrapped object", t, func() {
		raw := []byte(`{
			"rest_periods": [{"start_mile": 79.0}],
			"aid_station_stops": [{"station_name": "Whiskey Row", "mile": 79.0, "rest_duration_minutes": 20}],
			"aid_station_patterns": {"total_stops": 1}
		}`)

		Convey("When decoding", func() {
			var r model.RawRestData
			err := json.Unmarshal(raw, &r)

			Convey("Then events, stops and patterns all survive", func() {
				So(err, ShouldBeNil)
				So(r.Wrapped, ShouldBeTrue)
				So(r.Events, ShouldHaveLength, 1)
				So(*r.Events[0].StartMile, ShouldEqual, 79.0)
				So(r.AidStationStops, ShouldHaveLength, 1)
				So(r.Patterns, ShouldContainKey, "total_stops")
			})
		})
	})

	Convey("Given rest data using the rest_events key", t, func() {
		raw := []byte(`{"rest_events": [{"mile": 12.0}]}`)

		var r model.RawRestData
		So(json.Unmarshal(raw, &r), ShouldBeNil)
		So(r.Events, ShouldHaveLength, 1)
	})
}

func TestConfidenceOrdering(t *testing.T) {
	Convey("Given the confidence tiers", t, func() {
		Convey("Then they form a strict total order high > medium > low", func() {
			So(model.ConfidenceHigh.Rank(), ShouldBeGreaterThan, model.ConfidenceMedium.Rank())
			So(model.ConfidenceMedium.Rank(), ShouldBeGreaterThan, model.ConfidenceLow.Rank())
		})

		Convey("And absent or unknown values parse to the lowest tier", func() {
			So(model.ParseConfidence(""), ShouldEqual, model.ConfidenceLow)
			So(model.ParseConfidence("certainly"), ShouldEqual, model.ConfidenceLow)
			So(model.ParseConfidence("HIGH"), ShouldEqual, model.ConfidenceHigh)
			So(model.ParseConfidence(" medium "), ShouldEqual, model.ConfidenceMedium)
		})
	})
}

func TestParseRestType(t *testing.T) {
	Convey("Given wire rest type strings", t, func() {
		So(model.ParseRestType("crew"), ShouldEqual, model.RestTypeCrew)
		So(model.ParseRestType("MEDICAL"), ShouldEqual, model.RestTypeMedical)
		So(model.ParseRestType("resupply"), ShouldEqual, model.RestTypeResupply)
		So(model.ParseRestType(""), ShouldEqual, model.RestTypeOther)
		So(model.ParseRestType("nap"), ShouldEqual, model.RestTypeOther)
	})
}
