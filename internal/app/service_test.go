package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jasonjgarcia24/ultra-smart/internal/adapters/analytics"
	service "github.com/jasonjgarcia24/ultra-smart/internal/app"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/ingest"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

func fixturePayload() model.RawAnalysisMap {
	avg := 1.1
	return model.RawAnalysisMap{Runners: map[string]model.RawRunnerAnalysis{
		"x": {
			Fatigue: &model.RawFatigueAnalysis{AverageFatigue: &avg},
			Course:  &model.RawCourseAnalysis{StrongestTerrain: "climb"},
		},
		"y": {
			Course: &model.RawCourseAnalysis{StrongestTerrain: "flat"},
		},
	}}
}

func TestServiceCompare(t *testing.T) {
	Convey("Given a service backed by a static provider", t, func() {
		svc := service.New(
			service.WithProvider(analytics.NewStaticProvider(fixturePayload())),
			service.WithMaxSelectedRunners(3),
		)

		Convey("When comparing without inline analyses", func() {
			report, err := svc.Compare(context.Background(),
				model.ComparisonRequest{SelectedRunnerIDs: []string{"x", "y"}}, nil)

			Convey("Then analyses are acquired from the provider", func() {
				So(err, ShouldBeNil)
				So(report.PerRunnerSummary, ShouldHaveLength, 2)
				So(report.PerRunnerSummary["x"].AverageFatigue, ShouldEqual, "1.10")
			})
		})

		Convey("When comparing with inline analyses", func() {
			inline := fixturePayload()
			report, err := svc.Compare(context.Background(),
				model.ComparisonRequest{SelectedRunnerIDs: []string{"x"}}, &inline)

			Convey("Then the provider is bypassed", func() {
				So(err, ShouldBeNil)
				So(report.PerRunnerSummary, ShouldHaveLength, 1)
			})
		})

		Convey("When selecting more runners than allowed", func() {
			_, err := svc.Compare(context.Background(),
				model.ComparisonRequest{SelectedRunnerIDs: []string{"a", "b", "c", "d"}}, nil)

			Convey("Then the request is rejected as a validation failure", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ingest.ErrValidation), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service with no provider and no inline analyses", t, func() {
		svc := service.New()

		Convey("Then comparing fails with the no-base-URL kind", func() {
			_, err := svc.Compare(context.Background(),
				model.ComparisonRequest{SelectedRunnerIDs: []string{"x"}}, nil)
			So(errors.Is(err, analytics.ErrNoBaseURL), ShouldBeTrue)
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a fresh service", t, func() {
		svc := service.New(service.WithProvider(analytics.NewStaticProvider(fixturePayload())))

		_, err := svc.Compare(context.Background(),
			model.ComparisonRequest{SelectedRunnerIDs: []string{"x"}}, nil)
		So(err, ShouldBeNil)

		Convey("Then stats expose the engine counters", func() {
			stats := svc.GetStats()
			So(stats["comparisons_total"], ShouldEqual, int64(1))
		})
	})
}
