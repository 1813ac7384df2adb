package analytics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jasonjgarcia24/ultra-smart/internal/adapters/analytics"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

func TestHTTPProviderFetch(t *testing.T) {
	Convey("Given a producer that knows some runners and not others", t, func() {
		avg := 1.2
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/runner/x/analysis":
				_ = json.NewEncoder(w).Encode(model.RawRunnerAnalysis{
					Fatigue: &model.RawFatigueAnalysis{AverageFatigue: &avg},
				})
			case "/api/runner/slow/analysis":
				time.Sleep(50 * time.Millisecond)
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		provider := analytics.NewHTTPProvider(srv.URL, analytics.WithConcurrency(2))

		Convey("When fetching a mixed set of runners", func() {
			out, err := provider.Fetch(context.Background(), []string{"x", "ghost"})

			Convey("Then the result covers every requested runner", func() {
				So(err, ShouldBeNil)
				So(out.Runners, ShouldHaveLength, 2)
			})

			Convey("And the known runner decodes", func() {
				So(out.Runners["x"].Fatigue, ShouldNotBeNil)
				So(*out.Runners["x"].Fatigue.AverageFatigue, ShouldEqual, 1.2)
			})

			Convey("And the unknown runner becomes a failed-record sentinel", func() {
				So(out.Runners["ghost"].Failed(), ShouldBeTrue)
				So(out.Runners["ghost"].Error, ShouldContainSubstring, "404")
			})
		})

		Convey("When fetching more runners than the concurrency bound", func() {
			out, err := provider.Fetch(context.Background(), []string{"x", "slow", "ghost", "x2"})

			Convey("Then all fetches still complete", func() {
				So(err, ShouldBeNil)
				So(out.Runners, ShouldHaveLength, 4)
			})
		})
	})

	Convey("Given a provider without a base URL", t, func() {
		provider := analytics.NewHTTPProvider("")

		Convey("Then fetching fails outright", func() {
			_, err := provider.Fetch(context.Background(), []string{"x"})
			So(err, ShouldEqual, analytics.ErrNoBaseURL)
		})
	})
}

func TestStaticProvider(t *testing.T) {
	Convey("Given a static payload", t, func() {
		payload := model.RawAnalysisMap{Runners: map[string]model.RawRunnerAnalysis{
			"x": {Course: &model.RawCourseAnalysis{StrongestTerrain: "climb"}},
			"y": {},
		}}
		provider := analytics.NewStaticProvider(payload)

		Convey("When fetching a subset", func() {
			out, err := provider.Fetch(context.Background(), []string{"x", "ghost"})

			Convey("Then only known runners appear; absence drives degradation downstream", func() {
				So(err, ShouldBeNil)
				So(out.Runners, ShouldHaveLength, 1)
				So(out.Runners, ShouldContainKey, "x")
			})
		})
	})

	Convey("Given a failed static payload", t, func() {
		provider := analytics.NewStaticProvider(model.RawAnalysisMap{Status: "failed", Error: "nope"})

		Convey("Then the failure sentinel passes through", func() {
			out, err := provider.Fetch(context.Background(), []string{"x"})
			So(err, ShouldBeNil)
			So(out.Failed(), ShouldBeTrue)
		})
	})
}
