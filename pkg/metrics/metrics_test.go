package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/jasonjgarcia24/ultra-smart/pkg/metrics"
)

func TestManagerOptions(t *testing.T) {
	Convey("Given a manager with custom options", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("pipeline"),
			metrics.WithHistogramBuckets([]float64{1, 10, 100}),
			metrics.WithMetricsEnabled(true),
		)

		Convey("Then construction registers collectors on the given registry", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Histograms and counters register lazily for vecs; plain
			// collectors appear immediately.
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestPackageLevelRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then recording helpers never panic", func() {
			So(func() {
				metrics.RecordComparison(12.5, 3)
				metrics.RecordDegradedRunner()
				metrics.RecordValidationFailure()
				metrics.RecordRestClustering(4, 11)
				metrics.RecordPlaceholder()
				metrics.RecordAnalyticsFetch("ok", 20)
				metrics.RecordAnalyticsFetch("failed", 35)
				metrics.RecordHTTPRequest("compare", "POST", "200")
				metrics.RecordHTTPRequestDuration("compare", "POST", "200", 8.25)
			}, ShouldNotPanic)
		})

		Convey("And the registry gathers the recorded families", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names, ShouldContainKey, "ultrasmart_comparison_requests_total")
			So(names, ShouldContainKey, "ultrasmart_rest_clusters_per_request")
			So(names, ShouldContainKey, "ultrasmart_http_requests_total")
			So(names, ShouldContainKey, "ultrasmart_analytics_fetches_total")
		})
	})
}
