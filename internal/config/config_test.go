package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jasonjgarcia24/ultra-smart/internal/config"
)

func TestDefaults(t *testing.T) {
	Convey("Given no environment overrides", t, func() {
		cfg := config.New()

		Convey("Then the defaults match the documented contract", func() {
			So(cfg.Addr, ShouldEqual, ":8090")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.ClusterMileThreshold, ShouldEqual, 5.0)
			So(cfg.CriticalSegmentLimit, ShouldEqual, 5)
			So(cfg.MaxSelectedRunners, ShouldEqual, 12)
			So(cfg.AnalyticsConcurrency, ShouldEqual, 4)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides with the ULTRA_ prefix", t, func() {
		t.Setenv("ULTRA_ADDR", ":9999")
		t.Setenv("ULTRA_CLUSTER_MILE_THRESHOLD", "2.5")
		t.Setenv("ULTRA_CRITICAL_SEGMENT_LIMIT", "3")

		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.ClusterMileThreshold, ShouldEqual, 2.5)
			So(cfg.CriticalSegmentLimit, ShouldEqual, 3)
		})

		Convey("And untouched keys keep their defaults", func() {
			So(cfg.MaxSelectedRunners, ShouldEqual, 12)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an invalid threshold override", t, func() {
		t.Setenv("ULTRA_CLUSTER_MILE_THRESHOLD", "-1")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with the invalid-config kind", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given an unreadable config file path", t, func() {
		t.Setenv("ULTRA_CONFIG", "/nonexistent/ultra.yaml")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with the load kind", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		f, err := os.CreateTemp(t.TempDir(), "ultra-*.yaml")
		So(err, ShouldBeNil)
		_, err = f.WriteString("addr: \":7070\"\nmax_selected_runners: 6\n")
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)
		t.Setenv("ULTRA_CONFIG", f.Name())

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values layer over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.MaxSelectedRunners, ShouldEqual, 6)
				So(cfg.CriticalSegmentLimit, ShouldEqual, 5)
			})
		})

		Convey("When the environment also overrides", func() {
			t.Setenv("ULTRA_ADDR", ":7171")
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7171")
			})
		})
	})
}
