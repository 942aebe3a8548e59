package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	app "github.com/okian/theta/internal/app"
	"github.com/okian/theta/internal/config"
	"github.com/okian/theta/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

const testCatalog = `- id: q1
  probability: 0.5
- id: q2
  probability: 0.9
`

func setPipelineEnv(t *testing.T, catalogPath, outputPath, textfilePath string) {
	t.Helper()
	t.Setenv("THETA_CATALOG", catalogPath)
	t.Setenv("THETA_OUTPUT", outputPath)
	t.Setenv("THETA_METRICS_TEXTFILE", textfilePath)
	t.Setenv("THETA_POPULATION_SIZE", "1000")
	t.Setenv("THETA_QUANTILE_STEP", "1.0")
	t.Setenv("THETA_WORKER_COUNT", "2")
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("THETA_SEED", "7")
			t.Setenv("THETA_POPULATION_SIZE", "1000")
			t.Setenv("THETA_WORKER_COUNT", "4")

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 7)
				convey.So(cfg.PopulationSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithSeed(1),
					app.WithPopulationSize(100),
					app.WithWorkerCount(2),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRunEndToEnd(t *testing.T) {
	convey.Convey("Given a complete batch environment", t, func() {
		dir := t.TempDir()
		catalogPath := filepath.Join(dir, "questions.yaml")
		outputPath := filepath.Join(dir, "calibration.json")
		textfilePath := filepath.Join(dir, "theta.prom")
		convey.So(os.WriteFile(catalogPath, []byte(testCatalog), 0o600), convey.ShouldBeNil)
		setPipelineEnv(t, catalogPath, outputPath, textfilePath)

		convey.Convey("When the pipeline runs end to end", func() {
			code := run()

			convey.Convey("Then it should exit cleanly", func() {
				convey.So(code, convey.ShouldEqual, 0)
			})

			convey.Convey("Then the artifact should be on disk", func() {
				data, err := os.ReadFile(outputPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, `"thetaQuantiles"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"q1"`)
			})

			convey.Convey("Then the metrics textfile should be written", func() {
				data, err := os.ReadFile(textfilePath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "theta_calibration_pipeline_runs_total")
			})
		})
	})
}

func TestRunErrorHandling(t *testing.T) {
	convey.Convey("Given a missing catalog file", t, func() {
		dir := t.TempDir()
		setPipelineEnv(t, filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "out.json"), "")

		convey.Convey("When the pipeline runs", func() {
			code := run()

			convey.Convey("Then it should exit non-zero", func() {
				convey.So(code, convey.ShouldEqual, 1)
			})

			convey.Convey("And no artifact should be written", func() {
				_, err := os.Stat(filepath.Join(dir, "out.json"))
				convey.So(os.IsNotExist(err), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a catalog with an invalid probability", t, func() {
		dir := t.TempDir()
		catalogPath := filepath.Join(dir, "bad.yaml")
		convey.So(os.WriteFile(catalogPath, []byte("- id: q1\n  probability: 1.5\n"), 0o600), convey.ShouldBeNil)
		setPipelineEnv(t, catalogPath, filepath.Join(dir, "out.json"), "")

		convey.Convey("When the pipeline runs", func() {
			code := run()

			convey.Convey("Then it should exit non-zero", func() {
				convey.So(code, convey.ShouldEqual, 1)
			})
		})
	})
}
