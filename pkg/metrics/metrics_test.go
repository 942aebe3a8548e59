package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording pipeline metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordItemCalibrated()
					RecordCalibrationError()
					RecordRespondentsSimulated(100)
					RecordEstimationIterations(7)
					UpdateWorkerCount(4)
					UpdateQuantileTableSize(1001)
					RecordPipelineRun()
					RecordPipelineError()
					RecordStageDuration("calibrate", 12.5)
					RecordStageDuration("simulate", 250.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestExportTextfile(t *testing.T) {
	Convey("Given a populated registry", t, func() {
		RecordItemCalibrated()
		RecordPipelineRun()

		Convey("When exporting to a textfile", func() {
			path := filepath.Join(t.TempDir(), "theta.prom")
			err := ExportTextfile(path)

			Convey("Then the file should contain exposition output", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "theta_calibration_items_calibrated_total")
			})
		})

		Convey("When exporting to an unwritable path", func() {
			err := ExportTextfile(filepath.Join(t.TempDir(), "missing", "theta.prom"))

			Convey("Then it should surface ErrExportFailed", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, ErrExportFailed.Error())
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When fetching the registry", func() {
			registry := GetRegistry()

			Convey("Then it should be the custom registry", func() {
				So(registry, ShouldNotBeNil)
				So(registry, ShouldEqual, customRegistry)
			})
		})
	})
}
