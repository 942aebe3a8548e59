package quantile_test

import (
	"errors"
	"math/rand"
	"testing"

	quantile "github.com/okian/theta/internal/domain/quantile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given the quantile table builder", t, func() {
		Convey("When building from a shuffled sample at step 0.1", func() {
			rng := rand.New(rand.NewSource(1)) //nolint:gosec // fixed seed for a reproducible test sample
			sample := make([]float64, 10_000)
			for i := range sample {
				sample[i] = rng.NormFloat64()
			}
			table, err := quantile.Build(sample, 0.1)

			Convey("Then the table should have exactly 1001 entries", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 1001)
			})

			Convey("And the values should be monotone non-decreasing", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(table.Values); i++ {
					So(table.Values[i], ShouldBeGreaterThanOrEqualTo, table.Values[i-1])
				}
			})

			Convey("And the boundary entries should be the sample extremes", func() {
				So(err, ShouldBeNil)
				minVal, maxVal := sample[0], sample[0]
				for _, v := range sample {
					if v < minVal {
						minVal = v
					}
					if v > maxVal {
						maxVal = v
					}
				}
				So(table.Values[0], ShouldEqual, minVal)
				So(table.Values[len(table.Values)-1], ShouldEqual, maxVal)
			})

			Convey("And the input sample should be left untouched", func() {
				So(err, ShouldBeNil)
				resorted := false
				for i := 1; i < len(sample); i++ {
					if sample[i] < sample[i-1] {
						resorted = true
						break
					}
				}
				// A 10k-draw normal sample is not sorted.
				So(resorted, ShouldBeTrue)
			})
		})

		Convey("When building from a tiny known sample", func() {
			table, err := quantile.Build([]float64{3, 1, 2}, 25)

			Convey("Then interpolation between order statistics should hold", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 5)
				So(table.Values[0], ShouldAlmostEqual, 1.0, 1e-12)
				So(table.Values[1], ShouldAlmostEqual, 1.5, 1e-12) // idx 0.5 between 1 and 2
				So(table.Values[2], ShouldAlmostEqual, 2.0, 1e-12)
				So(table.Values[3], ShouldAlmostEqual, 2.5, 1e-12)
				So(table.Values[4], ShouldAlmostEqual, 3.0, 1e-12)
			})
		})

		Convey("When building from a single-element sample", func() {
			table, err := quantile.Build([]float64{1.5}, 50)

			Convey("Then every entry should be that element", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 3)
				for _, v := range table.Values {
					So(v, ShouldEqual, 1.5)
				}
			})
		})

		Convey("When the sample is empty", func() {
			_, err := quantile.Build(nil, 0.1)

			Convey("Then it should fail with ErrEmptySample", func() {
				So(errors.Is(err, quantile.ErrEmptySample), ShouldBeTrue)
			})
		})

		Convey("When the step is invalid", func() {
			for _, step := range []float64{0, -1, 101, 0.3} {
				_, err := quantile.Build([]float64{1, 2}, step)

				So(errors.Is(err, quantile.ErrInvalidStep), ShouldBeTrue)
			}
		})
	})
}

func TestPercentile(t *testing.T) {
	Convey("Given a built table", t, func() {
		table, err := quantile.Build([]float64{0, 1, 2, 3, 4}, 25)
		So(err, ShouldBeNil)

		Convey("When looking up exact steps", func() {
			So(table.Percentile(0), ShouldEqual, 0.0)
			So(table.Percentile(50), ShouldEqual, 2.0)
			So(table.Percentile(100), ShouldEqual, 4.0)
		})

		Convey("When looking up between steps", func() {
			Convey("Then the nearest step wins", func() {
				So(table.Percentile(60), ShouldEqual, table.Percentile(50))
				So(table.Percentile(70), ShouldEqual, table.Percentile(75))
			})
		})

		Convey("When looking up out of range", func() {
			Convey("Then the percentile is clamped", func() {
				So(table.Percentile(-5), ShouldEqual, table.Values[0])
				So(table.Percentile(250), ShouldEqual, table.Values[len(table.Values)-1])
			})
		})
	})
}
