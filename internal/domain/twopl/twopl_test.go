package twopl_test

import (
	"testing"

	twopl "github.com/okian/theta/internal/domain/twopl"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSigmoid(t *testing.T) {
	Convey("Given the logistic function", t, func() {
		Convey("Then it should be 0.5 at zero", func() {
			So(twopl.Sigmoid(0), ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("Then it should saturate in the tails", func() {
			So(twopl.Sigmoid(50), ShouldAlmostEqual, 1.0, 1e-12)
			So(twopl.Sigmoid(-50), ShouldAlmostEqual, 0.0, 1e-12)
		})

		Convey("Then it should be symmetric around zero", func() {
			So(twopl.Sigmoid(1.7)+twopl.Sigmoid(-1.7), ShouldAlmostEqual, 1.0, 1e-12)
		})
	})
}

func TestLogit(t *testing.T) {
	Convey("Given the logit function", t, func() {
		Convey("Then it should invert the sigmoid", func() {
			for _, p := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
				So(twopl.Sigmoid(twopl.Logit(p)), ShouldAlmostEqual, p, 1e-12)
			}
		})

		Convey("Then logit(0.5) should be 0", func() {
			So(twopl.Logit(0.5), ShouldAlmostEqual, 0.0, 1e-12)
		})
	})
}

func TestProb(t *testing.T) {
	Convey("Given the 2PL response model", t, func() {
		Convey("When ability equals difficulty", func() {
			Convey("Then endorsement probability is 0.5", func() {
				So(twopl.Prob(1.2, 0.8, 0.8), ShouldAlmostEqual, 0.5, 1e-12)
			})
		})

		Convey("When ability rises above difficulty", func() {
			Convey("Then endorsement probability rises", func() {
				So(twopl.Prob(1.2, 0.0, 1.0), ShouldBeGreaterThan, twopl.Prob(1.2, 0.0, 0.0))
			})
		})

		Convey("When discrimination grows", func() {
			Convey("Then the curve steepens away from the difficulty", func() {
				So(twopl.Prob(2.25, 0.0, 1.0), ShouldBeGreaterThan, twopl.Prob(0.75, 0.0, 1.0))
			})
		})
	})
}
