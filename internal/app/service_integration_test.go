package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/okian/theta/internal/adapters/repository"
	service "github.com/okian/theta/internal/app"
	"github.com/okian/theta/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	ctx := context.Background()
	inputs := []model.ItemInput{
		{ID: "q1", Probability: 0.3},
		{ID: "q2", Probability: 0.5},
		{ID: "q3", Probability: 0.8},
	}

	Convey("Given a full pipeline writing through the artifact store", t, func() {
		path := filepath.Join(t.TempDir(), "calibration.json")
		svc := service.New(
			service.WithSeed(99),
			service.WithPopulationSize(5000),
			service.WithQuantileStep(0.5),
			service.WithWorkerCount(4),
		)
		store := repository.NewFileStore(path)

		Convey("When the pipeline runs and the artifact is persisted", func() {
			artifact, err := svc.Run(ctx, inputs)
			So(err, ShouldBeNil)
			So(store.Write(ctx, artifact), ShouldBeNil)

			got, readErr := store.Read(ctx)

			Convey("Then the stored artifact should match the run", func() {
				So(readErr, ShouldBeNil)
				So(got.Version, ShouldEqual, artifact.Version)
				So(got.RunID, ShouldEqual, artifact.RunID)
				So(got.Seed, ShouldEqual, 99)
				So(got.PopulationSize, ShouldEqual, 5000)
				So(got.QuestionIDs, ShouldResemble, []string{"q1", "q2", "q3"})
				So(len(got.ThetaQuantiles), ShouldEqual, 201)
			})

			Convey("And reassembled items should carry the run parameters", func() {
				items := got.Items()
				So(len(items), ShouldEqual, 3)
				for i, item := range items {
					So(item.ID, ShouldEqual, inputs[i].ID)
					So(item.Discrimination, ShouldBeBetweenOrEqual, 0.75, 2.25)
				}
			})

			Convey("And the file should exist on disk", func() {
				_, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When two runs with identical settings are persisted", func() {
			first, err1 := svc.Run(ctx, inputs)
			second, err2 := svc.Run(ctx, inputs)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)

			Convey("Then the numeric payloads should be identical", func() {
				So(second.Discriminations, ShouldResemble, first.Discriminations)
				So(second.Difficulties, ShouldResemble, first.Difficulties)
				So(second.ThetaQuantiles, ShouldResemble, first.ThetaQuantiles)
			})
		})
	})
}
