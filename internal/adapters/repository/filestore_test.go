package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/evaluation"
	"github.com/smartystreets/goconvey/convey"
)

func TestFileStore(t *testing.T) {
	convey.Convey("Given a file store in a temp directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		store := repository.NewFileStore()

		lr, err := classifier.NewLogistic([]string{"salary_match_binary", "degree_match_binary"}, []float64{1.5, 0.5}, -1)
		convey.So(err, convey.ShouldBeNil)
		artifact, err := classifier.NewArtifact(lr)
		convey.So(err, convey.ShouldBeNil)
		path := filepath.Join(dir, "models", "logistic_regression.json")

		convey.Convey("When saving and loading an artifact", func() {
			convey.So(store.Save(ctx, path, artifact), convey.ShouldBeNil)
			loaded, err := store.Load(ctx, path)

			convey.Convey("Then the envelope survives the round trip", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(loaded.ID, convey.ShouldEqual, artifact.ID)
				convey.So(loaded.ModelType, convey.ShouldEqual, classifier.KindLogisticRegression)
				convey.So(loaded.Columns, convey.ShouldResemble, artifact.Columns)
				convey.So(loaded.CreatedAt.Equal(artifact.CreatedAt), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When building the classifier from a model config", func() {
			convey.So(store.Save(ctx, path, artifact), convey.ShouldBeNil)
			c, err := store.Classifier(ctx, &config.ModelConfig{
				ModelType:     config.ModelLogisticRegression,
				ModelSavePath: path,
			})

			convey.Convey("Then the fitted model is restored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(c.Kind(), convey.ShouldEqual, classifier.KindLogisticRegression)
				convey.So(c.Columns(), convey.ShouldResemble, lr.Columns())
			})
		})

		convey.Convey("When the config asks for a different model type", func() {
			convey.So(store.Save(ctx, path, artifact), convey.ShouldBeNil)
			_, err := store.Classifier(ctx, &config.ModelConfig{
				ModelType:     config.ModelRandomForest,
				ModelSavePath: path,
			})

			convey.Convey("Then it is an invalid artifact", func() {
				convey.So(errors.Is(err, repository.ErrInvalidArtifact), convey.ShouldBeTrue)
				convey.So(errors.Is(err, config.ErrConfiguration), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the artifact file is missing", func() {
			_, err := store.Classifier(ctx, &config.ModelConfig{
				ModelType:     config.ModelRandomForest,
				ModelSavePath: filepath.Join(dir, "absent.json"),
			})

			convey.Convey("Then it is a configuration error", func() {
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
				convey.So(errors.Is(err, config.ErrConfiguration), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the artifact file is not JSON", func() {
			bad := filepath.Join(dir, "bad.json")
			convey.So(os.WriteFile(bad, []byte("{not json"), 0o600), convey.ShouldBeNil)
			_, err := store.Load(ctx, bad)

			convey.Convey("Then it is an invalid artifact", func() {
				convey.So(errors.Is(err, repository.ErrInvalidArtifact), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the model is rule based", func() {
			c, err := store.Classifier(ctx, &config.ModelConfig{ModelType: config.ModelRuleBased})

			convey.Convey("Then no file is needed and the default rule is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(c.Kind(), convey.ShouldEqual, classifier.KindRuleBased)
				rule, ok := c.(*classifier.Rule)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(rule.Expression(), convey.ShouldEqual, classifier.DefaultRule())
			})
		})

		convey.Convey("When the rule does not compile", func() {
			_, err := store.Classifier(ctx, &config.ModelConfig{ModelType: config.ModelRuleBased, Rule: "salary_diff >"})

			convey.Convey("Then it is a configuration error", func() {
				convey.So(errors.Is(err, config.ErrConfiguration), convey.ShouldBeTrue)
				convey.So(errors.Is(err, classifier.ErrInvalidRule), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the model type is unknown", func() {
			_, err := store.Classifier(ctx, &config.ModelConfig{ModelType: "svm"})

			convey.Convey("Then it is a configuration error", func() {
				convey.So(errors.Is(err, config.ErrConfiguration), convey.ShouldBeTrue)
				convey.So(errors.Is(err, classifier.ErrUnknownKind), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When saving an evaluation report into a new directory", func() {
			reportPath := filepath.Join(dir, "evaluation", "nested", "rule_based.json")
			err := store.SaveReport(ctx, reportPath, evaluation.Report{
				ModelType:   "rule_based",
				TestMetrics: evaluation.Metrics{Accuracy: 0.75},
			})

			convey.Convey("Then the JSON file is written", func() {
				convey.So(err, convey.ShouldBeNil)
				raw, err := os.ReadFile(reportPath)
				convey.So(err, convey.ShouldBeNil)
				var back evaluation.Report
				convey.So(json.Unmarshal(raw, &back), convey.ShouldBeNil)
				convey.So(back.TestMetrics.Accuracy, convey.ShouldEqual, 0.75)
			})
		})
	})
}
