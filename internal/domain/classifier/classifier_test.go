package classifier_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/features"
	. "github.com/smartystreets/goconvey/convey"
)

func matrix(rows ...[]float64) features.Matrix {
	return features.Matrix{Columns: features.DefaultColumns(), Rows: rows}
}

// all gates open, salary_diff 0.1
var matchingRow = []float64{1, 0.1, 1, 2, 1, 1, 0, 1, 1, 1}

// salary gate closed
var salaryMissRow = []float64{0, -0.2, 5, 3, 1, 1, 0, 1, 1, 0}

func TestParseKind(t *testing.T) {
	Convey("Given model type names", t, func() {
		for _, name := range []string{"logistic_regression", "random_forest", "rule_based"} {
			k, err := classifier.ParseKind(name)
			So(err, ShouldBeNil)
			So(k.String(), ShouldEqual, name)
		}

		Convey("When the name is unknown", func() {
			_, err := classifier.ParseKind("svm")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, classifier.ErrUnknownKind), ShouldBeTrue)
			})
		})
	})
}

func TestRule(t *testing.T) {
	Convey("Given the default rule", t, func() {
		r, err := classifier.NewRule("", nil)
		So(err, ShouldBeNil)

		Convey("When classifying a matching and a non-matching row", func() {
			labels, scores, err := classifier.Classify(r, matrix(matchingRow, salaryMissRow))

			Convey("Then labels and binary scores follow the gates", func() {
				So(err, ShouldBeNil)
				So(labels, ShouldResemble, []bool{true, false})
				So(scores, ShouldResemble, []float64{1, 0})
				So(r.Kind(), ShouldEqual, classifier.KindRuleBased)
				So(r.Expression(), ShouldContainSubstring, "language_must_have_match_binary == 1.0")
			})
		})

		Convey("When the matrix lacks a declared column", func() {
			_, err := r.Predict(features.Matrix{Columns: []string{"salary_match_binary"}, Rows: [][]float64{{1}}})

			Convey("Then it is a transformation error", func() {
				So(errors.Is(err, features.ErrTransformation), ShouldBeTrue)
			})
		})
	})

	Convey("Given a custom rule", t, func() {
		r, err := classifier.NewRule("salary_diff >= 0.0 && language_good2have_count > 0.0", nil)
		So(err, ShouldBeNil)

		labels, err := r.Predict(matrix(matchingRow, salaryMissRow))
		So(err, ShouldBeNil)
		So(labels, ShouldResemble, []bool{true, false})
	})

	Convey("Given malformed rules", t, func() {
		_, syntax := classifier.NewRule("salary_match_binary ==", nil)
		_, unknown := classifier.NewRule("years_experience > 2.0", nil)
		_, nonBool := classifier.NewRule("salary_diff * 2.0", nil)

		Convey("Then each is an invalid rule", func() {
			So(errors.Is(syntax, classifier.ErrInvalidRule), ShouldBeTrue)
			So(errors.Is(unknown, classifier.ErrInvalidRule), ShouldBeTrue)
			So(errors.Is(nonBool, classifier.ErrInvalidRule), ShouldBeTrue)
		})
	})
}

func TestLogistic(t *testing.T) {
	Convey("Given a logistic regression on two columns", t, func() {
		cols := []string{"salary_match_binary", "degree_match_binary"}
		l, err := classifier.NewLogistic(cols, []float64{2, 1}, -1.5)
		So(err, ShouldBeNil)

		Convey("When scoring the default matrix", func() {
			probs, err := l.PredictProba(matrix(matchingRow, salaryMissRow))
			labels, _ := l.Predict(matrix(matchingRow, salaryMissRow))

			Convey("Then columns are bound by name", func() {
				So(err, ShouldBeNil)
				// z = -1.5 + 2 + 1 = 1.5 ; z = -1.5 + 0 + 1 = -0.5
				So(probs[0], ShouldAlmostEqual, 0.8175744761936437, 1e-12)
				So(probs[1], ShouldAlmostEqual, 0.3775406687981454, 1e-12)
				So(labels, ShouldResemble, []bool{true, false})
			})
		})

		Convey("When a column is missing from the matrix", func() {
			_, err := l.PredictProba(features.Matrix{Columns: []string{"salary_match_binary"}, Rows: [][]float64{{1}}})

			Convey("Then it is a transformation error", func() {
				So(errors.Is(err, features.ErrTransformation), ShouldBeTrue)
			})
		})
	})

	Convey("Given mismatched coefficients", t, func() {
		_, err := classifier.NewLogistic([]string{"a", "b"}, []float64{1}, 0)
		So(errors.Is(err, classifier.ErrInvalidModel), ShouldBeTrue)
		_, err = classifier.NewLogistic(nil, nil, 0)
		So(errors.Is(err, classifier.ErrInvalidModel), ShouldBeTrue)
	})

	Convey("Given non-finite weights", t, func() {
		_, err := classifier.NewLogistic([]string{"a"}, []float64{math.NaN()}, 0)
		So(errors.Is(err, classifier.ErrInvalidModel), ShouldBeTrue)
		_, err = classifier.NewLogistic([]string{"a"}, []float64{1}, math.Inf(-1))
		So(errors.Is(err, classifier.ErrInvalidModel), ShouldBeTrue)
	})

	Convey("Given huge opposite coefficients", t, func() {
		l, err := classifier.NewLogistic(
			[]string{features.ColTalentSalaryBin, features.ColJobMaxSalaryBin},
			[]float64{math.MaxFloat64, -math.MaxFloat64}, 0)
		So(err, ShouldBeNil)

		Convey("Then an overflowing row is an error, not a NaN score", func() {
			_, err := l.PredictProba(matrix(salaryMissRow))
			So(errors.Is(err, classifier.ErrInvalidModel), ShouldBeTrue)
		})
	})
}

func stump(feature int, threshold float64, left, right [2]float64) classifier.Tree {
	return classifier.Tree{Nodes: []classifier.Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Left: classifier.Leaf, Right: classifier.Leaf, Value: left},
		{Left: classifier.Leaf, Right: classifier.Leaf, Value: right},
	}}
}

func TestForest(t *testing.T) {
	Convey("Given a forest of two stumps", t, func() {
		cols := []string{"salary_match_binary", "language_good2have_count"}
		f, err := classifier.NewForest(cols, []classifier.Tree{
			stump(0, 0.5, [2]float64{9, 1}, [2]float64{2, 8}),
			stump(1, 0.5, [2]float64{6, 4}, [2]float64{0, 10}),
		})
		So(err, ShouldBeNil)

		Convey("When scoring rows", func() {
			probs, err := f.PredictProba(matrix(matchingRow, salaryMissRow))
			labels, _ := f.Predict(matrix(matchingRow, salaryMissRow))

			Convey("Then the leaf shares are averaged", func() {
				So(err, ShouldBeNil)
				// row 0: (0.8 + 1.0)/2 ; row 1: (0.1 + 0.4)/2
				So(probs[0], ShouldAlmostEqual, 0.9, 1e-12)
				So(probs[1], ShouldAlmostEqual, 0.25, 1e-12)
				So(labels, ShouldResemble, []bool{true, false})
			})
		})
	})

	Convey("Given a value exactly at the threshold", t, func() {
		f, err := classifier.NewForest([]string{"salary_diff"}, []classifier.Tree{
			stump(0, 0.1, [2]float64{0, 1}, [2]float64{1, 0}),
		})
		So(err, ShouldBeNil)

		probs, err := f.PredictProba(matrix(matchingRow))
		So(err, ShouldBeNil)
		So(probs[0], ShouldEqual, 1.0)
	})

	Convey("Given malformed trees", t, func() {
		cols := []string{"salary_diff"}
		_, noTrees := classifier.NewForest(cols, nil)
		_, empty := classifier.NewForest(cols, []classifier.Tree{{}})
		_, badFeature := classifier.NewForest(cols, []classifier.Tree{stump(3, 0, [2]float64{}, [2]float64{})})
		_, cycle := classifier.NewForest(cols, []classifier.Tree{{Nodes: []classifier.Node{{Feature: 0, Left: 0, Right: 0}}}})

		Convey("Then each is an invalid model", func() {
			for _, err := range []error{noTrees, empty, badFeature, cycle} {
				So(errors.Is(err, classifier.ErrInvalidModel), ShouldBeTrue)
			}
		})
	})
}

type shortClassifier struct{ classifier.Classifier }

func (shortClassifier) Predict(features.Matrix) ([]bool, error)         { return []bool{true}, nil }
func (shortClassifier) PredictProba(features.Matrix) ([]float64, error) { return []float64{1}, nil }
func (shortClassifier) Kind() classifier.Kind                            { return classifier.KindRuleBased }

type failingClassifier struct{ shortClassifier }

func (failingClassifier) Predict(features.Matrix) ([]bool, error) { return nil, errors.New("boom") }

func TestClassify(t *testing.T) {
	Convey("Given a classifier returning too few rows", t, func() {
		_, _, err := classifier.Classify(shortClassifier{}, matrix(matchingRow, salaryMissRow))

		Convey("Then it is a transformation error", func() {
			So(errors.Is(err, features.ErrTransformation), ShouldBeTrue)
		})
	})

	Convey("Given a classifier that fails", t, func() {
		_, _, err := classifier.Classify(failingClassifier{}, matrix(matchingRow))

		Convey("Then the failure is wrapped as a transformation error", func() {
			So(errors.Is(err, features.ErrTransformation), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "boom")
		})
	})
}

func TestArtifact(t *testing.T) {
	Convey("Given fitted classifiers", t, func() {
		l, _ := classifier.NewLogistic([]string{"salary_match_binary"}, []float64{3}, -1)
		f, _ := classifier.NewForest([]string{"salary_diff"}, []classifier.Tree{stump(0, 0, [2]float64{1, 0}, [2]float64{0, 1})})
		r, _ := classifier.NewRule("salary_match_binary == 1.0", nil)

		for _, c := range []classifier.Classifier{l, f, r} {
			a, err := classifier.NewArtifact(c)
			So(err, ShouldBeNil)
			So(a.ID, ShouldNotBeEmpty)
			So(a.ModelType, ShouldEqual, c.Kind())

			raw, err := json.Marshal(a)
			So(err, ShouldBeNil)
			var back classifier.Artifact
			So(json.Unmarshal(raw, &back), ShouldBeNil)

			rebuilt, err := back.Build()
			So(err, ShouldBeNil)
			So(rebuilt.Kind(), ShouldEqual, c.Kind())

			want, _ := c.PredictProba(matrix(matchingRow, salaryMissRow))
			got, _ := rebuilt.PredictProba(matrix(matchingRow, salaryMissRow))
			So(got, ShouldResemble, want)
		}
	})

	Convey("Given artifacts missing their parameters", t, func() {
		_, errLR := classifier.Artifact{ModelType: classifier.KindLogisticRegression, Columns: []string{"a"}}.Build()
		_, errRF := classifier.Artifact{ModelType: classifier.KindRandomForest, Columns: []string{"a"}}.Build()
		_, errKind := classifier.Artifact{ModelType: "svm"}.Build()

		So(errors.Is(errLR, classifier.ErrInvalidModel), ShouldBeTrue)
		So(errors.Is(errRF, classifier.ErrInvalidModel), ShouldBeTrue)
		So(errors.Is(errKind, classifier.ErrUnknownKind), ShouldBeTrue)
	})
}
