package features_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// countingRunner runs every index sequentially and records that it was used.
type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	r.calls.Add(1)
	for i := n - 1; i >= 0; i-- {
		if err := fn(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func samplePair(talentID, jobID string) features.Pair {
	return features.Pair{
		Talent: model.Talent{
			TalentID:          talentID,
			Languages:         []model.Language{{Title: "German", Rating: "C2"}, {Title: "English", Rating: "B2"}},
			JobRoles:          []string{"customer-success-manager"},
			Seniority:         model.Ptr("midlevel"),
			SalaryExpectation: model.Ptr(45000),
			Degree:            model.Ptr("bachelor"),
		},
		Job: model.Job{
			JobID: jobID,
			Languages: []model.Language{
				{Title: "German", Rating: "C1", MustHave: true},
				{Title: "English", Rating: "B1"},
			},
			JobRoles:    []string{"customer-success-manager"},
			Seniorities: []string{"junior", "midlevel"},
			MaxSalary:   model.Ptr(50000),
			MinDegree:   model.Ptr("apprenticeship"),
		},
	}
}

func TestPipelineTransform(t *testing.T) {
	Convey("Given a pipeline and a well-formed pair", t, func() {
		ctx := context.Background()
		p := features.New()

		Convey("When transforming it", func() {
			table, err := p.Transform(ctx, []features.Pair{samplePair("t1", "j1")})

			Convey("Then every scoring column is present with the expected values", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 1)
				m, err := table.Select(features.DefaultColumns())
				So(err, ShouldBeNil)
				So(m.Columns, ShouldResemble, features.DefaultColumns())
				So(m.Rows[0], ShouldResemble, []float64{1, 0.1, 1, 2, 1, 1, 0, 1, 1, 1})
			})

			Convey("And the intermediate ordinals are kept for inspection", func() {
				row := table.Rows[0]
				So(row[features.ColTalentDegreeLabel], ShouldEqual, 2.0)
				So(row[features.ColJobMinDegreeLabel], ShouldEqual, 1.0)
				So(row[features.ColTalentSeniorityLabel], ShouldEqual, 2.0)
			})
		})

		Convey("When transforming the same pair twice", func() {
			a, errA := p.TransformOne(ctx, samplePair("t1", "j1"))
			b, errB := p.TransformOne(ctx, samplePair("t1", "j1"))

			Convey("Then the rows are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
			})
		})

		Convey("When transforming a pair with only ids", func() {
			row, err := p.TransformOne(ctx, features.Pair{
				Talent: model.Talent{TalentID: "t"},
				Job:    model.Job{JobID: "j"},
			})

			Convey("Then defaults drive the features", func() {
				So(err, ShouldBeNil)
				So(row[features.ColSalaryMatch], ShouldEqual, 1.0)
				So(row[features.ColSalaryDiff], ShouldEqual, 0.0)
				So(row[features.ColDegreeMatch], ShouldEqual, 1.0)
				So(row[features.ColSeniorityMatch], ShouldEqual, 1.0)
				So(row[features.ColJobRolesMatch], ShouldEqual, 1.0)
				So(row[features.ColLanguageMustHave], ShouldEqual, 1.0)
				So(row[features.ColLanguageGood2Have], ShouldEqual, 1.0)
			})
		})

		Convey("When an id is missing", func() {
			_, errTalent := p.TransformOne(ctx, features.Pair{Job: model.Job{JobID: "j"}})
			_, errJob := p.TransformOne(ctx, features.Pair{Talent: model.Talent{TalentID: "t"}})

			Convey("Then it is a validation error", func() {
				So(errors.Is(errTalent, features.ErrValidation), ShouldBeTrue)
				So(errTalent.Error(), ShouldContainSubstring, "talent.talent_id")
				So(errors.Is(errJob, features.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When one pair in a batch is invalid", func() {
			bad := samplePair("t2", "j2")
			bad.Talent.Degree = model.Ptr("unknown")
			table, err := p.Transform(ctx, []features.Pair{samplePair("t1", "j1"), bad})

			Convey("Then the batch fails without a partial table", func() {
				So(errors.Is(err, features.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "pair 1")
				So(table.Rows, ShouldBeNil)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := p.Transform(cctx, []features.Pair{samplePair("t1", "j1")})

			Convey("Then the batch stops", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When the batch is empty", func() {
			table, err := p.Transform(ctx, nil)

			Convey("Then an empty table is returned", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestPipelineRunner(t *testing.T) {
	Convey("Given a pipeline with a runner and a threshold of 3", t, func() {
		ctx := context.Background()
		runner := &countingRunner{}
		p := features.New(features.WithRunner(runner), features.WithParallelThreshold(3))

		Convey("When the batch is below the threshold", func() {
			_, err := p.Transform(ctx, []features.Pair{samplePair("t1", "j1"), samplePair("t2", "j1")})

			Convey("Then rows are built inline", func() {
				So(err, ShouldBeNil)
				So(runner.calls.Load(), ShouldEqual, int32(0))
			})
		})

		Convey("When the batch reaches the threshold", func() {
			pairs := []features.Pair{samplePair("t1", "j1"), samplePair("t2", "j1"), samplePair("t3", "j1")}
			pairs[1].Job.MaxSalary = model.Ptr(40000)
			table, err := p.Transform(ctx, pairs)

			Convey("Then the runner is used and input order is kept", func() {
				So(err, ShouldBeNil)
				So(runner.calls.Load(), ShouldEqual, int32(1))
				So(table.Len(), ShouldEqual, 3)
				So(table.Rows[0][features.ColSalaryMatch], ShouldEqual, 1.0)
				So(table.Rows[1][features.ColSalaryMatch], ShouldEqual, 0.0)
				So(table.Rows[2][features.ColSalaryMatch], ShouldEqual, 1.0)
			})
		})
	})
}

func TestTableSelect(t *testing.T) {
	Convey("Given a table missing a column", t, func() {
		table := features.Table{Rows: []features.Row{{features.ColSalaryMatch: 1}}}

		Convey("When selecting the scoring columns", func() {
			_, err := table.Select(features.DefaultColumns())

			Convey("Then it is a transformation error", func() {
				So(errors.Is(err, features.ErrTransformation), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "salary_diff")
			})
		})

		Convey("When selecting a present column", func() {
			m, err := table.Select([]string{features.ColSalaryMatch})

			Convey("Then the matrix is dense and indexed", func() {
				So(err, ShouldBeNil)
				So(m.Len(), ShouldEqual, 1)
				So(m.Index()[features.ColSalaryMatch], ShouldEqual, 0)
			})
		})
	})

	Convey("Given the default columns", t, func() {
		cols := features.DefaultColumns()

		Convey("Then there are ten in fixed order and callers get a copy", func() {
			So(cols, ShouldHaveLength, 10)
			So(cols[0], ShouldEqual, "salary_match_binary")
			So(cols[9], ShouldEqual, "language_good2have_count")
			cols[0] = "mutated"
			So(features.DefaultColumns()[0], ShouldEqual, "salary_match_binary")
		})
	})
}

func TestCrossPairs(t *testing.T) {
	Convey("Given two talents and three jobs", t, func() {
		talents := []model.Talent{{TalentID: "a"}, {TalentID: "b"}}
		jobs := []model.Job{{JobID: "x"}, {JobID: "y"}, {JobID: "z"}}

		Convey("Then pairs are talent-major and job-minor", func() {
			pairs := features.CrossPairs(talents, jobs)
			So(pairs, ShouldHaveLength, 6)
			So(pairs[0].Talent.TalentID+pairs[0].Job.JobID, ShouldEqual, "ax")
			So(pairs[2].Talent.TalentID+pairs[2].Job.JobID, ShouldEqual, "az")
			So(pairs[3].Talent.TalentID+pairs[3].Job.JobID, ShouldEqual, "bx")
		})
	})
}
