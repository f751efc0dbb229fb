// Package features turns talent/job pairs into fixed-width feature rows.
//
// A Pipeline normalizes each pair and then applies the salary, degree,
// seniority, job roles and language transformers in that order. Rows are
// independent, so large batches may be spread across a Runner.
package features

import (
	"context"
	"fmt"

	"github.com/okian/talentmatch/internal/domain/model"
)

const defaultParallelThreshold = 64

// Runner executes fn for every index in [0, n). It returns the first error.
type Runner interface {
	Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithRunner spreads batches at or above the parallel threshold across r.
func WithRunner(r Runner) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.runner = r
		}
	}
}

// WithParallelThreshold sets the smallest batch handed to the runner.
func WithParallelThreshold(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.threshold = n
		}
	}
}

// Step is a named transformer.
type Step struct {
	Name string
	Fn   Transformer
}

// DefaultSteps returns the transformers in their fixed order.
func DefaultSteps() []Step {
	return []Step{
		{Name: opSalary, Fn: Salary},
		{Name: opDegree, Fn: Degree},
		{Name: opSeniority, Fn: Seniority},
		{Name: "job_roles", Fn: JobRoles},
		{Name: opLanguage, Fn: Language},
	}
}

// Pipeline runs normalization and all transformers over pairs. It holds no
// mutable state and is safe for concurrent use.
type Pipeline struct {
	steps     []Step
	runner    Runner
	threshold int
}

// New creates a pipeline with the default transformer order.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:     DefaultSteps(),
		threshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Transform returns one row per pair in input order. The first failure
// aborts the batch and no partial table is returned.
func (p *Pipeline) Transform(ctx context.Context, pairs []Pair) (Table, error) {
	rows := make([]Row, len(pairs))
	build := func(ctx context.Context, i int) error {
		row, err := p.TransformOne(ctx, pairs[i])
		if err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
		rows[i] = row
		return nil
	}

	if p.runner != nil && len(pairs) >= p.threshold {
		if err := p.runner.Run(ctx, len(pairs), build); err != nil {
			return Table{}, err
		}
		return Table{Rows: rows}, nil
	}

	for i := range pairs {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		if err := build(ctx, i); err != nil {
			return Table{}, err
		}
	}
	return Table{Rows: rows}, nil
}

// TransformOne normalizes and transforms a single pair.
func (p *Pipeline) TransformOne(ctx context.Context, pair Pair) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pair.Talent.TalentID == "" {
		return nil, Validationf("normalize", PathTalentID, "required")
	}
	if pair.Job.JobID == "" {
		return nil, Validationf("normalize", PathJobID, "required")
	}

	rec := Normalize(pair)
	row := make(Row, len(defaultColumns)+3)
	for _, s := range p.steps {
		if err := s.Fn(rec, row); err != nil {
			return nil, err
		}
	}
	return row, nil
}

// CrossPairs builds the talent-major, job-minor cross product.
func CrossPairs(talents []model.Talent, jobs []model.Job) []Pair {
	pairs := make([]Pair, 0, len(talents)*len(jobs))
	for _, t := range talents {
		for _, j := range jobs {
			pairs = append(pairs, Pair{Talent: t, Job: j})
		}
	}
	return pairs
}
