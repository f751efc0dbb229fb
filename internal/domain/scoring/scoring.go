// Package scoring matches talents to jobs by running the feature pipeline and
// a classifier, then sorting and filtering the scored pairs.
package scoring

import (
	"context"
	"sort"

	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
)

// Transformer turns pairs into feature rows.
type Transformer interface {
	Transform(ctx context.Context, pairs []features.Pair) (features.Table, error)
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithIgnoredCriterion registers fn to be told about criteria keys that
// RankAndFilter does not support.
func WithIgnoredCriterion(fn func(key string)) Option {
	return func(m *Matcher) {
		if fn != nil {
			m.onIgnored = fn
		}
	}
}

// Matcher scores talent/job pairs. It is read-only after construction and
// safe for concurrent use.
type Matcher struct {
	clf       classifier.Classifier
	pipeline  Transformer
	columns   []string
	onIgnored func(key string)
}

// New creates a matcher that projects pipeline output onto columns before
// handing it to clf.
func New(clf classifier.Classifier, pipeline Transformer, columns []string, opts ...Option) *Matcher {
	m := &Matcher{
		clf:       clf,
		pipeline:  pipeline,
		columns:   append([]string(nil), columns...),
		onIgnored: func(string) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Kind reports the classifier kind in use.
func (m *Matcher) Kind() classifier.Kind { return m.clf.Kind() }

// Match scores a single pair.
func (m *Matcher) Match(ctx context.Context, t model.Talent, j model.Job) (model.MatchResult, error) {
	res, err := m.score(ctx, []features.Pair{{Talent: t, Job: j}})
	if err != nil {
		return model.MatchResult{}, err
	}
	return res[0], nil
}

// MatchBulk scores the talent-major cross product of talents and jobs. The
// result is stable-sorted by score, highest first. With filterFalse only
// positive predictions are kept.
func (m *Matcher) MatchBulk(ctx context.Context, talents []model.Talent, jobs []model.Job, filterFalse bool) ([]model.MatchResult, error) {
	res, err := m.score(ctx, features.CrossPairs(talents, jobs))
	if err != nil {
		return nil, err
	}
	if filterFalse {
		res = keep(res, func(r model.MatchResult) bool { return r.Label })
	}
	sortByScore(res)
	return res, nil
}

// RankAndFilter scores talent against every job, keeps positive predictions
// that satisfy criteria and sorts them by score, highest first.
func (m *Matcher) RankAndFilter(ctx context.Context, t model.Talent, jobs []model.Job, criteria model.Criteria) ([]model.MatchResult, error) {
	filters, err := m.compile(criteria)
	if err != nil {
		return nil, err
	}
	res, err := m.score(ctx, features.CrossPairs([]model.Talent{t}, jobs))
	if err != nil {
		return nil, err
	}
	res = keep(res, func(r model.MatchResult) bool {
		if !r.Label {
			return false
		}
		for _, f := range filters {
			if !f(r.Job) {
				return false
			}
		}
		return true
	})
	sortByScore(res)
	return res, nil
}

// score transforms pairs and classifies them in one pass. Results keep the
// input order.
func (m *Matcher) score(ctx context.Context, pairs []features.Pair) ([]model.MatchResult, error) {
	out := make([]model.MatchResult, 0, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}
	table, err := m.pipeline.Transform(ctx, pairs)
	if err != nil {
		return nil, err
	}
	mat, err := table.Select(m.columns)
	if err != nil {
		return nil, err
	}
	labels, scores, err := classifier.Classify(m.clf, mat)
	if err != nil {
		return nil, err
	}
	for i, p := range pairs {
		out = append(out, model.MatchResult{
			Talent: p.Talent,
			Job:    p.Job,
			Label:  labels[i],
			Score:  scores[i],
		})
	}
	return out, nil
}

func keep(res []model.MatchResult, pred func(model.MatchResult) bool) []model.MatchResult {
	out := res[:0]
	for _, r := range res {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortByScore(res []model.MatchResult) {
	sort.SliceStable(res, func(a, b int) bool { return res[a].Score > res[b].Score })
}
