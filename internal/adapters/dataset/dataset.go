// Package dataset reads labelled talent/job samples and reads and writes the
// train/test feature tables.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
)

// Table file names under the processed data directory.
const (
	FileXTrain = "X_train.csv"
	FileXTest  = "X_test.csv"
	FileYTrain = "Y_train.csv"
	FileYTest  = "Y_test.csv"

	// LabelColumn is the header of the Y tables.
	LabelColumn = "label"
)

// Split is a prepared train/test partition.
type Split struct {
	XTrain features.Matrix
	XTest  features.Matrix
	YTrain []bool
	YTest  []bool
}

// LoadSamples reads a JSON array of {talent, job, label}.
func LoadSamples(ctx context.Context, path string) ([]model.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	var samples []model.Sample
	if err := json.Unmarshal(raw, &samples); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	return samples, nil
}

// Pairs strips labels from samples.
func Pairs(samples []model.Sample) ([]features.Pair, []bool) {
	pairs := make([]features.Pair, len(samples))
	labels := make([]bool, len(samples))
	for i, s := range samples {
		pairs[i] = features.Pair{Talent: s.Talent, Job: s.Job}
		labels[i] = s.Label
	}
	return pairs, labels
}

// TrainTestSplit shuffles rows with seed and holds out ceil(n*testSize) of
// them. The same seed always yields the same partition.
func TrainTestSplit(x features.Matrix, y []bool, testSize float64, seed int64) (Split, error) {
	n := x.Len()
	if n != len(y) {
		return Split{}, fmt.Errorf("%w: %d rows, %d labels", ErrMalformed, n, len(y))
	}
	if testSize <= 0 || testSize >= 1 {
		return Split{}, fmt.Errorf("%w: test size %v outside (0, 1)", ErrMalformed, testSize)
	}
	nTest := int(math.Ceil(float64(n) * testSize))
	if n > 0 && nTest >= n {
		return Split{}, fmt.Errorf("%w: %d rows leave no training data", ErrMalformed, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec // reproducible split
	take := func(idx []int) (features.Matrix, []bool) {
		m := features.Matrix{Columns: append([]string(nil), x.Columns...), Rows: make([][]float64, len(idx))}
		labels := make([]bool, len(idx))
		for i, j := range idx {
			m.Rows[i] = x.Rows[j]
			labels[i] = y[j]
		}
		return m, labels
	}

	var s Split
	s.XTest, s.YTest = take(perm[:nTest])
	s.XTrain, s.YTrain = take(perm[nTest:])
	return s, nil
}
