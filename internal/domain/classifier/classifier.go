// Package classifier provides the binary classifiers used to score feature
// matrices: logistic regression, random forest and a CEL rule.
package classifier

import (
	"fmt"

	"github.com/okian/talentmatch/internal/domain/features"
)

// Kind tags a classifier implementation.
type Kind string

// Supported classifier kinds.
const (
	KindLogisticRegression Kind = "logistic_regression"
	KindRandomForest       Kind = "random_forest"
	KindRuleBased          Kind = "rule_based"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// ParseKind validates a model type name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLogisticRegression, KindRandomForest, KindRuleBased:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Classifier predicts a label and a positive-class probability per matrix
// row. Implementations are read-only after construction.
type Classifier interface {
	Kind() Kind
	// Columns are the feature columns the model reads, bound by name.
	Columns() []string
	Predict(m features.Matrix) ([]bool, error)
	PredictProba(m features.Matrix) ([]float64, error)
}

// Classify runs one prediction pass and returns labels and scores of equal
// length. Failures are transformation errors.
func Classify(c Classifier, m features.Matrix) ([]bool, []float64, error) {
	labels, err := c.Predict(m)
	if err != nil {
		return nil, nil, features.AsTransformation("predict", err)
	}
	scores, err := c.PredictProba(m)
	if err != nil {
		return nil, nil, features.AsTransformation("predict_proba", err)
	}
	if len(labels) != m.Len() || len(scores) != m.Len() {
		return nil, nil, features.Transformationf("classify",
			"%s returned %d labels and %d scores for %d rows", c.Kind(), len(labels), len(scores), m.Len())
	}
	return labels, scores, nil
}

// bind resolves model columns to matrix positions.
func bind(columns []string, m features.Matrix) ([]int, error) {
	idx := m.Index()
	pos := make([]int, len(columns))
	for i, c := range columns {
		j, ok := idx[c]
		if !ok {
			return nil, features.Transformationf("bind", "matrix has no column %q", c)
		}
		pos[i] = j
	}
	return pos, nil
}

// gather returns row values in model column order.
func gather(row []float64, pos []int, dst []float64) []float64 {
	dst = dst[:0]
	for _, p := range pos {
		dst = append(dst, row[p])
	}
	return dst
}

func labelsFrom(probs []float64) []bool {
	out := make([]bool, len(probs))
	for i, p := range probs {
		out[i] = p > 0.5
	}
	return out
}
