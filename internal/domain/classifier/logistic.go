package classifier

import (
	"fmt"
	"math"

	"github.com/okian/talentmatch/internal/domain/features"
)

// Logistic is a fitted logistic regression: p = sigmoid(b + w.x).
type Logistic struct {
	columns   []string
	coef      []float64
	intercept float64
}

// NewLogistic builds a model with one coefficient per column.
func NewLogistic(columns []string, coef []float64, intercept float64) (*Logistic, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: logistic regression has no columns", ErrInvalidModel)
	}
	if len(coef) != len(columns) {
		return nil, fmt.Errorf("%w: %d coefficients for %d columns", ErrInvalidModel, len(coef), len(columns))
	}
	if !finite(intercept) {
		return nil, fmt.Errorf("%w: intercept %v is not finite", ErrInvalidModel, intercept)
	}
	for i, w := range coef {
		if !finite(w) {
			return nil, fmt.Errorf("%w: coefficient %d (%s) is not finite", ErrInvalidModel, i, columns[i])
		}
	}
	return &Logistic{
		columns:   append([]string(nil), columns...),
		coef:      append([]float64(nil), coef...),
		intercept: intercept,
	}, nil
}

// Kind implements Classifier.
func (l *Logistic) Kind() Kind { return KindLogisticRegression }

// Columns implements Classifier.
func (l *Logistic) Columns() []string { return append([]string(nil), l.columns...) }

// Coef returns a copy of the coefficients.
func (l *Logistic) Coef() []float64 { return append([]float64(nil), l.coef...) }

// Intercept returns the bias term.
func (l *Logistic) Intercept() float64 { return l.intercept }

// PredictProba implements Classifier.
func (l *Logistic) PredictProba(m features.Matrix) ([]float64, error) {
	pos, err := bind(l.columns, m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, m.Len())
	buf := make([]float64, 0, len(pos))
	for i, row := range m.Rows {
		x := gather(row, pos, buf)
		z := l.intercept
		for j, w := range l.coef {
			z += w * x[j]
		}
		// opposite infinities cancel to NaN
		if math.IsNaN(z) {
			return nil, fmt.Errorf("%w: row %d has no finite decision value", ErrInvalidModel, i)
		}
		out[i] = sigmoid(z)
	}
	return out, nil
}

// Predict implements Classifier.
func (l *Logistic) Predict(m features.Matrix) ([]bool, error) {
	probs, err := l.PredictProba(m)
	if err != nil {
		return nil, err
	}
	return labelsFrom(probs), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
