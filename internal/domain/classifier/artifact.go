package classifier

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogisticParams are the fitted logistic regression weights.
type LogisticParams struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// ForestParams are the fitted trees.
type ForestParams struct {
	Trees []Tree `json:"trees"`
}

// Artifact is the serialized form of a classifier.
type Artifact struct {
	ID        string          `json:"id"`
	ModelType Kind            `json:"model_type"`
	CreatedAt time.Time       `json:"created_at"`
	Columns   []string        `json:"columns"`
	Logistic  *LogisticParams `json:"logistic,omitempty"`
	Forest    *ForestParams   `json:"forest,omitempty"`
	Rule      string          `json:"rule,omitempty"`
}

// NewArtifact captures c under a fresh id.
func NewArtifact(c Classifier) (Artifact, error) {
	a := Artifact{
		ID:        uuid.NewString(),
		ModelType: c.Kind(),
		CreatedAt: time.Now().UTC(),
		Columns:   c.Columns(),
	}
	switch m := c.(type) {
	case *Logistic:
		a.Logistic = &LogisticParams{Coef: m.Coef(), Intercept: m.Intercept()}
	case *Forest:
		a.Forest = &ForestParams{Trees: m.Trees()}
	case *Rule:
		a.Rule = m.Expression()
	default:
		return Artifact{}, fmt.Errorf("%w: %T", ErrUnknownKind, c)
	}
	return a, nil
}

// Build restores the classifier described by the artifact.
func (a Artifact) Build() (Classifier, error) {
	kind, err := ParseKind(string(a.ModelType))
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindLogisticRegression:
		if a.Logistic == nil {
			return nil, fmt.Errorf("%w: artifact %s has no logistic parameters", ErrInvalidModel, a.ID)
		}
		return NewLogistic(a.Columns, a.Logistic.Coef, a.Logistic.Intercept)
	case KindRandomForest:
		if a.Forest == nil {
			return nil, fmt.Errorf("%w: artifact %s has no forest parameters", ErrInvalidModel, a.ID)
		}
		return NewForest(a.Columns, a.Forest.Trees)
	default:
		return NewRule(a.Rule, a.Columns)
	}
}
