package evaluation_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/evaluation"
	"github.com/okian/talentmatch/internal/domain/features"
)

func TestCompute_Counts(t *testing.T) {
	y := []bool{true, true, true, false, false, false}
	pred := []bool{true, true, false, true, false, false}
	scores := []float64{0.9, 0.8, 0.4, 0.7, 0.2, 0.1}

	m, err := evaluation.Compute(y, pred, scores)
	require.NoError(t, err)

	assert.Equal(t, [2][2]int{{2, 1}, {1, 2}}, m.ConfusionMatrix)
	assert.InDelta(t, 4.0/6.0, m.Accuracy, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.Recall, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.F1, 1e-12)
	// positives outrank negatives in 8 of 9 pairs
	assert.InDelta(t, 8.0/9.0, m.ROCAUC, 1e-12)
}

func TestROCAUC_Ties(t *testing.T) {
	tests := []struct {
		name   string
		y      []bool
		scores []float64
		want   float64
	}{
		{"perfect", []bool{false, false, true, true}, []float64{0.1, 0.2, 0.8, 0.9}, 1},
		{"inverted", []bool{true, true, false, false}, []float64{0.1, 0.2, 0.8, 0.9}, 0},
		{"all tied", []bool{true, false, true, false}, []float64{0.5, 0.5, 0.5, 0.5}, 0.5},
		{"binary rule", []bool{true, false, true, false}, []float64{1, 0, 0, 0}, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluation.ROCAUC(tt.y, tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestROCAUC_SingleClass(t *testing.T) {
	_, err := evaluation.ROCAUC([]bool{true, true}, []float64{0.2, 0.9})
	assert.ErrorIs(t, err, evaluation.ErrUndefinedMetric)

	_, err = evaluation.Compute([]bool{false}, []bool{false}, []float64{0.1})
	assert.ErrorIs(t, err, evaluation.ErrUndefinedMetric)
}

func TestROCAUC_NonFinite(t *testing.T) {
	y := []bool{true, false, true}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := evaluation.ROCAUC(y, []float64{0.2, bad, 0.9})
		assert.ErrorIs(t, err, evaluation.ErrUndefinedMetric)
	}

	_, err := evaluation.Compute(y, []bool{false, false, true}, []float64{math.NaN(), math.NaN(), 0.9})
	assert.ErrorIs(t, err, evaluation.ErrUndefinedMetric)
}

func TestCompute_ZeroDenominators(t *testing.T) {
	m, err := evaluation.Compute([]bool{true, false}, []bool{false, false}, []float64{0.3, 0.2})
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1)
	assert.Equal(t, 0.5, m.Accuracy)
}

func TestCompute_InvalidInput(t *testing.T) {
	_, err := evaluation.Compute(nil, nil, nil)
	assert.ErrorIs(t, err, evaluation.ErrEmpty)

	_, err = evaluation.Compute([]bool{true}, []bool{true, false}, []float64{1})
	assert.ErrorIs(t, err, evaluation.ErrLengthMismatch)
}

func TestEvaluate_RuleBased(t *testing.T) {
	rule, err := classifier.NewRule("", nil)
	require.NoError(t, err)

	m := features.Matrix{
		Columns: features.DefaultColumns(),
		Rows: [][]float64{
			{1, 0.1, 1, 2, 1, 1, 0, 1, 1, 1},
			{0, -0.2, 5, 3, 1, 1, 0, 1, 1, 0},
			{1, 0.3, 2, 4, 1, 0, 1, 1, 1, 0},
		},
	}
	y := []bool{true, false, true}

	got, err := evaluation.Evaluate(rule, m, y)
	require.NoError(t, err)
	assert.Equal(t, [2][2]int{{1, 0}, {1, 1}}, got.ConfusionMatrix)
	assert.InDelta(t, 2.0/3.0, got.Accuracy, 1e-12)
	assert.Equal(t, 1.0, got.Precision)
	assert.Equal(t, 0.5, got.Recall)

	_, err = evaluation.Evaluate(rule, m, y[:2])
	assert.ErrorIs(t, err, evaluation.ErrLengthMismatch)
}

func TestReport_JSON(t *testing.T) {
	r := evaluation.Report{
		ModelType:    "rule_based",
		TrainMetrics: evaluation.Metrics{Accuracy: 1, ConfusionMatrix: [2][2]int{{3, 0}, {0, 2}}},
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "train_metrics")
	assert.Contains(t, decoded, "test_metrics")
	train := decoded["train_metrics"].(map[string]any)
	assert.Contains(t, train, "f1_score")
	assert.Equal(t, []any{[]any{3.0, 0.0}, []any{0.0, 2.0}}, train["confusion_matrix"])
}
