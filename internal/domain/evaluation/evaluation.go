// Package evaluation computes binary classification metrics.
package evaluation

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/features"
)

// Metrics summarizes a classifier on one dataset. ConfusionMatrix is
// [[tn, fp], [fn, tp]].
type Metrics struct {
	Accuracy        float64   `json:"accuracy"`
	ROCAUC          float64   `json:"roc_auc"`
	F1              float64   `json:"f1_score"`
	Precision       float64   `json:"precision"`
	Recall          float64   `json:"recall"`
	ConfusionMatrix [2][2]int `json:"confusion_matrix"`
}

// Report pairs train and test metrics for a model.
type Report struct {
	ModelType    string  `json:"model_type"`
	TrainMetrics Metrics `json:"train_metrics"`
	TestMetrics  Metrics `json:"test_metrics"`
}

// Evaluate scores m with c and compares against y.
func Evaluate(c classifier.Classifier, m features.Matrix, y []bool) (Metrics, error) {
	if m.Len() != len(y) {
		return Metrics{}, fmt.Errorf("%w: %d rows, %d labels", ErrLengthMismatch, m.Len(), len(y))
	}
	pred, scores, err := classifier.Classify(c, m)
	if err != nil {
		return Metrics{}, err
	}
	return Compute(y, pred, scores)
}

// Compute derives all metrics from true labels, predicted labels and
// positive-class scores.
func Compute(y, pred []bool, scores []float64) (Metrics, error) {
	if len(y) == 0 {
		return Metrics{}, ErrEmpty
	}
	if len(pred) != len(y) || len(scores) != len(y) {
		return Metrics{}, fmt.Errorf("%w: %d labels, %d predictions, %d scores", ErrLengthMismatch, len(y), len(pred), len(scores))
	}

	cm := Confusion(y, pred)
	tn, fp, fn, tp := cm[0][0], cm[0][1], cm[1][0], cm[1][1]

	auc, err := ROCAUC(y, scores)
	if err != nil {
		return Metrics{}, err
	}

	precision := ratio(tp, tp+fp)
	recall := ratio(tp, tp+fn)
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return Metrics{
		Accuracy:        ratio(tp+tn, len(y)),
		ROCAUC:          auc,
		F1:              f1,
		Precision:       precision,
		Recall:          recall,
		ConfusionMatrix: cm,
	}, nil
}

// Confusion counts outcomes as [[tn, fp], [fn, tp]].
func Confusion(y, pred []bool) [2][2]int {
	var cm [2][2]int
	for i := range y {
		cm[b2i(y[i])][b2i(pred[i])]++
	}
	return cm
}

// ROCAUC is the probability that a random positive outranks a random
// negative. Tied scores share their average rank. Non-finite scores are
// rejected.
func ROCAUC(y []bool, scores []float64) (float64, error) {
	if len(y) != len(scores) {
		return 0, fmt.Errorf("%w: %d labels, %d scores", ErrLengthMismatch, len(y), len(scores))
	}
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("%w: score %d is %v", ErrUndefinedMetric, i, s)
		}
	}
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	var positives, negatives int
	rankSum := 0.0
	for start := 0; start < len(idx); {
		end := start
		for end < len(idx) && scores[idx[end]] == scores[idx[start]] {
			end++
		}
		// ranks are 1-based; ties take the mean of start+1..end
		avg := float64(start+1+end) / 2
		for _, i := range idx[start:end] {
			if y[i] {
				positives++
				rankSum += avg
			} else {
				negatives++
			}
		}
		start = end
	}

	if positives == 0 || negatives == 0 {
		return 0, fmt.Errorf("%w: roc_auc needs both classes", ErrUndefinedMetric)
	}
	p, n := float64(positives), float64(negatives)
	return (rankSum - p*(p+1)/2) / (p * n), nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
