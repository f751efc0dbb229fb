package service

import (
	"context"
	"time"

	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/pkg/metrics"
)

// timedPipeline records pipeline latency and row counts.
type timedPipeline struct {
	next *features.Pipeline
}

func (p timedPipeline) Transform(ctx context.Context, pairs []features.Pair) (features.Table, error) {
	start := time.Now()
	t, err := p.next.Transform(ctx, pairs)
	metrics.RecordPipelineLatency(sinceMs(start))
	if err != nil {
		metrics.RecordTransformError(features.KindOf(err))
		return t, err
	}
	metrics.RecordPairsTransformed(t.Len())
	return t, nil
}

// timedClassifier records classifier latency per prediction pass.
type timedClassifier struct {
	classifier.Classifier
}

func (c timedClassifier) Predict(m features.Matrix) ([]bool, error) {
	start := time.Now()
	defer func() { metrics.RecordClassifierLatency(c.Kind().String(), sinceMs(start)) }()
	return c.Classifier.Predict(m)
}

func (c timedClassifier) PredictProba(m features.Matrix) ([]float64, error) {
	start := time.Now()
	defer func() { metrics.RecordClassifierLatency(c.Kind().String(), sinceMs(start)) }()
	return c.Classifier.PredictProba(m)
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
