package dataset

import (
	"context"

	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/pkg/logger"
)

// Transformer turns pairs into a feature table.
type Transformer interface {
	Transform(ctx context.Context, pairs []features.Pair) (features.Table, error)
}

// Prepare loads the raw samples, transforms them, selects columns, splits
// and writes the four tables. It returns the split it wrote.
func Prepare(ctx context.Context, dc *config.DataConfig, t Transformer, columns []string, log logger.Logger) (Split, error) {
	log.Info(ctx, "loading raw data", logger.String("path", dc.RawDataPath))
	samples, err := LoadSamples(ctx, dc.RawDataPath)
	if err != nil {
		return Split{}, err
	}
	pairs, labels := Pairs(samples)

	table, err := t.Transform(ctx, pairs)
	if err != nil {
		return Split{}, err
	}
	x, err := table.Select(columns)
	if err != nil {
		return Split{}, err
	}
	log.Info(ctx, "features transformed", logger.Int("rows", x.Len()), logger.Int("columns", len(columns)))

	s, err := TrainTestSplit(x, labels, dc.TestSize, dc.Seed)
	if err != nil {
		return Split{}, err
	}
	if err := WriteSplit(ctx, dc.ProcessedDataSavePath, s); err != nil {
		return Split{}, err
	}
	log.Info(ctx, "train and test tables saved",
		logger.String("dir", dc.ProcessedDataSavePath),
		logger.Int("train_rows", s.XTrain.Len()),
		logger.Int("test_rows", s.XTest.Len()),
	)
	return s, nil
}
