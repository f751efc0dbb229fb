package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/adapters/dataset"
	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/evaluation"
	"github.com/okian/talentmatch/pkg/logger"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score the configured classifier on the prepared train and test tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logger.Named("evaluate")
			dataPath, _ := cmd.Flags().GetString("data-config")
			modelPath, _ := cmd.Flags().GetString("model-config")

			dc, err := config.LoadDataConfig(ctx, dataPath)
			if err != nil {
				return err
			}
			mc, err := config.LoadModelConfig(ctx, modelPath)
			if err != nil {
				return err
			}
			store := repository.NewFileStore(repository.WithLogger(log))
			clf, err := store.Classifier(ctx, mc)
			if err != nil {
				return err
			}
			split, err := dataset.ReadSplit(ctx, dc.ProcessedDataSavePath)
			if err != nil {
				return err
			}

			train, err := evaluation.Evaluate(clf, split.XTrain, split.YTrain)
			if err != nil {
				return fmt.Errorf("train metrics: %w", err)
			}
			test, err := evaluation.Evaluate(clf, split.XTest, split.YTest)
			if err != nil {
				return fmt.Errorf("test metrics: %w", err)
			}
			report := evaluation.Report{ModelType: mc.ModelType, TrainMetrics: train, TestMetrics: test}

			if mc.EvaluationSavePath != "" {
				if err := store.SaveReport(ctx, mc.EvaluationSavePath, report); err != nil {
					return err
				}
			}
			log.Info(ctx, "evaluation finished",
				logger.String("model_type", mc.ModelType),
				logger.Float64("test_accuracy", test.Accuracy),
				logger.Float64("test_roc_auc", test.ROCAUC),
			)
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().String("data-config", "config/data_config.yaml", "data config YAML")
	cmd.Flags().String("model-config", "config/model_rule_based.yaml", "model config YAML")
	return cmd
}
