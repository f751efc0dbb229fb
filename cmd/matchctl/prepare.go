package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/adapters/dataset"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/pkg/logger"
)

func newPrepareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Transform the raw dataset and write train/test feature tables",
		Long: `prepare reads the labelled JSON dataset named by raw_data_path, runs the
feature pipeline, shuffles with the configured seed, holds out test_size of
the rows and writes X_train.csv, X_test.csv, Y_train.csv and Y_test.csv under
processed_data_save_path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			path, _ := cmd.Flags().GetString("data-config")
			dc, err := config.LoadDataConfig(ctx, path)
			if err != nil {
				return err
			}
			_, err = dataset.Prepare(ctx, dc, features.New(), features.DefaultColumns(), logger.Named("prepare"))
			return err
		},
	}
	cmd.Flags().String("data-config", "config/data_config.yaml", "data config YAML")
	return cmd
}
