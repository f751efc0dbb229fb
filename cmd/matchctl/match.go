package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/pkg/logger"
)

type matchInput struct {
	Talents []model.Talent `json:"talents"`
	Jobs    []model.Job    `json:"jobs"`
}

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score every talent against every job in a JSON file",
		Long: `match reads {"talents": [...], "jobs": [...]} from --input, scores the
cross product with the configured classifier and prints the results sorted
by score, highest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			modelPath, _ := cmd.Flags().GetString("model-config")
			input, _ := cmd.Flags().GetString("input")
			filter, _ := cmd.Flags().GetBool("filter")

			var in matchInput
			if err := readJSON(input, &in); err != nil {
				return err
			}
			mc, err := config.LoadModelConfig(ctx, modelPath)
			if err != nil {
				return err
			}
			clf, err := repository.NewFileStore(repository.WithLogger(logger.Named("store"))).Classifier(ctx, mc)
			if err != nil {
				return err
			}

			m := scoring.New(clf, features.New(), features.DefaultColumns())
			res, err := m.MatchBulk(ctx, in.Talents, in.Jobs, filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String("model-config", "config/model_rule_based.yaml", "model config YAML")
	cmd.Flags().String("input", "", "JSON file with talents and jobs")
	cmd.Flags().Bool("filter", false, "drop pairs predicted as no match")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
