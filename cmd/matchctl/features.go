package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/domain/features"
)

type featureTable struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

func newFeaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the feature rows for talent/job pairs",
		Long: `features reads [{"talent": {...}, "job": {...}}] from --input and prints
the scoring columns the pipeline produces for each pair, in input order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, _ := cmd.Flags().GetString("input")

			var pairs []features.Pair
			if err := readJSON(input, &pairs); err != nil {
				return err
			}
			table, err := features.New().Transform(cmd.Context(), pairs)
			if err != nil {
				return err
			}
			m, err := table.Select(features.DefaultColumns())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), featureTable{Columns: m.Columns, Rows: m.Rows})
		},
	}
	cmd.Flags().String("input", "", "JSON file with an array of talent/job pairs")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
