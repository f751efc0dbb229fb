package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/loadtest"
)

func newLoadtestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Send generated requests to a running service and verify the responses",
		Long: `loadtest generates random talents and jobs, posts them concurrently to
/match_bulk and /rank_and_filter, and checks that every response is sorted
by score and honours filtering. Statistics are printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg loadtest.Config
			cfg.BaseURL, _ = cmd.Flags().GetString("url")
			cfg.Requests, _ = cmd.Flags().GetInt("requests")
			cfg.Talents, _ = cmd.Flags().GetInt("talents")
			cfg.Jobs, _ = cmd.Flags().GetInt("jobs")
			cfg.Workers, _ = cmd.Flags().GetInt("workers")
			cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
			cfg.Seed, _ = cmd.Flags().GetUint64("seed")
			cfg.Verbose, _ = cmd.Flags().GetBool("verbose")

			stats, err := loadtest.Run(cmd.Context(), cfg)
			if perr := printJSON(cmd.OutOrStdout(), stats); perr != nil && err == nil {
				err = perr
			}
			return err
		},
	}
	cmd.Flags().String("url", "http://localhost:8080", "service base URL")
	cmd.Flags().Int("requests", loadtest.DefaultRequests, "number of requests to send")
	cmd.Flags().Int("talents", loadtest.DefaultTalentsPerCall, "talents per match_bulk request")
	cmd.Flags().Int("jobs", loadtest.DefaultJobsPerCall, "jobs per request")
	cmd.Flags().Int("workers", 0, "concurrent senders (default CPU cores * 2)")
	cmd.Flags().Duration("timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().Uint64("seed", 0, "generator seed (0 picks one from the clock)")
	cmd.Flags().Bool("verbose", false, "log every failed request")
	return cmd
}
