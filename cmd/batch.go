package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slabcheck/slabcheck/internal/pipeline"
	"github.com/slabcheck/slabcheck/internal/render"
)

var batchCmd = &cobra.Command{
	Use:   "batch <listing.html>...",
	Short: "Check many saved listing pages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		policy, closeCache := initCache(ctx)
		defer closeCache()

		results := newRunner(policy).RunBatch(ctx, args, cfg.Batch.MaxConcurrent)

		out := cmd.OutOrStdout()
		counts := map[pipeline.OutcomeKind]int{}
		for _, r := range results {
			fmt.Fprintf(out, "== %s\n", r.Source)
			render.Outcome(out, r.Outcome)
			counts[r.Outcome.Kind]++
		}
		fmt.Fprintf(out, "\n%d checked: %d records, %d manual, %d not applicable, %d errors\n",
			len(results),
			counts[pipeline.OutcomeRecord],
			counts[pipeline.OutcomeManualEntry],
			counts[pipeline.OutcomeNotApplicable],
			counts[pipeline.OutcomeError],
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
