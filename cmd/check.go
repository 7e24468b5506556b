package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/slabcheck/slabcheck/internal/dom"
	"github.com/slabcheck/slabcheck/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check <listing.html>",
	Short: "Check a saved listing page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrapf(err, "open %s", args[0])
		}
		defer f.Close() //nolint:errcheck

		view, err := dom.NewView(f)
		if err != nil {
			return eris.Wrap(err, "parse listing")
		}

		policy, closeCache := initCache(ctx)
		defer closeCache()

		outcome := newRunner(policy).Run(ctx, dom.NewStaticSession(view))
		render.Outcome(cmd.OutOrStdout(), outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
