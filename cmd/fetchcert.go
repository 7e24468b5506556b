package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/slabcheck/slabcheck/internal/ident"
	"github.com/slabcheck/slabcheck/internal/render"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <cert-number>",
	Short: "Fetch a cert's reference data by number",
	Long:  "Fetches and extracts a cert directly, bypassing listing-page detection. Used after manual entry of a cert number.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		certNumber := args[0]
		if !ident.IsPlausibleCertNumber(certNumber) {
			return eris.Errorf("%q is not a plausible cert number (8-10 digits)", certNumber)
		}

		policy, closeCache := initCache(ctx)
		defer closeCache()

		outcome := newRunner(policy).RunForCert(ctx, certNumber, nil)
		render.Outcome(cmd.OutOrStdout(), outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
