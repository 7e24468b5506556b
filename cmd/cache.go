package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slabcheck/slabcheck/internal/model"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the cert cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached certs, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		policy, closeCache, err := mustInitCache(ctx)
		if err != nil {
			return err
		}
		defer closeCache()

		entries, err := policy.ListEntries(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			name := e.Record.CardName
			if name == model.UnknownCardName {
				name = "(unknown)"
			}
			fmt.Fprintf(out, "%s  %-30s  stored %s  expires %s\n",
				e.CertNumber,
				name,
				time.UnixMilli(e.StoredAt).Format("2006-01-02"),
				time.UnixMilli(e.ExpiresAt).Format("2006-01-02"),
			)
		}
		fmt.Fprintf(out, "%d entries\n", len(entries))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached certs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		policy, closeCache, err := mustInitCache(ctx)
		if err != nil {
			return err
		}
		defer closeCache()

		if err := policy.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
