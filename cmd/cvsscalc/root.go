package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quay/cvsscalc/internal/log"
)

func newRoot() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "cvsscalc",
		Short:         "CVSS v3.1 and v4.0 scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl := slog.LevelInfo
			if debug {
				lvl = slog.LevelDebug
			}
			h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
			slog.SetDefault(slog.New(log.WrapHandler(h)))
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.AddCommand(
		newScore(),
		newBatch(),
		newFeed(),
		newGuess(),
	)
	return root
}
