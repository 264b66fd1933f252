package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quay/cvsscalc/feed"
)

func newFeed() *cobra.Command {
	return &cobra.Command{
		Use:   "feed FILE",
		Short: "Re-score an NVD 1.1 JSON feed",
		Long: `Reads an NVD 1.1 JSON feed file (plain, gzip, or zstd compressed) and
prints one JSON object per scorable CVE to stdout. "-" reads stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			if name := args[0]; name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			l, err := feed.NewLoader(cmd.Context(), in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			n := 0
			for l.Next() {
				if err := enc.Encode(l.Entry()); err != nil {
					return err
				}
				n++
			}
			if err := l.Err(); err != nil {
				return err
			}
			slog.Info("feed done", "scored", n, "skipped", l.Skipped())
			return nil
		},
	}
}
