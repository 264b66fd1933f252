package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quay/cvsscalc/cvss"
	"github.com/quay/cvsscalc/guess"
)

func newGuess() *cobra.Command {
	return &cobra.Command{
		Use:   "guess TEXT...",
		Short: "Infer and score a v3.1 vector from a threat description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			vec, ok := guess.Vector(desc)
			if !ok {
				return fmt.Errorf("no vector could be inferred")
			}
			m, err := cvss.Parse(vec)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cvss.Score(m))
		},
	}
}
