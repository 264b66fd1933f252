package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quay/cvsscalc/cvss"
)

func newScore() *cobra.Command {
	return &cobra.Command{
		Use:   "score VECTOR...",
		Short: "Score one or more CVSS vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			ok := 0
			for _, v := range args {
				m, err := cvss.Parse(v)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", v, err)
					continue
				}
				if err := enc.Encode(cvss.Score(m)); err != nil {
					return err
				}
				ok++
			}
			if ok == 0 {
				return fmt.Errorf("no vector could be scored")
			}
			return nil
		},
	}
}
