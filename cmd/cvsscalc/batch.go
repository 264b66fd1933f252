package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quay/cvsscalc/batch"
	"github.com/quay/cvsscalc/guess"
)

func newBatch() *cobra.Command {
	var (
		out        string
		configFile string
		infer      bool
		cfg        batch.Config
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Score a CSV of vectors or threat descriptions",
		Long: `Reads a CSV file (optionally gzip or zstd compressed), scores the vector
or threat description column, and writes the input with result columns
appended. "-" reads stdin and writes stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				b, err := os.ReadFile(configFile)
				if err != nil {
					return err
				}
				var fileCfg batch.Config
				if err := yaml.Unmarshal(b, &fileCfg); err != nil {
					return fmt.Errorf("reading config %q: %w", configFile, err)
				}
				// Flags win over file values.
				if cfg.Workers == 0 {
					cfg.Workers = fileCfg.Workers
				}
				if cfg.VectorColumn == "" {
					cfg.VectorColumn = fileCfg.VectorColumn
				}
				if cfg.DescriptionColumn == "" {
					cfg.DescriptionColumn = fileCfg.DescriptionColumn
				}
			}

			in := os.Stdin
			if name := args[0]; name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			w := os.Stdout
			if out == "" && args[0] != "-" {
				dir, base := filepath.Split(args[0])
				out = filepath.Join(dir, fmt.Sprintf("cvss_scored_%s_%s",
					time.Now().Format("20060102_150405"), base))
			}
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			var gen batch.Generator
			if infer {
				gen = guess.Guesser{}
			}
			s, err := batch.New(cfg, gen).Run(cmd.Context(), in, w)
			if err != nil {
				return err
			}
			slog.Info("batch complete",
				"job", s.Job, "total", s.Total, "succeeded", s.Succeeded, "failed", s.Failed)
			if out != "" && out != "-" {
				slog.Info("results written", "file", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "concurrent scoring workers (0 for NumCPU)")
	cmd.Flags().StringVar(&cfg.VectorColumn, "vector-column", "", "header of the vector column")
	cmd.Flags().StringVar(&cfg.DescriptionColumn, "description-column", "", "header of the description column")
	cmd.Flags().BoolVar(&infer, "guess", false, "infer vectors for rows with only a description")
	return cmd
}
