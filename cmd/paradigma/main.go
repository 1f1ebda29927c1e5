// Command paradigma induces inflection models from a tagged corpus and
// analyzes word forms with the resulting transducer.
//
//	paradigma build corpus.tsv -m models.txt -t analyzer.fst
//	paradigma analyze -t analyzer.fst amas laudat
//	paradigma evaluate -t analyzer.fst heldout.tsv
//	paradigma models models.txt
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/cours-de-latin/paradigma"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	storeDSN   string

	config paradigma.Config

	rootCmd = &cobra.Command{
		Use:   "paradigma",
		Short: "Induce inflection models and analyze word forms",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				if config, err = paradigma.LoadConfig(configPath); err != nil {
					return err
				}
			} else {
				config = paradigma.DefaultConfig()
			}
			if storeDSN != "" {
				config.StoreDSN = storeDSN
			}
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every synthesized model")
	rootCmd.PersistentFlags().StringVar(&storeDSN, "store", "", "SQLite model store, overrides store_dsn")

	rootCmd.AddCommand(buildCmd, analyzeCmd, evaluateCmd, modelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("paradigma: %v", err)
	}
}
