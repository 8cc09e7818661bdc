package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"corpusqa/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "corpusqa",
	Short: "Corpus-bound question agent - answers only from an ingested corpus",
	Long: `corpusqa answers natural-language questions strictly from a fixed corpus
of source documents. Queries outside the allow-listed topic domain, or
queries the corpus does not literally support, are refused.

Example usage:
  corpusqa ingest                                  # Build the corpus index from PDFs
  corpusqa ask "What does Sartre mean by abandonment?"
  corpusqa serve --addr :8080                      # Serve queries over HTTP`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./corpusqa.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
