package cli

import (
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"corpusqa/config"
	"corpusqa/internal/usecase"
)

var ingestDataDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the corpus index from PDF documents",
	Long: `Extract text from the PDFs in the data directory, chunk and embed it,
and rebuild the corpus index wholesale. The index must be rebuilt with
the same embedding model that serves queries.

Examples:
  corpusqa ingest
  corpusqa ingest --data ./books`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestDataDir, "data", "", "corpus directory (default from config)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	dataDir := cfg.Ingest.DataDir
	if ingestDataDir != "" {
		dataDir = ingestDataDir
	}
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(rootDir, dataDir)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	ingestor := usecase.NewIngestor(embedder, cfg.Ingest.ChunkChars, cfg.Ingest.ChunkOverlap)

	var bar *progressbar.ProgressBar
	ingestor.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "embedding")
		}
		bar.Set(done)
	}

	result, err := ingestor.Ingest(dataDir, config.IndexDBPath(rootDir))
	if err != nil {
		return err
	}

	fmt.Printf("\nIndexed %d passages from %d pages across %d documents (model %s)\n",
		result.Passages, result.Pages, result.Documents, embedder.ModelName())
	return nil
}
