package cli

import (
	"fmt"
	"os"
	"time"

	"corpusqa/config"
	"corpusqa/internal/adapter/cache"
	"corpusqa/internal/adapter/embedding"
	"corpusqa/internal/adapter/generator"
	"corpusqa/internal/adapter/store"
	"corpusqa/internal/port"
	"corpusqa/internal/usecase"
)

// newEmbedder builds the configured embedder.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	e := cfg.Embedding
	switch e.Provider {
	case "ollama", "":
		return embedding.NewOllama(e.Model, e.BaseURL, e.Dimension), nil
	case "openai":
		return embedding.NewOpenAI(e.APIKeyEnv, e.Model, e.BaseURL, e.Dimension)
	case "mock":
		return embedding.NewMockEmbedder(e.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", e.Provider)
	}
}

// newPipeline opens the corpus index and wires the full query pipeline.
// The caller must Close the returned store.
func newPipeline(cfg *config.Config, rootDir string) (*usecase.Pipeline, *store.CorpusStore, error) {
	dbPath := config.IndexDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("no corpus index found. Run 'corpusqa ingest' first")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open corpus index: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	// The index is only meaningful against the embedding space it was
	// built in.
	meta := st.Meta()
	if meta.EmbeddingModel != embedder.ModelName() || meta.Dimension != embedder.Dimension() {
		st.Close()
		return nil, nil, fmt.Errorf(
			"corpus index was built with model %q (dim %d) but the configured embedder is %q (dim %d); rerun 'corpusqa ingest'",
			meta.EmbeddingModel, meta.Dimension, embedder.ModelName(), embedder.Dimension())
	}

	var retrievalCache *cache.RetrievalCache
	if cfg.Cache.Enabled {
		retrievalCache = cache.NewRetrievalCache(
			cfg.Cache.MaxEntries,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
	}

	retriever := usecase.NewRetriever(
		st, st, embedder,
		cfg.Retrieve.TopK,
		cfg.Retrieve.MinScore,
		retrievalCache,
	)

	gen := generator.NewOllama(
		cfg.Generate.BaseURL,
		cfg.Generate.Model,
		time.Duration(cfg.Generate.TimeoutSeconds)*time.Second,
	)

	pipeline := usecase.NewPipeline(
		usecase.NewTopicGate(),
		retriever,
		gen,
		cfg.Retrieve.MinScore,
		cfg.Context.MaxChars,
	)

	return pipeline, st, nil
}
