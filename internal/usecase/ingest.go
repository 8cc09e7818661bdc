package usecase

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"corpusqa/internal/adapter/corpus"
	"corpusqa/internal/adapter/embedding"
	"corpusqa/internal/adapter/store"
	"corpusqa/internal/domain"
	"corpusqa/internal/port"
)

// Ingestor builds the corpus index: extracts PDF pages, chunks them,
// embeds every chunk with the serving embedder and rebuilds the index
// file wholesale.
type Ingestor struct {
	embedder     port.Embedder
	chunkChars   int
	chunkOverlap int

	// Progress, when set, is called after each embedded batch with the
	// number of chunks done and the total.
	Progress func(done, total int)
}

// IngestResult summarizes one corpus build.
type IngestResult struct {
	Documents int
	Pages     int
	Passages  int
}

func NewIngestor(embedder port.Embedder, chunkChars, chunkOverlap int) *Ingestor {
	return &Ingestor{
		embedder:     embedder,
		chunkChars:   chunkChars,
		chunkOverlap: chunkOverlap,
	}
}

// Ingest scans dataDir for PDFs and rebuilds the index at dbPath.
func (u *Ingestor) Ingest(dataDir, dbPath string) (*IngestResult, error) {
	files, err := doublestar.FilepathGlob(dataDir + "/**/*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dataDir)
	}

	result := &IngestResult{Documents: len(files)}

	var passages []domain.Passage
	for _, file := range files {
		pages, err := corpus.ExtractPDFPages(file)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", file, err)
		}
		result.Pages += len(pages)
		for _, page := range pages {
			for _, chunk := range corpus.ChunkText(page.Text, u.chunkChars, u.chunkOverlap) {
				passages = append(passages, domain.Passage{
					Text:   chunk,
					Source: page.Source,
					Page:   page.Number,
				})
			}
		}
	}

	if len(passages) == 0 {
		return nil, fmt.Errorf("no text extracted from corpus in %s", dataDir)
	}
	result.Passages = len(passages)

	vectors, err := u.embedAll(passages)
	if err != nil {
		return nil, err
	}

	meta := store.Meta{
		EmbeddingModel: u.embedder.ModelName(),
		Dimension:      u.embedder.Dimension(),
	}
	if err := store.Rebuild(dbPath, meta, passages, vectors); err != nil {
		return nil, fmt.Errorf("failed to rebuild corpus index: %w", err)
	}

	return result, nil
}

// embedAll embeds passage texts in batches, normalizing each vector so
// the index can use inner product as cosine similarity.
func (u *Ingestor) embedAll(passages []domain.Passage) ([][]float32, error) {
	const batchSize = 64

	vectors := make([][]float32, 0, len(passages))
	for i := 0; i < len(passages); i += batchSize {
		end := i + batchSize
		if end > len(passages) {
			end = len(passages)
		}

		texts := make([]string, 0, end-i)
		for _, p := range passages[i:end] {
			texts = append(texts, p.Text)
		}

		batch, err := u.embedder.Embed(texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed passages: %w", err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(batch), len(texts))
		}

		for _, v := range batch {
			vectors = append(vectors, embedding.NormalizeL2(v))
		}

		if u.Progress != nil {
			u.Progress(end, len(passages))
		}
	}

	return vectors, nil
}
