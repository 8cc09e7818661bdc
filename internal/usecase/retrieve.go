package usecase

import (
	"fmt"

	"corpusqa/internal/adapter/cache"
	"corpusqa/internal/adapter/embedding"
	"corpusqa/internal/domain"
	"corpusqa/internal/port"
)

// Retriever embeds a query and searches the vector index. The per-passage
// minimum score is applied here; the overall best-score gate belongs to
// the caller and uses the raw top-1 score, which may itself have been
// filtered out of the ranked list. Both cutoffs share one config value.
type Retriever struct {
	index    port.VectorIndex
	passages port.PassageStore
	embedder port.Embedder
	topK     int
	minScore float64
	cache    *cache.RetrievalCache
}

// NewRetriever creates a retriever. cache may be nil to disable caching.
func NewRetriever(
	index port.VectorIndex,
	passages port.PassageStore,
	embedder port.Embedder,
	topK int,
	minScore float64,
	c *cache.RetrievalCache,
) *Retriever {
	return &Retriever{
		index:    index,
		passages: passages,
		embedder: embedder,
		topK:     topK,
		minScore: minScore,
		cache:    c,
	}
}

// Retrieve returns the ranked passages above the minimum score and the
// raw best score. An empty index yields an empty result with BestScore 0.
func (r *Retriever) Retrieve(query string) (domain.RetrievalResult, error) {
	if r.cache != nil {
		if result, ok := r.cache.Get(query, r.topK); ok {
			return result, nil
		}
	}

	vectors, err := r.embedder.Embed([]string{query})
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return domain.RetrievalResult{}, fmt.Errorf("embedding returned empty result")
	}

	q := embedding.NormalizeL2(vectors[0])

	hits, err := r.index.Search(q, r.topK)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("vector search failed: %w", err)
	}
	if len(hits) == 0 {
		return domain.RetrievalResult{BestScore: 0.0}, nil
	}

	result := domain.RetrievalResult{
		BestScore: hits[0].Score,
		Passages:  make([]domain.ScoredPassage, 0, len(hits)),
	}

	for _, hit := range hits {
		if hit.Score < r.minScore {
			continue
		}
		passage, err := r.passages.GetPassage(hit.Position)
		if err != nil {
			continue
		}
		result.Passages = append(result.Passages, domain.ScoredPassage{
			Passage: passage,
			Score:   hit.Score,
		})
	}

	if r.cache != nil {
		r.cache.Put(query, r.topK, result)
	}

	return result, nil
}
