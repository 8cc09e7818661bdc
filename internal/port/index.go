package port

import "corpusqa/internal/domain"

// Hit is one nearest-neighbor match. Position is the entry's position
// in the index, which doubles as the passage record position.
type Hit struct {
	Position int
	Score    float64
}

// VectorIndex searches precomputed passage embeddings. Stored vectors
// are unit length, so the inner product with a normalized query equals
// cosine similarity. The index is read-only while serving.
type VectorIndex interface {
	// Search returns up to k nearest entries, highest score first.
	Search(query []float32, k int) ([]Hit, error)

	// Count returns the number of indexed vectors.
	Count() int
}

// PassageStore resolves index positions to passage records. Position i
// in the index corresponds to passage record i.
type PassageStore interface {
	GetPassage(position int) (domain.Passage, error)
	Count() int
}
