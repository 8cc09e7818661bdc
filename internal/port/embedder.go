package port

// Embedder generates vector embeddings for text. The same model and
// configuration must serve both ingestion and query embedding, or
// similarity scores between the two are meaningless.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text.
	Embed(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
