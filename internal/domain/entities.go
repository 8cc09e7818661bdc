package domain

// Passage is an immutable excerpt of the source corpus with its
// provenance. Produced once by ingestion; identity is its position in
// the index.
type Passage struct {
	Text   string `json:"chunk"`
	Source string `json:"source"`
	Page   int    `json:"page"`
}

// ScoredPassage pairs a passage with its similarity score for one query.
type ScoredPassage struct {
	Passage Passage
	Score   float64
}

// RetrievalResult is the outcome of one nearest-neighbor search.
// Passages are ranked by descending score and already satisfy the
// per-passage minimum. BestScore is the raw top-1 score before any
// filtering, 0.0 when the index returned no neighbors.
type RetrievalResult struct {
	Passages  []ScoredPassage
	BestScore float64
}

// Gate identifies which checkpoint forced a refusal.
type Gate string

const (
	GateNone      Gate = ""
	GateTopic     Gate = "topic"
	GateScore     Gate = "score"
	GateSupport   Gate = "support"
	GateGenerator Gate = "generator"
)

// SourceRef is one provenance entry surfaced alongside an answer.
type SourceRef struct {
	Source string  `json:"source"`
	Page   int     `json:"page"`
	Score  float64 `json:"score"`
}

// Answer is the terminal result of the query pipeline: either an answer
// with provenance, or a refusal tagged with the gate that fired.
type Answer struct {
	Text      string      `json:"answer"`
	Refused   bool        `json:"refused"`
	Gate      Gate        `json:"gate,omitempty"`
	Sources   []SourceRef `json:"sources,omitempty"`
	BestScore float64     `json:"best_score"`
	Context   string      `json:"-"`
}
