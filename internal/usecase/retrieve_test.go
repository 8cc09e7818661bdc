package usecase

import (
	"errors"
	"testing"
	"time"

	"corpusqa/internal/adapter/cache"
	"corpusqa/internal/domain"
	"corpusqa/internal/port"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (e *fakeEmbedder) Embed(texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = append([]float32(nil), e.vector...)
	}
	return out, nil
}

func (e *fakeEmbedder) Dimension() int    { return len(e.vector) }
func (e *fakeEmbedder) ModelName() string { return "fake" }

type fakeIndex struct {
	hits []port.Hit
	err  error
}

func (f *fakeIndex) Search(query []float32, k int) ([]port.Hit, error) {
	if f.err != nil {
		return nil, f.err
	}
	if k > len(f.hits) {
		k = len(f.hits)
	}
	return f.hits[:k], nil
}

func (f *fakeIndex) Count() int { return len(f.hits) }

type fakePassages struct {
	passages []domain.Passage
}

func (f *fakePassages) GetPassage(position int) (domain.Passage, error) {
	if position < 0 || position >= len(f.passages) {
		return domain.Passage{}, errors.New("out of range")
	}
	return f.passages[position], nil
}

func (f *fakePassages) Count() int { return len(f.passages) }

func testCorpus() *fakePassages {
	return &fakePassages{passages: []domain.Passage{
		{Text: "existence precedes essence", Source: "being.pdf", Page: 12},
		{Text: "condemned to be free", Source: "being.pdf", Page: 40},
		{Text: "bad faith is a lie to oneself", Source: "essays.pdf", Page: 3},
	}}
}

func TestRetrieve_FiltersBelowMinScore(t *testing.T) {
	index := &fakeIndex{hits: []port.Hit{
		{Position: 0, Score: 0.8},
		{Position: 1, Score: 0.3},
		{Position: 2, Score: 0.1},
	}}
	r := NewRetriever(index, testCorpus(), &fakeEmbedder{vector: []float32{1, 0}}, 8, 0.25, nil)

	result, err := r.Retrieve("what is existence")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Passages) != 2 {
		t.Fatalf("expected 2 passages above the floor, got %d", len(result.Passages))
	}
	for _, p := range result.Passages {
		if p.Score < 0.25 {
			t.Errorf("passage below minimum score leaked through: %f", p.Score)
		}
	}
}

func TestRetrieve_BestScoreIsRawTopOne(t *testing.T) {
	// The top neighbor is below the per-passage floor: it is excluded
	// from the ranked list, but BestScore still reports it.
	index := &fakeIndex{hits: []port.Hit{
		{Position: 0, Score: 0.2},
		{Position: 1, Score: 0.1},
	}}
	r := NewRetriever(index, testCorpus(), &fakeEmbedder{vector: []float32{1, 0}}, 8, 0.25, nil)

	result, err := r.Retrieve("what is existence")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.BestScore != 0.2 {
		t.Errorf("expected BestScore=0.2 before filtering, got %f", result.BestScore)
	}
	if len(result.Passages) != 0 {
		t.Errorf("expected empty ranked list, got %d passages", len(result.Passages))
	}
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	r := NewRetriever(&fakeIndex{}, testCorpus(), &fakeEmbedder{vector: []float32{1, 0}}, 8, 0.25, nil)

	result, err := r.Retrieve("what is existence")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.BestScore != 0.0 {
		t.Errorf("expected BestScore=0.0 for empty index, got %f", result.BestScore)
	}
	if len(result.Passages) != 0 {
		t.Errorf("expected no passages, got %d", len(result.Passages))
	}
}

func TestRetrieve_EmbedderError(t *testing.T) {
	r := NewRetriever(&fakeIndex{}, testCorpus(), &fakeEmbedder{err: errors.New("boom")}, 8, 0.25, nil)

	if _, err := r.Retrieve("what is existence"); err == nil {
		t.Fatal("expected error when embedding fails")
	}
}

func TestRetrieve_RankOrderPreserved(t *testing.T) {
	index := &fakeIndex{hits: []port.Hit{
		{Position: 2, Score: 0.9},
		{Position: 0, Score: 0.7},
		{Position: 1, Score: 0.5},
	}}
	r := NewRetriever(index, testCorpus(), &fakeEmbedder{vector: []float32{1, 0}}, 8, 0.25, nil)

	result, err := r.Retrieve("what is bad faith")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(result.Passages); i++ {
		if result.Passages[i].Score > result.Passages[i-1].Score {
			t.Errorf("passages not in descending score order: %v", result.Passages)
		}
	}
	if result.Passages[0].Passage.Source != "essays.pdf" {
		t.Errorf("expected top hit to resolve position 2, got %+v", result.Passages[0].Passage)
	}
}

func TestRetrieve_CacheAvoidsSecondSearch(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	index := &fakeIndex{hits: []port.Hit{{Position: 0, Score: 0.8}}}
	c := cache.NewRetrievalCache(10, time.Minute)
	r := NewRetriever(index, testCorpus(), embedder, 8, 0.25, c)

	first, err := r.Retrieve("what is existence")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Retrieve("what is existence")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if embedder.calls != 1 {
		t.Errorf("expected a single embed call, got %d", embedder.calls)
	}
	if first.BestScore != second.BestScore || len(first.Passages) != len(second.Passages) {
		t.Error("cached result differs from the original")
	}
}
