package usecase

import (
	"strings"
	"testing"

	"corpusqa/internal/domain"
)

func TestBuildContext_Format(t *testing.T) {
	passages := []domain.ScoredPassage{
		{Passage: domain.Passage{Text: "existence precedes essence", Source: "being.pdf", Page: 12}, Score: 0.8},
		{Passage: domain.Passage{Text: "condemned to be free", Source: "essays.pdf", Page: 3}, Score: 0.6},
	}

	got := BuildContext(passages, 3000)
	want := "[being.pdf p.12] existence precedes essence\n\n[essays.pdf p.3] condemned to be free"
	if got != want {
		t.Errorf("BuildContext = %q, want %q", got, want)
	}
}

func TestBuildContext_NeverExceedsBudget(t *testing.T) {
	passages := []domain.ScoredPassage{
		{Passage: domain.Passage{Text: strings.Repeat("a", 100), Source: "x.pdf", Page: 1}, Score: 0.9},
		{Passage: domain.Passage{Text: strings.Repeat("b", 100), Source: "x.pdf", Page: 2}, Score: 0.8},
		{Passage: domain.Passage{Text: strings.Repeat("c", 100), Source: "x.pdf", Page: 3}, Score: 0.7},
	}

	for _, budget := range []int{50, 120, 250, 5000} {
		got := BuildContext(passages, budget)
		if len(got) > budget {
			t.Errorf("budget %d exceeded: context is %d chars", budget, len(got))
		}
	}
}

func TestBuildContext_WholeSnippetGranularity(t *testing.T) {
	passages := []domain.ScoredPassage{
		{Passage: domain.Passage{Text: strings.Repeat("a", 50), Source: "x.pdf", Page: 1}, Score: 0.9},
		{Passage: domain.Passage{Text: strings.Repeat("b", 50), Source: "x.pdf", Page: 2}, Score: 0.8},
	}

	// Budget fits the first snippet but not the second: the second is
	// dropped whole, never truncated.
	first := BuildContext(passages[:1], 3000)
	got := BuildContext(passages, len(first)+10)

	if got != first {
		t.Errorf("expected only the first snippet, got %q", got)
	}
	if strings.Contains(got, "b") {
		t.Error("second snippet must not be partially included")
	}
}

func TestBuildContext_StopsAtFirstOverflow(t *testing.T) {
	passages := []domain.ScoredPassage{
		{Passage: domain.Passage{Text: strings.Repeat("a", 10), Source: "x.pdf", Page: 1}, Score: 0.9},
		{Passage: domain.Passage{Text: strings.Repeat("b", 500), Source: "x.pdf", Page: 2}, Score: 0.8},
		{Passage: domain.Passage{Text: strings.Repeat("c", 10), Source: "x.pdf", Page: 3}, Score: 0.7},
	}

	// The oversized second snippet ends assembly; the third snippet is
	// not considered even though it would fit.
	got := BuildContext(passages, 100)
	if strings.Contains(got, "c") {
		t.Error("assembly must stop at the first overflowing snippet")
	}
	if !strings.Contains(got, "a") {
		t.Error("first snippet should be included")
	}
}

func TestBuildContext_Deterministic(t *testing.T) {
	passages := []domain.ScoredPassage{
		{Passage: domain.Passage{Text: "first", Source: "x.pdf", Page: 1}, Score: 0.9},
		{Passage: domain.Passage{Text: "second", Source: "y.pdf", Page: 2}, Score: 0.8},
	}

	a := BuildContext(passages, 3000)
	b := BuildContext(passages, 3000)
	if a != b {
		t.Error("BuildContext must be deterministic for the same ranked input")
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := BuildContext(nil, 3000); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}
