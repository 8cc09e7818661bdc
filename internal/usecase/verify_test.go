package usecase

import (
	"testing"

	"corpusqa/internal/domain"
)

func passagesWith(texts ...string) []domain.ScoredPassage {
	ps := make([]domain.ScoredPassage, len(texts))
	for i, text := range texts {
		ps[i] = domain.ScoredPassage{
			Passage: domain.Passage{Text: text, Source: "test.pdf", Page: i + 1},
			Score:   0.5,
		}
	}
	return ps
}

func TestIsSupportedByContext_ShortQueryNeedsOneHit(t *testing.T) {
	// "What is bad faith?" has content terms {bad, faith}; "faith" alone
	// in the passages is enough.
	passages := passagesWith("faith and freedom are intertwined")

	if !IsSupportedByContext("What is bad faith?", passages) {
		t.Error("expected one hit to support a short query")
	}
}

func TestIsSupportedByContext_LongQueryNeedsTwoHits(t *testing.T) {
	query := "freedom responsibility anguish abandonment essence existence"

	oneHit := passagesWith("only freedom appears here")
	if IsSupportedByContext(query, oneHit) {
		t.Error("one hit must not support a query with more than four content terms")
	}

	twoHits := passagesWith("freedom appears here", "and anguish there")
	if !IsSupportedByContext(query, twoHits) {
		t.Error("two hits must support a long query")
	}
}

func TestIsSupportedByContext_EmptyTermSet(t *testing.T) {
	passages := passagesWith("any text at all")

	if IsSupportedByContext("what is it", passages) {
		t.Error("a query with no content terms cannot be verified")
	}
	if IsSupportedByContext("", passages) {
		t.Error("an empty query cannot be verified")
	}
}

func TestIsSupportedByContext_NoPassages(t *testing.T) {
	if IsSupportedByContext("What is bad faith?", nil) {
		t.Error("no passages means no support")
	}
}

func TestIsSupportedByContext_CaseInsensitive(t *testing.T) {
	passages := passagesWith("FREEDOM is what we are condemned to")

	if !IsSupportedByContext("what is freedom", passages) {
		t.Error("matching must be case-insensitive")
	}
}

func TestIsSupportedByContext_SubstringMatch(t *testing.T) {
	// Terms match as substrings anywhere in the concatenated text.
	passages := passagesWith("the freedoms granted are many")

	if !IsSupportedByContext("what is freedom", passages) {
		t.Error("expected substring match on 'freedom' inside 'freedoms'")
	}
}
