package usecase

import (
	"fmt"
	"strings"

	"corpusqa/internal/domain"
)

// BuildContext formats ranked passages as provenance-tagged snippets
// within maxChars. Budget accounting is whole-snippet: the first snippet
// that would overflow is dropped and assembly stops. Deterministic for
// the same ranked input.
func BuildContext(passages []domain.ScoredPassage, maxChars int) string {
	var parts []string
	total := 0

	for _, p := range passages {
		snippet := fmt.Sprintf("[%s p.%d] %s", p.Passage.Source, p.Passage.Page, p.Passage.Text)
		if total+len(snippet) > maxChars {
			break
		}
		parts = append(parts, snippet)
		total += len(snippet)
	}

	return strings.Join(parts, "\n\n")
}
