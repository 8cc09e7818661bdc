package usecase

import (
	"strings"

	"corpusqa/internal/adapter/analyzer"
	"corpusqa/internal/domain"
)

// IsSupportedByContext reports whether the retrieved passages literally
// contain terms from the query. An empty content-term set cannot be
// verified and counts as unsupported. Short queries (<=4 content terms)
// need one hit; longer ones need two.
func IsSupportedByContext(query string, passages []domain.ScoredPassage) bool {
	terms := analyzer.ContentTerms(query)
	if len(terms) == 0 {
		return false
	}

	var sb strings.Builder
	for i, p := range passages {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.Passage.Text)
	}
	ctx := strings.ToLower(sb.String())

	hits := 0
	for _, t := range terms {
		if strings.Contains(ctx, t) {
			hits++
		}
	}

	required := 1
	if len(terms) > 4 {
		required = 2
	}
	return hits >= required
}
