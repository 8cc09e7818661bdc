package analyzer

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// ContentTerms extracts the distinct content words of a text: alphabetic
// tokens of length >= 3, lower-cased, with stopwords removed. Order
// follows first occurrence.
func ContentTerms(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if _, isStop := stopwords[w]; isStop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}

// IsStopword reports whether the lower-cased word is in the stopword set.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
