package analyzer

// stopwords carry no lexical evidence on their own, so the support check
// ignores them.
var stopwords = func() map[string]struct{} {
	stops := []string{
		"the", "a", "an", "and", "or", "to", "of", "in", "on", "for",
		"with", "is", "are", "was", "were",
		"what", "why", "how", "does", "do", "did", "should", "can",
		"could", "would", "i", "you", "we",
		"my", "your", "our", "me", "it", "this", "that", "these", "those",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}()
