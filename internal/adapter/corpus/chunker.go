package corpus

// ChunkText splits text into fixed-size character chunks with overlap.
// The final chunk may be shorter; overlap must be smaller than size.
func ChunkText(text string, size, overlap int) []string {
	if size <= 0 || len(text) == 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
		start = end - overlap
	}
	return chunks
}
