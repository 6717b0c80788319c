package text

// DefaultMaxChunkSize is the character bound applied to extracted content
// before it is split into individually indexed chunks.
const DefaultMaxChunkSize = 30000

// Split slices s into contiguous, non-overlapping chunks of at most
// maxChunkSize characters. Boundaries are plain character counts, not
// sentence-aware. Empty input yields no chunks. Splitting is rune-based so a
// multi-byte character is never cut in half.
func Split(s string, maxChunkSize int) []string {
	if s == "" {
		return nil
	}
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}

	runes := []rune(s)
	if len(runes) <= maxChunkSize {
		return []string{s}
	}

	chunks := make([]string, 0, (len(runes)+maxChunkSize-1)/maxChunkSize)
	for start := 0; start < len(runes); start += maxChunkSize {
		end := start + maxChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
