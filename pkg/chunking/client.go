package chunking

// Chunk is one contiguous piece of a normalized document. Offsets index
// into the normalized text, so consecutive chunks may overlap by up to
// the configured overlap.
type Chunk struct {
	Text           string `json:"text"`
	StartOffset    int    `json:"start_offset"`
	EndOffset      int    `json:"end_offset"`
	Index          int    `json:"index"`
	EndsOnSentence bool   `json:"ends_on_sentence"`
}

type ChunkingClient interface {
	ChunkText(text string) ([]Chunk, error)
}
