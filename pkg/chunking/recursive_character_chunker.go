package chunking

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveCharacterChunker is the fixed-width baseline: langchaingo's
// recursive character splitter over the same normalized text, used to
// compare boundary-aware splitting against naive splitting.
type RecursiveCharacterChunker struct {
	splitter textsplitter.RecursiveCharacter
}

func NewRecursiveCharacterChunker(cfg Config) (*RecursiveCharacterChunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(cfg.ChunkSize),
		textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", " "}),
	)
	return &RecursiveCharacterChunker{splitter: splitter}, nil
}

func (c *RecursiveCharacterChunker) ChunkText(text string) ([]Chunk, error) {
	norm := Normalize(text)
	if norm == "" {
		return nil, nil
	}

	pieces, err := c.splitter.SplitText(norm)
	if err != nil {
		return nil, fmt.Errorf("recursive split: %w", err)
	}

	// The splitter returns plain strings; recover offsets by locating
	// each piece at or after the start of the previous one.
	chunks := make([]Chunk, 0, len(pieces))
	cursor := 0
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		start := cursor
		if idx := strings.Index(norm[cursor:], piece); idx >= 0 {
			start = cursor + idx
		}
		end := start + len(piece)
		if end > len(norm) {
			end = len(norm)
		}
		chunks = append(chunks, Chunk{
			Text:           piece,
			StartOffset:    start,
			EndOffset:      end,
			Index:          len(chunks),
			EndsOnSentence: endsOnSentence(piece),
		})
		cursor = start + 1
	}
	return chunks, nil
}
