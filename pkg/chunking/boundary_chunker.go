package chunking

import (
	"strings"
	"unicode/utf8"
)

// BreakKind classifies a break point by the structure it lands on.
type BreakKind int

const (
	BreakHardCut BreakKind = iota
	BreakClause
	BreakSentence
	BreakParagraph
)

func (k BreakKind) String() string {
	switch k {
	case BreakParagraph:
		return "paragraph_break"
	case BreakSentence:
		return "sentence_end"
	case BreakClause:
		return "clause_break"
	default:
		return "hard_cut"
	}
}

// One weight per kind keeps the scoring rule auditable in isolation.
var breakWeights = [...]float64{
	BreakHardCut:   0,
	BreakClause:    0.4,
	BreakSentence:  0.8,
	BreakParagraph: 1.0,
}

// Lookahead past the ideal end, as a fraction of chunk_size.
const slackRatio = 5

type breakCandidate struct {
	pos   int // end offset (exclusive) of the chunk
	kind  BreakKind
	dist  int
	score float64
}

// BoundaryChunker splits normalized text into overlapping chunks,
// breaking at paragraph, sentence, or clause boundaries near the target
// size instead of at fixed offsets. It holds no state across calls and
// is safe for concurrent use on independent inputs.
type BoundaryChunker struct {
	cfg     Config
	abbrevs AbbreviationSet
	slack   int
}

// NewBoundaryChunker validates the configuration and returns a chunker.
// Extra abbreviations are merged into the default suppression set.
func NewBoundaryChunker(cfg Config, extraAbbreviations ...string) (*BoundaryChunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slack := cfg.ChunkSize / slackRatio
	if slack < 1 {
		slack = 1
	}
	return &BoundaryChunker{
		cfg:     cfg,
		abbrevs: NewAbbreviationSet(extraAbbreviations...),
		slack:   slack,
	}, nil
}

// Config returns the configuration the chunker was built with.
func (c *BoundaryChunker) Config() Config {
	return c.cfg
}

// ChunkText normalizes text and splits it left to right. Chunks overlap
// by up to cfg.ChunkOverlap characters; the cursor always advances by at
// least one character, so the loop terminates on any input.
func (c *BoundaryChunker) ChunkText(text string) ([]Chunk, error) {
	norm := Normalize(text)
	if norm == "" {
		return nil, nil
	}

	var chunks []Chunk
	p := 0
	for p < len(norm) {
		idealEnd := p + c.cfg.ChunkSize

		if idealEnd >= len(norm) {
			// Remaining tail is the final chunk, even when shorter than
			// min_chunk_size: dropping it would lose coverage.
			chunks = append(chunks, newChunk(norm, p, len(norm), len(chunks), endsOnSentence(norm[p:])))
			break
		}

		end, kind := c.pickBreak(norm, p, idealEnd)
		sentence := kind == BreakSentence || kind == BreakParagraph
		chunks = append(chunks, newChunk(norm, p, end, len(chunks), sentence))

		if end >= len(norm) {
			break
		}
		next := end - c.cfg.ChunkOverlap
		if next <= p {
			next = p + 1
		}
		p = next
	}
	return chunks, nil
}

// pickBreak scans backward from the slack boundary and selects the
// best-scoring candidate; score = kind weight minus a penalty growing
// with distance from the ideal end. Scanning backward means the winner
// is the best boundary available near the target size, not merely the
// first acceptable one.
func (c *BoundaryChunker) pickBreak(text string, p, idealEnd int) (int, BreakKind) {
	hi := idealEnd + c.slack
	if limit := p + c.cfg.MaxChunkSize; hi > limit {
		hi = limit
	}
	if hi > len(text) {
		hi = len(text)
	}
	lo := p + c.cfg.MinChunkSize
	if lo <= p {
		lo = p + 1
	}

	best := breakCandidate{pos: -1}
	for i := hi; i >= lo; i-- {
		kind, ok := c.candidateAt(text, i)
		if !ok {
			continue
		}
		dist := i - idealEnd
		if dist < 0 {
			dist = -dist
		}
		cand := breakCandidate{
			pos:   i,
			kind:  kind,
			dist:  dist,
			score: breakWeights[kind] - float64(dist)/float64(c.cfg.ChunkSize),
		}
		if cand.score <= 0 {
			continue
		}
		if betterCandidate(cand, best) {
			best = cand
		}
	}

	if best.pos < 0 {
		// Hard cut exactly at the ideal end, stepped back to a rune
		// boundary so a multi-byte character is never split.
		end := idealEnd
		for end > p+1 && !utf8.RuneStart(text[end]) {
			end--
		}
		return end, BreakHardCut
	}
	return best.pos, best.kind
}

// betterCandidate orders by score, then proximity to the ideal end, then
// earliest position. Fully deterministic for identical input.
func betterCandidate(a, b breakCandidate) bool {
	if b.pos < 0 {
		return true
	}
	if a.score != b.score {
		return a.score > b.score
	}
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.pos < b.pos
}

// candidateAt reports whether the text can break so that a chunk ends at
// offset i (exclusive). Paragraph breaks are checked first, then
// sentence ends, then clause breaks.
func (c *BoundaryChunker) candidateAt(text string, i int) (BreakKind, bool) {
	if i <= 0 || i > len(text) {
		return BreakHardCut, false
	}

	// Chunk ends right before the blank line separating paragraphs.
	if i+1 < len(text) && text[i] == '\n' && text[i+1] == '\n' && text[i-1] != '\n' {
		return BreakParagraph, true
	}

	if i < len(text) && !isBreakSpace(text[i]) {
		return BreakHardCut, false
	}

	// Walk back over closing quotes and brackets so `arrived."` still
	// counts as a sentence end.
	j := i
	for j > 0 && isClosing(text[j-1]) {
		j--
	}
	if j > 0 && isSentencePunct(text[j-1]) {
		if c.abbrevs.Contains(precedingToken(text, j)) {
			return BreakHardCut, false
		}
		return BreakSentence, true
	}

	if i < len(text) && isClausePunct(text[i-1]) {
		return BreakClause, true
	}
	return BreakHardCut, false
}

// precedingToken extracts the whitespace-delimited token ending at end,
// including its terminal punctuation ("Dr." for a candidate after the
// period). Plain set lookup, no tokenizer.
func precedingToken(text string, end int) string {
	start := end
	for start > 0 && !isBreakSpace(text[start-1]) {
		start--
	}
	return text[start:end]
}

func newChunk(text string, start, end, index int, sentence bool) Chunk {
	return Chunk{
		Text:           text[start:end],
		StartOffset:    start,
		EndOffset:      end,
		Index:          index,
		EndsOnSentence: sentence,
	}
}

// endsOnSentence reports whether a piece of text finishes a sentence,
// ignoring trailing whitespace and closing quotes or brackets.
func endsOnSentence(s string) bool {
	s = strings.TrimRight(s, " \n\t")
	for len(s) > 0 && isClosing(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return len(s) > 0 && isSentencePunct(s[len(s)-1])
}

func isSentencePunct(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isClausePunct(b byte) bool {
	return b == ',' || b == ';' || b == ':'
}

func isBreakSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t'
}

func isClosing(b byte) bool {
	return b == '"' || b == '\'' || b == ')' || b == ']' || b == '}'
}
