package process

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"smartsplit/pkg/chunking"
)

var recordNamespace = uuid.MustParse("8f7c9f2a-4a1d-4d52-9d7e-1f3b6a0c2e41")

// ChunkRecord is the ingestion-facing form of a chunk: the chunk itself
// plus document metadata. The embedding and storage layers downstream
// consume these records; this package knows nothing about vectors.
type ChunkRecord struct {
	ID             string `json:"id"`
	Source         string `json:"source"`
	ChunkIndex     int    `json:"chunk_index"`
	StartOffset    int    `json:"start_offset"`
	EndOffset      int    `json:"end_offset"`
	ChunkSize      int    `json:"chunk_size"`
	EndsOnSentence bool   `json:"ends_on_sentence"`
	SplitMethod    string `json:"split_method"`
	Text           string `json:"text"`
}

// NewChunkRecord derives a deterministic ID from the source document and
// chunk position, so re-running ingestion over the same input produces
// the same IDs.
func NewChunkRecord(source, method string, ch chunking.Chunk) ChunkRecord {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s\x00%d\x00%s", source, ch.StartOffset, ch.Text))
	id := uuid.NewSHA1(recordNamespace, hash[:16]).String()

	return ChunkRecord{
		ID:             id,
		Source:         source,
		ChunkIndex:     ch.Index,
		StartOffset:    ch.StartOffset,
		EndOffset:      ch.EndOffset,
		ChunkSize:      len(ch.Text),
		EndsOnSentence: ch.EndsOnSentence,
		SplitMethod:    method,
		Text:           ch.Text,
	}
}

// WriteRecords streams records as JSONL, one record per line.
func WriteRecords(w io.Writer, records []ChunkRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode chunk record: %w", err)
		}
	}
	return nil
}
