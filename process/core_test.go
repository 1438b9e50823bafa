package process

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"smartsplit/pkg/chunking"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestCore(t *testing.T) *Core {
	t.Helper()
	cfg := chunking.Config{ChunkSize: 50, ChunkOverlap: 10, MinChunkSize: 10, MaxChunkSize: 100}
	chunker, err := chunking.NewBoundaryChunker(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewCore(chunker, chunking.DefaultSizeBuckets(), "smart_splitter", 2, zap.NewNop())
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	doc := strings.Repeat("A sentence about nothing in particular. ", 5)
	writeFile(t, filepath.Join(dir, "a.txt"), doc)
	writeFile(t, filepath.Join(dir, "b.txt"), doc)
	writeFile(t, filepath.Join(dir, "nested", "c.txt"), doc)
	writeFile(t, filepath.Join(dir, "ignored.md"), doc)

	core := newTestCore(t)
	results, err := core.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(results))
	}

	total := 0
	for _, res := range results {
		if len(res.Chunks) == 0 {
			t.Errorf("no chunks for %s", res.Source)
		}
		if res.Analysis.TotalChunks != len(res.Chunks) {
			t.Errorf("analysis count mismatch for %s", res.Source)
		}
		total += len(res.Chunks)
	}

	records := core.Records(results)
	if len(records) != total {
		t.Fatalf("expected %d records, got %d", total, len(records))
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			t.Errorf("duplicate record id %s", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.SplitMethod != "smart_splitter" {
			t.Errorf("unexpected split method %q", r.SplitMethod)
		}
		if r.ChunkSize != len(r.Text) {
			t.Errorf("chunk size %d mismatches text length %d", r.ChunkSize, len(r.Text))
		}
	}

	if agg := core.Aggregate(results); agg.TotalChunks != total {
		t.Errorf("aggregate chunks = %d, want %d", agg.TotalChunks, total)
	}
}

func TestProcessDirectoryDeterministicIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "doc.txt"), "First sentence here. Second sentence there. Third one closes.")

	core := newTestCore(t)
	first, err := core.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := core.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, b := core.Records(first), core.Records(second)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("record counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("record %d id changed between runs", i)
		}
	}
}

func TestProcessDirectoryEmpty(t *testing.T) {
	core := newTestCore(t)
	results, err := core.ProcessDirectory(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestWriteRecords(t *testing.T) {
	records := []ChunkRecord{
		NewChunkRecord("doc.txt", "smart_splitter", chunking.Chunk{Text: "First piece.", EndOffset: 12, EndsOnSentence: true}),
		NewChunkRecord("doc.txt", "smart_splitter", chunking.Chunk{Text: "Second piece.", StartOffset: 8, EndOffset: 21, Index: 1, EndsOnSentence: true}),
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSONL lines, got %d", len(lines))
	}
	for i, line := range lines {
		var r ChunkRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if r.ID == "" || r.Source != "doc.txt" {
			t.Errorf("line %d has incomplete record: %+v", i, r)
		}
	}
}
