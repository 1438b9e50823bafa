package chunking

import (
	"errors"
	"strings"
	"testing"
)

func TestRecursiveCharacterChunker(t *testing.T) {
	cfg := Config{ChunkSize: 60, ChunkOverlap: 10, MinChunkSize: 5, MaxChunkSize: 120}
	c, err := NewRecursiveCharacterChunker(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10)
	norm := Normalize(raw)

	chunks, err := c.ChunkText(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, ch := range chunks {
		if ch.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if ch.StartOffset < 0 || ch.EndOffset > len(norm) || ch.StartOffset >= ch.EndOffset {
			t.Errorf("chunk %d has invalid offsets %d..%d", i, ch.StartOffset, ch.EndOffset)
		}
		if i > 0 && ch.StartOffset <= chunks[i-1].StartOffset {
			t.Errorf("chunk %d does not advance", i)
		}
	}
}

func TestRecursiveCharacterChunker_EmptyInput(t *testing.T) {
	c, err := NewRecursiveCharacterChunker(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunks, err := c.ChunkText("   \n ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestRecursiveCharacterChunker_ConfigError(t *testing.T) {
	_, err := NewRecursiveCharacterChunker(Config{ChunkSize: 50, ChunkOverlap: 50, MinChunkSize: 5, MaxChunkSize: 100})
	if err == nil {
		t.Fatal("expected config error")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}
