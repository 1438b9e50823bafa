package process

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"smartsplit/pkg/chunking"
)

// DocumentResult holds the chunks and per-document analysis for one file.
type DocumentResult struct {
	Source   string
	Chunks   []chunking.Chunk
	Analysis chunking.Analysis
}

// Core chunks every text file in a directory with a bounded worker pool.
// Documents are independent, so they run in parallel; within a document
// chunk order is the chunker's left-to-right output order.
type Core struct {
	chunker chunking.ChunkingClient
	buckets chunking.SizeBuckets
	method  string
	workers int
	logger  *zap.Logger
}

func NewCore(chunker chunking.ChunkingClient, buckets chunking.SizeBuckets, method string, workers int, logger *zap.Logger) *Core {
	if workers < 1 {
		workers = 1
	}
	return &Core{
		chunker: chunker,
		buckets: buckets,
		method:  method,
		workers: workers,
		logger:  logger,
	}
}

// ProcessDirectory walks dir, chunks every .txt file, and returns one
// result per document in path order.
func (c *Core) ProcessDirectory(ctx context.Context, dir string) ([]DocumentResult, error) {
	paths, err := collectTextFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		c.logger.Warn("No text files found", zap.String("dir", dir))
		return nil, nil
	}

	results := make([]DocumentResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			chunks, err := c.chunker.ChunkText(string(data))
			if err != nil {
				return fmt.Errorf("chunk %s: %w", path, err)
			}

			analysis := chunking.Analyze(chunks, c.buckets)
			results[i] = DocumentResult{
				Source:   path,
				Chunks:   chunks,
				Analysis: analysis,
			}

			c.logger.Info("document_chunked",
				zap.String("source", path),
				zap.Int("text_size", len(data)),
				zap.Int("chunks", analysis.TotalChunks),
				zap.Float64("avg_chunk_size", analysis.AvgChunkSize),
				zap.Float64("sentence_complete_rate", analysis.SentenceCompleteRate),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Records flattens results into ingestion records in document order.
func (c *Core) Records(results []DocumentResult) []ChunkRecord {
	var records []ChunkRecord
	for _, res := range results {
		for _, ch := range res.Chunks {
			records = append(records, NewChunkRecord(res.Source, c.method, ch))
		}
	}
	return records
}

// Aggregate analyzes all chunks across documents as one sequence.
func (c *Core) Aggregate(results []DocumentResult) chunking.Analysis {
	var all []chunking.Chunk
	for _, res := range results {
		all = append(all, res.Chunks...)
	}
	return chunking.Analyze(all, c.buckets)
}

func collectTextFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == ".txt" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
