package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smartsplit/config"
	"smartsplit/pkg/chunking"
	"smartsplit/process"
)

const (
	methodSmart     = "smart"
	methodRecursive = "recursive"
)

var (
	profilePath string
	method      string
	chunkOutput string
	batchOutput string

	chunkSize    int
	chunkOverlap int
	minChunkSize int
	maxChunkSize int
	workers      int
)

var rootCmd = &cobra.Command{
	Use:   "smartsplit",
	Short: "Boundary-aware text chunking for embedding pipelines",
	Long: `smartsplit splits pre-extracted document text into overlapping chunks,
choosing break points that respect paragraph, sentence, and clause
structure instead of cutting at fixed character offsets.`,
	SilenceUsage: true,
}

var chunkCmd = &cobra.Command{
	Use:   "chunk [file]",
	Short: "Chunk one text file and print chunk records as JSONL",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunk,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Chunk one text file and print quality statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var compareCmd = &cobra.Command{
	Use:   "compare [file]",
	Short: "Compare boundary-aware and recursive splitting on one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Chunk every .txt file under a directory in parallel",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&profilePath, "profile", "", "YAML profile with chunking settings")
	pf.StringVarP(&method, "method", "m", methodSmart, "chunking method: smart or recursive")
	pf.IntVar(&chunkSize, "chunk-size", 0, "target chunk size in characters (overrides profile)")
	pf.IntVar(&chunkOverlap, "chunk-overlap", 0, "overlap between chunks in characters (overrides profile)")
	pf.IntVar(&minChunkSize, "min-chunk-size", 0, "minimum chunk size in characters (overrides profile)")
	pf.IntVar(&maxChunkSize, "max-chunk-size", 0, "maximum chunk size in characters (overrides profile)")

	chunkCmd.Flags().StringVarP(&chunkOutput, "output", "o", "", "write JSONL here instead of stdout")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "chunks.jsonl", "JSONL output path")
	batchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel documents (overrides profile)")

	rootCmd.AddCommand(chunkCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadProfile(cmd *cobra.Command) (*config.Profile, error) {
	p, err := config.Load(profilePath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("chunk-size") {
		p.Chunking.ChunkSize = chunkSize
	}
	if cmd.Flags().Changed("chunk-overlap") {
		p.Chunking.ChunkOverlap = chunkOverlap
	}
	if cmd.Flags().Changed("min-chunk-size") {
		p.Chunking.MinChunkSize = minChunkSize
	}
	if cmd.Flags().Changed("max-chunk-size") {
		p.Chunking.MaxChunkSize = maxChunkSize
	}
	if cmd.Flags().Changed("workers") {
		p.Workers = workers
	}
	return p, nil
}

func newChunker(p *config.Profile, method string) (chunking.ChunkingClient, string, error) {
	switch method {
	case methodSmart:
		c, err := chunking.NewBoundaryChunker(p.Chunking, p.ExtraAbbreviations()...)
		return c, "smart_splitter", err
	case methodRecursive:
		c, err := chunking.NewRecursiveCharacterChunker(p.Chunking)
		return c, "recursive_character", err
	default:
		return nil, "", fmt.Errorf("unknown chunking method %q", method)
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func runChunk(cmd *cobra.Command, args []string) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	chunker, methodName, err := newChunker(p, method)
	if err != nil {
		return err
	}

	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	chunks, err := chunker.ChunkText(text)
	if err != nil {
		return err
	}

	records := make([]process.ChunkRecord, 0, len(chunks))
	for _, ch := range chunks {
		records = append(records, process.NewChunkRecord(args[0], methodName, ch))
	}

	out := os.Stdout
	if chunkOutput != "" {
		f, err := os.Create(chunkOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", chunkOutput, err)
		}
		defer f.Close()
		out = f
	}
	return process.WriteRecords(out, records)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	chunker, _, err := newChunker(p, method)
	if err != nil {
		return err
	}

	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	chunks, err := chunker.ChunkText(text)
	if err != nil {
		return err
	}

	return printJSON(chunking.Analyze(chunks, p.Buckets))
}

func runCompare(cmd *cobra.Command, args []string) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	report := make(map[string]chunking.Analysis, 2)
	for _, m := range []string{methodSmart, methodRecursive} {
		chunker, methodName, err := newChunker(p, m)
		if err != nil {
			return err
		}
		chunks, err := chunker.ChunkText(text)
		if err != nil {
			return err
		}
		report[methodName] = chunking.Analyze(chunks, p.Buckets)
	}
	return printJSON(report)
}

func runBatch(cmd *cobra.Command, args []string) error {
	p, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	chunker, methodName, err := newChunker(p, method)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	core := process.NewCore(chunker, p.Buckets, methodName, p.Workers, logger)
	results, err := core.ProcessDirectory(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	f, err := os.Create(batchOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", batchOutput, err)
	}
	defer f.Close()

	records := core.Records(results)
	if err := process.WriteRecords(f, records); err != nil {
		return err
	}

	agg := core.Aggregate(results)
	logger.Info("batch_complete",
		zap.Int("documents", len(results)),
		zap.Int("chunks", agg.TotalChunks),
		zap.Float64("avg_chunk_size", agg.AvgChunkSize),
		zap.Float64("sentence_complete_rate", agg.SentenceCompleteRate),
		zap.String("output", batchOutput),
	)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
