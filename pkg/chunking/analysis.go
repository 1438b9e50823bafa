package chunking

// SizeBuckets configures the histogram boundaries of the size
// distribution: small < SmallMax, large > LargeMin, medium in between.
type SizeBuckets struct {
	SmallMax int `yaml:"small_max" json:"small_max"`
	LargeMin int `yaml:"large_min" json:"large_min"`
}

func DefaultSizeBuckets() SizeBuckets {
	return SizeBuckets{SmallMax: 500, LargeMin: 1000}
}

type SizeDistribution struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// Analysis summarizes a chunk sequence for quality reporting.
type Analysis struct {
	TotalChunks          int              `json:"total_chunks"`
	AvgChunkSize         float64          `json:"avg_chunk_size"`
	MinChunkSize         int              `json:"min_chunk_size"`
	MaxChunkSize         int              `json:"max_chunk_size"`
	SentenceComplete     int              `json:"sentence_complete"`
	SentenceCompleteRate float64          `json:"sentence_complete_rate"`
	SizeDistribution     SizeDistribution `json:"size_distribution"`
}

// Analyze reduces a chunk sequence to summary statistics. An empty
// sequence yields zeroed statistics.
func Analyze(chunks []Chunk, buckets SizeBuckets) Analysis {
	var a Analysis
	if len(chunks) == 0 {
		return a
	}

	a.TotalChunks = len(chunks)
	a.MinChunkSize = len(chunks[0].Text)
	total := 0
	for _, ch := range chunks {
		size := len(ch.Text)
		total += size
		if size < a.MinChunkSize {
			a.MinChunkSize = size
		}
		if size > a.MaxChunkSize {
			a.MaxChunkSize = size
		}
		if ch.EndsOnSentence {
			a.SentenceComplete++
		}
		switch {
		case size < buckets.SmallMax:
			a.SizeDistribution.Small++
		case size > buckets.LargeMin:
			a.SizeDistribution.Large++
		default:
			a.SizeDistribution.Medium++
		}
	}
	a.AvgChunkSize = float64(total) / float64(len(chunks))
	a.SentenceCompleteRate = float64(a.SentenceComplete) / float64(len(chunks))
	return a
}
