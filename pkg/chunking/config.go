package chunking

import "fmt"

// Config controls chunk sizing. All fields are measured in characters of
// the normalized text.
type Config struct {
	ChunkSize    int `yaml:"chunk_size" json:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" json:"chunk_overlap"`
	MinChunkSize int `yaml:"min_chunk_size" json:"min_chunk_size"`
	MaxChunkSize int `yaml:"max_chunk_size" json:"max_chunk_size"`
}

// DefaultConfig returns the default chunking configuration
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 150,
		MinChunkSize: 200,
		MaxChunkSize: 2000,
	}
}

// ConfigError reports a violated configuration invariant. It is returned
// before any text is scanned.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chunking config: %s %s", e.Field, e.Reason)
}

// Validate checks 0 <= overlap < chunk_size <= max_chunk_size and
// 0 <= min_chunk_size <= chunk_size.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return &ConfigError{Field: "chunk_size", Reason: "must be positive"}
	}
	if c.ChunkOverlap < 0 {
		return &ConfigError{Field: "chunk_overlap", Reason: "must not be negative"}
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return &ConfigError{Field: "chunk_overlap", Reason: "must be smaller than chunk_size"}
	}
	if c.MaxChunkSize < c.ChunkSize {
		return &ConfigError{Field: "max_chunk_size", Reason: "must not be smaller than chunk_size"}
	}
	if c.MinChunkSize < 0 {
		return &ConfigError{Field: "min_chunk_size", Reason: "must not be negative"}
	}
	if c.MinChunkSize > c.ChunkSize {
		return &ConfigError{Field: "min_chunk_size", Reason: "must not exceed chunk_size"}
	}
	return nil
}
