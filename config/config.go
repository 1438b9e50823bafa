package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"smartsplit/pkg/chunking"
)

// Profile bundles everything a chunking run needs: sizing, histogram
// buckets, per-language abbreviation lists, and batch worker count.
type Profile struct {
	Chunking      chunking.Config      `yaml:"chunking"`
	Buckets       chunking.SizeBuckets `yaml:"buckets"`
	Abbreviations map[string][]string  `yaml:"abbreviations"`
	Workers       int                  `yaml:"workers"`
}

func Default() *Profile {
	return &Profile{
		Chunking: chunking.DefaultConfig(),
		Buckets:  chunking.DefaultSizeBuckets(),
		Workers:  4,
	}
}

// Load builds a profile from defaults, an optional YAML file, and
// environment overrides, in that order.
func Load(path string) (*Profile, error) {
	p := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parse profile: %w", err)
		}
	}

	if err := p.applyEnv(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) applyEnv() error {
	for _, v := range []struct {
		key string
		dst *int
	}{
		{"CHUNK_SIZE", &p.Chunking.ChunkSize},
		{"CHUNK_OVERLAP", &p.Chunking.ChunkOverlap},
		{"MIN_CHUNK_SIZE", &p.Chunking.MinChunkSize},
		{"MAX_CHUNK_SIZE", &p.Chunking.MaxChunkSize},
		{"CHUNK_WORKERS", &p.Workers},
	} {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("environment variable %s: %w", v.key, err)
		}
		*v.dst = n
	}
	return nil
}

// ExtraAbbreviations flattens the per-language lists in a stable order.
func (p *Profile) ExtraAbbreviations() []string {
	langs := make([]string, 0, len(p.Abbreviations))
	for lang := range p.Abbreviations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var out []string
	for _, lang := range langs {
		out = append(out, p.Abbreviations[lang]...)
	}
	return out
}
