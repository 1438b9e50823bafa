package chunking

import "strings"

// Portuguese and English abbreviations that end in a period without
// ending a sentence. Language lists are merged into a single set.
var defaultAbbreviations = []string{
	"Dr.", "Sr.", "Sra.", "Prof.", "etc.", "vs.", "i.e.", "e.g.",
	"pág.", "p.", "cap.", "vol.", "ed.", "nº", "n°", "art.",
	"inc.", "corp.", "co.", "ltd.", "llc.",
}

// AbbreviationSet suppresses false sentence boundaries. Membership is
// case-insensitive on the token immediately preceding a candidate period.
type AbbreviationSet map[string]struct{}

// NewAbbreviationSet builds the default set merged with any extras.
func NewAbbreviationSet(extra ...string) AbbreviationSet {
	s := make(AbbreviationSet, len(defaultAbbreviations)+len(extra))
	for _, a := range defaultAbbreviations {
		s[strings.ToLower(a)] = struct{}{}
	}
	for _, a := range extra {
		if a = strings.TrimSpace(a); a != "" {
			s[strings.ToLower(a)] = struct{}{}
		}
	}
	return s
}

func (s AbbreviationSet) Contains(token string) bool {
	_, ok := s[strings.ToLower(token)]
	return ok
}
