package chunking

import (
	"regexp"
	"strings"
)

var (
	// A line consisting solely of digits is a page-number artifact from
	// text extraction. The trailing newline is consumed with the line so
	// removal does not fabricate a paragraph break.
	pageNumberLine = regexp.MustCompile(`(?m)^[ \t]*[0-9]+[ \t]*(?:\n|$)`)

	spaceRun       = regexp.MustCompile(`[ \t]+`)
	newlineSpacing = regexp.MustCompile(`[ ]*\n[ ]*`)
	newlineRun     = regexp.MustCompile(`\n+`)

	spaceBeforePunct = regexp.MustCompile(`[ ]+([.,;:!?])`)
	// Insert a space after punctuation unless the next character already
	// separates (whitespace), closes (quote, paren, bracket), or extends
	// the punctuation run itself.
	missingSpaceAfterPunct = regexp.MustCompile("([.,;:!?])([^\\s.,;:!?'\")\\]}»”’])")
)

// Normalize cleans raw extracted text: page-number lines are dropped,
// whitespace runs collapse to a single space while double newlines
// survive as paragraph markers, and punctuation spacing is regularized.
// Normalize(Normalize(x)) == Normalize(x) for any x.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	text = pageNumberLine.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineSpacing.ReplaceAllString(text, "\n")
	text = newlineRun.ReplaceAllStringFunc(text, func(run string) string {
		if len(run) > 1 {
			return "\n\n"
		}
		return " "
	})

	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = missingSpaceAfterPunct.ReplaceAllString(text, "$1 $2")

	return strings.TrimSpace(text)
}
