package normalize

import (
	"regexp"
	"strings"
)

// Line-break separators for the two presentation contexts found in the
// source payloads. Single-line fields collapse to one line; note-style
// fields keep their breaks but indent continuation lines.
const (
	SingleLineSep = ", "
	IndentedSep   = "\n  "
)

var (
	lineBreakTag = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
)

// StripMarkup converts a rich-text field to plain text: line-break tags
// become sep, every other tag is removed, and the result is trimmed.
// Nil passes through unchanged.
func StripMarkup(v *string, sep string) *string {
	if v == nil {
		return nil
	}
	s := lineBreakTag.ReplaceAllString(*v, sep)
	s = anyTag.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return &s
}

// JoinLines collapses a multi-line field to a single line with " | "
// between the original lines. Dosage text arrives with raw line breaks
// rather than markup. Nil passes through unchanged.
func JoinLines(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.ReplaceAll(*v, "\n", " | ")
	return &s
}

// numericEntities is the bounded set of numeric character references the
// source portal emits for its locale. Not a general entity decoder.
var numericEntities = strings.NewReplacer(
	"&#230;", "æ",
	"&#248;", "ø",
	"&#229;", "å",
	"&#198;", "Æ",
	"&#216;", "Ø",
	"&#197;", "Å",
	"&#233;", "é",
)

// DecodeEntities replaces the known numeric character references with their
// letters. Nil passes through unchanged.
func DecodeEntities(v *string) *string {
	if v == nil {
		return nil
	}
	s := numericEntities.Replace(*v)
	return &s
}
