package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reLocationNoise = regexp.MustCompile(`[^\p{L}\p{N}\s,.'\-]+`)
)

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLocation keeps letters, digits, spaces and the punctuation used in
// place names ("St. John's, Newfoundland").
func NormalizeLocation(location string) string {
	p := Pipeline{
		func(s string) string { return reLocationNoise.ReplaceAllString(s, " ") },
		TrimAndNormalize,
	}
	return p.Apply(location)
}

// RegexLiteral turns a user supplied search term into a pattern that matches it
// literally, so "a.b" never matches "axb".
func RegexLiteral(term string) string {
	return regexp.QuoteMeta(TrimAndNormalize(term))
}

func TrimAndLower(s string) string {
	return strings.ToLower(TrimAndNormalize(s))
}
