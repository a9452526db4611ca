// Package slugpattern implements the slug-pattern template language: a
// small grammar for placeholders that expand to words drawn from named
// dictionaries, numbers, and random characters, plus the tooling a
// pattern-authoring UI needs — partial parsing, cursor-aware suggestions,
// and rendering a parsed pattern back to text.
package slugpattern

import (
	"github.com/slugforge/slugpattern/pattern"
	"github.com/slugforge/slugpattern/pattern/parser"
	"github.com/slugforge/slugpattern/suggest"
)

// ParsedPattern is the parsed form of a pattern, ready for rendering or
// expansion by a caller.
type ParsedPattern = pattern.ParsedPattern

// ParserContextInfo is the result of a partial parse: the deepest
// recognized state, the position reached, and enough information for a
// caller to continue from there.
type ParserContextInfo = parser.ParserContextInfo

// ExpectedToken names one kind of token that would be syntactically valid
// at a given partial-parse state.
type ExpectedToken = parser.ExpectedToken

// Suggestion is one completion candidate offered at a cursor position.
type Suggestion = suggest.Suggestion

// Provider is the external collaborator Suggest queries for dictionary and
// tag metadata.
type Provider = suggest.Provider

// Parse parses pattern against the full grammar, failing on the first
// syntax or semantic error.
func Parse(pattern string) (*ParsedPattern, error) {
	return parser.Parse(pattern)
}

// Validate reports whether pattern parses successfully.
func Validate(pattern string) bool {
	_, err := parser.Parse(pattern)
	return err == nil
}

// ParsePartial walks pattern with the same grammar Parse uses, but never
// raises past the first unfinished construct — useful for parsing input as
// a user is still typing it.
func ParsePartial(pattern string) ParserContextInfo {
	return parser.ParsePartial(pattern)
}

// IsComplete reports whether pattern is a fully valid pattern, equivalent
// to Validate but phrased in terms of partial-parse completeness.
func IsComplete(pattern string) bool {
	info := parser.ParsePartial(pattern)
	return info.IsValid && info.State == parser.Complete
}

// ValidPrefix returns the longest prefix of pattern for which a partial
// parse reaches a recognized state. It equals pattern when pattern is
// complete.
func ValidPrefix(pattern string) string {
	return parser.ParsePartial(pattern).ParsedSoFar
}

// ExpectedNext returns the tokens that would be syntactically valid
// immediately after pattern's longest valid prefix.
func ExpectedNext(pattern string) []ExpectedToken {
	return parser.ParsePartial(pattern).ExpectedNext
}

// Render turns a parsed pattern back into its textual form.
func Render(p *ParsedPattern) string {
	return pattern.Render(p)
}

// Suggest proposes completions for pattern at cursor, querying provider for
// dictionary and tag metadata as needed.
func Suggest(pattern string, cursor int, provider Provider) ([]Suggestion, error) {
	return suggest.Suggest(pattern, cursor, provider)
}
