package parser

import "github.com/slugforge/slugpattern/pattern"

// PartialElement is the partially-constructed placeholder the partial
// parser was inside of when it stopped, if any.
type PartialElement struct {
	Kind        string // "selector", "number", "special", or "global"
	Language    string
	IncludeTags []string
	ExcludeTags []string
	SizeLimit   *pattern.SizeLimit
	Options     *pattern.Options
	NumberGen   *pattern.NumberGen
	SpecialGen  *pattern.SpecialCharGen
}

// ParserContextInfo is the result of a partial parse: the deepest state
// reached, the position the parser stopped at, and enough information for
// a caller (typically the suggestion engine) to continue from there.
type ParserContextInfo struct {
	State           ParserState
	Position        int
	ParsedSoFar     string
	ExpectedNext    []ExpectedToken
	LastParsedToken string
	IsValid         bool
	ErrorMessage    string
	PartialElement  *PartialElement
}
