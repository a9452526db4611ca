// Package suggest implements context-aware completion over pattern source
// text: given a pattern and a cursor position, it proposes the tokens that
// could legally come next, ranked and ready to splice in at a replace
// range.
package suggest

// ReplaceRange is the half-open byte range [Start, End) a Suggestion's Text
// should replace in the source pattern when accepted.
type ReplaceRange struct {
	Start int
	End   int
}

// Suggestion is one completion candidate offered at a cursor position. Kind
// is one of "generator", "tag", "operator", "symbol", or "base" — callers
// that only care about ranking by case (dictionary-name completions) should
// key off Kind == "generator".
type Suggestion struct {
	Text         string
	Kind         string
	Description  string
	ReplaceRange ReplaceRange
}
