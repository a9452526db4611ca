package parser

import (
	"testing"

	"github.com/slugforge/slugpattern/pattern"
)

func TestParseLiteralOnly(t *testing.T) {
	got, err := Parse("hello-world")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if len(got.Elements) != 0 {
		t.Fatalf("Elements = %d, want 0", len(got.Elements))
	}
	if len(got.TextChunks) != 1 || got.TextChunks[0] != "hello-world" {
		t.Fatalf("TextChunks = %v", got.TextChunks)
	}
}

func TestParseTextChunkInvariant(t *testing.T) {
	tests := []string{
		"",
		"{noun}",
		"pre-{noun}-post",
		"{noun}{verb}",
		"a{noun}b{verb}c",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) = %v", input, err)
			}
			if len(got.TextChunks) != len(got.Elements)+1 {
				t.Fatalf("len(TextChunks)=%d, len(Elements)+1=%d", len(got.TextChunks), len(got.Elements)+1)
			}
		})
	}
}

func TestParseSelectorFields(t *testing.T) {
	got, err := Parse("{noun@en:+adj -boring <=5,case=lower}")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if len(got.Elements) != 1 || got.Elements[0].Kind != pattern.ElementSelector {
		t.Fatalf("Elements = %+v", got.Elements)
	}
	sel := got.Elements[0].Selector
	if sel.Kind != "noun" {
		t.Fatalf("Kind = %q", sel.Kind)
	}
	if sel.Language != "en" {
		t.Fatalf("Language = %q", sel.Language)
	}
	if len(sel.IncludeTags) != 1 || sel.IncludeTags[0] != "adj" {
		t.Fatalf("IncludeTags = %v", sel.IncludeTags)
	}
	if len(sel.ExcludeTags) != 1 || sel.ExcludeTags[0] != "boring" {
		t.Fatalf("ExcludeTags = %v", sel.ExcludeTags)
	}
	if sel.SizeLimit == nil || sel.SizeLimit.Op != pattern.CompareLE || sel.SizeLimit.Value != 5 {
		t.Fatalf("SizeLimit = %+v", sel.SizeLimit)
	}
	v, ok := sel.Options.Get("case")
	if !ok || v != "lower" {
		t.Fatalf("Options[case] = %q, %v", v, ok)
	}
}

func TestParseOptionsDirectWithoutComma(t *testing.T) {
	// Open question (a): options may follow a size limit without a comma.
	got, err := Parse("{noun:>3 case=upper}")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	sel := got.Elements[0].Selector
	v, ok := sel.Options.Get("case")
	if !ok || v != "upper" {
		t.Fatalf("Options[case] = %q, %v", v, ok)
	}
}

func TestParseOptionMissingEqualsRejected(t *testing.T) {
	// Open question (b): key=value,key2 (second option missing '=') is rejected.
	_, err := Parse("{noun:case=lower,oops}")
	if err == nil {
		t.Fatal("Parse() should fail when a later option is missing '='")
	}
}

func TestParseDuplicateOptionOverwrites(t *testing.T) {
	got, err := Parse("{noun:case=lower,case=upper}")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	opts := got.Elements[0].Selector.Options
	if opts.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", opts.Len())
	}
	v, _ := opts.Get("case")
	if v != "upper" {
		t.Fatalf("Options[case] = %q, want upper", v)
	}
}

func TestParseNumberGenDefaults(t *testing.T) {
	got, err := Parse("{number}")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	n := got.Elements[0].Number
	if n.MaxLength != 1 || n.Base != pattern.BaseDec {
		t.Fatalf("NumberGen = %+v", n)
	}
}

func TestParseNumberGenBases(t *testing.T) {
	tests := []struct {
		input string
		base  pattern.NumberBase
	}{
		{"{number:5d}", pattern.BaseDec},
		{"{number:5x}", pattern.BaseHexLower},
		{"{number:5r}", pattern.BaseRomanLower},
		{"{number:5,dec}", pattern.BaseDec},
		{"{number:5,hex}", pattern.BaseHexLower},
		{"{number:5,HEX}", pattern.BaseHexUpper},
		{"{number:5,roman}", pattern.BaseRomanLower},
		{"{number:5,ROMAN}", pattern.BaseRomanUpper},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) = %v", tt.input, err)
			}
			n := got.Elements[0].Number
			if n.MaxLength != 5 || n.Base != tt.base {
				t.Fatalf("NumberGen = %+v, want base %v", n, tt.base)
			}
		})
	}
}

func TestParseNumberGenMixedBaseFormsRejected(t *testing.T) {
	_, err := Parse("{number:5d,dec}")
	if err == nil {
		t.Fatal("Parse() should reject mixing short and long base forms")
	}
}

func TestParseSpecialGenRange(t *testing.T) {
	got, err := Parse("{special:3-7}")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	s := got.Elements[0].Special
	if s.MinLength != 3 || s.MaxLength != 7 {
		t.Fatalf("SpecialCharGen = %+v", s)
	}
}

func TestParseSpecialGenSingleLength(t *testing.T) {
	got, err := Parse("{special:4}")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	s := got.Elements[0].Special
	if s.MinLength != 4 || s.MaxLength != 4 {
		t.Fatalf("SpecialCharGen = %+v", s)
	}
}

func TestParseSpecialGenInvalidRangeRejected(t *testing.T) {
	_, err := Parse("{special:5-3}")
	if err == nil {
		t.Fatal("Parse() should reject a range where min exceeds max")
	}
}

func TestParseGlobalSettings(t *testing.T) {
	got, err := Parse("{noun}[@en +tag1 <10,opt=val]")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	gs := got.GlobalSettings
	if gs == nil {
		t.Fatal("GlobalSettings is nil")
	}
	if gs.Language != "en" {
		t.Fatalf("Language = %q", gs.Language)
	}
	if len(gs.IncludeTags) != 1 || gs.IncludeTags[0] != "tag1" {
		t.Fatalf("IncludeTags = %v", gs.IncludeTags)
	}
	if gs.SizeLimit == nil || gs.SizeLimit.Op != pattern.CompareLT || gs.SizeLimit.Value != 10 {
		t.Fatalf("SizeLimit = %+v", gs.SizeLimit)
	}
}

func TestParseGlobalSettingsMustBeLast(t *testing.T) {
	_, err := Parse("[@en]{noun}")
	if err == nil {
		t.Fatal("Parse() should reject global settings followed by more content")
	}
}

func TestParseGlobalSettingsAtMostOnce(t *testing.T) {
	_, err := Parse("[@en][@fr]")
	if err == nil {
		t.Fatal("Parse() should reject a second global settings block")
	}
}

func TestParseEscapes(t *testing.T) {
	input := `\{literal\}-\\`
	got, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if got.TextChunks[0] != input {
		t.Fatalf("TextChunks[0] = %q, want %q (escapes preserved verbatim, backslash included)", got.TextChunks[0], input)
	}
}

func TestParseInvalidEscapeRejected(t *testing.T) {
	_, err := Parse(`\n`)
	if err == nil {
		t.Fatal("Parse() should reject an escape sequence other than \\{ \\} \\\\")
	}
}

func TestParseEscapeAtEndOfInputRejected(t *testing.T) {
	_, err := Parse(`literal\`)
	if err == nil {
		t.Fatal("Parse() should reject a trailing unterminated escape")
	}
}

func TestParseUnmatchedClosersRejected(t *testing.T) {
	for _, input := range []string{"}", "abc}", "]", "abc]"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Fatalf("Parse(%q) should fail", input)
			}
		})
	}
}

func TestParseUnterminatedPlaceholderRejected(t *testing.T) {
	if _, err := Parse("{noun"); err == nil {
		t.Fatal("Parse() should reject an unterminated placeholder")
	}
}

func TestParseNestedBraceRejected(t *testing.T) {
	if _, err := Parse("{noun:{inner}}"); err == nil {
		t.Fatal("Parse() should reject a nested placeholder")
	}
}

func TestParseEmptyTagNameRejected(t *testing.T) {
	if _, err := Parse("{noun:+}"); err == nil {
		t.Fatal("Parse() should reject an empty tag name")
	}
}

func TestParseDuplicateTagRejected(t *testing.T) {
	if _, err := Parse("{noun:+tag-tag}"); err == nil {
		t.Fatal("Parse() should reject a tag repeated across include/exclude")
	}
}

func TestParseLoneComparatorRejected(t *testing.T) {
	for _, input := range []string{"{noun:=5}", "{noun:!5}"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Fatalf("Parse(%q) should fail", input)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("abc}def")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *Error", err)
	}
	if perr.Position != 3 {
		t.Fatalf("Position = %d, want 3", perr.Position)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"{noun}",
		"{noun:+tag -other<=5,case=upper}",
		"{number:5x}",
		"{special:2-6}",
		"plain text with no placeholders",
		"{noun}[@en +tag,opt=val]",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parsed, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) = %v", input, err)
			}
			rendered := pattern.Render(parsed)
			reparsed, err := Parse(rendered)
			if err != nil {
				t.Fatalf("Parse(Render(%q)) = %q, %v", input, rendered, err)
			}
			if len(reparsed.Elements) != len(parsed.Elements) {
				t.Fatalf("round trip element count mismatch: %d vs %d", len(reparsed.Elements), len(parsed.Elements))
			}
		})
	}
}
