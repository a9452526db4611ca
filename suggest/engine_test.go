package suggest

import "testing"

type fakeProvider struct {
	dicts []DictionaryInfo
	tags  []TagInfo
}

func (f fakeProvider) Dictionaries() ([]DictionaryInfo, error) { return f.dicts, nil }
func (f fakeProvider) Tags() ([]TagInfo, error)                { return f.tags, nil }

func textsOf(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Text
	}
	return out
}

func equalTexts(got []Suggestion, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, s := range got {
		if s.Text != want[i] {
			return false
		}
	}
	return true
}

func TestSuggestOutsidePlaceholderOffersOpenBrace(t *testing.T) {
	got, err := Suggest("abc", 2, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"{"}) {
		t.Fatalf("got %v", textsOf(got))
	}
	if got[0].ReplaceRange != (ReplaceRange{2, 2}) {
		t.Fatalf("ReplaceRange = %+v", got[0].ReplaceRange)
	}
}

func TestSuggestGeneratorNameEmptyInput(t *testing.T) {
	p := fakeProvider{dicts: []DictionaryInfo{{Kind: "noun", Count: 100}}}
	got, err := Suggest("{", 1, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	want := map[string]bool{"number": true, "special": true, "noun": true, "NOUN": true, "Noun": true, "nOuN": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d entries", textsOf(got), len(want))
	}
	for _, s := range got {
		if !want[s.Text] {
			t.Fatalf("unexpected suggestion %q", s.Text)
		}
	}
}

func TestSuggestGeneratorNamePrefixCaseVariants(t *testing.T) {
	// Scenario 7: suggest("{a", 2) with dictionaries {adjective, adverb, noun, verb}.
	p := fakeProvider{dicts: []DictionaryInfo{
		{Kind: "adjective"}, {Kind: "adverb"}, {Kind: "noun"}, {Kind: "verb"},
	}}
	got, err := Suggest("{a", 2, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	want := []string{"adjective", "adverb", "aDjEcTiVe", "aDvErB"}
	if !equalTexts(got, want) {
		t.Fatalf("got %v, want %v", textsOf(got), want)
	}
	for _, s := range got {
		if s.Kind != "generator" {
			t.Fatalf("Kind = %q, want generator", s.Kind)
		}
		if s.ReplaceRange != (ReplaceRange{1, 2}) {
			t.Fatalf("ReplaceRange = %+v, want {1,2}", s.ReplaceRange)
		}
	}
}

func TestSuggestGeneratorNameExactMatch(t *testing.T) {
	p := fakeProvider{dicts: []DictionaryInfo{{Kind: "noun"}}}
	got, err := Suggest("{noun", 5, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"}", "@", ":"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestNumberKeyword(t *testing.T) {
	got, err := Suggest("{number", 7, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{":"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestSpecialKeyword(t *testing.T) {
	got, err := Suggest("{special", 8, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"}", ":"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestTagModeAllRemaining(t *testing.T) {
	// Scenario 6: suggest("{noun:+animal +", 15).
	tags := []TagInfo{
		{Kind: "noun", Tag: "animal"}, {Kind: "noun", Tag: "artifact"}, {Kind: "noun", Tag: "plant"},
		{Kind: "noun", Tag: "object"}, {Kind: "noun", Tag: "person"}, {Kind: "noun", Tag: "place"},
	}
	p := fakeProvider{tags: tags}
	got, err := Suggest("{noun:+animal +", 15, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %v, want 5 suggestions", textsOf(got))
	}
	for _, s := range got {
		if s.Text == "animal" {
			t.Fatal("animal should be excluded, already used")
		}
		if s.Kind != "tag" {
			t.Fatalf("Kind = %q, want tag", s.Kind)
		}
		if s.ReplaceRange != (ReplaceRange{15, 15}) {
			t.Fatalf("ReplaceRange = %+v, want {15,15}", s.ReplaceRange)
		}
	}
}

func TestSuggestTagModePartialPrefix(t *testing.T) {
	tags := []TagInfo{{Kind: "noun", Tag: "animal"}, {Kind: "noun", Tag: "artifact"}, {Kind: "noun", Tag: "plant"}}
	p := fakeProvider{tags: tags}
	got, err := Suggest("{noun:+an", 9, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"animal"}) {
		t.Fatalf("got %v", textsOf(got))
	}
	if got[0].ReplaceRange != (ReplaceRange{7, 9}) {
		t.Fatalf("ReplaceRange = %+v, want {7,9}", got[0].ReplaceRange)
	}
}

func TestSuggestTagModeExactMatchSwitchesToOperators(t *testing.T) {
	tags := []TagInfo{{Kind: "noun", Tag: "animal"}}
	p := fakeProvider{tags: tags}
	got, err := Suggest("{noun:+animal", 13, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"+", "-", "==", "!=", "<", "<=", ">", ">=", "}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestSettingsNeutralAfterColon(t *testing.T) {
	got, err := Suggest("{noun:", 6, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"+", "-", "==", "!=", "<", "<=", ">", ">=", "}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestLengthConstraintCompleteNoComparators(t *testing.T) {
	// Scenario 8: suggest("{noun:==4", 10).
	got, err := Suggest("{noun:==4", 10, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"+", "-", "}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
	for _, s := range got {
		switch s.Text {
		case "==", "!=", "<", "<=", ">", ">=":
			t.Fatalf("suggestion %q is a comparison operator, invariant violated", s.Text)
		}
	}
}

func TestSuggestLoneComparatorOffersEquals(t *testing.T) {
	got, err := Suggest("{noun:>", 7, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"="}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestCompletedComparatorOffersNothing(t *testing.T) {
	got, err := Suggest("{noun:>=", 8, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want none", textsOf(got))
	}
}

func TestSuggestNumberGenBaseLetters(t *testing.T) {
	got, err := Suggest("{number:5", 9, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"d", "x", "X", "r", "R"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestNumberGenAfterBaseOnlyClose(t *testing.T) {
	got, err := Suggest("{number:5x", 10, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestSpecialGenAfterDigits(t *testing.T) {
	got, err := Suggest("{special:3", 10, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"-", "}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestSpecialGenAfterDash(t *testing.T) {
	got, err := Suggest("{special:3-", 11, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want none", textsOf(got))
	}
}

func TestSuggestSpecialGenAfterRange(t *testing.T) {
	got, err := Suggest("{special:3-7", 12, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestCursorBeyondPatternClamps(t *testing.T) {
	got, err := Suggest("{noun:==4", 1000, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"+", "-", "}"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestEmptyPatternOffersOpenBrace(t *testing.T) {
	got, err := Suggest("", 0, fakeProvider{})
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(got, []string{"{"}) {
		t.Fatalf("got %v", textsOf(got))
	}
}

func TestSuggestIsStable(t *testing.T) {
	p := fakeProvider{dicts: []DictionaryInfo{{Kind: "adjective"}, {Kind: "noun"}}}
	first, err := Suggest("{a", 2, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	second, err := Suggest("{a", 2, p)
	if err != nil {
		t.Fatalf("Suggest() = %v", err)
	}
	if !equalTexts(second, textsOf(first)) {
		t.Fatalf("non-deterministic: %v vs %v", textsOf(first), textsOf(second))
	}
}
