package suggest

import (
	"regexp"
	"strings"
)

var (
	reSizeConstraint      = regexp.MustCompile(`[=!<>]=?\s*[0-9]+`)
	rePartialTagMarker    = regexp.MustCompile(`[+-]\w*$`)
	reUsedTag             = regexp.MustCompile(`[+-]\w+`)
	reDigitsOnly          = regexp.MustCompile(`^[0-9]+$`)
	reDigitsBase          = regexp.MustCompile(`^[0-9]+[dxXrR]$`)
	reDigitsDash          = regexp.MustCompile(`^[0-9]+-$`)
	reDigitsDashDigits    = regexp.MustCompile(`^[0-9]+-[0-9]+$`)
	reCompletedComparator = regexp.MustCompile(`(==|!=|<=|>=)$`)
	reLoneComparator      = regexp.MustCompile(`[=!<>]$`)
)

// Suggest proposes completions for pattern at cursor, querying provider for
// dictionary and tag metadata as needed. cursor is clamped into
// [0, len(pattern)]. Suggest never returns a parser error: on provider
// failure it propagates that error; on any parsing ambiguity it degrades to
// a narrower suggestion set rather than failing.
func Suggest(pattern string, cursor int, provider Provider) ([]Suggestion, error) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(pattern) {
		cursor = len(pattern)
	}

	start, end, inside := localize(pattern, cursor)
	if !inside {
		return []Suggestion{{Text: "{", Kind: "symbol", ReplaceRange: ReplaceRange{Start: cursor, End: cursor}}}, nil
	}

	content := pattern[start+1 : end]
	relCursor := cursor - start - 1
	if relCursor < 0 {
		relCursor = 0
	}
	if relCursor > len(content) {
		relCursor = len(content)
	}

	colonIdx := strings.IndexByte(content, ':')

	var out []Suggestion
	var err error
	if colonIdx == -1 || relCursor <= colonIdx {
		dicts, derr := provider.Dictionaries()
		if derr != nil {
			return nil, derr
		}
		kinds := make([]string, len(dicts))
		for i, d := range dicts {
			kinds[i] = d.Kind
		}
		out = generatorNameSuggestions(content[:relCursor], kinds, start+1, cursor)
	} else {
		genName := leadingIdent(content)
		fragment := content[colonIdx+1 : relCursor]

		switch genName {
		case "number":
			out = numberGenSuggestions(fragment, cursor)
		case "special":
			out = specialGenSuggestions(fragment, cursor)
		default:
			out, err = selectorSettingsSuggestions(genName, content, fragment, cursor, provider)
		}
	}
	if err != nil {
		return nil, err
	}

	SortSuggestions(out)
	return out, nil
}

// localize scans outward from cursor for the enclosing placeholder's `{`
// and `}`, per the backward/forward scan rule. inside is false when the
// cursor is not inside any placeholder, in which case the only suggestion
// is a fresh `{`.
func localize(pattern string, cursor int) (start, end int, inside bool) {
	i := cursor - 1
	for i >= 0 {
		switch pattern[i] {
		case '{':
			goto found
		case '}':
			return 0, 0, false
		}
		i--
	}
	return 0, 0, false

found:
	start = i
	j := cursor
	for j < len(pattern) && pattern[j] != '}' {
		j++
	}
	return start, j, true
}

func leadingIdent(s string) string {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

func isIdentByte(b byte) bool {
	return b == '_' || isUpperByte(b) || isLowerByte(b) || (b >= '0' && b <= '9')
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func endsInWhitespace(s string) bool {
	return s != "" && isSpaceByte(s[len(s)-1])
}

// generatorNameSuggestions implements step 3's generator-name mode.
func generatorNameSuggestions(s string, dictKinds []string, genStart, cursor int) []Suggestion {
	rng := ReplaceRange{Start: genStart, End: cursor}
	var out []Suggestion
	addGen := func(text string) {
		out = append(out, Suggestion{Text: text, Kind: "generator", ReplaceRange: rng})
	}
	addSym := func(text string) {
		out = append(out, Suggestion{Text: text, Kind: "symbol", ReplaceRange: rng})
	}

	if s == "" {
		addGen("number")
		addGen("special")
		for _, k := range dictKinds {
			for _, v := range AllCaseForms(k) {
				addGen(v)
			}
		}
		return out
	}

	if s == "number" {
		addSym(":")
		return out
	}
	if s == "special" {
		addSym("}")
		addSym(":")
		return out
	}

	lowerS := strings.ToLower(s)
	for _, k := range dictKinds {
		if strings.ToLower(k) == lowerS {
			addSym("}")
			addSym("@")
			addSym(":")
			return out
		}
	}

	for _, k := range dictKinds {
		if strings.HasPrefix(strings.ToLower(k), lowerS) {
			for _, v := range Variants(s, k) {
				addGen(v)
			}
		}
	}
	if strings.HasPrefix("number", lowerS) {
		addGen("number")
	}
	if strings.HasPrefix("special", lowerS) {
		addGen("special")
	}
	return out
}

func numberGenSuggestions(fragment string, cursor int) []Suggestion {
	rng := ReplaceRange{Start: cursor, End: cursor}
	switch {
	case fragment == "":
		return nil
	case reDigitsOnly.MatchString(fragment):
		letters := []string{"d", "x", "X", "r", "R"}
		out := make([]Suggestion, len(letters))
		for i, l := range letters {
			out[i] = Suggestion{Text: l, Kind: "base", ReplaceRange: rng}
		}
		return out
	case reDigitsBase.MatchString(fragment):
		return []Suggestion{{Text: "}", Kind: "symbol", ReplaceRange: rng}}
	default:
		return nil
	}
}

func specialGenSuggestions(fragment string, cursor int) []Suggestion {
	rng := ReplaceRange{Start: cursor, End: cursor}
	switch {
	case fragment == "":
		return nil
	case reDigitsOnly.MatchString(fragment):
		return []Suggestion{
			{Text: "-", Kind: "symbol", ReplaceRange: rng},
			{Text: "}", Kind: "symbol", ReplaceRange: rng},
		}
	case reDigitsDash.MatchString(fragment):
		return nil
	case reDigitsDashDigits.MatchString(fragment):
		return []Suggestion{{Text: "}", Kind: "symbol", ReplaceRange: rng}}
	default:
		return nil
	}
}

// selectorSettingsSuggestions dispatches step 2/3's settings subclassification
// for a dictionary selector (as opposed to number/special generators).
func selectorSettingsSuggestions(genKind, content, fragment string, cursor int, provider Provider) ([]Suggestion, error) {
	switch {
	case reSizeConstraint.MatchString(fragment):
		return noPartialTagSuggestions(fragment, cursor), nil
	case rePartialTagMarker.MatchString(fragment):
		return tagModeSuggestions(genKind, content, fragment, cursor, provider)
	case fragment == "" || endsInWhitespace(fragment):
		return emitOperatorsAndClose(cursor), nil
	default:
		return noPartialTagSuggestions(fragment, cursor), nil
	}
}

// noPartialTagSuggestions covers both the length-constraint-complete mode
// and tag mode's "no partial-tag marker" fallback, which share the same
// generation rule.
func noPartialTagSuggestions(fragment string, cursor int) []Suggestion {
	rng := ReplaceRange{Start: cursor, End: cursor}
	if reCompletedComparator.MatchString(fragment) {
		return nil
	}
	if reLoneComparator.MatchString(fragment) {
		return []Suggestion{{Text: "=", Kind: "operator", ReplaceRange: rng}}
	}
	return []Suggestion{
		{Text: "+", Kind: "operator", ReplaceRange: rng},
		{Text: "-", Kind: "operator", ReplaceRange: rng},
		{Text: "}", Kind: "symbol", ReplaceRange: rng},
	}
}

func tagModeSuggestions(genKind, content, fragment string, cursor int, provider Provider) ([]Suggestion, error) {
	marker := rePartialTagMarker.FindString(fragment)
	partial := marker[1:]

	allTags, err := provider.Tags()
	if err != nil {
		return nil, err
	}
	lowerKind := strings.ToLower(genKind)
	var kindTags []TagInfo
	for _, t := range allTags {
		if strings.ToLower(t.Kind) == lowerKind {
			kindTags = append(kindTags, t)
		}
	}

	used := map[string]bool{}
	for _, m := range reUsedTag.FindAllString(content, -1) {
		used[m[1:]] = true
	}

	var remaining []TagInfo
	for _, t := range kindTags {
		if !used[t.Tag] {
			remaining = append(remaining, t)
		}
	}

	if partial == "" {
		out := make([]Suggestion, 0, len(remaining))
		for _, t := range remaining {
			out = append(out, Suggestion{Text: t.Tag, Kind: "tag", Description: t.Description, ReplaceRange: ReplaceRange{Start: cursor, End: cursor}})
		}
		return out, nil
	}

	for _, t := range kindTags {
		if t.Tag == partial {
			return emitOperatorsAndClose(cursor), nil
		}
	}

	lowerPartial := strings.ToLower(partial)
	rng := ReplaceRange{Start: cursor - len(partial), End: cursor}
	var out []Suggestion
	for _, t := range remaining {
		if strings.HasPrefix(strings.ToLower(t.Tag), lowerPartial) {
			out = append(out, Suggestion{Text: t.Tag, Kind: "tag", Description: t.Description, ReplaceRange: rng})
		}
	}
	return out, nil
}

func emitOperatorsAndClose(cursor int) []Suggestion {
	rng := ReplaceRange{Start: cursor, End: cursor}
	ops := []struct{ text, kind string }{
		{"+", "operator"}, {"-", "operator"}, {"==", "operator"}, {"!=", "operator"},
		{"<", "operator"}, {"<=", "operator"}, {">", "operator"}, {">=", "operator"},
		{"}", "symbol"},
	}
	out := make([]Suggestion, len(ops))
	for i, o := range ops {
		out[i] = Suggestion{Text: o.text, Kind: o.kind, ReplaceRange: rng}
	}
	return out
}
