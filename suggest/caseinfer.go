package suggest

import "strings"

// caseShape classifies how a piece of typed text is capitalized.
type caseShape int

const (
	shapeLower caseShape = iota
	shapeUpper
	shapeTitle
	shapeMixed
)

func detectCaseShape(s string) caseShape {
	if s == "" {
		return shapeMixed
	}
	hasUpper, hasLower := false, false
	for i := 0; i < len(s); i++ {
		if isUpperByte(s[i]) {
			hasUpper = true
		}
		if isLowerByte(s[i]) {
			hasLower = true
		}
	}
	switch {
	case hasUpper && !hasLower:
		return shapeUpper
	case hasLower && !hasUpper:
		return shapeLower
	}
	if isUpperByte(s[0]) {
		restLower := true
		for i := 1; i < len(s); i++ {
			if isUpperByte(s[i]) {
				restLower = false
				break
			}
		}
		if restLower {
			return shapeTitle
		}
	}
	return shapeMixed
}

func isUpperByte(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLowerByte(b byte) bool { return b >= 'a' && b <= 'z' }

func toUpperByte(b byte) byte {
	if isLowerByte(b) {
		return b - 32
	}
	return b
}

func toLowerByte(b byte) byte {
	if isUpperByte(b) {
		return b + 32
	}
	return b
}

// alternateLower styles word with even positions lowercase, odd positions
// uppercase: "adjective" -> "aDjEcTiVe".
func alternateLower(word string) string {
	out := []byte(word)
	for i := range out {
		if i%2 == 0 {
			out[i] = toLowerByte(out[i])
		} else {
			out[i] = toUpperByte(out[i])
		}
	}
	return string(out)
}

// alternateUpper styles word with even positions uppercase, odd positions
// lowercase: "adjective" -> "AdJeCtIvE".
func alternateUpper(word string) string {
	out := []byte(word)
	for i := range out {
		if i%2 == 0 {
			out[i] = toUpperByte(out[i])
		} else {
			out[i] = toLowerByte(out[i])
		}
	}
	return string(out)
}

func titlecase(word string) string {
	if word == "" {
		return word
	}
	out := []byte(strings.ToLower(word))
	out[0] = toUpperByte(out[0])
	return string(out)
}

// mixedCompletion preserves the user's exact prefix, then continues
// alternating case starting from the opposite of the prefix's last
// character: prefix "aDj" over word "adjective" -> "aDjEcTiVe".
func mixedCompletion(word, prefix string) string {
	n := len(prefix)
	if n > len(word) {
		n = len(word)
	}
	out := make([]byte, len(word))
	copy(out, prefix[:n])

	nextUpper := true
	if n > 0 {
		nextUpper = !isUpperByte(prefix[n-1])
	}
	for i := n; i < len(word); i++ {
		if nextUpper {
			out[i] = toUpperByte(word[i])
		} else {
			out[i] = toLowerByte(word[i])
		}
		nextUpper = !nextUpper
	}
	return string(out)
}

// Variants returns the case-styled completions for word given the prefix s
// the user has already typed, per the case-inference rules: the case shape
// of s decides how the remainder of word is styled.
func Variants(s, word string) []string {
	switch detectCaseShape(s) {
	case shapeLower:
		return []string{word, alternateLower(word)}
	case shapeUpper:
		return []string{strings.ToUpper(word), titlecase(word), alternateUpper(word)}
	case shapeTitle:
		return []string{titlecase(word)}
	default:
		return []string{mixedCompletion(word, s)}
	}
}

// AllCaseForms returns the four canonical case variants of word, offered
// when generator-name completion starts from empty input: lowercase,
// UPPERCASE, Titlecase, aLtErNaTiNg.
func AllCaseForms(word string) []string {
	return []string{
		strings.ToLower(word),
		strings.ToUpper(word),
		titlecase(word),
		alternateLower(word),
	}
}
