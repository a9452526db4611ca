package parser

import "github.com/slugforge/slugpattern/pattern"

// ParsePartial walks input with the same grammar as Parse but never raises
// past the first unfinished construct: it always returns the deepest state
// reached, setting IsValid false only when it is certain the prefix
// contains a definite syntax error rather than simply running out of
// input.
func ParsePartial(input string) ParserContextInfo {
	pos := 0
	lastToken := ""
	for pos < len(input) {
		switch input[pos] {
		case '\\':
			next := pos + 1
			if next >= len(input) {
				return stopResult(input, OutsidePlaceholder, pos, true, "", lastToken)
			}
			switch input[next] {
			case '{', '}', '\\':
				pos += 2
				continue
			default:
				return stopResult(input, OutsidePlaceholder, pos, false, "invalid escape sequence", lastToken)
			}
		case '{':
			info, next, stop, tok := parsePartialPlaceholder(input, pos, lastToken)
			if stop {
				return info
			}
			pos = next
			lastToken = tok
		case '[':
			return parsePartialGlobalSettings(input, pos, lastToken)
		case '}':
			return stopResult(input, Invalid, pos, false, "unexpected '}' with no matching '{'", lastToken)
		case ']':
			return stopResult(input, Invalid, pos, false, "unexpected ']' with no matching '['", lastToken)
		default:
			pos++
		}
	}

	return ParserContextInfo{
		State:           Complete,
		Position:        len(input),
		ParsedSoFar:     input,
		ExpectedNext:    ExpectedTokensFor(Complete),
		LastParsedToken: lastToken,
		IsValid:         true,
	}
}

func stopResult(input string, state ParserState, pos int, isValid bool, errMsg string, lastToken string) ParserContextInfo {
	return ParserContextInfo{
		State:           state,
		Position:        pos,
		ParsedSoFar:     input[:pos],
		ExpectedNext:    ExpectedTokensFor(state),
		LastParsedToken: lastToken,
		IsValid:         isValid,
		ErrorMessage:    errMsg,
	}
}

func stopResultWithElement(input string, state ParserState, pos int, isValid bool, errMsg string, el *PartialElement, lastToken string) ParserContextInfo {
	info := stopResult(input, state, pos, isValid, errMsg, lastToken)
	info.PartialElement = el
	return info
}

// parsePartialPlaceholder handles the content right after an unconsumed
// '{' at openPos. It returns either (info, _, true, _) to stop immediately,
// or (_, next, false, token) meaning the placeholder closed cleanly at next
// and the caller should resume its outer loop there with token as the new
// last-parsed-token.
func parsePartialPlaceholder(input string, openPos int, lastToken string) (ParserContextInfo, int, bool, string) {
	p := openPos + 1
	if p >= len(input) {
		return stopResult(input, InPlaceholder, p, true, "", lastToken), 0, true, lastToken
	}

	ident, next := tryParseIdentifier(input, p)
	if ident == "" {
		return stopResult(input, InPlaceholder, p, false, "expected an identifier after '{'", lastToken), 0, true, lastToken
	}
	p = next
	lastToken = ident

	if p >= len(input) {
		return stopResultWithElement(input, stateForKind(ident), p, true, "", &PartialElement{Kind: kindLabel(ident)}, lastToken), 0, true, lastToken
	}

	switch ident {
	case "number":
		return parsePartialNumberGen(input, p, openPos, lastToken)
	case "special":
		return parsePartialSpecialGen(input, p, openPos, lastToken)
	default:
		return parsePartialSelector(input, p, openPos, ident, lastToken)
	}
}

func stateForKind(kind string) ParserState {
	switch kind {
	case "number":
		return PartialNumberGen
	case "special":
		return PartialSpecialGen
	default:
		return PartialSelector
	}
}

func kindLabel(kind string) string {
	switch kind {
	case "number":
		return "number"
	case "special":
		return "special"
	default:
		return "selector"
	}
}

func parsePartialSelector(input string, p, openPos int, kind string, lastToken string) (ParserContextInfo, int, bool, string) {
	el := &PartialElement{Kind: "selector"}
	ch := input[p]

	if ch == '}' {
		return ParserContextInfo{}, p + 1, false, lastToken
	}

	if ch == '@' {
		p2 := p + 1
		if p2 >= len(input) {
			return stopResultWithElement(input, ExpectingLanguageIdentifier, p2, true, "", el, lastToken), 0, true, lastToken
		}
		lang, p3 := tryParseIdentifier(input, p2)
		if lang == "" {
			return stopResultWithElement(input, ExpectingLanguageIdentifier, p2, false, "expected a language identifier after '@'", el, lastToken), 0, true, lastToken
		}
		el.Language = lang
		lastToken = lang
		p2 = p3
		if p2 >= len(input) {
			return stopResultWithElement(input, ExpectingAfterLanguage, p2, true, "", el, lastToken), 0, true, lastToken
		}
		switch input[p2] {
		case '}':
			return ParserContextInfo{}, p2 + 1, false, lastToken
		case ':':
			return selectorBodyGeneric(input, p2+1, el, false, '}', lastToken)
		default:
			return stopResultWithElement(input, ExpectingAfterLanguage, p2, false, "expected ':' or '}' after language", el, lastToken), 0, true, lastToken
		}
	}

	if ch == ':' {
		return selectorBodyGeneric(input, p+1, el, false, '}', lastToken)
	}

	return stopResultWithElement(input, PartialSelector, p, false, "expected '@', ':', or '}'", el, lastToken), 0, true, lastToken
}

func parsePartialNumberGen(input string, p, openPos int, lastToken string) (ParserContextInfo, int, bool, string) {
	el := &PartialElement{Kind: "number", NumberGen: pattern.NewNumberGen()}

	if input[p] == '}' {
		return ParserContextInfo{}, p + 1, false, lastToken
	}
	if input[p] != ':' {
		return stopResultWithElement(input, PartialNumberGen, p, false, "expected ':' or '}'", el, lastToken), 0, true, lastToken
	}
	p++

	if p >= len(input) {
		return stopResultWithElement(input, ExpectingNumberLength, p, true, "", el, lastToken), 0, true, lastToken
	}
	if !isDigit(input[p]) {
		return stopResultWithElement(input, ExpectingNumberLength, p, false, "expected digits after ':'", el, lastToken), 0, true, lastToken
	}
	length, p2 := tryParseNumber(input, p)
	el.NumberGen.MaxLength = length
	lastToken = input[p:p2]

	if p2 >= len(input) {
		return stopResultWithElement(input, ExpectingNumberBase, p2, true, "", el, lastToken), 0, true, lastToken
	}

	ch := input[p2]
	if base, ok := pattern.ShortBaseLetter(ch); ok {
		el.NumberGen.Base = base
		p3 := p2 + 1
		if p3 >= len(input) {
			return stopResultWithElement(input, ExpectingCloseBrace, p3, true, "", el, lastToken), 0, true, lastToken
		}
		if input[p3] == '}' {
			return ParserContextInfo{}, p3 + 1, false, lastToken
		}
		return stopResultWithElement(input, ExpectingCloseBrace, p3, false, "expected '}'", el, lastToken), 0, true, lastToken
	}

	if ch == '}' {
		return ParserContextInfo{}, p2 + 1, false, lastToken
	}

	if ch == ',' {
		p3 := p2 + 1
		for p3 < len(input) && isSpace(input[p3]) {
			p3++
		}
		if p3 >= len(input) {
			return stopResultWithElement(input, ExpectingNumberBase, p3, true, "", el, lastToken), 0, true, lastToken
		}
		name, p4 := tryParseIdentifier(input, p3)
		if name == "" {
			return stopResultWithElement(input, ExpectingNumberBase, p3, false, "expected a number base", el, lastToken), 0, true, lastToken
		}
		lastToken = name
		base, ok := pattern.LongBaseName(name)
		if !ok {
			return stopResultWithElement(input, ExpectingNumberBase, p3, false, "invalid number base '"+name+"'", el, lastToken), 0, true, lastToken
		}
		el.NumberGen.Base = base
		if p4 >= len(input) {
			return stopResultWithElement(input, ExpectingCloseBrace, p4, true, "", el, lastToken), 0, true, lastToken
		}
		if input[p4] == '}' {
			return ParserContextInfo{}, p4 + 1, false, lastToken
		}
		return stopResultWithElement(input, ExpectingCloseBrace, p4, false, "expected '}'", el, lastToken), 0, true, lastToken
	}

	return stopResultWithElement(input, ExpectingNumberBase, p2, false, "expected a number base or '}'", el, lastToken), 0, true, lastToken
}

func parsePartialSpecialGen(input string, p, openPos int, lastToken string) (ParserContextInfo, int, bool, string) {
	el := &PartialElement{Kind: "special", SpecialGen: &pattern.SpecialCharGen{}}

	if input[p] == '}' {
		return ParserContextInfo{}, p + 1, false, lastToken
	}
	if input[p] != ':' {
		return stopResultWithElement(input, PartialSpecialGen, p, false, "expected ':' or '}'", el, lastToken), 0, true, lastToken
	}
	p++

	if p >= len(input) {
		return stopResultWithElement(input, ExpectingSpecialLength, p, true, "", el, lastToken), 0, true, lastToken
	}
	if !isDigit(input[p]) {
		return stopResultWithElement(input, ExpectingSpecialLength, p, false, "expected digits after ':'", el, lastToken), 0, true, lastToken
	}
	first, p2 := tryParseNumber(input, p)
	el.SpecialGen.MinLength = first
	el.SpecialGen.MaxLength = first
	lastToken = input[p:p2]

	if p2 >= len(input) {
		return stopResultWithElement(input, ExpectingSpecialRange, p2, true, "", el, lastToken), 0, true, lastToken
	}

	switch input[p2] {
	case '}':
		return ParserContextInfo{}, p2 + 1, false, lastToken
	case '-':
		p3 := p2 + 1
		if p3 >= len(input) {
			return stopResultWithElement(input, ExpectingSpecialRange, p3, true, "", el, lastToken), 0, true, lastToken
		}
		if !isDigit(input[p3]) {
			return stopResultWithElement(input, ExpectingSpecialRange, p3, false, "expected digits after '-'", el, lastToken), 0, true, lastToken
		}
		second, p4 := tryParseNumber(input, p3)
		lastToken = input[p3:p4]
		if first > second {
			return stopResultWithElement(input, ExpectingSpecialRange, p3, false, "invalid range: minimum length exceeds maximum length", el, lastToken), 0, true, lastToken
		}
		el.SpecialGen.MaxLength = second
		if p4 >= len(input) {
			return stopResultWithElement(input, ExpectingCloseBrace, p4, true, "", el, lastToken), 0, true, lastToken
		}
		if input[p4] == '}' {
			return ParserContextInfo{}, p4 + 1, false, lastToken
		}
		return stopResultWithElement(input, ExpectingCloseBrace, p4, false, "expected '}'", el, lastToken), 0, true, lastToken
	default:
		return stopResultWithElement(input, ExpectingSpecialRange, p2, false, "expected '-' or '}'", el, lastToken), 0, true, lastToken
	}
}

func parsePartialGlobalSettings(input string, openPos int, lastToken string) ParserContextInfo {
	p := openPos + 1
	el := &PartialElement{Kind: "global"}

	if p >= len(input) {
		return stopResultWithElement(input, InGlobalSettings, p, true, "", el, lastToken)
	}

	if input[p] == '@' {
		p2 := p + 1
		if p2 >= len(input) {
			return stopResultWithElement(input, ExpectingLanguageIdentifier, p2, true, "", el, lastToken)
		}
		lang, p3 := tryParseIdentifier(input, p2)
		if lang == "" {
			return stopResultWithElement(input, ExpectingLanguageIdentifier, p2, false, "expected a language identifier after '@'", el, lastToken)
		}
		el.Language = lang
		lastToken = lang
		p = p3
	}

	info, next, stop, tok := globalSettingsBody(input, p, el, lastToken)
	if stop {
		return info
	}
	lastToken = tok

	// global settings closed cleanly at `next`; everything after must be
	// whitespace only, per the rule that it is the final construct.
	for next < len(input) {
		if !isSpace(input[next]) {
			return stopResultWithElement(input, Invalid, next, false, "unexpected content after global settings", el, lastToken)
		}
		next++
	}
	return ParserContextInfo{
		State:           Complete,
		Position:        len(input),
		ParsedSoFar:     input,
		ExpectedNext:    ExpectedTokensFor(Complete),
		LastParsedToken: lastToken,
		IsValid:         true,
	}
}

// globalSettingsBody parses the body of global settings with
// selectorBodyGeneric: the same tag/size-limit/options grammar as a
// selector body, closing on ']' instead of '}'.
func globalSettingsBody(input string, p int, el *PartialElement, lastToken string) (ParserContextInfo, int, bool, string) {
	return selectorBodyGeneric(input, p, el, false, ']', lastToken)
}

// selectorBodyGeneric parses a selector body (tags, size limit, options)
// and also serves global settings, whose closing delimiter is ']' instead
// of '}'.
func selectorBodyGeneric(input string, p int, el *PartialElement, hasSizeLimit bool, closeChar byte, lastToken string) (ParserContextInfo, int, bool, string) {
	for p < len(input) && isSpace(input[p]) {
		p++
	}

	bodyState := ExpectingTagOrSizeLimit
	if hasSizeLimit {
		bodyState = ExpectingTagOnly
	}
	if closeChar == ']' {
		// Past this point '@lang' is no longer reachable: the grammar only
		// allows it immediately after '[', before sel_body starts.
		bodyState = ExpectingGlobalTagOrSizeLimit
		if hasSizeLimit {
			bodyState = ExpectingGlobalTagOnly
		}
	}

	if p >= len(input) {
		return stopResultWithElement(input, bodyState, p, true, "", el, lastToken), 0, true, lastToken
	}

	ch := input[p]

	if ch == closeChar {
		return ParserContextInfo{}, p + 1, false, lastToken
	}

	if ch == '+' || ch == '-' {
		sign := ch
		p2 := p + 1
		if p2 >= len(input) {
			return stopResultWithElement(input, ExpectingTagIdentifier, p2, true, "", el, lastToken), 0, true, lastToken
		}
		tag, p3 := tryParseIdentifier(input, p2)
		if tag == "" {
			return stopResultWithElement(input, ExpectingTagIdentifier, p2, false, "expected a tag identifier", el, lastToken), 0, true, lastToken
		}
		if tagAlreadyUsed(el, tag) {
			return stopResultWithElement(input, ExpectingTagIdentifier, p2, false, "duplicate tag '"+tag+"'", el, tag), 0, true, tag
		}
		lastToken = tag
		if sign == '+' {
			el.IncludeTags = append(el.IncludeTags, tag)
		} else {
			el.ExcludeTags = append(el.ExcludeTags, tag)
		}
		return selectorBodyGeneric(input, p3, el, hasSizeLimit, closeChar, lastToken)
	}

	if !hasSizeLimit && isComparatorStart(ch) {
		op, opLen, complete := tryParseComparator(input, p)
		if !complete {
			if p+opLen >= len(input) {
				return stopResultWithElement(input, bodyState, p, true, "", el, lastToken), 0, true, lastToken
			}
			return stopResultWithElement(input, bodyState, p, false, "expected '=' to complete the comparison operator", el, lastToken), 0, true, lastToken
		}
		p2 := p + opLen
		for p2 < len(input) && isSpace(input[p2]) {
			p2++
		}
		if p2 >= len(input) {
			return stopResultWithElement(input, ExpectingSizeLimit, p2, true, "", el, lastToken), 0, true, lastToken
		}
		if !isDigit(input[p2]) {
			return stopResultWithElement(input, ExpectingSizeLimit, p2, false, "expected a number after comparison operator", el, lastToken), 0, true, lastToken
		}
		value, p3 := tryParseNumber(input, p2)
		lastToken = input[p2:p3]
		el.SizeLimit = &pattern.SizeLimit{Op: op, Value: value}
		return selectorBodyGeneric(input, p3, el, true, closeChar, lastToken)
	}

	if hasSizeLimit && isComparatorStart(ch) {
		return stopResultWithElement(input, bodyState, p, false, "a selector may have at most one size limit", el, lastToken), 0, true, lastToken
	}

	if ch == ',' {
		p2 := p + 1
		for p2 < len(input) && isSpace(input[p2]) {
			p2++
		}
		return parsePartialOptionsGeneric(input, p2, el, true, closeChar, lastToken)
	}

	if isIdentStartByte(ch) {
		return parsePartialOptionsGeneric(input, p, el, false, closeChar, lastToken)
	}

	return stopResultWithElement(input, bodyState, p, false, "unexpected character", el, lastToken), 0, true, lastToken
}

// tagAlreadyUsed reports whether tag already appears among el's include or
// exclude tags, mirroring the full parser's single seen-set rule that a tag
// name may be used at most once regardless of sign.
func tagAlreadyUsed(el *PartialElement, tag string) bool {
	for _, t := range el.IncludeTags {
		if t == tag {
			return true
		}
	}
	for _, t := range el.ExcludeTags {
		if t == tag {
			return true
		}
	}
	return false
}

func parsePartialOptionsGeneric(input string, p int, el *PartialElement, afterComma bool, closeChar byte, lastToken string) (ParserContextInfo, int, bool, string) {
	if el.Options == nil {
		el.Options = pattern.NewOptions()
	}

	if p >= len(input) {
		return stopResultWithElement(input, ExpectingOption, p, true, "", el, lastToken), 0, true, lastToken
	}

	key, p2 := tryParseIdentifier(input, p)
	if key == "" {
		if afterComma {
			return stopResultWithElement(input, ExpectingOption, p, false, "trailing comma in options", el, lastToken), 0, true, lastToken
		}
		return stopResultWithElement(input, ExpectingOption, p, false, "expected an option name", el, lastToken), 0, true, lastToken
	}
	lastToken = key

	if p2 >= len(input) {
		return stopResultWithElement(input, ExpectingOption, p2, true, "", el, lastToken), 0, true, lastToken
	}
	if input[p2] != '=' {
		return stopResultWithElement(input, ExpectingOption, p2, false, "expected '=' after option name", el, lastToken), 0, true, lastToken
	}
	p3 := p2 + 1

	valStart := p3
	for p3 < len(input) && isIdentPart(input[p3]) {
		p3++
	}
	if p3 > valStart {
		lastToken = input[valStart:p3]
	}
	el.Options.Set(key, input[valStart:p3])

	if p3 >= len(input) {
		return stopResultWithElement(input, ExpectingOption, p3, true, "", el, lastToken), 0, true, lastToken
	}

	if input[p3] == closeChar {
		return ParserContextInfo{}, p3 + 1, false, lastToken
	}
	if input[p3] == ',' {
		p4 := p3 + 1
		for p4 < len(input) && isSpace(input[p4]) {
			p4++
		}
		return parsePartialOptionsGeneric(input, p4, el, true, closeChar, lastToken)
	}
	return stopResultWithElement(input, ExpectingOption, p3, false, "expected ',' or close delimiter after option value", el, lastToken), 0, true, lastToken
}

func tryParseIdentifier(input string, p int) (string, int) {
	if p >= len(input) || !isIdentStartByte(input[p]) {
		return "", p
	}
	start := p
	p++
	for p < len(input) && isIdentPart(input[p]) {
		p++
	}
	return input[start:p], p
}

func tryParseNumber(input string, p int) (int, int) {
	start := p
	for p < len(input) && isDigit(input[p]) {
		p++
	}
	n := 0
	for i := start; i < p; i++ {
		n = n*10 + int(input[i]-'0')
	}
	return n, p
}

// tryParseComparator attempts to match a comparison operator at p. complete
// is false when the character(s) at p could start an operator but do not
// yet form one (a lone '=' or '!'); opLen is then 1, the length already
// committed, so the caller can tell an end-of-input ambiguity from a
// definite mismatch.
func tryParseComparator(input string, p int) (op pattern.CompareOp, opLen int, complete bool) {
	switch input[p] {
	case '<':
		if p+1 < len(input) && input[p+1] == '=' {
			return pattern.CompareLE, 2, true
		}
		return pattern.CompareLT, 1, true
	case '>':
		if p+1 < len(input) && input[p+1] == '=' {
			return pattern.CompareGE, 2, true
		}
		return pattern.CompareGT, 1, true
	case '=':
		if p+1 < len(input) && input[p+1] == '=' {
			return pattern.CompareEQ, 2, true
		}
		return pattern.CompareNone, 1, false
	case '!':
		if p+1 < len(input) && input[p+1] == '=' {
			return pattern.CompareNE, 2, true
		}
		return pattern.CompareNone, 1, false
	}
	return pattern.CompareNone, 0, false
}

func isComparatorStart(b byte) bool {
	return b == '<' || b == '>' || b == '=' || b == '!'
}

func isIdentStartByte(b byte) bool {
	return isIdentStart(b)
}

func isSpace(b byte) bool {
	return isWhitespace(b)
}
