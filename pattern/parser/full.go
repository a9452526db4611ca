package parser

import (
	"github.com/slugforge/slugpattern/pattern"
)

// Option configures a call to Parse. There are currently no
// options that change parsing behavior (the grammar has no dialects), but
// the shape is kept so callers have a stable extension point, the way the
// teacher's parser.Option works for its own constructors.
type Option func(*config)

type config struct{}

// Parse runs the full recursive-descent parser over input and returns the
// resulting pattern, or the first positioned Error encountered.
func Parse(input string, opts ...Option) (*pattern.ParsedPattern, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &fullParser{cur: NewCursor(input)}
	return p.parsePattern()
}

type fullParser struct {
	cur *Cursor
}

func (p *fullParser) parsePattern() (*pattern.ParsedPattern, error) {
	result := &pattern.ParsedPattern{}
	var chunk []byte

	for {
		b, ok := p.cur.Peek()
		if !ok {
			break
		}
		switch b {
		case '\\':
			lit, err := p.readEscape()
			if err != nil {
				return nil, err
			}
			chunk = append(chunk, lit...)
		case '{':
			p.cur.Advance()
			result.TextChunks = append(result.TextChunks, string(chunk))
			chunk = nil
			el, err := p.parsePlaceholder()
			if err != nil {
				return nil, err
			}
			result.Elements = append(result.Elements, el)
		case '[':
			p.cur.Advance()
			result.TextChunks = append(result.TextChunks, string(chunk))
			chunk = nil
			gs, err := p.parseGlobalSettings()
			if err != nil {
				return nil, err
			}
			result.GlobalSettings = gs
			return result, nil
		case '}':
			return nil, &Error{Position: p.cur.Pos(), Message: "unexpected '}' with no matching '{'"}
		case ']':
			return nil, &Error{Position: p.cur.Pos(), Message: "unexpected ']' with no matching '['"}
		default:
			p.cur.Advance()
			chunk = append(chunk, b)
		}
	}

	result.TextChunks = append(result.TextChunks, string(chunk))
	return result, nil
}

// readEscape consumes a backslash escape and returns it verbatim, backslash
// included, per the rule that text_chunks preserves escapes byte for byte
// rather than decoding them.
func (p *fullParser) readEscape() (string, error) {
	pos := p.cur.Pos()
	p.cur.Advance() // consume backslash
	next, ok := p.cur.Peek()
	if !ok {
		return "", &Error{Position: pos, Message: "unterminated escape sequence at end of input"}
	}
	switch next {
	case '{', '}', '\\':
		p.cur.Advance()
		return "\\" + string(next), nil
	default:
		return "", &Error{Position: pos, Message: "invalid escape sequence '\\" + string(next) + "'"}
	}
}

func (p *fullParser) parsePlaceholder() (pattern.PatternElement, error) {
	startPos := p.cur.Pos()
	kind, err := p.cur.ParseIdentifier()
	if err != nil {
		return pattern.PatternElement{}, &Error{Position: startPos, Message: "expected an identifier after '{'"}
	}

	switch kind {
	case "number":
		gen, err := p.parseNumberGen()
		if err != nil {
			return pattern.PatternElement{}, err
		}
		if err := p.cur.Expect('}'); err != nil {
			return pattern.PatternElement{}, err
		}
		return pattern.PatternElement{Kind: pattern.ElementNumber, Number: gen}, nil
	case "special":
		gen, err := p.parseSpecialGen()
		if err != nil {
			return pattern.PatternElement{}, err
		}
		if err := p.cur.Expect('}'); err != nil {
			return pattern.PatternElement{}, err
		}
		return pattern.PatternElement{Kind: pattern.ElementSpecial, Special: gen}, nil
	default:
		sel, err := p.parseSelector(kind)
		if err != nil {
			return pattern.PatternElement{}, err
		}
		if err := p.cur.Expect('}'); err != nil {
			return pattern.PatternElement{}, err
		}
		return pattern.PatternElement{Kind: pattern.ElementSelector, Selector: sel}, nil
	}
}

func (p *fullParser) parseSelector(kind string) (*pattern.Selector, error) {
	sel := &pattern.Selector{Kind: kind}

	if p.cur.Match('@') {
		lang, err := p.cur.ParseIdentifier()
		if err != nil {
			return nil, &Error{Position: p.cur.Pos(), Message: "expected a language identifier after '@'"}
		}
		sel.Language = lang
	}

	if p.cur.Match(':') {
		include, exclude, limit, opts, err := p.parseSelBody()
		if err != nil {
			return nil, err
		}
		sel.IncludeTags = include
		sel.ExcludeTags = exclude
		sel.SizeLimit = limit
		sel.Options = opts
	}

	return sel, nil
}

func (p *fullParser) parseGlobalSettings() (*pattern.GlobalSettings, error) {
	gs := &pattern.GlobalSettings{}

	if p.cur.Match('@') {
		lang, err := p.cur.ParseIdentifier()
		if err != nil {
			return nil, &Error{Position: p.cur.Pos(), Message: "expected a language identifier after '@'"}
		}
		gs.Language = lang
	}

	include, exclude, limit, opts, err := p.parseSelBody()
	if err != nil {
		return nil, err
	}
	gs.IncludeTags = include
	gs.ExcludeTags = exclude
	gs.SizeLimit = limit
	gs.Options = opts

	if err := p.cur.Expect(']'); err != nil {
		return nil, err
	}

	p.cur.SkipWhitespace()
	if !p.cur.AtEnd() {
		return nil, &Error{Position: p.cur.Pos(), Message: "unexpected content after global settings"}
	}

	return gs, nil
}

// parseSelBody parses the shared tag-list / size-limit / options body used
// by both Selector and GlobalSettings. It does not consume the closing
// '}' or ']'.
func (p *fullParser) parseSelBody() ([]string, []string, *pattern.SizeLimit, *pattern.Options, error) {
	var include, exclude []string
	var limit *pattern.SizeLimit
	seen := map[string]bool{}

	p.cur.SkipWhitespace()

	for {
		b, ok := p.cur.Peek()
		if !ok || (b != '+' && b != '-') {
			break
		}
		p.cur.Advance()
		tagPos := p.cur.Pos()
		tag, err := p.cur.ParseIdentifier()
		if err != nil {
			return nil, nil, nil, nil, &Error{Position: tagPos, Message: "expected a tag identifier"}
		}
		if seen[tag] {
			return nil, nil, nil, nil, &Error{Position: tagPos, Message: "duplicate tag '" + tag + "'"}
		}
		seen[tag] = true
		if b == '+' {
			include = append(include, tag)
		} else {
			exclude = append(exclude, tag)
		}
		p.cur.SkipWhitespace()
	}

	if op, ok, err := p.tryParseComparator(); err != nil {
		return nil, nil, nil, nil, err
	} else if ok {
		p.cur.SkipWhitespace()
		numPos := p.cur.Pos()
		val, err := p.cur.ParseNumber()
		if err != nil {
			return nil, nil, nil, nil, &Error{Position: numPos, Message: "expected a non-negative integer after comparison operator"}
		}
		limit = &pattern.SizeLimit{Op: op, Value: val}
		p.cur.SkipWhitespace()
	}

	opts, err := p.maybeParseOptions()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return include, exclude, limit, opts, nil
}

// tryParseComparator consumes a comparison operator token if one is
// present. A lone '=' or '!' not followed by '=' is a definite error.
func (p *fullParser) tryParseComparator() (pattern.CompareOp, bool, error) {
	b, ok := p.cur.Peek()
	if !ok {
		return pattern.CompareNone, false, nil
	}
	switch b {
	case '<':
		p.cur.Advance()
		if p.cur.Match('=') {
			return pattern.CompareLE, true, nil
		}
		return pattern.CompareLT, true, nil
	case '>':
		p.cur.Advance()
		if p.cur.Match('=') {
			return pattern.CompareGE, true, nil
		}
		return pattern.CompareGT, true, nil
	case '=':
		pos := p.cur.Pos()
		p.cur.Advance()
		if p.cur.Match('=') {
			return pattern.CompareEQ, true, nil
		}
		return pattern.CompareNone, false, &Error{Position: pos, Message: "lone '=' is not a valid operator, did you mean '=='?"}
	case '!':
		pos := p.cur.Pos()
		p.cur.Advance()
		if p.cur.Match('=') {
			return pattern.CompareNE, true, nil
		}
		return pattern.CompareNone, false, &Error{Position: pos, Message: "lone '!' is not a valid operator, did you mean '!='?"}
	default:
		return pattern.CompareNone, false, nil
	}
}

// maybeParseOptions parses a trailing options list if one is present. A
// leading comma is accepted but optional wherever options may start,
// matching the deliberate grammar relaxation recorded in DESIGN.md.
func (p *fullParser) maybeParseOptions() (*pattern.Options, error) {
	p.cur.SkipWhitespace()
	if p.cur.Match(',') {
		p.cur.SkipWhitespace()
		return p.parseOptionsList(true)
	}

	b, ok := p.cur.Peek()
	if !ok || !isIdentStart(b) {
		return nil, nil
	}
	return p.parseOptionsList(false)
}

func (p *fullParser) parseOptionsList(required bool) (*pattern.Options, error) {
	opts := pattern.NewOptions()
	first := true
	for {
		keyPos := p.cur.Pos()
		key, err := p.cur.ParseIdentifier()
		if err != nil {
			if first && required {
				return nil, &Error{Position: keyPos, Message: "trailing comma in options"}
			}
			if first {
				return nil, &Error{Position: keyPos, Message: "expected an option name"}
			}
			return nil, &Error{Position: keyPos, Message: "trailing comma in options"}
		}
		if err := p.cur.Expect('='); err != nil {
			return nil, &Error{Position: p.cur.Pos(), Message: "expected '=' after option name '" + key + "'"}
		}
		var value []byte
		for {
			b, ok := p.cur.Peek()
			if !ok || !isOptionValueChar(b) {
				break
			}
			p.cur.Advance()
			value = append(value, b)
		}
		opts.Set(key, string(value))

		if !p.cur.Match(',') {
			break
		}
		p.cur.SkipWhitespace()
		first = false
	}
	return opts, nil
}

func isOptionValueChar(b byte) bool {
	return isIdentPart(b)
}

func (p *fullParser) parseNumberGen() (*pattern.NumberGen, error) {
	gen := pattern.NewNumberGen()
	if !p.cur.Match(':') {
		return gen, nil
	}

	lengthPos := p.cur.Pos()
	length, err := p.cur.ParseNumber()
	if err != nil {
		return nil, &Error{Position: lengthPos, Message: "expected digits after ':' in number generator"}
	}
	gen.MaxLength = length

	b, ok := p.cur.Peek()
	if !ok {
		return gen, nil
	}

	if base, isShort := pattern.ShortBaseLetter(b); isShort {
		p.cur.Advance()
		gen.Base = base
		if nb, ok := p.cur.Peek(); ok && nb == ',' {
			return nil, &Error{Position: p.cur.Pos(), Message: "cannot mix short and long number base forms"}
		}
		return gen, nil
	}

	if b == ',' {
		p.cur.Advance()
		p.cur.SkipWhitespace()
		basePos := p.cur.Pos()
		name, err := p.cur.ParseIdentifier()
		if err != nil {
			return nil, &Error{Position: basePos, Message: "expected a number base after ','"}
		}
		base, ok := pattern.LongBaseName(name)
		if !ok {
			return nil, &Error{Position: basePos, Message: "invalid number base '" + name + "'"}
		}
		gen.Base = base
		return gen, nil
	}

	return gen, nil
}

func (p *fullParser) parseSpecialGen() (*pattern.SpecialCharGen, error) {
	gen := &pattern.SpecialCharGen{}
	if !p.cur.Match(':') {
		return gen, nil
	}

	firstPos := p.cur.Pos()
	first, err := p.cur.ParseNumber()
	if err != nil {
		return nil, &Error{Position: firstPos, Message: "expected digits after ':' in special generator"}
	}

	if p.cur.Match('-') {
		secondPos := p.cur.Pos()
		second, err := p.cur.ParseNumber()
		if err != nil {
			return nil, &Error{Position: secondPos, Message: "expected digits after '-' in special generator"}
		}
		if first > second {
			return nil, &Error{Position: firstPos, Message: "invalid range: minimum length exceeds maximum length"}
		}
		gen.MinLength = first
		gen.MaxLength = second
		return gen, nil
	}

	gen.MinLength = first
	gen.MaxLength = first
	return gen, nil
}
