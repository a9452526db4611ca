// Package parser implements the two parsers described for the slug
// pattern grammar: a full recursive-descent parser (full.go) and a
// resumable, state-reporting partial parser (partial.go) driven by the
// same grammar. The full parser sits on top of Cursor, a small byte-offset
// reader; the partial parser walks the input by byte offset with its own
// helpers (tryParseIdentifier, tryParseNumber, tryParseComparator).
package parser

// Cursor is a byte-offset reader over pattern source text. The grammar is
// ASCII-only outside of literal runs (spec §9), so byte indexing is exact;
// non-ASCII bytes inside a literal run are passed through untouched.
type Cursor struct {
	input     string
	pos       int
	lastToken string
}

// NewCursor returns a cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the input in bytes.
func (c *Cursor) Len() int { return len(c.input) }

// AtEnd reports whether the cursor has consumed the whole input.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.input) }

// Rest returns the unconsumed tail of the input.
func (c *Cursor) Rest() string { return c.input[c.pos:] }

// LastToken returns the most recently consumed multi-character token
// (identifier, number, or matched literal string), or "" if none yet.
func (c *Cursor) LastToken() string { return c.lastToken }

// Peek returns the byte at the cursor without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.input[c.pos], true
}

// PeekAt returns the byte offset bytes ahead of the cursor, without
// consuming anything.
func (c *Cursor) PeekAt(offset int) (byte, bool) {
	p := c.pos + offset
	if p < 0 || p >= len(c.input) {
		return 0, false
	}
	return c.input[p], true
}

// Advance consumes and returns the next byte.
func (c *Cursor) Advance() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.pos++
	}
	return b, ok
}

// Match consumes the next byte if it equals b, reporting whether it did.
func (c *Cursor) Match(b byte) bool {
	cur, ok := c.Peek()
	if !ok || cur != b {
		return false
	}
	c.pos++
	return true
}

// MatchString consumes s if it appears literally at the cursor. On success
// it records s as the last parsed token.
func (c *Cursor) MatchString(s string) bool {
	if len(c.input)-c.pos < len(s) {
		return false
	}
	if c.input[c.pos:c.pos+len(s)] != s {
		return false
	}
	c.pos += len(s)
	c.lastToken = s
	return true
}

// Expect consumes the next byte if it equals b, or returns a positioned
// error describing what was expected.
func (c *Cursor) Expect(b byte) error {
	if c.Match(b) {
		return nil
	}
	got, ok := c.Peek()
	if !ok {
		return &Error{Position: c.pos, Message: "unexpected end of input, expected '" + string(b) + "'"}
	}
	return &Error{Position: c.pos, Message: "unexpected character '" + string(got) + "', expected '" + string(b) + "'"}
}

// SkipWhitespace consumes any run of plain spaces, tabs, or newlines at the
// cursor.
func (c *Cursor) SkipWhitespace() {
	for {
		b, ok := c.Peek()
		if !ok || !isWhitespace(b) {
			return
		}
		c.pos++
	}
}

// ParseNumber consumes a run of ASCII digits and returns their value. It
// fails if the cursor is not positioned at a digit.
func (c *Cursor) ParseNumber() (int, error) {
	start := c.pos
	for {
		b, ok := c.Peek()
		if !ok || !isDigit(b) {
			break
		}
		c.pos++
	}
	if c.pos == start {
		return 0, &Error{Position: c.pos, Message: "expected a number"}
	}
	token := c.input[start:c.pos]
	c.lastToken = token
	n := 0
	for i := 0; i < len(token); i++ {
		n = n*10 + int(token[i]-'0')
	}
	return n, nil
}

// ParseIdentifier consumes [A-Za-z_][A-Za-z0-9_]* and returns it. It fails
// if the first character is not a letter or underscore.
func (c *Cursor) ParseIdentifier() (string, error) {
	start := c.pos
	b, ok := c.Peek()
	if !ok || !isIdentStart(b) {
		return "", &Error{Position: c.pos, Message: "expected an identifier"}
	}
	c.pos++
	for {
		b, ok := c.Peek()
		if !ok || !isIdentPart(b) {
			break
		}
		c.pos++
	}
	token := c.input[start:c.pos]
	c.lastToken = token
	return token, nil
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
