package pattern

import "strings"

// Render reserializes a ParsedPattern back into pattern source text. It is
// the inverse of a successful Parse up to whitespace normalization inside
// selector/global-settings bodies: tags and the size limit are always
// separated by exactly one space, and options by bare commas, whatever
// whitespace the original source had.
func Render(p *ParsedPattern) string {
	var b strings.Builder

	// TextChunks already holds literal source text, escapes and all, so it
	// is written through unchanged.
	for i, chunk := range p.TextChunks {
		b.WriteString(chunk)
		if i < len(p.Elements) {
			b.WriteByte('{')
			renderElement(&b, p.Elements[i])
			b.WriteByte('}')
		}
	}

	if p.GlobalSettings != nil {
		b.WriteByte('[')
		renderSettingsBody(&b, p.GlobalSettings.Language, p.GlobalSettings.IncludeTags,
			p.GlobalSettings.ExcludeTags, p.GlobalSettings.SizeLimit, p.GlobalSettings.Options)
		b.WriteByte(']')
	}

	return b.String()
}

func renderElement(b *strings.Builder, el PatternElement) {
	switch el.Kind {
	case ElementSelector:
		renderSelector(b, el.Selector)
	case ElementNumber:
		renderNumberGen(b, el.Number)
	case ElementSpecial:
		renderSpecialGen(b, el.Special)
	}
}

func renderSelector(b *strings.Builder, s *Selector) {
	b.WriteString(s.Kind)
	if s.Language != "" {
		b.WriteByte('@')
		b.WriteString(s.Language)
	}
	if hasSelectorBody(s.IncludeTags, s.ExcludeTags, s.SizeLimit, s.Options) {
		b.WriteByte(':')
		renderSettingsBody(b, "", s.IncludeTags, s.ExcludeTags, s.SizeLimit, s.Options)
	}
}

func hasSelectorBody(include, exclude []string, limit *SizeLimit, opts *Options) bool {
	return len(include) > 0 || len(exclude) > 0 || limit != nil || (opts != nil && opts.Len() > 0)
}

func renderSettingsBody(b *strings.Builder, language string, include, exclude []string, limit *SizeLimit, opts *Options) {
	if language != "" {
		b.WriteByte('@')
		b.WriteString(language)
	}

	wroteAny := false
	for _, t := range include {
		if wroteAny {
			b.WriteByte(' ')
		}
		b.WriteByte('+')
		b.WriteString(t)
		wroteAny = true
	}
	for _, t := range exclude {
		if wroteAny {
			b.WriteByte(' ')
		}
		b.WriteByte('-')
		b.WriteString(t)
		wroteAny = true
	}

	if limit != nil {
		if wroteAny {
			b.WriteByte(' ')
		}
		b.WriteString(limit.Op.String())
		b.WriteString(intToString(limit.Value))
		wroteAny = true
	}

	if opts != nil && opts.Len() > 0 {
		if wroteAny {
			b.WriteByte(',')
		}
		for i, k := range opts.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			v, _ := opts.Get(k)
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
}

func renderNumberGen(b *strings.Builder, n *NumberGen) {
	b.WriteString("number")
	if n.MaxLength == 1 && n.Base == BaseDec {
		return
	}
	b.WriteByte(':')
	b.WriteString(intToString(n.MaxLength))
	switch n.Base {
	case BaseDec:
	case BaseHexLower:
		b.WriteByte('x')
	case BaseHexUpper, BaseRomanLower, BaseRomanUpper:
		b.WriteByte(',')
		b.WriteString(n.Base.String())
	}
}

func renderSpecialGen(b *strings.Builder, s *SpecialCharGen) {
	b.WriteString("special")
	if s.MinLength == 0 && s.MaxLength == 0 {
		return
	}
	b.WriteByte(':')
	b.WriteString(intToString(s.MinLength))
	if s.MaxLength != s.MinLength {
		b.WriteByte('-')
		b.WriteString(intToString(s.MaxLength))
	}
}

func intToString(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}
