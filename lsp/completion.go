package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/slugforge/slugpattern/suggest"

	"github.com/tliron/glsp"
)

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	content, ok := ls.getDoc(uri)
	if !ok {
		return nil, nil
	}

	offset := positionToOffset(content, params.Position)
	suggestions, err := suggest.Suggest(string(content), offset, ls.provider)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, nil
	}

	items := make([]protocol.CompletionItem, len(suggestions))
	for i, s := range suggestions {
		s := s
		kind := toProtocolKind(s.Kind)
		insertText := s.Text
		textRange := protocol.Range{
			Start: offsetToPosition(content, s.ReplaceRange.Start),
			End:   offsetToPosition(content, s.ReplaceRange.End),
		}
		items[i] = protocol.CompletionItem{
			Label:  s.Text,
			Kind:   &kind,
			Detail: detailFor(s),
			TextEdit: &protocol.TextEdit{
				Range:   textRange,
				NewText: insertText,
			},
		}
	}

	return items, nil
}

func detailFor(s suggest.Suggestion) *string {
	if s.Description != "" {
		return &s.Description
	}
	d := s.Kind
	return &d
}

func toProtocolKind(kind string) protocol.CompletionItemKind {
	switch kind {
	case "generator":
		return protocol.CompletionItemKindValue
	case "tag":
		return protocol.CompletionItemKindEnumMember
	case "operator":
		return protocol.CompletionItemKindOperator
	case "base":
		return protocol.CompletionItemKindUnit
	default:
		return protocol.CompletionItemKindText
	}
}

// positionToOffset converts an LSP line/character position into a byte
// offset into content.
func positionToOffset(content []byte, pos protocol.Position) int {
	line, col := 0, 0
	for i, b := range content {
		if uint32(line) == pos.Line && uint32(col) == pos.Character {
			return i
		}
		if b == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return len(content)
}

// offsetToPosition converts a byte offset into content into an LSP
// line/character position.
func offsetToPosition(content []byte, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	line, col := uint32(0), uint32(0)
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return protocol.Position{Line: line, Character: col}
}
