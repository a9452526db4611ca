package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/slugforge/slugpattern/pattern/parser"

	"github.com/tliron/glsp"
)

// publishDiagnostics re-parses the document at uri and reports a single
// diagnostic at the point the partial parser found a definite syntax
// error. A pattern that is merely incomplete (still being typed) is not
// an error and clears any previous diagnostic.
func (ls *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	content, ok := ls.getDoc(uri)
	if !ok {
		return
	}

	info := parser.ParsePartial(string(content))

	var diagnostics []protocol.Diagnostic
	if !info.IsValid {
		severity := protocol.DiagnosticSeverityError
		pos := offsetToPosition(content, info.Position)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: pos,
				End:   pos,
			},
			Severity: &severity,
			Source:   strPtr(lsName),
			Message:  info.ErrorMessage,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func strPtr(s string) *string { return &s }
