// Package lsp exposes the pattern language over the Language Server
// Protocol: completion driven by the suggestion engine and diagnostics
// driven by the partial parser.
package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/slugforge/slugpattern/suggest"
)

const lsName = "slugctl"

var triggerCharacters = []string{"{", ":", "+", "-", "@"}

// Server is a slug-pattern language server. Each open document is treated
// as a single pattern string; there is no cross-document indexing.
type Server struct {
	provider suggest.Provider
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu   sync.RWMutex
	docs map[string][]byte
}

// NewServer builds a language server that queries provider for
// dictionary and tag completions.
func NewServer(provider suggest.Provider, version string) *Server {
	ls := &Server{
		provider: provider,
		version:  version,
		docs:     make(map[string][]byte),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

// RunStdio runs the server over standard input/output, the transport every
// LSP client expects for a locally-spawned server.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: triggerCharacters,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.setDoc(uri, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, uri)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.setDoc(uri, []byte(textChange.Text))
		}
	}
	ls.publishDiagnostics(ctx, uri)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.mu.Lock()
	delete(ls.docs, uri)
	ls.mu.Unlock()
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		ls.setDoc(uri, []byte(*params.Text))
	}
	ls.publishDiagnostics(ctx, uri)
	return nil
}

func (ls *Server) setDoc(uri string, content []byte) {
	ls.mu.Lock()
	ls.docs[uri] = content
	ls.mu.Unlock()
}

func (ls *Server) getDoc(uri string) ([]byte, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	content, ok := ls.docs[uri]
	return content, ok
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
