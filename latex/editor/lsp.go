package editor

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "matex"

var log = commonlog.GetLogger("matex.editor")

// LSPServer speaks the language server protocol over stdio. Documents
// sync whole-buffer; hover and completion answer from the incremental
// parse state in the Store.
type LSPServer struct {
	store   *Store
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		store:   NewStore(),
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.HoverProvider = true
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"\\"},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("open %s", params.TextDocument.URI)
	doc := ls.store.Open(params.TextDocument.URI, params.TextDocument.Text)
	ls.publishDiagnostics(ctx, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		doc := ls.store.Update(params.TextDocument.URI, whole.Text)
		ls.publishDiagnostics(ctx, doc)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("close %s", params.TextDocument.URI)
	ls.store.Close(params.TextDocument.URI)
	return nil
}

// publishDiagnostics reports the unparsed tail of a document as a single
// warning, or clears diagnostics once the whole buffer parses.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	diagnostics := []protocol.Diagnostic{}

	if doc.Progress() < 1.0 {
		text := doc.Text()
		start := len(text) - len(doc.UnparsedText())
		startLine, startChar := PositionAt(text, start)
		endLine, endChar := PositionAt(text, len(text))
		severity := protocol.DiagnosticSeverityWarning
		source := lsName
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(startLine), Character: protocol.UInteger(startChar)},
				End:   protocol.Position{Line: protocol.UInteger(endLine), Character: protocol.UInteger(endChar)},
			},
			Severity: &severity,
			Source:   &source,
			Message:  "cannot parse past this point",
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI(),
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.store.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	offset := OffsetAt(doc.Text(), int(params.Position.Line), int(params.Position.Character))
	info := doc.HoverAt(offset)
	if info == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: info,
		},
	}, nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := ls.store.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	offset := OffsetAt(doc.Text(), int(params.Position.Line), int(params.Position.Character))
	names := doc.CompletionsAt(offset)
	if len(names) == 0 {
		return nil, nil
	}

	kind := protocol.CompletionItemKindFunction
	var items []protocol.CompletionItem
	for _, name := range names {
		insert := name
		items = append(items, protocol.CompletionItem{
			Label:      "\\" + name,
			Kind:       &kind,
			InsertText: &insert,
		})
	}
	return items, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
