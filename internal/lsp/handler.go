package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"packfmt/internal/analysis"
	"packfmt/token"
)

var log = commonlog.GetLogger("packfmt.lsp")

// SemanticTokenTypes lists the token types reported for directives
var SemanticTokenTypes = []string{
	"type",     // known directive
	"variable", // directive not in the pack dialect
}

// SemanticTokenModifiers lists the modifier bits reported for directives
var SemanticTokenModifiers = []string{
	"defaultLibrary", // directive is part of the pack dialect
	"modification",   // directive carries endianness, native size, count or star
}

// PackHandler implements the LSP server handlers for pack format files.
// Documents are keyed by URI.
type PackHandler struct {
	mu      sync.RWMutex
	results map[string]*analysis.Result
}

func NewPackHandler() *PackHandler {
	return &PackHandler{
		results: make(map[string]*analysis.Result),
	}
}

// Initialize advertises the server's capabilities
func (h *PackHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *PackHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *PackHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *PackHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	return nil
}

func (h *PackHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened %s", params.TextDocument.URI)

	result := h.update(params.TextDocument.URI, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, ConvertDiagnostics(result))
	return nil
}

func (h *PackHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	// Full sync: the last whole-document change holds the current text.
	text, ok := "", false
	for _, change := range params.ContentChanges {
		if whole, isWhole := change.(protocol.TextDocumentContentChangeEventWhole); isWhole {
			text, ok = whole.Text, true
		}
	}
	if !ok {
		return fmt.Errorf("no full-text change for %s", params.TextDocument.URI)
	}

	result := h.update(params.TextDocument.URI, text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, ConvertDiagnostics(result))
	return nil
}

func (h *PackHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.results, params.TextDocument.URI)

	return nil
}

// TextDocumentSemanticTokensFull reports every directive of the document
func (h *PackHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	result, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(result.Source, result.Tokens)),
	}, nil
}

// TextDocumentHover describes the directive under the cursor
func (h *PackHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	result, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tok, ok := tokenAt(result, params.Position)
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describe(tok),
		},
	}, nil
}

func (h *PackHandler) update(uri protocol.DocumentUri, text string) *analysis.Result {
	result := analysis.Analyze(text)

	h.mu.Lock()
	h.results[uri] = result
	h.mu.Unlock()

	return result
}

// getOrLoad returns the analysis of an open document, reading the file
// from disk if the client never opened it.
func (h *PackHandler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*analysis.Result, error) {
	h.mu.RLock()
	result, ok := h.results[uri]
	h.mu.RUnlock()
	if ok {
		return result, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	result = h.update(uri, string(content))
	sendDiagnosticNotification(ctx, uri, ConvertDiagnostics(result))
	return result, nil
}

// tokenAt finds the token whose span covers pos. Spans that cross a line
// only match on the directive's line.
func tokenAt(result *analysis.Result, pos protocol.Position) (token.Token, bool) {
	line := int(pos.Line) + 1

	for _, tok := range result.Tokens {
		if tok.Position.Line != line {
			continue
		}
		span := result.Source[tok.Position.Offset : tok.Position.Offset+tok.Length]
		if i := strings.IndexByte(span, '\n'); i >= 0 {
			span = span[:i]
		}
		start := utf16Column(result.Source, tok.Position.Offset)
		width := max(utf16Len(span), 1)
		if pos.Character >= start && pos.Character < start+width {
			return tok, true
		}
	}
	return token.Token{}, false
}

func describe(tok token.Token) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**`%s`**", tok.String())

	if info, ok := token.LookupDirective(tok.Directive); ok {
		fmt.Fprintf(&b, " %s directive: %s", info.Kind, info.Description)
		if info.Size > 0 {
			fmt.Fprintf(&b, " (%d bytes)", info.Size)
		}
	} else {
		b.WriteString(" unknown directive")
	}

	if tok.Endianness != token.Native {
		fmt.Fprintf(&b, "\n\nbyte order: %s", tok.Endianness)
	}
	if tok.NativeSize {
		b.WriteString("\n\nnative size")
	}
	switch {
	case tok.HasCount() && tok.Star:
		fmt.Fprintf(&b, "\n\ncount: %d, then all remaining", tok.Count)
	case tok.HasCount():
		fmt.Fprintf(&b, "\n\ncount: %d", tok.Count)
	case tok.Star:
		b.WriteString("\n\ncount: all remaining")
	}
	if tok.Failed() {
		fmt.Fprintf(&b, "\n\nerror: %s", tok.Err)
	}
	return b.String()
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("sending %d diagnostics for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
