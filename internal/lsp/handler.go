package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sumi/internal/ast"
	"sumi/internal/builtins"
	"sumi/internal/errors"
	"sumi/internal/parser"
	"sumi/internal/semantic"
	"sumi/token"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// SumiHandler implements the LSP server handlers for Sumi source files
type SumiHandler struct {
	mu       sync.RWMutex
	content  map[string]string
	programs map[string]*ast.Program
}

// NewSumiHandler creates and returns a new SumiHandler instance
func NewSumiHandler() *SumiHandler {
	return &SumiHandler{
		content:  make(map[string]string),
		programs: make(map[string]*ast.Program),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *SumiHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false), // no additional detail resolution yet
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true), // support full-document semantic token requests
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *SumiHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Sumi LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *SumiHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Sumi LSP Shutdown")
	return nil
}

// SetTrace records the trace level requested by the client
func (h *SumiHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Printf("Trace level set to: %s\n", params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *SumiHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateProgram(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}

	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}

	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *SumiHandler) TextDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.programs, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *SumiHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateProgram(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}

	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}

	return nil
}

// TextDocumentCompletion offers the builtin dialect and the reserved words.
// User-defined functions from the cached program could be added later.
func (h *SumiHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	items := make([]protocol.CompletionItem, 0, len(builtins.All)+len(token.KeywordNames))

	functionKind := protocol.CompletionItemKindFunction
	for _, b := range builtins.All {
		detail := fmt.Sprintf("%d in, %d out, %s", b.Params, b.Returns, b.Effect)
		items = append(items, protocol.CompletionItem{
			Label:  b.Name,
			Kind:   &functionKind,
			Detail: &detail,
		})
	}

	keywordKind := protocol.CompletionItemKindKeyword
	for _, name := range token.KeywordNames {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  &keywordKind,
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *SumiHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Println("TextDocumentSemanticTokensFull called for:", params.TextDocument.URI)

	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	program, err := h.getOrUpdateProgram(ctx, path, rawURI)
	if err != nil {
		return nil, err
	}
	if program == nil {
		// The file has never parsed cleanly, so there is nothing to highlight.
		return &protocol.SemanticTokens{}, nil
	}

	// Walk the program and collect semantic tokens
	tokens := collectSemanticTokens(program)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		// Append the encoded semantic token entry
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

func (h *SumiHandler) getOrUpdateProgram(ctx *glsp.Context, path string, rawURI protocol.DocumentUri) (*ast.Program, error) {
	h.mu.RLock()
	program, ok := h.programs[path]
	h.mu.RUnlock()

	if !ok {
		diagnostics, err := h.updateProgram(rawURI)
		if err != nil {
			return nil, err
		}

		h.mu.RLock()
		program = h.programs[path]
		h.mu.RUnlock()

		if len(diagnostics) > 0 {
			sendDiagnosticNotification(ctx, rawURI, diagnostics)
		}
	}

	return program, nil
}

// updateProgram re-reads a document from disk, parses and checks it, and
// caches the program when the syntax is sound. The returned diagnostics are
// non-nil whenever the file parsed, so a now-clean document clears any stale
// squiggles in the editor.
func (h *SumiHandler) updateProgram(rawURI protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	program, parseErrs := parser.ParseSource(path, string(source))
	if errors.HasBlockingErrors(parseErrs) {
		// Keep the last good program for token requests.
		return ConvertDiagnostics(parseErrs), nil
	}

	diagnostics := semantic.NewAnalyzer().Analyze(program)

	h.mu.Lock()
	h.content[path] = string(source)
	h.programs[path] = program
	h.mu.Unlock()

	return ConvertDiagnostics(diagnostics), nil
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

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Println("Failed to marshal diagnostics:", err)
		return
	}

	log.Println("Sending diagnostics:", string(diagnosticsJSON))

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
