// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"
	"sumi/internal/lsp"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "sumi" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	// Create a new instance of the SumiHandler (the language-specific handler)
	sumiHandler := lsp.NewSumiHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     sumiHandler.Initialize,
		Initialized:                    sumiHandler.Initialized,
		Shutdown:                       sumiHandler.Shutdown,
		SetTrace:                       sumiHandler.SetTrace,
		TextDocumentDidOpen:            sumiHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           sumiHandler.TextDocumentDidClose,
		TextDocumentDidChange:          sumiHandler.TextDocumentDidChange,
		TextDocumentCompletion:         sumiHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: sumiHandler.TextDocumentSemanticTokensFull,
	}

	// Create a new GLSP (Go Language Server Protocol) server instance
	// Parameters:
	// - handler: the protocol handler struct
	// - name: the language server name (shown to clients)
	// - debug: whether to enable internal GLSP debug logs
	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Sumi LSP server...")

	// Start the server over standard input/output (used by most editors for LSP)
	// This lets the editor communicate with the language server process
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting Sumi LSP server:", err)
		os.Exit(1)
	}
}
