// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"packfmt/internal/lsp"
)

const lsName = "packfmt" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	verbosity := flag.Int("v", 1, "log verbosity (0 quiet, 1 info, 2 debug)")
	logFile := flag.String("log", "", "write logs to `path` instead of stderr")
	showVersion := flag.Bool("version", false, "print the server version and exit")
	flag.Parse()

	if *showVersion {
		log.Printf("%s %s", lsName, version)
		return
	}

	// stdout carries the protocol, so logs go to stderr or a file
	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbosity, path)

	packHandler := lsp.NewPackHandler()

	handler = protocol.Handler{
		Initialize:                     packHandler.Initialize,
		Initialized:                    packHandler.Initialized,
		Shutdown:                       packHandler.Shutdown,
		SetTrace:                       packHandler.SetTrace,
		TextDocumentDidOpen:            packHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           packHandler.TextDocumentDidClose,
		TextDocumentDidChange:          packHandler.TextDocumentDidChange,
		TextDocumentHover:              packHandler.TextDocumentHover,
		TextDocumentSemanticTokensFull: packHandler.TextDocumentSemanticTokensFull,
	}

	// debug=false: glsp's own message tracing stays off
	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting %s LSP server %s...", lsName, version)

	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting packfmt LSP server:", err)
		os.Exit(1)
	}
}
