package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/schema"
)

// serverName identifies the server in the client's UI.
const serverName = "kernelint"

// Server speaks LSP over a reader/writer pair, normally stdin/stdout.
// Messages are handled in arrival order on the Run goroutine; only frame
// writes are safe from elsewhere.
type Server struct {
	documents *DocumentStore
	analyzer  *lint.Analyzer

	projectRoot string
	initialized bool
	closing     atomic.Bool

	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger
}

// NewServer creates a server with stderr logging.
func NewServer(reader io.Reader, writer io.Writer, analyzer *lint.Analyzer) *Server {
	return NewServerWithLogger(reader, writer, analyzer, nil)
}

// NewServerWithLogger creates a server with an explicit logger. Logging must
// never touch the writer: that is the protocol channel. A nil analyzer gets
// the embedded schema and default rules, a nil logger goes to stderr.
func NewServerWithLogger(reader io.Reader, writer io.Writer, analyzer *lint.Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	if analyzer == nil {
		analyzer = lint.New(schema.Default(), nil, logger)
	}
	return &Server{
		documents: NewDocumentStore(),
		analyzer:  analyzer,
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
}

// Run reads and dispatches frames until shutdown is requested or the client
// closes the stream. Malformed frames are logged and skipped.
func (s *Server) Run() error {
	s.logger.Info("kernelint LSP listening")

	for !s.closing.Load() {
		msg, err := s.readFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("Client closed the stream")
				return nil
			}
			s.logger.Error("Dropping unreadable frame", "error", err)
			continue
		}
		if err := s.dispatch(msg); err != nil {
			s.logger.Error("Handler failed", "method", msg.Method, "error", err)
		}
	}
	return nil
}

// dispatch routes one message by method name. Unknown requests get a
// method-not-found response; unknown notifications are dropped silently.
func (s *Server) dispatch(msg *JSONRPCMessage) error {
	s.logger.Debug("rpc", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return s.handleExit(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var p InitializeParams
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return fmt.Errorf("initialize params: %w", err)
	}

	s.projectRoot = URIToPath(p.RootURI)
	s.logger.Info("Initializing", "root", s.projectRoot)

	s.sendResponse(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save:      &SaveOptions{IncludeText: true},
			},
		},
		ServerInfo: &ServerInfo{Name: serverName},
	}, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.initialized = true
	s.logger.Info("Client ready")
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.closing.Store(true)
	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("Shutdown requested")
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.logger.Info("Exiting")
	os.Exit(0)
	return nil
}

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var p DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return fmt.Errorf("didOpen params: %w", err)
	}

	td := p.TextDocument
	s.documents.Open(td.URI, td.Text, td.Version)
	s.logger.Debug("Document opened", "uri", td.URI, "version", td.Version)

	s.publishDiagnostics(td.URI)
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var p DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return fmt.Errorf("didChange params: %w", err)
	}

	// Full sync: the final change event carries the whole document.
	if n := len(p.ContentChanges); n > 0 {
		s.documents.Update(p.TextDocument.URI, p.ContentChanges[n-1].Text, p.TextDocument.Version)
	}

	s.publishDiagnostics(p.TextDocument.URI)
	return nil
}

func (s *Server) handleDidSave(msg *JSONRPCMessage) error {
	var p DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return fmt.Errorf("didSave params: %w", err)
	}

	// IncludeText clients resend the saved content; prefer it over the
	// buffered version in case change events were dropped.
	if p.Text != "" {
		if doc := s.documents.Get(p.TextDocument.URI); doc != nil {
			s.documents.Update(p.TextDocument.URI, p.Text, doc.Version)
		}
	}
	s.logger.Debug("Document saved", "uri", p.TextDocument.URI)

	s.publishDiagnostics(p.TextDocument.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var p DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return fmt.Errorf("didClose params: %w", err)
	}

	s.documents.Close(p.TextDocument.URI)
	s.logger.Debug("Document closed", "uri", p.TextDocument.URI)

	// An empty publish clears the client's findings for the URI.
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         p.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
	return nil
}
