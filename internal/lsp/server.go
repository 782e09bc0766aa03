package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/veryl-lang/veryl-go/internal/cache"
	"github.com/veryl-lang/veryl-go/internal/logging"
)

// DocumentState holds one open document's text and version, guarded by
// the document's own mutex so didChange on one URI never
// blocks a concurrent request against another (spec.md §5, "the front end
// owns multiple documents... analysis of distinct documents may proceed in
// parallel").
type DocumentState struct {
	mu      sync.Mutex
	Content string
	Version int
}

// Server is the JSON-RPC front end. One Server owns every open document
// for the lifetime of the editor session backing it.
type Server struct {
	documents map[string]*DocumentState
	mu        sync.RWMutex
	writer    io.Writer
	cache     *cache.Cache
	log       *logging.Logger
}

// New returns a Server writing JSON-RPC frames to w and persisting
// analysis results through c. c may be nil, in which case every document
// is re-analyzed on every change.
func New(w io.Writer, c *cache.Cache) *Server {
	if w == nil {
		w = os.Stdout
	}
	return &Server{documents: make(map[string]*DocumentState), writer: w, cache: c, log: logging.Default()}
}

// Start reads header-delimited JSON-RPC frames from stdin until EOF,
// dispatching each to handleMessage. Framing matches the teacher's
// cmd/lsp.LanguageServer.Start: a "Content-Length: N" header, a blank
// line, then exactly N bytes of JSON body.
func (s *Server) Start() {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.log.Warn("error reading header", logging.F("err", err))
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			s.log.Warn("bad Content-Length", logging.F("err", err))
			continue
		}
		for {
			sep, err := reader.ReadString('\n')
			if err != nil {
				s.log.Warn("error reading header separator", logging.F("err", err))
				return
			}
			if strings.TrimRight(sep, "\r\n") == "" {
				break
			}
		}
		content := make([]byte, n)
		if _, err := io.ReadFull(reader, content); err != nil {
			s.log.Warn("error reading body", logging.F("err", err))
			return
		}
		if err := s.handleMessage(content); err != nil {
			s.log.Error("error handling message", logging.F("err", err))
		}
	}
}

func (s *Server) handleMessage(content []byte) error {
	var base struct {
		ID     interface{} `json:"id,omitempty"`
		Method string      `json:"method"`
	}
	if err := json.Unmarshal(content, &base); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	if base.ID != nil {
		return s.handleRequest(base.ID, base.Method, content)
	}
	return s.handleNotification(base.Method, content)
}

func (s *Server) handleRequest(id interface{}, method string, content []byte) error {
	switch method {
	case "initialize":
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: InitializeResult{
			Capabilities: ServerCapabilities{TextDocumentSync: 1, DocumentFormattingProvider: true},
		}})

	case "shutdown":
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})

	case "textDocument/formatting":
		var params DocumentFormattingParams
		if err := json.Unmarshal(content, &struct {
			Params *DocumentFormattingParams `json:"params"`
		}{&params}); err != nil {
			return err
		}
		return s.handleFormatting(id, params)

	default:
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Error: &RPCError{
			Code: errCodeMethodNotFound, Message: fmt.Sprintf("method not found: %s", method),
		}})
	}
}

func (s *Server) handleNotification(method string, content []byte) error {
	switch method {
	case "initialized":
		return nil

	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(content, &struct {
			Params *DidOpenTextDocumentParams `json:"params"`
		}{&params}); err != nil {
			return err
		}
		return s.handleDidOpen(params)

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(content, &struct {
			Params *DidChangeTextDocumentParams `json:"params"`
		}{&params}); err != nil {
			return err
		}
		return s.handleDidChange(params)

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := json.Unmarshal(content, &struct {
			Params *DidCloseTextDocumentParams `json:"params"`
		}{&params}); err != nil {
			return err
		}
		return s.handleDidClose(params)

	case "exit":
		os.Exit(0)
		return nil

	default:
		return nil
	}
}

func (s *Server) sendResponse(r ResponseMessage) error     { return s.sendMessage(r) }
func (s *Server) sendNotification(n NotificationMessage) error { return s.sendMessage(n) }

func (s *Server) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}

func (s *Server) document(uri string) (*DocumentState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[uri]
	return d, ok
}

func (s *Server) handleDidOpen(params DidOpenTextDocumentParams) error {
	doc := &DocumentState{Content: params.TextDocument.Text, Version: params.TextDocument.Version}
	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()
	return s.analyzeAndPublish(params.TextDocument.URI, doc)
}

func (s *Server) handleDidChange(params DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return fmt.Errorf("document %s not found", params.TextDocument.URI)
	}
	doc.mu.Lock()
	doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.Version = params.TextDocument.Version
	doc.mu.Unlock()
	return s.analyzeAndPublish(params.TextDocument.URI, doc)
}

func (s *Server) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	if s.cache != nil {
		return s.cache.Invalidate(params.TextDocument.URI)
	}
	return nil
}

// analyzeAndPublish serializes analysis of a single document behind its
// own mutex (concurrent didChange notifications for the SAME uri must not
// race each other's pipeline run) while leaving distinct documents free to
// analyze in parallel on whatever goroutine called in.
func (s *Server) analyzeAndPublish(uri string, doc *DocumentState) error {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	content := doc.Content

	hash := contentHash(content)
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(uri, hash); err == nil && ok {
			return s.publishDiagnostics(uri, unmarshalDiagnostics(cached))
		}
	}

	result := runPipeline(content)
	data, lspDiags := marshalDiagnostics(uri, result.diagnostics)
	if s.cache != nil {
		if err := s.cache.Put(uri, hash, data, 0); err != nil {
			s.log.Warn("caching analysis failed", logging.F("uri", uri), logging.F("err", err))
		}
	}
	return s.publishDiagnostics(uri, lspDiags)
}

func (s *Server) publishDiagnostics(uri string, diags []Diagnostic) error {
	return s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: diags},
	})
}

// AnalyzeAll re-runs analysis for every currently open document
// concurrently, one goroutine per URI collected by an errgroup.Group with
// no concurrency limit set, and returns the first error. No message
// handler calls it.
func (s *Server) AnalyzeAll() error {
	s.mu.RLock()
	uris := make([]string, 0, len(s.documents))
	docs := make([]*DocumentState, 0, len(s.documents))
	for uri, doc := range s.documents {
		uris = append(uris, uri)
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	var g errgroup.Group
	for i := range uris {
		uri, doc := uris[i], docs[i]
		g.Go(func() error {
			return s.analyzeAndPublish(uri, doc)
		})
	}
	return g.Wait()
}
