package lsp

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func frame(method string, id interface{}, params interface{}) []byte {
	msg := map[string]interface{}{"jsonrpc": "2.0", "method": method}
	if id != nil {
		msg["id"] = id
	}
	if params != nil {
		msg["params"] = params
	}
	data, _ := json.Marshal(msg)
	return data
}

func TestInitializeAdvertisesFormattingCapability(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	if err := s.handleMessage(frame("initialize", float64(1), InitializeParams{})); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if !strings.Contains(buf.String(), `"documentFormattingProvider":true`) {
		t.Errorf("response missing formatting capability: %s", buf.String())
	}
}

func TestDidOpenPublishesDiagnosticsForSyntaxError(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	err := s.handleMessage(frame("textDocument/didOpen", nil, DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: "file:///bad.veryl", Text: "module m { input a logic; }"},
	}))
	if err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if !strings.Contains(buf.String(), "publishDiagnostics") {
		t.Fatalf("no publishDiagnostics notification sent: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"diagnostics":[{`) {
		t.Errorf("expected a non-empty diagnostics array for invalid syntax, got: %s", buf.String())
	}
}

func TestDidOpenThenCleanDocumentHasNoDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	err := s.handleMessage(frame("textDocument/didOpen", nil, DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: "file:///ok.veryl", Text: "module m { input a: logic; }"},
	}))
	if err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if !strings.Contains(buf.String(), `"diagnostics":[]`) {
		t.Errorf("expected empty diagnostics for valid source, got: %s", buf.String())
	}
}

func TestFormattingReturnsWholeDocumentEdit(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	uri := "file:///f.veryl"
	if err := s.handleMessage(frame("textDocument/didOpen", nil, DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, Text: "module m { input  a: logic     ; }"},
	})); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	buf.Reset()
	err := s.handleMessage(frame("textDocument/formatting", float64(2), DocumentFormattingParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	}))
	if err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if !strings.Contains(buf.String(), `"newText"`) {
		t.Errorf("expected a newText TextEdit, got: %s", buf.String())
	}
}

func TestDidCloseRemovesDocument(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	uri := "file:///x.veryl"
	if err := s.handleMessage(frame("textDocument/didOpen", nil, DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, Text: "module m { input a: logic; }"},
	})); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if _, ok := s.document(uri); !ok {
		t.Fatalf("document not tracked after didOpen")
	}
	if err := s.handleMessage(frame("textDocument/didClose", nil, DidCloseTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	})); err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if _, ok := s.document(uri); ok {
		t.Errorf("document still tracked after didClose")
	}
}
