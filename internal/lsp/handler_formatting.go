package lsp

import (
	"strings"

	"github.com/veryl-lang/veryl-go/internal/formatter"
)

// handleFormatting answers textDocument/formatting by running the full
// document through the aligning formatter and returning a single TextEdit
// that replaces the whole document (spec.md §4.6 produces one complete
// replacement text, never a line-level diff).
func (s *Server) handleFormatting(id interface{}, params DocumentFormattingParams) error {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Error: &RPCError{
			Code: errCodeInternal, Message: "document not open",
		}})
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()
	content := doc.Content

	formatted, err := formatter.Format(content)
	if err != nil {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Error: &RPCError{
			Code: errCodeInternal, Message: err.Error(),
		}})
	}
	if formatted == content {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: []TextEdit{}})
	}

	edit := TextEdit{
		Range:   wholeDocumentRange(content),
		NewText: formatted,
	}
	return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: []TextEdit{edit}})
}

// wholeDocumentRange spans from the document's start to just past its
// last line, matching the "one full-document TextEdit" convention LSP
// clients expect when a formatter doesn't track which sub-ranges changed.
func wholeDocumentRange(content string) Range {
	lines := strings.Split(content, "\n")
	lastLine := len(lines) - 1
	lastCol := len(lines[lastLine])
	return Range{
		Start: Position{Line: 0, Character: 0},
		End:   Position{Line: lastLine, Character: lastCol},
	}
}
