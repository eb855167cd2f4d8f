package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
)

type client struct {
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

func setup(t *testing.T) *client {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	ctx := context.Background()
	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))
	c := &client{diags: make(chan lsp.PublishDiagnosticsParams, 10)}
	c.conn = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(c.handle))
	t.Cleanup(func() {
		c.conn.Close()
		serverConn.Close()
	})
	return c
}

func (c *client) handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
		var params lsp.PublishDiagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err == nil {
			c.diags <- params
		}
	}
	return nil, nil
}

func (c *client) call(t *testing.T, method string, params, result any) error {
	t.Helper()
	return c.conn.Call(context.Background(), method, params, result)
}

func (c *client) waitDiagnostics(t *testing.T) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-c.diags:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		panic("unreachable")
	}
}

const testURI = lsp.DocumentURI("file:///doc.md")

func open(t *testing.T, c *client, text string) {
	t.Helper()
	err := c.call(t, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: testURI, LanguageID: "markdown", Text: text}}, nil)
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

func TestInitialize(t *testing.T) {
	c := setup(t)
	var result lsp.InitializeResult
	if err := c.call(t, "initialize", lsp.InitializeParams{}, &result); err != nil {
		t.Fatal(err)
	}
	caps := result.Capabilities
	if !caps.HoverProvider {
		t.Errorf("hover not advertised")
	}
	if caps.TextDocumentSync == nil || caps.TextDocumentSync.Options == nil ||
		caps.TextDocumentSync.Options.Change != lsp.TDSKFull {
		t.Errorf("full text sync not advertised: %+v", caps.TextDocumentSync)
	}
	for _, method := range []string{"initialized", "shutdown", "workspace/didChangeWatchedFiles"} {
		if err := c.call(t, method, struct{}{}, nil); err != nil {
			t.Errorf("%s: %v", method, err)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	c := setup(t)

	open(t, c, "# Title\n\nthis **breaks")
	params := c.waitDiagnostics(t)
	if params.URI != testURI {
		t.Errorf("diagnostics for %q, want %q", params.URI, testURI)
	}
	want := []lsp.Diagnostic{{
		Range: lsp.Range{
			Start: lsp.Position{Line: 2, Character: 0},
			End:   lsp.Position{Line: 2, Character: 13},
		},
		Severity: lsp.Error,
		Source:   "mdsite",
		Message:  `malformed inline syntax: missing closing "**" in "this **breaks"`,
	}}
	if diff := cmp.Diff(want, params.Diagnostics); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	err := c.call(t, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument: lsp.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{
			{Text: "# Title\n\nthis **works**"}},
	}, nil)
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	if params := c.waitDiagnostics(t); len(params.Diagnostics) != 0 {
		t.Errorf("got diagnostics %v after fixing the document", params.Diagnostics)
	}
}

func TestDiagnostics_CRLF(t *testing.T) {
	c := setup(t)

	open(t, c, "# Title\r\n\r\nthis **breaks")
	params := c.waitDiagnostics(t)
	if len(params.Diagnostics) != 1 {
		t.Fatalf("got diagnostics %v, want one", params.Diagnostics)
	}
	want := lsp.Range{
		Start: lsp.Position{Line: 2, Character: 0},
		End:   lsp.Position{Line: 2, Character: 13},
	}
	if diff := cmp.Diff(want, params.Diagnostics[0].Range); diff != "" {
		t.Errorf("diagnostic range (-want +got):\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	c := setup(t)
	open(t, c, "# Title\n\nSome **bold** text\n\n\n\n_open")
	c.waitDiagnostics(t)

	hover := func(line, char int) *lsp.Hover {
		t.Helper()
		var result *lsp.Hover
		err := c.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: line, Character: char},
		}, &result)
		if err != nil {
			t.Fatalf("hover: %v", err)
		}
		return result
	}

	h := hover(2, 3)
	if h == nil || len(h.Contents) != 1 {
		t.Fatalf("got hover %v, want one entry", h)
	}
	if h.Contents[0].Language != "html" || h.Contents[0].Value != "<p>Some <b>bold</b> text</p>" {
		t.Errorf("got hover content %+v", h.Contents[0])
	}
	wantRange := lsp.Range{
		Start: lsp.Position{Line: 2, Character: 0},
		End:   lsp.Position{Line: 2, Character: 18},
	}
	if h.Range == nil || *h.Range != wantRange {
		t.Errorf("got hover range %v, want %v", h.Range, wantRange)
	}

	if h := hover(4, 0); h != nil {
		t.Errorf("got hover %v between blocks, want nil", h)
	}

	h = hover(6, 1)
	if h == nil || len(h.Contents) != 1 || h.Contents[0].Language != "text" {
		t.Fatalf("got hover %v, want an error message", h)
	}
}

func TestDidClose(t *testing.T) {
	s := newServer()
	s.content[testURI] = "x"
	params, _ := json.Marshal(lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: testURI}})
	if _, err := s.didClose(context.Background(), nil, params); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.content[testURI]; ok {
		t.Errorf("content still kept after didClose")
	}
}

func TestErrors(t *testing.T) {
	c := setup(t)

	var rpcErr *jsonrpc2.Error
	err := c.call(t, "textDocument/definition", struct{}{}, nil)
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("unknown method returned %v, want method not found", err)
	}

	for _, method := range []string{
		"textDocument/didOpen", "textDocument/didChange",
		"textDocument/didClose", "textDocument/hover",
	} {
		err := c.call(t, method, "not an object", nil)
		if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeInvalidParams {
			t.Errorf("%s with bad params returned %v, want invalid params", method, err)
		}
	}
}

var positionTests = []struct {
	s   string
	idx int
	pos lsp.Position
}{
	{"ab\ncd", 4, lsp.Position{Line: 1, Character: 1}},
	{"ab\r\ncd", 5, lsp.Position{Line: 1, Character: 1}},
	{"\U0001F600x", 4, lsp.Position{Line: 0, Character: 2}},
	{"ab", 2, lsp.Position{Line: 0, Character: 2}},
}

func TestPositions(t *testing.T) {
	for _, test := range positionTests {
		if got := lspPositionFromIdx(test.s, test.idx); got != test.pos {
			t.Errorf("lspPositionFromIdx(%q, %d) = %v, want %v", test.s, test.idx, got, test.pos)
		}
		if got := lspPositionToIdx(test.s, test.pos); got != test.idx {
			t.Errorf("lspPositionToIdx(%q, %v) = %d, want %d", test.s, test.pos, got, test.idx)
		}
	}
}
