package lsp_test

import (
	"fmt"
	"testing"

	. "src.mdsite.sh/pkg/lsp"
	"src.mdsite.sh/pkg/prog/progtest"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestProgram(t *testing.T) {
	progtest.Test(t, &Program{},
		progtest.ThatMdsite("-lsp").
			WithStdin(frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)).
			WritesStdoutContaining(`"hoverProvider":true`),
		progtest.ThatMdsite().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}
