// Package convert implements the default subprogram of mdsite, which converts
// documents to HTML.
package convert

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"src.mdsite.sh/pkg/diag"
	"src.mdsite.sh/pkg/logutil"
	"src.mdsite.sh/pkg/md"
	"src.mdsite.sh/pkg/prog"
	"src.mdsite.sh/pkg/sys"
)

var logger = logutil.GetLogger("[convert] ")

// Name used for documents read from stdin.
const stdinName = "[stdin]"

// Program is the conversion subprogram. It reads each file named in the
// arguments, or stdin when there are none, and writes the rendered HTML of
// each document to stdout, followed by a newline.
type Program struct {
	trace bool
}

// RegisterFlags registers -trace.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.trace, "trace", false,
		"Print the node tree of each document instead of HTML")
}

// Run runs the subprogram.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) == 0 {
		src, err := io.ReadAll(fds[0])
		if err != nil {
			return err
		}
		if !p.convert(fds, stdinName, string(src)) {
			return prog.Exit(2)
		}
		return nil
	}
	ok := true
	for _, name := range args {
		src, err := os.ReadFile(name)
		if err != nil {
			diag.Complain(fds[2], err.Error())
			ok = false
			continue
		}
		if !p.convert(fds, name, string(src)) {
			ok = false
		}
	}
	if !ok {
		return prog.Exit(2)
	}
	return nil
}

// Converts one document and writes the result, or shows the error. It
// returns whether the conversion succeeded.
func (p *Program) convert(fds [3]*os.File, name, src string) bool {
	logger.Printf("converting %s (%d bytes)", name, len(src))
	if p.trace {
		src = md.NormalizeNewlines(src)
		tree, err := md.DocumentToTree(src)
		if err != nil {
			diag.ShowError(fds[2], md.DiagError(name, src, err))
			return false
		}
		writeTrace(fds[1], md.Dump(tree))
		return true
	}
	html, err := Convert(name, src)
	if err != nil {
		diag.ShowError(fds[2], err)
		return false
	}
	fmt.Fprintln(fds[1], html)
	return true
}

// Convert converts a document to HTML. Errors that can be located within the
// document are returned as *diag.Error. CRLF line endings are accepted.
func Convert(name, src string) (string, error) {
	src = md.NormalizeNewlines(src)
	tree, err := md.DocumentToTree(src)
	if err != nil {
		return "", md.DiagError(name, src, err)
	}
	return tree.Render()
}

// Writes the trace, truncating each line to the width of the terminal when
// w is one.
func writeTrace(w *os.File, trace string) {
	width := -1
	if sys.IsATTY(w.Fd()) {
		_, width = sys.WinSize(w)
	}
	if width <= 0 {
		io.WriteString(w, trace)
		return
	}
	var sb strings.Builder
	for _, line := range strings.SplitAfter(trace, "\n") {
		text, newline := strings.CutSuffix(line, "\n")
		sb.WriteString(runewidth.Truncate(text, width, "…"))
		if newline {
			sb.WriteByte('\n')
		}
	}
	io.WriteString(w, sb.String())
}
