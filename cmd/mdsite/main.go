// Mdsite converts documents written in a small Markdown dialect to HTML. It
// can convert single documents, build a static site from a directory of
// documents, or run as a language server for editors.
package main

import (
	"os"

	"src.mdsite.sh/pkg/buildinfo"
	"src.mdsite.sh/pkg/convert"
	"src.mdsite.sh/pkg/lsp"
	"src.mdsite.sh/pkg/pprof"
	"src.mdsite.sh/pkg/prog"
	"src.mdsite.sh/pkg/site"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &site.Program{},
			&convert.Program{})))
}
