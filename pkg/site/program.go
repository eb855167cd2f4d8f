package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"src.mdsite.sh/pkg/diag"
	"src.mdsite.sh/pkg/fsutil"
	"src.mdsite.sh/pkg/md"
	"src.mdsite.sh/pkg/prog"
)

// Program is the site subprogram. It runs when -site is given.
type Program struct {
	config string
	jobs   int
}

// RegisterFlags registers -site and -jobs.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.config, "site", "",
		"Build the site described by the given config file (.yaml, .yml or .toml) and quit")
	fs.IntVar(&p.jobs, "jobs", 0,
		"Number of pages to generate concurrently, overriding the site config")
}

// Run runs the subprogram.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.config == "" {
		if p.jobs != 0 {
			return prog.BadUsage("-jobs can only be used with -site")
		}
		return prog.NextProgram()
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -site")
	}
	if p.jobs < 0 {
		return prog.BadUsage("-jobs must not be negative")
	}
	cfg, err := LoadConfig(p.config)
	if err != nil {
		return err
	}
	if p.jobs > 0 {
		cfg.Jobs = p.jobs
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := Build(ctx, cfg); err != nil {
		showError(fds[2], err)
		return prog.Exit(2)
	}
	fmt.Fprintln(fds[1], "Site written to", fsutil.TildeAbbr(cfg.Public))
	return nil
}

// Shows each error combined in err, with the failing part of the document
// when possible.
func showError(w io.Writer, err error) {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, err := range multi.Unwrap() {
			showError(w, err)
		}
		return
	}
	var pageErr *PageError
	if errors.As(err, &pageErr) && errors.As(pageErr.Err, new(*md.BlockError)) {
		err = md.DiagError(pageErr.Path, pageErr.Source, pageErr.Err)
	}
	diag.ShowError(w, err)
}
