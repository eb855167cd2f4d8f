package site

import (
	"context"
	"os"

	"src.mdsite.sh/pkg/fsutil"
	"src.mdsite.sh/pkg/store"
)

// Build builds the site described by cfg.
//
// Without a cache, the public directory is wiped, the static files are copied
// into it and all pages are generated. With a cache, the public directory is
// kept so that pages that are up to date need not be generated again; static
// files are copied over it.
func Build(ctx context.Context, cfg *Config) error {
	if cfg.Cache == "" {
		if err := CopyStatic(cfg.Static, cfg.Public); err != nil {
			return err
		}
		return GeneratePages(ctx, cfg, nil)
	}

	st, err := store.NewStore(cfg.Cache)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := os.MkdirAll(cfg.Public, 0o755); err != nil {
		return err
	}
	if cfg.Static != "" {
		logger.Printf("syncing static files from %s to %s", cfg.Static, cfg.Public)
		if err := fsutil.CopyTree(cfg.Static, cfg.Public); err != nil {
			return err
		}
	}
	return GeneratePages(ctx, cfg, st)
}
