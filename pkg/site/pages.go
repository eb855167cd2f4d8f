package site

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"src.mdsite.sh/pkg/errutil"
	"src.mdsite.sh/pkg/store/storedefs"
)

// Extension of documents in the content directory, replaced by ".html" in the
// public directory.
const markdownExt = ".md"

// A page to generate.
type page struct {
	// Path of the document.
	from string
	// Path of the page, relative to the public directory, with forward
	// slashes. Used as the cache key.
	rel  string
	dest string
}

// GeneratePages generates a page in cfg.Public for every document in
// cfg.Content, keeping the relative directory structure. Pages are generated
// by cfg.Jobs goroutines; errors from all pages are combined with
// errutil.Multi.
//
// If st is not nil, a page is skipped when the digest of its document and the
// template matches the digest recorded in st and the page exists. Pages of
// documents that no longer exist are deleted along with their records.
func GeneratePages(ctx context.Context, cfg *Config, st storedefs.Store) error {
	template, err := os.ReadFile(cfg.Template)
	if err != nil {
		return err
	}
	pages, err := findPages(cfg.Content, cfg.Public)
	if err != nil {
		return err
	}
	logger.Printf("generating %d pages with %d jobs", len(pages), cfg.jobs())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	jobs := make(chan page)
	for i := 0; i < cfg.jobs(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := generate(p, template, st); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	canceled := false
schedule:
	for _, p := range pages {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case jobs <- p:
		case <-ctx.Done():
			canceled = true
			break schedule
		}
	}
	close(jobs)
	wg.Wait()
	if canceled {
		errs = append(errs, ctx.Err())
	}
	if st != nil && !canceled {
		errs = append(errs, prune(st, pages, cfg.Public))
	}
	return errutil.Multi(errs...)
}

func findPages(content, public string) ([]page, error) {
	var pages []page
	err := filepath.WalkDir(content, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != markdownExt {
			return nil
		}
		rel, err := filepath.Rel(content, path)
		if err != nil {
			return err
		}
		rel = strings.TrimSuffix(rel, markdownExt) + ".html"
		pages = append(pages, page{path, filepath.ToSlash(rel), filepath.Join(public, rel)})
		return nil
	})
	return pages, err
}

func generate(p page, template []byte, st storedefs.Store) error {
	markdown, err := os.ReadFile(p.from)
	if err != nil {
		return err
	}
	digest := pageDigest(markdown, template)
	if st != nil && upToDate(st, p, digest) {
		logger.Printf("%s is up to date", p.rel)
		return nil
	}
	logger.Printf("generating %s from %s", p.rel, p.from)
	html, err := RenderPage(string(markdown), string(template))
	if err != nil {
		return &PageError{p.from, string(markdown), err}
	}
	if err := writePage(p.dest, html); err != nil {
		return err
	}
	if st != nil {
		return st.SetPageDigest(p.rel, digest)
	}
	return nil
}

func upToDate(st storedefs.Store, p page, digest string) bool {
	recorded, err := st.PageDigest(p.rel)
	if err != nil {
		if !errors.Is(err, storedefs.ErrNoMatchingPage) {
			logger.Printf("cannot read digest of %s: %v", p.rel, err)
		}
		return false
	}
	if recorded != digest {
		return false
	}
	_, err = os.Stat(p.dest)
	return err == nil
}

// Deletes the records and the files of pages whose documents no longer exist.
func prune(st storedefs.Store, pages []page, public string) error {
	current := make(map[string]bool, len(pages))
	for _, p := range pages {
		current[p.rel] = true
	}
	recorded, err := st.Pages()
	if err != nil {
		return err
	}
	var errs []error
	for _, r := range recorded {
		if !current[r.Path] {
			logger.Printf("removing stale page %s", r.Path)
			err := os.Remove(filepath.Join(public, filepath.FromSlash(r.Path)))
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			errs = append(errs, st.DelPage(r.Path))
		}
	}
	return errutil.Multi(errs...)
}

// Returns the hex-encoded SHA-256 digest of a document and a template.
func pageDigest(markdown, template []byte) string {
	h := sha256.New()
	h.Write(markdown)
	h.Write([]byte{0})
	h.Write(template)
	return hex.EncodeToString(h.Sum(nil))
}

func writePage(dest, html string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(html), 0o644)
}
