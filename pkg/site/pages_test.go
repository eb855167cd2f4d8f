package site_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.mdsite.sh/pkg/md"
	"src.mdsite.sh/pkg/must"
	. "src.mdsite.sh/pkg/site"
	"src.mdsite.sh/pkg/store"
	"src.mdsite.sh/pkg/testutil"
)

var siteLayout = testutil.Dir{
	"content": testutil.Dir{
		"index.md":  "# Home\n\n[Post](https://example.com/post)",
		"notes.txt": "not a document",
		"blog": testutil.Dir{
			"first.md":  "# First\n\n> quoted",
			"second.md": "# Second\n\n1. one\n2. two",
		},
	},
	"static": testutil.Dir{
		"index.css": "body {}",
		"images": testutil.Dir{
			"logo.png": "png",
		},
	},
	"template.html": template,
}

func setupSite(t *testing.T) *Config {
	dir := testutil.TempDir(t)
	testutil.ApplyDir(dir, siteLayout)
	return &Config{
		Content:  filepath.Join(dir, "content"),
		Static:   filepath.Join(dir, "static"),
		Public:   filepath.Join(dir, "public"),
		Template: filepath.Join(dir, "template.html"),
		Jobs:     2,
	}
}

var wantPages = map[string]string{
	"index.html": `<title>Home</title><main><div><h1>Home</h1>` +
		`<p><a href="https://example.com/post">Post</a></p></div></main>`,
	"blog/first.html": "<title>First</title><main><div><h1>First</h1>" +
		"<blockquote>quoted</blockquote></div></main>",
	"blog/second.html": "<title>Second</title><main><div><h1>Second</h1>" +
		"<ol><li>one</li><li>two</li></ol></div></main>",
}

func checkPages(t *testing.T, public string) {
	t.Helper()
	for name, want := range wantPages {
		got, err := os.ReadFile(filepath.Join(public, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("page %s: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("page %s is %q, want %q", name, got, want)
		}
	}
}

func TestGeneratePages(t *testing.T) {
	cfg := setupSite(t)
	if err := GeneratePages(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	checkPages(t, cfg.Public)
	if _, err := os.Stat(filepath.Join(cfg.Public, "notes.txt")); err == nil {
		t.Errorf("non-Markdown file was copied into public")
	}
}

func TestGeneratePages_CollectsAllErrors(t *testing.T) {
	cfg := setupSite(t)
	testutil.ApplyDir(cfg.Content, testutil.Dir{
		"bad1.md": "# Bad\n\n**open",
		"bad2.md": "no title",
	})

	err := GeneratePages(context.Background(), cfg, nil)
	if !errors.Is(err, md.ErrMalformedInlineSyntax) || !errors.Is(err, ErrNoTitle) {
		t.Errorf("got error %v, want both page errors", err)
	}
	for _, name := range []string{"bad1.md", "bad2.md"} {
		if err == nil || !strings.Contains(err.Error(), name) {
			t.Errorf("error %v does not mention %s", err, name)
		}
	}
	// Good pages are still generated.
	checkPages(t, cfg.Public)
}

func TestGeneratePages_Canceled(t *testing.T) {
	cfg := setupSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := GeneratePages(ctx, cfg, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
}

func TestGeneratePages_MissingTemplate(t *testing.T) {
	cfg := setupSite(t)
	cfg.Template += ".missing"
	if err := GeneratePages(context.Background(), cfg, nil); err == nil {
		t.Errorf("GeneratePages with a missing template returned nil")
	}
}

func TestGeneratePages_Cache(t *testing.T) {
	cfg := setupSite(t)
	st := store.MustGetTempStore(t)
	ctx := context.Background()

	if err := GeneratePages(ctx, cfg, st); err != nil {
		t.Fatal(err)
	}
	checkPages(t, cfg.Public)
	pages, err := st.Pages()
	if err != nil || len(pages) != len(wantPages) {
		t.Fatalf("cache has pages %v (error %v), want %d pages", pages, err, len(wantPages))
	}

	// An up-to-date page is not generated again.
	index := filepath.Join(cfg.Public, "index.html")
	must.WriteFile(index, "marker")
	if err := GeneratePages(ctx, cfg, st); err != nil {
		t.Fatal(err)
	}
	if got := must.ReadFileString(index); got != "marker" {
		t.Errorf("up-to-date page was generated again: %q", got)
	}

	// A changed document is generated again.
	must.WriteFile(filepath.Join(cfg.Content, "index.md"), "# Changed")
	if err := GeneratePages(ctx, cfg, st); err != nil {
		t.Fatal(err)
	}
	if got := must.ReadFileString(index); !strings.Contains(got, "<h1>Changed</h1>") {
		t.Errorf("changed page was not generated again: %q", got)
	}

	// A missing page is generated again.
	first := filepath.Join(cfg.Public, "blog", "first.html")
	must.OK(os.Remove(first))
	if err := GeneratePages(ctx, cfg, st); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(first); err != nil {
		t.Errorf("missing page was not generated again: %v", err)
	}

	// A page whose document is gone is removed.
	must.OK(os.Remove(filepath.Join(cfg.Content, "blog", "second.md")))
	if err := GeneratePages(ctx, cfg, st); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Public, "blog", "second.html")); err == nil {
		t.Errorf("stale page was not removed")
	}
	pages, _ = st.Pages()
	for _, p := range pages {
		if p.Path == "blog/second.html" {
			t.Errorf("stale page is still in the cache")
		}
	}
}

func TestCopyStatic(t *testing.T) {
	cfg := setupSite(t)
	must.WriteFile(filepath.Join(cfg.Public, "stale.html"), "stale")

	if err := CopyStatic(cfg.Static, cfg.Public); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Public, "stale.html")); err == nil {
		t.Errorf("CopyStatic did not remove existing files")
	}
	if got := must.ReadFileString(filepath.Join(cfg.Public, "images", "logo.png")); got != "png" {
		t.Errorf("logo.png has content %q", got)
	}

	if err := CopyStatic("", cfg.Public); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(cfg.Public)
	if err != nil || len(entries) != 0 {
		t.Errorf("CopyStatic with no source left %v (error %v)", entries, err)
	}
}

func TestBuild(t *testing.T) {
	cfg := setupSite(t)
	must.WriteFile(filepath.Join(cfg.Public, "stale.html"), "stale")

	if err := Build(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	checkPages(t, cfg.Public)
	if got := must.ReadFileString(filepath.Join(cfg.Public, "index.css")); got != "body {}" {
		t.Errorf("index.css has content %q", got)
	}
	if _, err := os.Stat(filepath.Join(cfg.Public, "stale.html")); err == nil {
		t.Errorf("Build without a cache kept a stale file")
	}
}

func TestBuild_WithCache(t *testing.T) {
	cfg := setupSite(t)
	cfg.Cache = filepath.Join(testutil.TempDir(t), "cache.db")
	ctx := context.Background()

	if err := Build(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	checkPages(t, cfg.Public)

	// Public is not wiped when building with a cache.
	extra := filepath.Join(cfg.Public, "extra.txt")
	must.WriteFile(extra, "kept")

	index := filepath.Join(cfg.Public, "index.html")
	must.WriteFile(index, "marker")
	must.WriteFile(filepath.Join(cfg.Static, "index.css"), "body { margin: 0 }")
	if err := Build(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	if got := must.ReadFileString(index); got != "marker" {
		t.Errorf("up-to-date page was generated again: %q", got)
	}
	if _, err := os.Stat(extra); err != nil {
		t.Errorf("Build with a cache removed a file it did not write: %v", err)
	}
	if got := must.ReadFileString(filepath.Join(cfg.Public, "index.css")); got != "body { margin: 0 }" {
		t.Errorf("static file was not updated: %q", got)
	}

	// Changing the template invalidates every page.
	must.WriteFile(cfg.Template, "{{ Title }}")
	if err := Build(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	if got := must.ReadFileString(index); got != "Home" {
		t.Errorf("page was not generated with the new template: %q", got)
	}
}
