package site_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.mdsite.sh/pkg/site"
	"src.mdsite.sh/pkg/testutil"
)

func TestLoadConfig(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.ApplyDir(dir, testutil.Dir{
		"site.yaml": "content: content\npublic: /srv/public\ntemplate: t.html\njobs: 3\n",
		"site.toml": "content = 'content'\nstatic = 'static'\npublic = 'public'\n" +
			"template = 't.html'\ncache = '.cache/db'\n",
	})

	cfg, err := LoadConfig(filepath.Join(dir, "site.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	public := "/srv/public"
	if runtime.GOOS == "windows" {
		public = filepath.Join(dir, public)
	}
	want := &Config{
		Content:  filepath.Join(dir, "content"),
		Public:   public,
		Template: filepath.Join(dir, "t.html"),
		Jobs:     3,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("YAML config (-want +got):\n%s", diff)
	}

	cfg, err = LoadConfig(filepath.Join(dir, "site.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want = &Config{
		Content:  filepath.Join(dir, "content"),
		Static:   filepath.Join(dir, "static"),
		Public:   filepath.Join(dir, "public"),
		Template: filepath.Join(dir, "t.html"),
		Cache:    filepath.Join(dir, ".cache", "db"),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("TOML config (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.ApplyDir(dir, testutil.Dir{
		"no-content.yaml":  "public: p\ntemplate: t\n",
		"no-public.yml":    "content: c\ntemplate: t\n",
		"no-template.toml": "content = 'c'\npublic = 'p'\n",
		"negative.yaml":    "content: c\npublic: p\ntemplate: t\njobs: -1\n",
		"unknown.yaml":     "content: c\npublic: p\ntemplate: t\ntheme: dark\n",
		"unknown.toml":     "content = 'c'\npublic = 'p'\ntemplate = 't'\ntheme = 'dark'\n",
		"syntax.toml":      "content = \n",
		"site.json":        "{}",
	})

	for _, name := range []string{
		"no-content.yaml", "no-public.yml", "no-template.toml", "negative.yaml",
		"unknown.yaml", "unknown.toml", "syntax.toml", "site.json",
	} {
		_, err := LoadConfig(filepath.Join(dir, name))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("LoadConfig(%q) returned %v, want ErrInvalidConfig", name, err)
		}
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig of a missing file returned %v", err)
	}
}
