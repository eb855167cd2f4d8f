package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.mdsite.sh/pkg/must"
	"src.mdsite.sh/pkg/tt"
)

func TestDedent(t *testing.T) {
	tt.Test(t, tt.Fn("Dedent", Dedent), tt.Table{
		tt.Args(" \n  foo\n bar").Rets("\n foo\nbar"),
		tt.Args("\n\t\t\ta\n\t\t\t b\n\t\t\tc").Rets("a\n b\nc"),
		tt.Args("\n\t\t\ta\n\t\t\t b\n\t\t\tc\n\t\t\t").Rets("a\n b\nc\n"),
		tt.Args("\n\t\t\t\ta\n\t\t\tb").Rets("\ta\nb"),
		tt.Args("\n\ta\n b").Rets("\ta\n b"),
	})
}

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	must.WriteFile(filepath.Join(dir, "a", "b"), "test")

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir(t *testing.T) {
	original := must.OK1(os.Getwd())
	c := &cleanuper{}
	dir := InTempDir(c)
	if wd := must.OK1(os.Getwd()); wd != dir {
		t.Errorf("working directory is %q, want %q", wd, dir)
	}
	c.runCleanups()
	if wd := must.OK1(os.Getwd()); wd != original {
		t.Errorf("working directory is %q after cleanup, want %q", wd, original)
	}
}

func TestApplyDir(t *testing.T) {
	dir := TempDir(t)
	ApplyDir(dir, Dir{
		"a.md": "# A",
		"sub": Dir{
			"b.md": "# B",
			"empty": Dir{},
		},
	})
	if got := must.ReadFileString(filepath.Join(dir, "sub", "b.md")); got != "# B" {
		t.Errorf("sub/b.md contains %q, want %q", got, "# B")
	}
	if stat, err := os.Stat(filepath.Join(dir, "sub", "empty")); err != nil || !stat.IsDir() {
		t.Errorf("sub/empty is not a directory")
	}
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("x = %d after Set, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("x = %d after cleanup, want 1", x)
	}
}
