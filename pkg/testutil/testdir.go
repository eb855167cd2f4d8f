package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"src.mdsite.sh/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It returns the path of the directory, with
// symlinks resolved.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "mdsitetest"))
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to remove temp dir %s: %v\n", dir, err)
		}
	})
	return must.OK1(filepath.EvalSymlinks(dir))
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when a test finishes. It returns the
// path of the directory.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes.
func Chdir(c Cleanuper, dir string) {
	oldWd := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	c.Cleanup(func() { must.OK(os.Chdir(oldWd)) })
}

// Dir describes the layout of a directory. The keys are names of files and
// subdirectories; a string value is the content of a file, and a Dir value
// describes a subdirectory.
type Dir map[string]any

// ApplyDir creates the given filesystem layout under root.
func ApplyDir(root string, dir Dir) {
	for name, entry := range dir {
		path := filepath.Join(root, name)
		switch entry := entry.(type) {
		case string:
			must.WriteFile(path, entry)
		case Dir:
			must.OK(os.MkdirAll(path, 0o755))
			ApplyDir(path, entry)
		default:
			panic(fmt.Sprintf("file %q is of unsupported type %T", name, entry))
		}
	}
}
