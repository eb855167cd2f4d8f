package site

import (
	"os"

	"src.mdsite.sh/pkg/fsutil"
)

// CopyStatic removes dst, recreates it and copies the content of src into it.
// An empty src only recreates dst.
func CopyStatic(src, dst string) error {
	logger.Printf("copying static files from %s to %s", src, dst)
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	if src == "" {
		return nil
	}
	return fsutil.CopyTree(src, dst)
}
