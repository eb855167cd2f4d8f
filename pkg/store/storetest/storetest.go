// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.mdsite.sh/pkg/store/storedefs"
)

// TestPage tests the page cache functionality of a Store.
func TestPage(t *testing.T, store Store) {
	t.Helper()

	if _, err := store.PageDigest("a.html"); !errors.Is(err, ErrNoMatchingPage) {
		t.Errorf("PageDigest on empty store returned %v, want ErrNoMatchingPage", err)
	}
	if pages, err := store.Pages(); err != nil || len(pages) != 0 {
		t.Errorf("Pages on empty store -> (%v, %v), want (empty, nil)", pages, err)
	}

	for path, digest := range map[string]string{
		"b/index.html": "d2",
		"a.html":       "d1",
		"c.html":       "d3",
	} {
		if err := store.SetPageDigest(path, digest); err != nil {
			t.Errorf("SetPageDigest(%q, %q) -> %v", path, digest, err)
		}
	}
	if err := store.SetPageDigest("a.html", "d1'"); err != nil {
		t.Errorf("SetPageDigest to overwrite -> %v", err)
	}

	if digest, err := store.PageDigest("a.html"); digest != "d1'" || err != nil {
		t.Errorf("PageDigest(a.html) -> (%q, %v), want (%q, nil)", digest, err, "d1'")
	}

	if err := store.DelPage("c.html"); err != nil {
		t.Errorf("DelPage(c.html) -> %v", err)
	}
	if err := store.DelPage("never-there.html"); err != nil {
		t.Errorf("DelPage of missing page -> %v", err)
	}
	if _, err := store.PageDigest("c.html"); !errors.Is(err, ErrNoMatchingPage) {
		t.Errorf("PageDigest after DelPage returned %v, want ErrNoMatchingPage", err)
	}

	pages, err := store.Pages()
	if err != nil {
		t.Fatalf("Pages -> error %v", err)
	}
	wantPages := []Page{{Path: "a.html", Digest: "d1'"}, {Path: "b/index.html", Digest: "d2"}}
	if diff := cmp.Diff(wantPages, pages); diff != "" {
		t.Errorf("Pages (-want +got):\n%s", diff)
	}
}
