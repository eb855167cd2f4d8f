// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoMatchingPage is the error returned when a page is not in the store.
var ErrNoMatchingPage = errors.New("no matching page")

// Store is the interface of the page cache.
type Store interface {
	PageDigest(path string) (string, error)
	SetPageDigest(path, digest string) error
	DelPage(path string) error
	Pages() ([]Page, error)
}

// Page is an entry of the page cache, recording the digest of the inputs of
// the last successful generation of the page at Path.
type Page struct {
	Path   string
	Digest string
}
