package store

import (
	bolt "go.etcd.io/bbolt"
	. "src.mdsite.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize page table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPage))
		return err
	}
}

// PageDigest returns the recorded digest of the page at the given path.
func (s *dbStore) PageDigest(path string) (string, error) {
	s.waits.Add(1)
	defer s.waits.Done()
	var digest string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketPage)).Get([]byte(path))
		if v == nil {
			return ErrNoMatchingPage
		}
		digest = string(v)
		return nil
	})
	return digest, err
}

// SetPageDigest records the digest of the page at the given path.
func (s *dbStore) SetPageDigest(path, digest string) error {
	s.waits.Add(1)
	defer s.waits.Done()
	logger.Printf("recording digest of %s", path)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPage)).Put([]byte(path), []byte(digest))
	})
}

// DelPage deletes the record of the page at the given path. Deleting a page
// that is not recorded is not an error.
func (s *dbStore) DelPage(path string) error {
	s.waits.Add(1)
	defer s.waits.Done()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPage)).Delete([]byte(path))
	})
}

// Pages returns all recorded pages, sorted by path.
func (s *dbStore) Pages() ([]Page, error) {
	s.waits.Add(1)
	defer s.waits.Done()
	var pages []Page
	err := s.db.View(func(tx *bolt.Tx) error {
		// Keys in a bucket are iterated in byte-sorted order.
		return tx.Bucket([]byte(bucketPage)).ForEach(func(k, v []byte) error {
			pages = append(pages, Page{Path: string(k), Digest: string(v)})
			return nil
		})
	})
	return pages, err
}
