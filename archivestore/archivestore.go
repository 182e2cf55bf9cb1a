// Package archivestore persists encoded archives in a bbolt database,
// keyed by name. It is a thin adaptation of the bolt storage wrapper
// pattern used for this module's original key-value engine, reduced to
// the single bucket this domain needs.
package archivestore

import (
	"time"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("archives")

// Store persists named, already-encoded archive blobs in a bbolt file.
// It does not know about rsync.Archive -- callers pass the bytes
// returned by Archive.RawData/Encode and get back bytes suitable for
// rsync.NewArchiveFromBytes.
type Store struct {
	bdb *bbolt.DB
}

// Open opens or creates the bbolt file at path and ensures the archive
// bucket exists.
func Open(path string) (*Store, error) {
	bdb, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}
	return &Store{bdb: bdb}, nil
}

func (s *Store) Close() error { return s.bdb.Close() }

// Put stores raw (an encoded archive) under name, overwriting any
// previous value.
func (s *Store) Put(name string, raw []byte) error {
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Put([]byte(name), raw)
	})
}

// Get returns the raw encoded archive stored under name, or
// (nil, nil) if absent.
func (s *Store) Get(name string) ([]byte, error) {
	var out []byte
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if v := b.Get([]byte(name)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

// Delete removes the archive stored under name. It is a no-op if name
// is absent.
func (s *Store) Delete(name string) error {
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Delete([]byte(name))
	})
}

// Names returns every stored archive name in ascending byte order,
// matching bbolt's native cursor order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	return names, err
}
