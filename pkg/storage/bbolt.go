package storage

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltBackend stores buckets in a single bbolt file.
type BoltBackend struct {
	db *bolt.DB
}

// NewBoltBackend opens (or creates) the database at path. A second process
// holding the file lock makes this fail after one second instead of blocking.
func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database %s: %w", path, err)
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) EnsureBucket(name string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
}

func (b *BoltBackend) DropBucket(name string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(name))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func bucketOf(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	bkt := tx.Bucket([]byte(name))
	if bkt == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}

func (b *BoltBackend) Put(bucket, key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := bucketOf(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(key), value)
	})
}

func (b *BoltBackend) Get(bucket, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt, err := bucketOf(tx, bucket)
		if err != nil {
			return err
		}
		// bolt memory is only valid inside the transaction
		if v := bkt.Get([]byte(key)); v != nil {
			value, found = slices.Clone(v), true
		}
		return nil
	})
	return value, found, err
}

func (b *BoltBackend) Delete(bucket, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := bucketOf(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Delete([]byte(key))
	})
}

// Scan runs fn inside a read transaction; fn must not write to the same backend.
func (b *BoltBackend) Scan(bucket, prefix string, fn func(key string, value []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt, err := bucketOf(tx, bucket)
		if err != nil {
			return err
		}
		c := bkt.Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			if err := fn(string(k), slices.Clone(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BoltBackend) Count(bucket string) (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt, err := bucketOf(tx, bucket)
		if err != nil {
			return err
		}
		n = bkt.Stats().KeyN
		return nil
	})
	return n, err
}

// Path returns the database file location.
func (b *BoltBackend) Path() string {
	return b.db.Path()
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
