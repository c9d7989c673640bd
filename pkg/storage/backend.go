package storage

import (
	"errors"
	"strings"
)

// ErrBucketNotFound is returned when an operation names a bucket that was never created.
var ErrBucketNotFound = errors.New("storage: bucket not found")

// MemoryPath selects the in-memory backend in Open.
const MemoryPath = ":memory:"

// Backend is a bucketed key-value store. Values are raw bytes; callers pick
// the encoding (see Table for JSON).
type Backend interface {
	// EnsureBucket creates the bucket if it does not exist yet.
	EnsureBucket(name string) error
	// DropBucket removes a bucket and everything in it. Dropping a missing bucket is not an error.
	DropBucket(name string) error

	Put(bucket, key string, value []byte) error
	// Get reports ok=false when the key is absent.
	Get(bucket, key string) (value []byte, ok bool, err error)
	Delete(bucket, key string) error

	// Scan visits keys starting with prefix in ascending key order.
	// Returning an error from fn stops the scan and is returned as-is.
	Scan(bucket, prefix string, fn func(key string, value []byte) error) error
	Count(bucket string) (int, error)

	Close() error
}

// Open returns a bolt backend for path, or a memory backend when path is
// empty or MemoryPath.
func Open(path string) (Backend, error) {
	if path == "" || path == MemoryPath {
		return NewMemoryBackend(), nil
	}
	return NewBoltBackend(path)
}

func hasPrefix(key, prefix string) bool {
	return prefix == "" || strings.HasPrefix(key, prefix)
}
