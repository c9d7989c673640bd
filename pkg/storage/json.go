package storage

import (
	"encoding/json"
	"fmt"
)

// Table stores JSON-encoded values of one type in a single bucket.
type Table[T any] struct {
	backend Backend
	bucket  string
}

// NewTable ensures bucket exists on backend.
func NewTable[T any](backend Backend, bucket string) (*Table[T], error) {
	if err := backend.EnsureBucket(bucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return &Table[T]{backend: backend, bucket: bucket}, nil
}

func (t *Table[T]) Put(key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", t.bucket, key, err)
	}
	return t.backend.Put(t.bucket, key, data)
}

// Get reports ok=false when key is absent.
func (t *Table[T]) Get(key string) (T, bool, error) {
	var v T
	data, ok, err := t.backend.Get(t.bucket, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %s/%s: %w", t.bucket, key, err)
	}
	return v, true, nil
}

func (t *Table[T]) Delete(key string) error {
	return t.backend.Delete(t.bucket, key)
}

// All decodes every value in key order.
func (t *Table[T]) All() ([]T, error) {
	var out []T
	err := t.backend.Scan(t.bucket, "", func(key string, data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("failed to decode %s/%s: %w", t.bucket, key, err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

func (t *Table[T]) Len() (int, error) {
	return t.backend.Count(t.bucket)
}
