package storage

import (
	"fmt"
	"slices"
	"sync"
)

// MemoryBackend keeps buckets in maps. Nothing survives Close.
type MemoryBackend struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) EnsureBucket(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[name]; !ok {
		m.buckets[name] = make(map[string][]byte)
	}
	return nil
}

func (m *MemoryBackend) DropBucket(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, name)
	return nil
}

func (m *MemoryBackend) bucket(name string) (map[string][]byte, error) {
	bkt, ok := m.buckets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}

func (m *MemoryBackend) Put(bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}
	bkt[key] = slices.Clone(value)
	return nil
}

func (m *MemoryBackend) Get(bucket, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return nil, false, err
	}
	v, ok := bkt[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *MemoryBackend) Delete(bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}
	delete(bkt, key)
	return nil
}

// Scan copies the matching entries before calling fn, so fn may write to the backend.
func (m *MemoryBackend) Scan(bucket, prefix string, fn func(key string, value []byte) error) error {
	m.mu.RLock()
	bkt, err := m.bucket(bucket)
	if err != nil {
		m.mu.RUnlock()
		return err
	}
	keys := make([]string, 0, len(bkt))
	for k := range bkt {
		if hasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = slices.Clone(bkt[k])
	}
	m.mu.RUnlock()

	for i, k := range keys {
		if err := fn(k, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryBackend) Count(bucket string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return 0, err
	}
	return len(bkt), nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
