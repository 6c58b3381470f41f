package store

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
)

// DefaultMemorySize fits a document of up to 16KB.
const DefaultMemorySize = 16 * 1024 * 1024

// MemoryBackend keeps documents in process memory. Nothing survives a restart.
// A single document may use at most 1/1024 of the cache size.
type MemoryBackend struct {
	cache *freecache.Cache
}

// NewMemoryBackend creates an in-memory backend of sizeBytes capacity.
// A non-positive size uses DefaultMemorySize.
func NewMemoryBackend(sizeBytes int) *MemoryBackend {
	if sizeBytes <= 0 {
		sizeBytes = DefaultMemorySize
	}
	return &MemoryBackend{cache: freecache.NewCache(sizeBytes)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	val, err := m.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	return m.cache.Set([]byte(key), value, 0)
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.cache.Del([]byte(key))
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}
