package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps counters for the lifetime of the process only.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]int),
	}
}

func (that *MemoryStorage) Get(_ context.Context, key string) (int, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return 0, ErrKeyNotFound
	}

	return value, nil
}

func (that *MemoryStorage) Set(_ context.Context, key string, value int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = value

	return nil
}

func (that *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, key := range keys {
		delete(that.values, key)
	}

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}
