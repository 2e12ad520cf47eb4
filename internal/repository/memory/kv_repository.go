// Package memory holds process-local repository implementations.
package memory

import (
	"context"
	"sync"

	"github.com/vytor/mathsprint/internal/repository"
)

type kvRepository struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewKeyValueRepository returns an empty map-backed store.
func NewKeyValueRepository() repository.KeyValueRepository {
	return &kvRepository{items: make(map[string]string)}
}

func (r *kvRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	return v, ok, nil
}

func (r *kvRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = value
	return nil
}

func (r *kvRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
	return nil
}
