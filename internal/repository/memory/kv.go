// Package memory is a process-local KeyValueStore. State survives only as
// long as the process; it backs the local environment and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/repository"
)

var _ repository.KeyValueStore = (*KVRepository)(nil)

type KVRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKVRepository() *KVRepository {
	return &KVRepository{data: make(map[string][]byte)}
}

func (r *KVRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: key '%s'", apperrors.ErrNotFound, key)
	}

	return clone(v), nil
}

func (r *KVRepository) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]byte, len(keys))

	for _, k := range keys {
		if v, ok := r.data[k]; ok {
			out[k] = clone(v)
		}
	}

	return out, nil
}

func (r *KVRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = clone(value)

	return nil
}

func (r *KVRepository) SetMany(_ context.Context, entries map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range entries {
		r.data[k] = clone(v)
	}

	return nil
}

func (r *KVRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)

	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
