// Package memstore provides an in-memory profile KV adapter for tests.
package memstore

import (
	"context"
	"sync"
)

// KV implements the store.KV contract in memory.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an empty in-memory KV.
func New() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (k *KV) Put(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	k.data[key] = cp
	return nil
}

func (k *KV) Ping(_ context.Context) error { return nil }

func (k *KV) Close() error { return nil }

// PutRaw seeds a raw value, bypassing JSON encoding. Test helper for
// exercising corrupt-value fallbacks.
func (k *KV) PutRaw(key, value string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = []byte(value)
}
