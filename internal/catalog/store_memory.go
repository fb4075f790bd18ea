package catalog

import (
	"context"
	_ "embed"
	"sync"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type MemStore struct {
	mu    sync.RWMutex
	items []Product
}

func NewMemStore(items []Product) *MemStore {
	s := &MemStore{items: make([]Product, len(items))}
	copy(s.items, items)
	return s
}

// NewDefaultStore serves the catalog bundled with the binary.
func NewDefaultStore() *MemStore {
	items, err := decodeProducts(defaultCatalog)
	if err != nil {
		panic("catalog: bundled catalog is invalid: " + err.Error())
	}
	return NewMemStore(items)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.items))
	copy(out, s.items)
	return out, nil
}
