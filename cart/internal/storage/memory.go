package storage

import (
	"context"
	"sync"

	"github.com/Alturino/storefront/cart/pkg/response"
)

// MemoryStorage keeps the encoded cart in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(c context.Context) ([]response.CartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decode(s.data)
}

func (s *MemoryStorage) Save(c context.Context, entries []response.CartEntry) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
