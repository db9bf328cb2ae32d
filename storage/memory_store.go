// storage/memory_store.go
package storage

import (
	"context"
	"sync"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
)

// MemoryStore holds the collection in process memory. It backs the
// store-direct client facade (the localStorage analogue) and the unit tests.
type MemoryStore struct {
	mu      sync.Mutex
	battles []models.Battle
}

func NewMemoryStore(seed ...models.Battle) *MemoryStore {
	s := &MemoryStore{}
	s.battles = append(s.battles, seed...)
	return s
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]models.Battle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Battle, len(s.battles))
	copy(out, s.battles)
	return out, nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, battles []models.Battle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.battles = make([]models.Battle, len(battles))
	copy(s.battles, battles)
	return nil
}
