package session

import (
	"time"

	"datachat/cache"
)

// MemoryStore keeps state in process memory; entries expire after ttl.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute)}
}

func (m *MemoryStore) Get(id string) (*State, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*State), nil
}

func (m *MemoryStore) Save(state *State) error {
	m.cache.SetDefault(state.ID, state)
	return nil
}

func (m *MemoryStore) Delete(id string) error {
	m.cache.Delete(id)
	return nil
}

// Len may include expired entries not yet swept.
func (m *MemoryStore) Len() (int, error) {
	return m.cache.Len(), nil
}

func (m *MemoryStore) Close() error {
	return nil
}
