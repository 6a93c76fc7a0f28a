package session

import (
	"errors"
	"fmt"
	"time"

	"datachat/db"
)

const keyPrefix = "session:"

// BadgerStore keeps state as JSON in badger entries that expire after ttl.
type BadgerStore struct {
	db  *db.DB
	ttl time.Duration
}

func NewBadgerStore(d *db.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: d, ttl: ttl}
}

func (b *BadgerStore) Get(id string) (*State, error) {
	var s State
	if err := b.db.GetJSON(keyPrefix+id, &s); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &s, nil
}

func (b *BadgerStore) Save(state *State) error {
	if err := b.db.PutJSON(keyPrefix+state.ID, state, b.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (b *BadgerStore) Delete(id string) error {
	return b.db.Delete(keyPrefix + id)
}

// IDs lists the live session ids.
func (b *BadgerStore) IDs() ([]string, error) {
	return b.db.Keys(keyPrefix)
}

func (b *BadgerStore) Len() (int, error) {
	ids, err := b.IDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	return len(ids), nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
