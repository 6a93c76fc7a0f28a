package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var ErrNotFound = errors.New("key not found")

type DB struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return open(badger.DefaultOptions(dbPath))
}

// NewInMemory opens a database that lives only as long as the process.
func NewInMemory() (*DB, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*DB, error) {
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

// Put stores value under key. A ttl of zero keeps the entry until it is deleted.
func (d *DB) Put(key string, value []byte, ttl time.Duration) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

func (d *DB) Get(key string) ([]byte, error) {
	var val []byte
	err := d.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (d *DB) Delete(key string) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (d *DB) PutJSON(key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return d.Put(key, data, ttl)
}

func (d *DB) GetJSON(key string, v interface{}) error {
	data, err := d.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Keys lists live keys under prefix with the prefix removed.
func (d *DB) Keys(prefix string) ([]string, error) {
	var keys []string

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), prefix))
		}
		return nil
	})

	return keys, err
}
