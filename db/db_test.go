package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestPutGetDelete(t *testing.T) {
	d := newTestDB(t)

	require.NoError(t, d.Put("k", []byte("v"), 0))
	got, err := d.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, d.Delete("k"))
	_, err = d.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONRoundTrip(t *testing.T) {
	d := newTestDB(t)

	type rec struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	require.NoError(t, d.PutJSON("rec:1", rec{Name: "a", N: 2}, time.Hour))

	var out rec
	require.NoError(t, d.GetJSON("rec:1", &out))
	assert.Equal(t, rec{Name: "a", N: 2}, out)

	assert.ErrorIs(t, d.GetJSON("rec:2", &out), ErrNotFound)
}

func TestKeysByPrefix(t *testing.T) {
	d := newTestDB(t)

	require.NoError(t, d.Put("session:a", []byte("1"), 0))
	require.NoError(t, d.Put("session:b", []byte("2"), 0))
	require.NoError(t, d.Put("other:c", []byte("3"), 0))

	keys, err := d.Keys("session:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestNewOnDisk(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, d.Put("k", []byte("v"), time.Minute))
	require.NoError(t, d.Close())
}
