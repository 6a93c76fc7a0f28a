package session

import (
	"testing"
	"time"

	"datachat/ai"
	"datachat/dataset"
	"datachat/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendOrder(t *testing.T) {
	var tr Transcript
	tr.Append(ai.RoleUser, "q1")
	tr.Append(ai.RoleAssistant, "a1")
	tr.Append(ai.RoleUser, "q2")

	turns := tr.All()
	require.Len(t, turns, 3)
	assert.Equal(t, []string{"q1", "a1", "q2"}, []string{turns[0].Content, turns[1].Content, turns[2].Content})

	last, ok := tr.LastAnswer()
	require.True(t, ok)
	assert.Equal(t, "a1", last.Content)

	turns[0].Content = "changed"
	assert.Equal(t, "q1", tr.Turns[0].Content)
}

func TestTranscriptClear(t *testing.T) {
	var tr Transcript
	tr.Append(ai.RoleUser, "q")
	tr.Clear()

	assert.Equal(t, 0, tr.Len())
	_, ok := tr.LastAnswer()
	assert.False(t, ok)
}

func TestTakeBanners(t *testing.T) {
	s := New("id", "jsmith")
	s.AddBanner(BannerError, "boom")

	b := s.TakeBanners()
	require.Len(t, b, 1)
	assert.Equal(t, Banner{Level: BannerError, Message: "boom"}, b[0])
	assert.Empty(t, s.TakeBanners())
}

func TestSetDatasetResetsChart(t *testing.T) {
	s := New("id", "jsmith")
	s.ChartX, s.ChartY = "a", "b"
	s.SetDataset(&dataset.Frame{Name: "x.csv"})

	assert.Empty(t, s.ChartX)
	assert.Empty(t, s.ChartY)
	s.ClearDataset()
	assert.Nil(t, s.Dataset)
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	d, err := db.NewInMemory()
	require.NoError(t, err)
	bs := NewBadgerStore(d, time.Hour)
	t.Cleanup(func() { _ = bs.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"badger": bs,
	}
}

func TestStores(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			s := New("sid-1", "jsmith")
			s.SetDataset(&dataset.Frame{
				Name:    "sales.csv",
				Columns: []dataset.Column{{Name: "region", Kind: dataset.KindText}, {Name: "revenue", Kind: dataset.KindNumber}},
				Rows:    [][]string{{"north", "10"}},
			})
			s.Transcript.Append(ai.RoleUser, "hello")
			require.NoError(t, store.Save(s))

			got, err := store.Get("sid-1")
			require.NoError(t, err)
			assert.Equal(t, "jsmith", got.Username)
			require.NotNil(t, got.Dataset)
			assert.Equal(t, []string{"revenue"}, got.Dataset.NumericColumns())
			assert.Equal(t, 1, got.Transcript.Len())

			require.NoError(t, store.Delete("sid-1"))
			_, err = store.Get("sid-1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, store.Save(New("sid", "u")))

	time.Sleep(30 * time.Millisecond)
	_, err := store.Get("sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStoreLen(t *testing.T) {
	d, err := db.NewInMemory()
	require.NoError(t, err)
	store := NewBadgerStore(d, time.Hour)
	defer store.Close()

	require.NoError(t, store.Save(New("a", "u")))
	require.NoError(t, store.Save(New("b", "u")))

	ids, err := store.IDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	n, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.Delete("a"))
	n, err = store.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryStoreLen(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	n, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.Save(New("a", "u")))
	require.NoError(t, store.Save(New("a", "u")))
	require.NoError(t, store.Save(New("b", "u")))
	n, err = store.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
