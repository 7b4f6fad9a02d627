package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleItinerary(t *testing.T) *model.Itinerary {
	t.Helper()
	it := model.New()
	d := it.AddDay()
	d.Label = "Tokyo east"
	require.NoError(t, it.AddVisit(d.ID, "sensoji"))
	require.NoError(t, it.AddVisit(d.ID, "skytree"))
	_, err := it.AddCustomVisit(d.ID, model.CustomVisitParams{Name: "Ramen place", City: "Tokyo"})
	require.NoError(t, err)
	it.AddDay()
	return it
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	it := sampleItinerary(t)

	s.Save(it)
	got, ok := s.Load()
	require.True(t, ok)
	require.Len(t, got.Days, 2)
	assert.Equal(t, it.Days[0].Label, got.Days[0].Label)
	require.Len(t, got.Days[0].Visits, 3)
	for i, v := range it.Days[0].Visits {
		assert.Equal(t, v.ID, got.Days[0].Visits[i].ID)
		assert.Equal(t, v.Origin, got.Days[0].Visits[i].Origin)
	}
	assert.True(t, got.Days[1].Empty())
}

func TestLoadVersionMismatchReturnsNone(t *testing.T) {
	s := openTestStore(t)
	it := sampleItinerary(t)
	it.Version = "0-ancient"
	s.Save(it)

	got, ok := s.Load()
	assert.False(t, ok, "stale blob must not load")
	assert.Nil(t, got)
}

func TestLoadMalformedBlobReturnsNone(t *testing.T) {
	s := openTestStore(t)
	s.set(keyItinerary, "{not json")

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestLoadMissingReturnsNone(t *testing.T) {
	s := openTestStore(t)
	_, ok := s.Load()
	assert.False(t, ok)
}

func TestResetDiscardsEditableCopyOnly(t *testing.T) {
	s := openTestStore(t)
	it := sampleItinerary(t)
	s.Save(it)
	s.SaveFeedCache(it, time.Now())

	s.Reset()
	_, ok := s.Load()
	assert.False(t, ok)
	_, _, ok = s.LoadFeedCache()
	assert.True(t, ok, "reset must not touch the feed cache")
}

func TestFeedCacheRoundTrip(t *testing.T) {
	s := openTestStore(t)
	it := sampleItinerary(t)
	fetchedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	s.SaveFeedCache(it, fetchedAt)
	got, ts, ok := s.LoadFeedCache()
	require.True(t, ok)
	assert.Len(t, got.Days, 2)
	assert.True(t, ts.Equal(fetchedAt))
}

func TestNilStoreIsStorageDisabled(t *testing.T) {
	var s *Store

	// None of these may panic; loads report none, saves are no-ops.
	s.Save(sampleItinerary(t))
	_, ok := s.Load()
	assert.False(t, ok)
	s.SaveFeedCache(sampleItinerary(t), time.Now())
	_, _, ok = s.LoadFeedCache()
	assert.False(t, ok)
	s.Reset()
	assert.NoError(t, s.Close())
}
