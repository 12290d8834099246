package store

import (
	"context"
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleItem(id string) *collection.Item {
	value := 3.5
	return &collection.Item{
		ID:             id,
		Category:       collection.CategoryCoin,
		CountryCode:    "GR",
		CountryName:    "Greece",
		Denomination:   "1 Drachma",
		Year:           1973,
		Condition:      collection.GradeVeryFine,
		EstimatedValue: &value,
		Notes:          "Imported from Numista. Numista ID: 420",
		CatalogLink:    "https://example.com/pieces420",
		DateAdded:      utc.Now(),
		DateModified:   utc.Now(),
	}
}

func TestStore_InsertGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleItem("a")
	require.NoError(t, s.Insert(ctx, item))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Category, got.Category)
	assert.Equal(t, item.CountryCode, got.CountryCode)
	assert.Equal(t, item.CountryName, got.CountryName)
	assert.Equal(t, item.Condition, got.Condition)
	require.NotNil(t, got.EstimatedValue)
	assert.Equal(t, *item.EstimatedValue, *got.EstimatedValue)
	assert.Equal(t, item.Notes, got.Notes)
	assert.True(t, item.DateAdded.Equal(got.DateAdded))
}

func TestStore_NullValueSurvives(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleItem("a")
	item.EstimatedValue = nil
	require.NoError(t, s.Insert(ctx, item))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got.EstimatedValue)
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "ghost")
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_ListOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Insert(ctx, sampleItem(id)))
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestStore_ListEmpty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleItem("a")))

	updated := sampleItem("a")
	updated.Notes = "regraded"
	updated.Condition = collection.GradeExtraFine
	require.NoError(t, s.Update(ctx, updated))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "regraded", got.Notes)
	assert.Equal(t, collection.GradeExtraFine, got.Condition)
}

func TestStore_UpdateMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(context.Background(), sampleItem("ghost"))
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleItem("a")))
	require.NoError(t, s.Delete(ctx, "a"))

	err := s.Delete(ctx, "a")
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_DuplicateInsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleItem("a")))
	assert.Error(t, s.Insert(ctx, sampleItem("a")))
}
