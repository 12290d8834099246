package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
	"github.com/mintmark/mintmark/pkg/registry"
	"github.com/mintmark/mintmark/pkg/syncengine"
)

type persistCall struct {
	snapshot int
	itemID   string
	op       syncengine.Op
}

type recordingPersister struct {
	calls []persistCall
}

func (p *recordingPersister) Persist(snapshot []*collection.Item, item *collection.Item, op syncengine.Op) {
	p.calls = append(p.calls, persistCall{snapshot: len(snapshot), itemID: item.ID, op: op})
}

func newTestRepo(t *testing.T) (*Repository, *recordingPersister) {
	t.Helper()
	countries := registry.MustNew(registry.WithLogger(logging.NewNopLogger()))
	persister := &recordingPersister{}
	repo := New(countries,
		WithPersister(persister),
		WithLogger(logging.NewNopLogger()),
	)
	return repo, persister
}

func validItem() *collection.Item {
	return &collection.Item{
		Category:     collection.CategoryCoin,
		CountryCode:  "gr",
		Denomination: "1 Drachma",
		Year:         1973,
		Condition:    collection.GradeVeryFine,
	}
}

func TestRepository_Add(t *testing.T) {
	repo, persister := newTestRepo(t)

	stored, err := repo.Add(context.Background(), validItem())
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "GR", stored.CountryCode, "code normalized to upper case")
	assert.Equal(t, "Greece", stored.CountryName, "name derived from registry")
	assert.False(t, stored.DateAdded.IsZero())
	assert.False(t, stored.DateModified.IsZero())

	require.Len(t, persister.calls, 1)
	assert.Equal(t, syncengine.OpCreate, persister.calls[0].op)
	assert.Equal(t, 1, persister.calls[0].snapshot)
}

func TestRepository_AddRejectsMalformed(t *testing.T) {
	repo, persister := newTestRepo(t)

	tests := []struct {
		name   string
		mutate func(*collection.Item)
	}{
		{"missing category", func(i *collection.Item) { i.Category = "" }},
		{"missing country", func(i *collection.Item) { i.CountryCode = " " }},
		{"missing denomination", func(i *collection.Item) { i.Denomination = "" }},
		{"negative year", func(i *collection.Item) { i.Year = -10 }},
		{"negative value", func(i *collection.Item) { v := -1.0; i.EstimatedValue = &v }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(item)
			_, err := repo.Add(context.Background(), item)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}

	_, err := repo.Add(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Empty(t, persister.calls, "rejected input never persisted")
}

func TestRepository_AddDuplicateID(t *testing.T) {
	repo, _ := newTestRepo(t)

	item := validItem()
	item.ID = "fixed"
	_, err := repo.Add(context.Background(), item)
	require.NoError(t, err)

	_, err = repo.Add(context.Background(), item)
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestRepository_AddDoesNotMutateInput(t *testing.T) {
	repo, _ := newTestRepo(t)

	input := validItem()
	stored, err := repo.Add(context.Background(), input)
	require.NoError(t, err)

	assert.Empty(t, input.ID, "caller's copy untouched")
	assert.NotSame(t, input, stored)
}

func TestRepository_Update(t *testing.T) {
	repo, persister := newTestRepo(t)

	stored, err := repo.Add(context.Background(), validItem())
	require.NoError(t, err)

	patch := validItem()
	patch.CountryCode = "DE"
	patch.Notes = "reattributed"

	ok, err := repo.Update(context.Background(), stored.ID, patch)
	require.NoError(t, err)
	require.True(t, ok)

	got, found := repo.FindByID(stored.ID)
	require.True(t, found)
	assert.Equal(t, "Germany", got.CountryName)
	assert.Equal(t, "reattributed", got.Notes)
	assert.Equal(t, stored.DateAdded, got.DateAdded, "date added survives update")

	require.Len(t, persister.calls, 2)
	assert.Equal(t, syncengine.OpUpdate, persister.calls[1].op)
}

func TestRepository_UpdateUnknownIDIsNoop(t *testing.T) {
	repo, persister := newTestRepo(t)

	ok, err := repo.Update(context.Background(), "missing", validItem())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, persister.calls)
}

func TestRepository_Remove(t *testing.T) {
	repo, persister := newTestRepo(t)

	stored, err := repo.Add(context.Background(), validItem())
	require.NoError(t, err)

	assert.True(t, repo.Remove(context.Background(), stored.ID))
	assert.False(t, repo.Remove(context.Background(), stored.ID))
	_, found := repo.FindByID(stored.ID)
	assert.False(t, found)

	require.Len(t, persister.calls, 2)
	assert.Equal(t, syncengine.OpDelete, persister.calls[1].op)
	assert.Equal(t, 0, persister.calls[1].snapshot)
}

func TestRepository_PutUpserts(t *testing.T) {
	repo, _ := newTestRepo(t)

	item := validItem()
	item.ID = "imported-1"
	require.NoError(t, repo.Put(context.Background(), item))
	assert.Equal(t, 1, repo.Items().Len())

	item.Notes = "second pass"
	require.NoError(t, repo.Put(context.Background(), item))
	assert.Equal(t, 1, repo.Items().Len(), "same id replaces, not duplicates")

	got, _ := repo.FindByID("imported-1")
	assert.Equal(t, "second pass", got.Notes)
}

func TestRepository_PlaceholderKeepsIssuerName(t *testing.T) {
	repo, _ := newTestRepo(t)

	item := validItem()
	item.CountryCode = registry.PlaceholderCode
	item.CountryName = "Kingdom of Atlantis"

	stored, err := repo.Add(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "Kingdom of Atlantis", stored.CountryName,
		"parked items keep the issuer name for later repair")
}

func TestRepository_FilterByCountry(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, code := range []string{"GR", "DE", "GR"} {
		item := validItem()
		item.CountryCode = code
		_, err := repo.Add(ctx, item)
		require.NoError(t, err)
	}

	assert.Len(t, repo.FilterByCountry("gr"), 2)
	assert.Len(t, repo.FilterByCountry("DE"), 1)
	assert.Empty(t, repo.FilterByCountry("FR"))
	assert.Len(t, repo.List(), 3)
}

func TestRepository_Groupings(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, code := range []string{"GR", "GR", "DE", "US"} {
		item := validItem()
		item.CountryCode = code
		_, err := repo.Add(ctx, item)
		require.NoError(t, err)
	}

	byCountry := repo.GroupByCountry()
	assert.Equal(t, 2, byCountry["GR"])
	assert.Equal(t, 1, byCountry["DE"])
	assert.Equal(t, 1, byCountry["US"])

	// Continents collect distinct country codes, not item counts.
	byContinent := repo.GroupByContinent()
	assert.Equal(t, []string{"DE", "GR"}, byContinent["Europe"])
	assert.Equal(t, []string{"US"}, byContinent["North America"])
}

func TestRepository_GroupByContinent_UnknownCode(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	item := validItem()
	item.CountryCode = registry.PlaceholderCode
	item.CountryName = "Atlantis"
	_, err := repo.Add(ctx, item)
	require.NoError(t, err)

	byContinent := repo.GroupByContinent()
	assert.Equal(t, []string{registry.PlaceholderCode}, byContinent["Unknown"])
}
