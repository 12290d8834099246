package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
)

func newTestCache(t *testing.T) *File {
	t.Helper()
	f, err := New(t.TempDir(), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return f
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	f, err := New(dir, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	require.NoError(t, f.Save(nil))
	_, err = os.Stat(f.Path())
	assert.NoError(t, err)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	f := newTestCache(t)

	items, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	f := newTestCache(t)

	value := 4.2
	items := []*collection.Item{
		{
			ID:             "a",
			Category:       collection.CategoryCoin,
			CountryCode:    "GR",
			CountryName:    "Greece",
			Denomination:   "1 Drachma",
			Year:           1973,
			Condition:      collection.GradeVeryFine,
			EstimatedValue: &value,
			Notes:          "Imported from Numista. Numista ID: 420",
		},
		{
			ID:           "b",
			Category:     collection.CategoryBanknote,
			CountryCode:  "DE",
			CountryName:  "Germany",
			Denomination: "10 Mark",
		},
	}
	require.NoError(t, f.Save(items))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "a", loaded[0].ID)
	assert.Equal(t, collection.CategoryCoin, loaded[0].Category)
	assert.Equal(t, "Greece", loaded[0].CountryName)
	require.NotNil(t, loaded[0].EstimatedValue)
	assert.Equal(t, 4.2, *loaded[0].EstimatedValue)
	assert.Equal(t, collection.CategoryBanknote, loaded[1].Category)
}

func TestSave_OverwritesPrevious(t *testing.T) {
	f := newTestCache(t)

	require.NoError(t, f.Save([]*collection.Item{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, f.Save([]*collection.Item{{ID: "c"}}))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "c", loaded[0].ID)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := New(dir, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	require.NoError(t, f.Save([]*collection.Item{{ID: "a"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFilename, entries[0].Name())
}

func TestLoad_CorruptFile(t *testing.T) {
	f := newTestCache(t)
	require.NoError(t, os.WriteFile(f.Path(), []byte("items: [{this is not yaml"), 0o644))

	_, err := f.Load()
	assert.Error(t, err)
}
