package mintmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/importer"
	"github.com/mintmark/mintmark/pkg/logging"
)

type stubCatalog struct {
	records map[int]*importer.CatalogRecord
	refs    []importer.ItemRef
}

func (c *stubCatalog) Type(_ context.Context, id int) (*importer.CatalogRecord, error) {
	rec, ok := c.records[id]
	if !ok {
		return nil, assert.AnError
	}
	return rec, nil
}

func (c *stubCatalog) CollectedItems(context.Context, string) ([]importer.ItemRef, error) {
	return c.refs, nil
}

func newOffline(t *testing.T, dir string, opts ...Option) Mintmark {
	t.Helper()
	base := []Option{
		WithCacheDir(dir),
		WithLogger(logging.NewNopLogger()),
	}
	m, err := New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNew_OfflineStartsEmpty(t *testing.T) {
	m := newOffline(t, t.TempDir())
	assert.Empty(t, m.Collection().List())
}

func TestMintmark_AddSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	m := newOffline(t, dir)
	_, err := m.Collection().Add(context.Background(), &collection.Item{
		Category:     collection.CategoryCoin,
		CountryCode:  "GR",
		Denomination: "1 Drachma",
	})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	reopened := newOffline(t, dir)
	items := reopened.Collection().List()
	require.Len(t, items, 1)
	assert.Equal(t, "Greece", items[0].CountryName)
}

func TestMintmark_Resolve(t *testing.T) {
	m := newOffline(t, t.TempDir())

	code, err := m.Resolve("", "Deutschland")
	require.NoError(t, err)
	assert.Equal(t, "DE", code)
}

func TestMintmark_ImportRequiresCatalog(t *testing.T) {
	m := newOffline(t, t.TempDir())

	_, err := m.Import(context.Background(), []int{1})
	assert.Error(t, err)
}

func TestMintmark_ImportWithStubCatalog(t *testing.T) {
	catalog := &stubCatalog{records: map[int]*importer.CatalogRecord{
		420: {
			ID:         420,
			Title:      "1 Drachma",
			Category:   "coin",
			IssuerCode: "grece",
			IssuerName: "Greece",
			MaxYear:    1973,
		},
	}}

	m := newOffline(t, t.TempDir(), WithCatalog(catalog))

	report, err := m.Import(context.Background(), []int{420})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Counters[importer.StatusAdded])

	items := m.Collection().List()
	require.Len(t, items, 1)
	assert.Equal(t, "GR", items[0].CountryCode)
}
