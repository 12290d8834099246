package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
	"github.com/mintmark/mintmark/pkg/registry"
)

func newTestResolver(t *testing.T) (*Resolver, *registry.Registry) {
	t.Helper()
	reg, err := registry.New(registry.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return New(reg, WithLogger(logging.NewNopLogger())), reg
}

func TestResolve_ExactCode(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		name       string
		issuerCode string
		issuerName string
		want       string
	}{
		{"seeded code", "US", "whatever", "US"},
		{"lowercase code", "us", "", "US"},
		{"padded code", " ch ", "", "CH"},
		{"code wins over conflicting name", "JP", "Germany", "JP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.issuerCode, tt.issuerName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_SlugAlias(t *testing.T) {
	r, _ := newTestResolver(t)

	got, err := r.Resolve("united-states", "")
	require.NoError(t, err)
	assert.Equal(t, "US", got)

	got, err = r.Resolve("royaume-uni", "")
	require.NoError(t, err)
	assert.Equal(t, "GB", got)
}

func TestResolve_FuzzyName(t *testing.T) {
	r, _ := newTestResolver(t)

	// One character substitution away from the registry name.
	got, err := r.Resolve("", "Greecs")
	require.NoError(t, err)
	assert.Equal(t, "GR", got)

	// Containment match on a multi-word registry name.
	got, err = r.Resolve("", "Republic of Costa Rica")
	require.NoError(t, err)
	assert.Equal(t, "CR", got)
}

func TestResolve_NameVariantAlias(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		issuerName string
		want       string
	}{
		{"Grecia", "GR"},
		{"Estados Unidos Mexicanos", "MX"},
		{"Confoederatio Helvetia", "CH"},
		{"Deutschland", "DE"},
	}

	for _, tt := range tests {
		t.Run(tt.issuerName, func(t *testing.T) {
			got, err := r.Resolve("", tt.issuerName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A name carrying two known variants for different countries must resolve
// to the earlier table entry on every call, not whichever one a map walk
// happens to visit first.
func TestResolve_NameVariantAliasOrder(t *testing.T) {
	r, _ := newTestResolver(t)

	for i := 0; i < 50; i++ {
		got, err := r.Resolve("", "Deutschland-Osterreich Monarchie")
		require.NoError(t, err)
		assert.Equal(t, "DE", got, "deutschland is listed before osterreich")
	}
}

func TestResolve_Unresolved(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve("", "Atlantis Confederation")
	require.Error(t, err)
	assert.True(t, errors.IsUnresolved(err))

	var unresolved *errors.UnresolvedCountryError
	require.ErrorAs(t, err, &unresolved)
	assert.Less(t, unresolved.BestScore, Threshold)

	_, err = r.Resolve("", "")
	assert.True(t, errors.IsUnresolved(err), "empty issuer is unresolved")
}

func TestSynthesizeCode(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		name       string
		issuerName string
		want       string
	}{
		{"two words takes initials", "Aland Islands", "AI"},
		{"single word takes first two letters", "Albania", "AL"},
		{"diacritics folded", "Åland Islands", "AI"},
		{"empty name is placeholder", "", registry.PlaceholderCode},
		{"single letter is placeholder", "X", registry.PlaceholderCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.SynthesizeCode(tt.issuerName))
		})
	}
}

func TestSynthesizeCode_CollisionSuffix(t *testing.T) {
	r, reg := newTestResolver(t)

	require.NoError(t, reg.Add(registry.Country{Code: "AL", Name: "Albania"}))

	// Same naive base as an existing code gets a numeric suffix.
	assert.Equal(t, "AL1", r.SynthesizeCode("Alborada"))

	require.NoError(t, reg.Add(registry.Country{Code: "AL1", Name: "Alborada"}))
	assert.Equal(t, "AL2", r.SynthesizeCode("Altivia"))
}

func TestSynthesizeCode_DistinctForSimilarNames(t *testing.T) {
	r, reg := newTestResolver(t)

	first, added := r.Synthesize(context.Background(), "Albania", AutoApprove)
	require.True(t, added)

	second, added := r.Synthesize(context.Background(), "Aland Islands", AutoApprove)
	require.True(t, added)

	assert.NotEqual(t, first, second)
	assert.True(t, reg.Has(first))
	assert.True(t, reg.Has(second))
}

func TestSynthesize_DeclinedUsesPlaceholder(t *testing.T) {
	r, reg := newTestResolver(t)
	before := reg.Len()

	code, added := r.Synthesize(context.Background(), "Atlantis", AutoDecline)

	assert.Equal(t, registry.PlaceholderCode, code)
	assert.False(t, added)
	assert.Equal(t, before, reg.Len(), "declined synthesis must not touch the registry")
}

func TestSynthesize_ConfirmedInsertsEntry(t *testing.T) {
	r, reg := newTestResolver(t)

	var question string
	confirm := ConfirmerFunc(func(_ context.Context, q string) bool {
		question = q
		return true
	})

	code, added := r.Synthesize(context.Background(), "Atlantis", confirm)

	require.True(t, added)
	assert.Equal(t, "AT1", code, "AT is seeded, so a numeric suffix is tried")
	assert.Contains(t, question, "Atlantis")

	entry, ok := reg.Lookup(code)
	require.True(t, ok)
	assert.Equal(t, "Atlantis", entry.Name)
}

func TestRepair(t *testing.T) {
	r, _ := newTestResolver(t)

	items := collection.NewItems(collection.WithItemsList([]*collection.Item{
		{ID: "1", CountryCode: registry.PlaceholderCode, CountryName: "Switzerland"},
		{ID: "2", CountryCode: registry.PlaceholderCode, CountryName: "switz. confederation"},
		{ID: "3", CountryCode: registry.PlaceholderCode, CountryName: "Atlantis"},
		{ID: "4", CountryCode: "DE", CountryName: "Germany"},
	}))

	repaired := r.Repair(items, "Switzerland", "CH")

	assert.Len(t, repaired, 2, "first five characters of the issuer name match both placeholder spellings")

	one, _ := items.Get("1")
	assert.Equal(t, "CH", one.CountryCode)
	assert.Equal(t, "Switzerland", one.CountryName, "display name re-derived from the registry")

	three, _ := items.Get("3")
	assert.Equal(t, registry.PlaceholderCode, three.CountryCode, "non-matching placeholder untouched")

	four, _ := items.Get("4")
	assert.Equal(t, "DE", four.CountryCode, "resolved items untouched")
}

func TestRepair_NoopForPlaceholderTarget(t *testing.T) {
	r, _ := newTestResolver(t)

	items := collection.NewItems(collection.WithItemsList([]*collection.Item{
		{ID: "1", CountryCode: registry.PlaceholderCode, CountryName: "Atlantis"},
	}))

	assert.Empty(t, r.Repair(items, "Atlantis", registry.PlaceholderCode))
}
