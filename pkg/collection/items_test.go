package collection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(id string) *Item {
	return &Item{ID: id, Category: CategoryCoin, CountryCode: "US", CountryName: "United States"}
}

func TestItems_AddGetDelete(t *testing.T) {
	items := NewItems()

	require.NoError(t, items.Add(testItem("a")))
	assert.Error(t, items.Add(testItem("a")), "duplicate id rejected")
	assert.Error(t, items.Add(nil))

	got, ok := items.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	assert.True(t, items.Exists("a"))
	assert.Equal(t, 1, items.Len())

	assert.True(t, items.Delete("a"))
	assert.False(t, items.Delete("a"), "second delete reports absence")
	assert.False(t, items.Exists("a"))
}

func TestItems_SetOverwrites(t *testing.T) {
	items := NewItems()
	require.NoError(t, items.Set("a", testItem("a")))

	replacement := testItem("a")
	replacement.Notes = "replaced"
	require.NoError(t, items.Set("a", replacement))

	got, _ := items.Get("a")
	assert.Equal(t, "replaced", got.Notes)
	assert.Error(t, items.Set("a", nil))
}

func TestItems_ListIsSorted(t *testing.T) {
	items := NewItems(WithItemsList([]*Item{testItem("c"), testItem("a"), testItem("b")}))

	list := items.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestItems_WithItemsListDropsInvalid(t *testing.T) {
	items := NewItems(WithItemsList([]*Item{testItem("a"), nil, {ID: ""}}))
	assert.Equal(t, 1, items.Len())
}

func TestItems_Filter(t *testing.T) {
	greek := testItem("b")
	greek.CountryCode = "GR"
	items := NewItems(WithItemsList([]*Item{testItem("a"), greek, testItem("c")}))

	matched := items.Filter(func(item *Item) bool { return item.CountryCode == "US" })
	require.Len(t, matched, 2)
	assert.Equal(t, "a", matched[0].ID)
	assert.Equal(t, "c", matched[1].ID)
}

func TestItems_FindByNote(t *testing.T) {
	tagged := testItem("a")
	tagged.Notes = "Imported from Numista. Numista ID: 42"
	items := NewItems(WithItemsList([]*Item{tagged, testItem("b")}))

	assert.Equal(t, "a", items.FindByNote("Numista ID: 42").ID)
	assert.Nil(t, items.FindByNote("Numista ID: 7"))
	assert.Nil(t, items.FindByNote(""))
}

func TestItems_Replace(t *testing.T) {
	items := NewItems(WithItemsList([]*Item{testItem("a"), testItem("b")}))

	items.Replace([]*Item{testItem("x")})

	assert.Equal(t, 1, items.Len())
	assert.False(t, items.Exists("a"))
	assert.True(t, items.Exists("x"))
}

func TestItems_ForEachStopsEarly(t *testing.T) {
	items := NewItems(WithItemsList([]*Item{testItem("a"), testItem("b"), testItem("c")}))

	seen := 0
	items.ForEach(func(id string, item *Item) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}

func TestItems_ConcurrentAccess(t *testing.T) {
	items := NewItems()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = items.Set(id, testItem(id))
			items.Get(id)
			items.Len()
			items.List()
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 4, items.Len())
}

func TestItem_Copy(t *testing.T) {
	value := 12.5
	orig := testItem("a")
	orig.EstimatedValue = &value

	clone := orig.Copy()
	require.NotNil(t, clone.EstimatedValue)

	*clone.EstimatedValue = 99
	clone.Notes = "changed"

	assert.Equal(t, 12.5, *orig.EstimatedValue, "value pointer deep copied")
	assert.Empty(t, orig.Notes)
	assert.Nil(t, (*Item)(nil).Copy())
}
