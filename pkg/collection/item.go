// Package collection defines the collectible item model and the concurrent
// in-memory item collection shared by the repository, importer, and sync
// engine.
package collection

import (
	"strings"

	"github.com/agentstation/utc"
)

// Category identifies the kind of collectible.
type Category string

// Item categories.
const (
	CategoryCoin     Category = "coin"
	CategoryBanknote Category = "banknote"
)

// Valid reports whether the category is one of the known kinds.
func (c Category) Valid() bool {
	return c == CategoryCoin || c == CategoryBanknote
}

// ParseCategory maps external catalog category labels onto a Category.
// Anything that is not recognizably a banknote is treated as a coin.
func ParseCategory(label string) Category {
	if strings.EqualFold(strings.TrimSpace(label), string(CategoryBanknote)) {
		return CategoryBanknote
	}
	return CategoryCoin
}

// Item is one physical specimen in the collection.
//
// The JSON field names follow the remote store's wire format: the category
// travels as "type" and the denormalized country name as "country".
type Item struct {
	ID             string   `json:"id" yaml:"id"`
	Category       Category `json:"type" yaml:"type"`
	CountryCode    string   `json:"countryCode" yaml:"countryCode"`
	CountryName    string   `json:"country" yaml:"country"`
	Denomination   string   `json:"denomination" yaml:"denomination"`
	Year           int      `json:"year,omitempty" yaml:"year,omitempty"`
	Condition      Grade    `json:"condition" yaml:"condition"`
	EstimatedValue *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Notes          string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CatalogLink    string   `json:"catalogLink,omitempty" yaml:"catalogLink,omitempty"`
	PhotoFront     string   `json:"photoFront,omitempty" yaml:"photoFront,omitempty"`
	PhotoBack      string   `json:"photoBack,omitempty" yaml:"photoBack,omitempty"`
	DateAdded      utc.Time `json:"dateAdded" yaml:"dateAdded"`
	DateModified   utc.Time `json:"dateModified" yaml:"dateModified"`
}

// Copy returns a deep copy of the item.
func (i *Item) Copy() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	if i.EstimatedValue != nil {
		v := *i.EstimatedValue
		clone.EstimatedValue = &v
	}
	return &clone
}
