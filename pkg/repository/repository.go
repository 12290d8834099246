// Package repository is the item CRUD layer over the in-memory collection.
// It owns id assignment, input validation, country name denormalization, and
// hands every mutation to the sync engine for persistence.
package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
	"github.com/mintmark/mintmark/pkg/registry"
	"github.com/mintmark/mintmark/pkg/syncengine"
)

// Persister receives every repository mutation together with a full snapshot
// of the collection. *syncengine.Engine satisfies it.
type Persister interface {
	Persist(snapshot []*collection.Item, item *collection.Item, op syncengine.Op)
}

// Repository manages the item collection.
type Repository struct {
	items     *collection.Items
	countries *registry.Registry
	persister Persister
	log       *zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithPersister sets the persister notified on every mutation.
func WithPersister(p Persister) Option {
	return func(r *Repository) {
		r.persister = p
	}
}

// WithLogger sets the repository logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Repository) {
		r.log = logger
	}
}

// WithItems seeds the repository with an existing collection, typically the
// result of the sync engine's initial load.
func WithItems(items *collection.Items) Option {
	return func(r *Repository) {
		r.items = items
	}
}

// New creates a repository backed by the given country registry.
func New(countries *registry.Registry, opts ...Option) *Repository {
	r := &Repository{
		items:     collection.NewItems(),
		countries: countries,
		log:       logging.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Items exposes the underlying collection.
func (r *Repository) Items() *collection.Items {
	return r.items
}

// Add validates and stores a new item. An empty id gets one assigned; the
// denormalized country name is re-derived from the registry.
func (r *Repository) Add(ctx context.Context, item *collection.Item) (*collection.Item, error) {
	if err := r.validate(item); err != nil {
		return nil, err
	}

	stored := item.Copy()
	if stored.ID == "" {
		stored.ID = r.newID()
	}
	if r.items.Exists(stored.ID) {
		return nil, fmt.Errorf("item %s: %w", stored.ID, errors.ErrAlreadyExists)
	}

	now := utc.Now()
	if stored.DateAdded.IsZero() {
		stored.DateAdded = now
	}
	stored.DateModified = now
	r.deriveCountryName(stored)

	if err := r.items.Add(stored); err != nil {
		return nil, err
	}
	r.persist(stored, syncengine.OpCreate)

	r.log.Debug().
		Str("item", stored.ID).
		Str("country", stored.CountryCode).
		Msg("Item added")
	return stored, nil
}

// Update replaces the stored item's fields with the given ones, keeping the
// original id and date added. An unknown id is a no-op reported as false.
func (r *Repository) Update(ctx context.Context, id string, item *collection.Item) (bool, error) {
	if err := r.validate(item); err != nil {
		return false, err
	}

	existing, ok := r.items.Get(id)
	if !ok {
		return false, nil
	}

	updated := item.Copy()
	updated.ID = id
	updated.DateAdded = existing.DateAdded
	updated.DateModified = utc.Now()
	r.deriveCountryName(updated)

	if err := r.items.Set(id, updated); err != nil {
		return false, err
	}
	r.persist(updated, syncengine.OpUpdate)

	r.log.Debug().Str("item", id).Msg("Item updated")
	return true, nil
}

// Remove deletes an item by id, reporting whether it existed.
func (r *Repository) Remove(ctx context.Context, id string) bool {
	if !r.items.Delete(id) {
		return false
	}
	r.persist(&collection.Item{ID: id}, syncengine.OpDelete)

	r.log.Debug().Str("item", id).Msg("Item removed")
	return true
}

// Put upserts an item without validation of identity, used by the importer:
// an item with a known id replaces the stored one, anything else is added.
func (r *Repository) Put(ctx context.Context, item *collection.Item) error {
	if err := r.validate(item); err != nil {
		return err
	}

	if item.ID != "" && r.items.Exists(item.ID) {
		_, err := r.Update(ctx, item.ID, item)
		return err
	}
	_, err := r.Add(ctx, item)
	return err
}

// FindByID returns an item by id.
func (r *Repository) FindByID(id string) (*collection.Item, bool) {
	return r.items.Get(id)
}

// List returns all items sorted by id.
func (r *Repository) List() []*collection.Item {
	return r.items.List()
}

// FilterByCountry returns all items with the given country code.
func (r *Repository) FilterByCountry(code string) []*collection.Item {
	code = strings.ToUpper(strings.TrimSpace(code))
	return r.items.Filter(func(item *collection.Item) bool {
		return item.CountryCode == code
	})
}

// GroupByCountry returns item counts keyed by country code.
func (r *Repository) GroupByCountry() map[string]int {
	groups := make(map[string]int)
	r.items.ForEach(func(_ string, item *collection.Item) bool {
		groups[item.CountryCode]++
		return true
	})
	return groups
}

// GroupByContinent returns the distinct country codes represented on each
// continent, resolved through the country registry and sorted.
func (r *Repository) GroupByContinent() map[string][]string {
	seen := make(map[string]map[string]struct{})
	r.items.ForEach(func(_ string, item *collection.Item) bool {
		continent := "Unknown"
		if c, ok := r.countries.Lookup(item.CountryCode); ok && c.Continent != "" {
			continent = c.Continent
		}
		if seen[continent] == nil {
			seen[continent] = make(map[string]struct{})
		}
		seen[continent][item.CountryCode] = struct{}{}
		return true
	})

	groups := make(map[string][]string, len(seen))
	for continent, codes := range seen {
		list := make([]string, 0, len(codes))
		for code := range codes {
			list = append(list, code)
		}
		sort.Strings(list)
		groups[continent] = list
	}
	return groups
}

// validate rejects malformed items before they enter the collection.
func (r *Repository) validate(item *collection.Item) error {
	switch {
	case item == nil:
		return errors.NewValidationError("item", nil, "item is required")
	case !item.Category.Valid():
		return errors.NewValidationError("type", item.Category, "unknown category")
	case strings.TrimSpace(item.CountryCode) == "":
		return errors.NewValidationError("countryCode", item.CountryCode, "country code is required")
	case strings.TrimSpace(item.Denomination) == "":
		return errors.NewValidationError("denomination", item.Denomination, "denomination is required")
	case item.Year < 0:
		return errors.NewValidationError("year", item.Year, "year cannot be negative")
	case item.EstimatedValue != nil && *item.EstimatedValue < 0:
		return errors.NewValidationError("value", *item.EstimatedValue, "estimated value cannot be negative")
	}
	return nil
}

// deriveCountryName refreshes the denormalized name from the registry. Items
// parked under the placeholder code keep their free-text issuer name so the
// resolver's repair pass can still match them later.
func (r *Repository) deriveCountryName(item *collection.Item) {
	item.CountryCode = strings.ToUpper(strings.TrimSpace(item.CountryCode))
	if item.CountryCode == registry.PlaceholderCode && item.CountryName != "" {
		return
	}
	item.CountryName = r.countries.Name(item.CountryCode)
}

// newID assigns a millisecond timestamp id, falling back to a uuid when two
// mutations land on the same millisecond.
func (r *Repository) newID() string {
	id := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if r.items.Exists(id) {
		return uuid.NewString()
	}
	return id
}

func (r *Repository) persist(item *collection.Item, op syncengine.Op) {
	if r.persister == nil {
		return
	}
	r.persister.Persist(r.items.List(), item, op)
}
