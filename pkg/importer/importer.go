// Package importer fetches candidate records from the external numismatic
// catalog, deduplicates them against the stored collection, normalizes
// country, grade, and category, and writes the results through the sync
// engine.
package importer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
	"github.com/mintmark/mintmark/pkg/registry"
	"github.com/mintmark/mintmark/pkg/resolver"
)

// CatalogRecord is the full external catalog record for one type.
type CatalogRecord struct {
	ID           int
	Title        string
	Category     string
	IssuerCode   string
	IssuerName   string
	Denomination string
	MinYear      int
	MaxYear      int
	ObversePhoto string
	ReversePhoto string
	Composition  string
	Link         string
}

// ItemRef references one collected item in the external catalog.
type ItemRef struct {
	ID       int
	Title    string
	Quantity int
	Grade    string
}

// Catalog is the external numismatic catalog collaborator.
type Catalog interface {
	// Type fetches the full record for an external catalog id.
	Type(ctx context.Context, id int) (*CatalogRecord, error)

	// CollectedItems lists the items a catalog user has marked as owned.
	CollectedItems(ctx context.Context, userID string) ([]ItemRef, error)
}

// Store is the stored collection the importer deduplicates against and
// writes into. Implemented by the item repository; Put persists through the
// sync engine.
type Store interface {
	// Items exposes the underlying collection for dedupe scans and repair.
	Items() *collection.Items

	// Put inserts or replaces an item, assigning an id when empty.
	Put(ctx context.Context, item *collection.Item) error
}

// Importer is the catalog import pipeline.
type Importer struct {
	catalog  Catalog
	store    Store
	resolver *resolver.Resolver
	registry *registry.Registry
	confirm  resolver.Confirmer
	decide   Decider
	progress func(Progress)
	source   string
	log      *zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithSource overrides the provenance source name.
func WithSource(source string) Option {
	return func(i *Importer) {
		i.source = source
	}
}

// WithDecider sets the duplicate-resolution decision provider.
func WithDecider(d Decider) Option {
	return func(i *Importer) {
		i.decide = d
	}
}

// WithConfirmer sets the provider asked before registering synthesized
// countries.
func WithConfirmer(c resolver.Confirmer) Option {
	return func(i *Importer) {
		i.confirm = c
	}
}

// WithProgress sets a callback invoked after each item of a batch.
func WithProgress(fn func(Progress)) Option {
	return func(i *Importer) {
		i.progress = fn
	}
}

// WithLogger sets the importer's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(i *Importer) {
		i.log = logger
	}
}

// New creates an import pipeline. Defaults: provenance source "Numista",
// duplicates ignored, synthesized countries declined (placeholder code).
func New(catalog Catalog, store Store, res *resolver.Resolver, reg *registry.Registry, opts ...Option) *Importer {
	i := &Importer{
		catalog:  catalog,
		store:    store,
		resolver: res,
		registry: reg,
		confirm:  resolver.AutoDecline,
		decide:   AlwaysIgnore,
		source:   DefaultSource,
		log:      logging.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// batchState carries the remembered apply-to-all decision across one batch.
type batchState struct {
	decision *Decision
}

// ImportOne imports a single external catalog item.
func (i *Importer) ImportOne(ctx context.Context, ref ItemRef) Outcome {
	return i.importOne(ctx, ref, &batchState{})
}

// ImportAll imports a batch of external catalog items sequentially. A cancel
// decision aborts the batch immediately; items already processed are kept.
func (i *Importer) ImportAll(ctx context.Context, refs []ItemRef) *Report {
	report := NewReport(len(refs))
	batch := &batchState{}

	for idx, ref := range refs {
		outcome := i.importOne(ctx, ref, batch)
		report.Record(outcome, ref.Title)

		if i.progress != nil {
			i.progress(Progress{Index: idx + 1, Total: len(refs), Counters: report.counters()})
		}

		if outcome.Status == StatusCancelled {
			break
		}
	}

	i.log.Info().
		Int("total", report.Total).
		Int("processed", report.Processed()).
		Bool("cancelled", report.Cancelled()).
		Msg("batch import finished")
	return report
}

// ImportCollection imports every item the catalog user has marked as owned.
// A listing failure (auth, quota, network) is surfaced as a batch-level
// error without touching the stored collection.
func (i *Importer) ImportCollection(ctx context.Context, userID string) *Report {
	refs, err := i.catalog.CollectedItems(ctx, userID)
	if err != nil {
		i.log.Error().Err(err).Str("user_id", userID).Msg("collected items listing failed")
		report := NewReport(0)
		report.Record(Outcome{Status: StatusError, ErrorDetail: err.Error()}, "")
		return report
	}
	return i.ImportAll(ctx, refs)
}

func (i *Importer) importOne(ctx context.Context, ref ItemRef, batch *batchState) Outcome {
	rec, err := i.catalog.Type(ctx, ref.ID)
	if err != nil {
		i.log.Warn().Err(err).Int("external_id", ref.ID).Msg("catalog fetch failed")
		return Outcome{Status: StatusError, ErrorDetail: err.Error()}
	}

	existing := findImported(i.store.Items(), i.source, ref.ID)
	if existing != nil {
		decision := i.resolveDuplicate(ctx, ref, rec, existing, batch)
		switch decision {
		case DecisionCancel:
			return Outcome{Status: StatusCancelled}
		case DecisionIgnore:
			return Outcome{Status: StatusIgnored}
		}
	}

	code, newCountry := i.resolveCountry(ctx, rec)

	item := i.buildItem(ref, rec, code, existing)
	if err := i.store.Put(ctx, item); err != nil {
		i.log.Error().Err(err).Int("external_id", ref.ID).Msg("import write failed")
		return Outcome{Status: StatusError, ErrorDetail: err.Error()}
	}

	status := StatusAdded
	if existing != nil {
		status = StatusReplaced
	}
	return Outcome{Status: status, NewCountry: newCountry}
}

// resolveDuplicate applies the duplicate policy, honoring a remembered
// apply-to-all decision. Prompts are issued one at a time by construction.
func (i *Importer) resolveDuplicate(ctx context.Context, ref ItemRef, rec *CatalogRecord, existing *collection.Item, batch *batchState) Decision {
	if batch.decision != nil {
		return *batch.decision
	}

	decision, applyToAll := i.decide.Decide(ctx, DuplicatePrompt{
		ExternalID: ref.ID,
		Title:      rec.Title,
		Existing:   existing,
	})
	if applyToAll && decision != DecisionCancel {
		batch.decision = &decision
	}
	return decision
}

// resolveCountry resolves the record's issuer, synthesizing a registry entry
// when necessary. Returns the code and, when synthesis added an entry, the
// new country's name. A successful synthesis also repairs previously stored
// placeholder items for the same issuer.
func (i *Importer) resolveCountry(ctx context.Context, rec *CatalogRecord) (string, string) {
	code, err := i.resolver.Resolve(rec.IssuerCode, rec.IssuerName)
	if err == nil {
		return code, ""
	}
	if !errors.IsUnresolved(err) {
		i.log.Warn().Err(err).Str("issuer", rec.IssuerName).Msg("resolution failed")
		return registry.PlaceholderCode, ""
	}

	code, added := i.resolver.Synthesize(ctx, rec.IssuerName, i.confirm)
	if !added {
		return code, ""
	}

	for _, repaired := range i.resolver.Repair(i.store.Items(), rec.IssuerName, code) {
		if err := i.store.Put(ctx, repaired); err != nil {
			i.log.Warn().Err(err).Str("item_id", repaired.ID).Msg("repaired item not persisted")
		}
	}
	return code, i.registry.Name(code)
}

// buildItem constructs the normalized item. On replace the original id and
// dateAdded survive; everything else reflects the fresh import.
func (i *Importer) buildItem(ref ItemRef, rec *CatalogRecord, code string, existing *collection.Item) *collection.Item {
	denomination := rec.Denomination
	if denomination == "" {
		denomination = rec.Title
	}

	year := rec.MaxYear
	if year == 0 {
		year = rec.MinYear
	}

	// Placeholder items keep the issuer's free-text name; it is the key the
	// repair pass matches on once the issuer resolves.
	name := i.registry.Name(code)
	if code == registry.PlaceholderCode && rec.IssuerName != "" {
		name = rec.IssuerName
	}

	item := &collection.Item{
		Category:     collection.ParseCategory(rec.Category),
		CountryCode:  code,
		CountryName:  name,
		Denomination: denomination,
		Year:         year,
		Condition:    collection.ParseGrade(ref.Grade),
		Notes:        importNotes(i.source, ref.ID, ref.Quantity),
		CatalogLink:  rec.Link,
		PhotoFront:   rec.ObversePhoto,
		PhotoBack:    rec.ReversePhoto,
	}

	if existing != nil {
		item.ID = existing.ID
		item.DateAdded = existing.DateAdded
	}
	return item
}
