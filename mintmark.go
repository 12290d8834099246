// Package mintmark assembles the collectible catalog core: the country
// registry and resolver, the item repository, the catalog import pipeline,
// and the local/remote sync engine.
package mintmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/internal/cache"
	"github.com/mintmark/mintmark/internal/numista"
	"github.com/mintmark/mintmark/internal/remote"
	"github.com/mintmark/mintmark/internal/transport"
	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/importer"
	"github.com/mintmark/mintmark/pkg/logging"
	"github.com/mintmark/mintmark/pkg/registry"
	"github.com/mintmark/mintmark/pkg/repository"
	"github.com/mintmark/mintmark/pkg/resolver"
	"github.com/mintmark/mintmark/pkg/syncengine"
)

// Mintmark manages a collectible collection with catalog imports and
// local/remote sync.
type Mintmark interface {
	// Collection returns the item repository.
	Collection() *repository.Repository

	// Registry returns the country registry.
	Registry() *registry.Registry

	// Resolve maps an external issuer to a registry country code.
	Resolve(issuerCode, issuerName string) (string, error)

	// Import imports external catalog types by id.
	Import(ctx context.Context, ids []int) (*importer.Report, error)

	// ImportCollection imports all items a catalog user has marked as owned.
	ImportCollection(ctx context.Context, userID string) (*importer.Report, error)

	// Sync re-runs the load merge against the remote store, returning the
	// item count afterwards.
	Sync(ctx context.Context) int

	// ResyncOn begins periodic background resyncs if configured.
	ResyncOn() error

	// ResyncOff stops background resyncs.
	ResyncOff()

	// Close stops background work and waits for pending remote writes.
	Close() error
}

// mintmark is the internal implementation of the Mintmark interface.
type mintmark struct {
	mu        sync.RWMutex
	config    *config
	countries *registry.Registry
	resolve   *resolver.Resolver
	repo      *repository.Repository
	engine    *syncengine.Engine
	log       *zerolog.Logger
}

// New creates a new Mintmark instance with the given options.
func New(opts ...Option) (Mintmark, error) {
	cfg := &config{
		resyncInterval: defaultResyncInterval,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	log := cfg.logger
	if log == nil {
		log = logging.Default()
	}

	countries, err := registry.New(registry.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("loading country registry: %w", err)
	}

	m := &mintmark{
		config:    cfg,
		countries: countries,
		resolve:   resolver.New(countries, resolver.WithLogger(log)),
		log:       log,
	}

	if cfg.catalog == nil && cfg.catalogAPIKey != "" {
		m.config.catalog = numista.New(cfg.catalogAPIKey,
			numista.WithOAuth(cfg.oauthClientID, cfg.oauthSecret),
			numista.WithLogger(log),
		)
	}

	fileCache, err := cache.New(cfg.cacheDirOrDefault(), cache.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening collection cache: %w", err)
	}

	remoteStore, err := m.remoteStore()
	if err != nil {
		return nil, err
	}

	m.engine = syncengine.New(fileCache, remoteStore, syncengine.WithLogger(log))
	items := m.engine.Load(context.Background())
	m.repo = repository.New(countries,
		repository.WithItems(items),
		repository.WithPersister(m.engine),
		repository.WithLogger(log),
	)

	if cfg.resyncEnabled {
		if err := m.ResyncOn(); err != nil {
			return nil, fmt.Errorf("starting resync: %w", err)
		}
	}

	return m, nil
}

// cacheDirOrDefault resolves the snapshot directory, defaulting to the
// user cache directory.
func (c *config) cacheDirOrDefault() string {
	if c.cacheDir != "" {
		return c.cacheDir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "mintmark")
}

// remoteStore builds the remote client, or an offline stub when no remote
// server is configured.
func (m *mintmark) remoteStore() (syncengine.RemoteStore, error) {
	if m.config.remoteURL == "" {
		return offlineStore{}, nil
	}

	var auth transport.Authenticator
	if m.config.remoteAPIKey != "" {
		auth = &transport.BearerAuth{Token: m.config.remoteAPIKey}
	}
	store, err := remote.New(m.config.remoteURL,
		remote.WithAuth(auth),
		remote.WithLogger(m.log),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring remote store: %w", err)
	}
	return store, nil
}

// Collection returns the item repository.
func (m *mintmark) Collection() *repository.Repository {
	return m.repo
}

// Registry returns the country registry.
func (m *mintmark) Registry() *registry.Registry {
	return m.countries
}

// Resolve maps an external issuer to a registry country code.
func (m *mintmark) Resolve(issuerCode, issuerName string) (string, error) {
	return m.resolve.Resolve(issuerCode, issuerName)
}

// Import imports external catalog types by id.
func (m *mintmark) Import(ctx context.Context, ids []int) (*importer.Report, error) {
	imp, err := m.importer()
	if err != nil {
		return nil, err
	}

	refs := make([]importer.ItemRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, importer.ItemRef{ID: id, Quantity: 1})
	}
	return imp.ImportAll(ctx, refs), nil
}

// ImportCollection imports all items a catalog user has marked as owned.
func (m *mintmark) ImportCollection(ctx context.Context, userID string) (*importer.Report, error) {
	imp, err := m.importer()
	if err != nil {
		return nil, err
	}
	return imp.ImportCollection(ctx, userID), nil
}

func (m *mintmark) importer() (*importer.Importer, error) {
	if m.config.catalog == nil {
		return nil, fmt.Errorf("no catalog configured: set an api key or a custom catalog")
	}

	opts := []importer.Option{importer.WithLogger(m.log)}
	if m.config.decide != nil {
		opts = append(opts, importer.WithDecider(m.config.decide))
	}
	if m.config.confirm != nil {
		opts = append(opts, importer.WithConfirmer(m.config.confirm))
	}
	return importer.New(m.config.catalog, m.repo, m.resolve, m.countries, opts...), nil
}

// Sync re-runs the load merge against the remote store.
func (m *mintmark) Sync(ctx context.Context) int {
	items := m.engine.Load(ctx)
	m.repo.Items().Replace(items.List())
	return m.repo.Items().Len()
}

// ResyncOn begins periodic background resyncs. Merged state from the remote
// is adopted into the repository.
func (m *mintmark) ResyncOn() error {
	onChange := func(items *collection.Items) {
		m.repo.Items().Replace(items.List())
		m.log.Info().Int("count", items.Len()).Msg("Collection changed on resync")
		if m.config.onResync != nil {
			m.config.onResync(items.Len())
		}
	}
	return m.engine.ResyncOn(m.config.resyncInterval, onChange)
}

// ResyncOff stops background resyncs.
func (m *mintmark) ResyncOff() {
	m.engine.ResyncOff()
}

// Close stops background work and waits for pending remote writes.
func (m *mintmark) Close() error {
	m.engine.Close()
	return nil
}

// offlineStore is the remote stub used when no remote server is configured:
// reads are empty, writes succeed without effect, keeping the engine's
// cache-first flow intact.
type offlineStore struct{}

func (offlineStore) List(context.Context) ([]*collection.Item, error) { return nil, nil }

func (offlineStore) Create(context.Context, *collection.Item) error { return nil }

func (offlineStore) Update(context.Context, *collection.Item) error { return nil }

func (offlineStore) Delete(context.Context, string) error { return nil }
