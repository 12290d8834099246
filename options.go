package mintmark

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/importer"
	"github.com/mintmark/mintmark/pkg/resolver"
)

// Option is a function that configures a Mintmark instance.
type Option func(*config) error

// config holds the assembled configuration for a Mintmark instance.
type config struct {
	remoteURL      string
	remoteAPIKey   string
	cacheDir       string
	catalog        importer.Catalog
	catalogAPIKey  string
	oauthClientID  string
	oauthSecret    string
	confirm        resolver.Confirmer
	decide         importer.Decider
	resyncEnabled  bool
	resyncInterval time.Duration
	onResync       func(count int)
	logger         *zerolog.Logger
}

// defaultResyncInterval is used when resync is enabled without an interval.
const defaultResyncInterval = 5 * time.Minute

// WithRemoteServer configures the remote store used for collection sync.
// An api key may be empty to skip Bearer token authentication.
func WithRemoteServer(url, apiKey string) Option {
	return func(c *config) error {
		c.remoteURL = url
		c.remoteAPIKey = apiKey
		return nil
	}
}

// WithCacheDir sets the directory holding the local collection snapshot.
func WithCacheDir(dir string) Option {
	return func(c *config) error {
		c.cacheDir = dir
		return nil
	}
}

// WithCatalog sets the external catalog used for imports. Overrides
// WithCatalogAPIKey.
func WithCatalog(catalog importer.Catalog) Option {
	return func(c *config) error {
		c.catalog = catalog
		return nil
	}
}

// WithCatalogAPIKey configures the built-in catalog client.
func WithCatalogAPIKey(apiKey string) Option {
	return func(c *config) error {
		c.catalogAPIKey = apiKey
		return nil
	}
}

// WithCatalogOAuth configures OAuth client credentials for catalog user
// collection access.
func WithCatalogOAuth(clientID, clientSecret string) Option {
	return func(c *config) error {
		c.oauthClientID = clientID
		c.oauthSecret = clientSecret
		return nil
	}
}

// WithConfirmer sets the confirmer consulted before new country codes are
// added to the registry during imports.
func WithConfirmer(confirm resolver.Confirmer) Option {
	return func(c *config) error {
		c.confirm = confirm
		return nil
	}
}

// WithDecider sets the duplicate decider consulted during imports.
func WithDecider(decide importer.Decider) Option {
	return func(c *config) error {
		c.decide = decide
		return nil
	}
}

// WithResync enables periodic background re-pulls from the remote store.
func WithResync(enabled bool) Option {
	return func(c *config) error {
		c.resyncEnabled = enabled
		return nil
	}
}

// WithResyncInterval configures how often the background resync runs.
func WithResyncInterval(interval time.Duration) Option {
	return func(c *config) error {
		c.resyncInterval = interval
		return nil
	}
}

// WithResyncNotify registers a callback invoked with the new item count
// whenever a background resync changes the collection.
func WithResyncNotify(fn func(count int)) Option {
	return func(c *config) error {
		c.onResync = fn
		return nil
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
