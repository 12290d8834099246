// Package remote is the HTTP client for the remote item store. It implements
// the sync engine's RemoteStore interface against the store's REST surface:
// GET/POST /items and PUT/DELETE /items/{id}.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/internal/transport"
	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
)

const service = "remote"

// Store is the remote item store client.
type Store struct {
	base    string
	http    *transport.Client
	auth    transport.Authenticator
	timeout time.Duration
	log     *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithAuth sets the authenticator used for store requests.
func WithAuth(auth transport.Authenticator) Option {
	return func(s *Store) {
		s.auth = auth
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.timeout = timeout
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.log = logger
	}
}

// New creates a remote store client for the given base URL.
func New(baseURL string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.NewValidationError("baseURL", baseURL, "remote store URL is required")
	}

	s := &Store{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: transport.DefaultHTTPTimeout,
		log:     logging.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.http = transport.New(service, s.auth, transport.WithTimeout(s.timeout))

	return s, nil
}

// List fetches all items from the remote store.
func (s *Store) List(ctx context.Context) ([]*collection.Item, error) {
	resp, err := s.http.Get(ctx, s.base+"/items")
	if err != nil {
		return nil, err
	}

	var items []*collection.Item
	if err := transport.DecodeResponse(service, resp, &items); err != nil {
		return nil, err
	}

	s.log.Debug().Int("count", len(items)).Msg("Listed remote items")
	return items, nil
}

// Create inserts an item into the remote store. The store honors the
// caller-assigned id.
func (s *Store) Create(ctx context.Context, item *collection.Item) error {
	resp, err := s.http.Send(ctx, http.MethodPost, s.base+"/items", item)
	if err != nil {
		return err
	}
	return transport.Discard(service, resp)
}

// Update replaces an item by id. A missing id surfaces as a not-found error
// so the sync engine can fall back to Create.
func (s *Store) Update(ctx context.Context, item *collection.Item) error {
	url := fmt.Sprintf("%s/items/%s", s.base, item.ID)
	resp, err := s.http.Send(ctx, http.MethodPut, url, item)
	if err != nil {
		return err
	}
	return transport.Discard(service, resp)
}

// Delete removes an item by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/items/%s", s.base, id)
	resp, err := s.http.Send(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	return transport.Discard(service, resp)
}
