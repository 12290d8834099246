// Package numista is the client for the external numismatic catalog API.
// It implements the importer's Catalog interface: type lookups authenticate
// with the API key header, user collection listings additionally carry an
// OAuth bearer token obtained through the client credentials grant.
package numista

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/mintmark/mintmark/internal/transport"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/importer"
	"github.com/mintmark/mintmark/pkg/logging"
)

const (
	// DefaultBaseURL is the production catalog API endpoint.
	DefaultBaseURL = "https://api.numista.com/api/v3"

	// apiKeyHeader carries the catalog API key on every request.
	apiKeyHeader = "Numista-API-Key"

	// defaultPageSize is the page size for collection listings.
	defaultPageSize = 50

	// defaultRateLimit keeps the client inside the catalog's request quota.
	defaultRateLimit = rate.Limit(2)
)

// Client is the catalog API client.
type Client struct {
	base    string
	apiKey  string
	http    *transport.Client
	tokens  oauth2.TokenSource
	limiter *rate.Limiter
	log     *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the catalog endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.base = url
	}
}

// WithOAuth configures the client credentials grant used for user
// collection access. The token endpoint lives under the catalog base URL.
func WithOAuth(clientID, clientSecret string) Option {
	return func(c *Client) {
		if clientID == "" || clientSecret == "" {
			return
		}
		conf := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     c.base + "/oauth_token",
			Scopes:       []string{"view_collection"},
		}
		c.tokens = conf.TokenSource(context.Background())
	}
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// New creates a catalog client authenticated with the given API key.
// Options that reference the base URL (WithOAuth) must come after
// WithBaseURL.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(defaultRateLimit, 1),
		log:     logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http = transport.New("numista", transport.TokenFunc(c.authenticate))
	return c
}

// authenticate applies the API key and, when configured, the OAuth token.
func (c *Client) authenticate(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil {
			tok.SetAuthHeader(req)
		}
	}
}

// typeResponse is the catalog's type detail payload.
type typeResponse struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Issuer   struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"issuer"`
	Value struct {
		Text string `json:"text"`
	} `json:"value"`
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
	Obverse struct {
		Picture string `json:"picture"`
	} `json:"obverse"`
	Reverse struct {
		Picture string `json:"picture"`
	} `json:"reverse"`
	Composition struct {
		Text string `json:"text"`
	} `json:"composition"`
	URL string `json:"url"`
}

// collectedItemsResponse is one page of a user's collected item listing.
type collectedItemsResponse struct {
	ItemCount int `json:"item_count"`
	Items     []struct {
		ID       int    `json:"id"`
		Quantity int    `json:"quantity"`
		Grade    string `json:"grade"`
		Type     struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"type"`
	} `json:"items"`
}

// Type fetches the full catalog record for a type id.
func (c *Client) Type(ctx context.Context, id int) (*importer.CatalogRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/types/%d", c.base, id)
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload typeResponse
	if err := transport.DecodeResponse("numista", resp, &payload); err != nil {
		return nil, err
	}

	c.log.Debug().
		Int("type", id).
		Str("title", payload.Title).
		Msg("Fetched catalog type")

	return &importer.CatalogRecord{
		ID:           payload.ID,
		Title:        payload.Title,
		Category:     payload.Category,
		IssuerCode:   payload.Issuer.Code,
		IssuerName:   payload.Issuer.Name,
		Denomination: payload.Value.Text,
		MinYear:      payload.MinYear,
		MaxYear:      payload.MaxYear,
		ObversePhoto: payload.Obverse.Picture,
		ReversePhoto: payload.Reverse.Picture,
		Composition:  payload.Composition.Text,
		Link:         payload.URL,
	}, nil
}

// CollectedItems pages through a catalog user's collected item listing.
// Requires OAuth credentials.
func (c *Client) CollectedItems(ctx context.Context, userID string) ([]importer.ItemRef, error) {
	if c.tokens == nil {
		return nil, fmt.Errorf("collection access for user %s: %w", userID, errors.ErrAuthFailed)
	}
	if _, err := c.tokens.Token(); err != nil {
		return nil, fmt.Errorf("token exchange: %s: %w", err, errors.ErrAuthFailed)
	}

	var refs []importer.ItemRef
	for page := 1; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s/users/%s/collected_items?page=%d&count=%d", c.base, userID, page, defaultPageSize)
		resp, err := c.http.Get(ctx, url)
		if err != nil {
			return nil, err
		}

		var payload collectedItemsResponse
		if err := transport.DecodeResponse("numista", resp, &payload); err != nil {
			return nil, err
		}

		for _, item := range payload.Items {
			refs = append(refs, importer.ItemRef{
				ID:       item.Type.ID,
				Title:    item.Type.Title,
				Quantity: item.Quantity,
				Grade:    item.Grade,
			})
		}

		if len(payload.Items) < defaultPageSize {
			break
		}
	}

	c.log.Info().
		Str("user", userID).
		Int("items", len(refs)).
		Msg("Listed collected items")
	return refs, nil
}
