// Package registry holds the local country taxonomy: a fixed seeded mapping
// of two-letter codes to display names, continents, and flag glyphs, plus a
// controlled append path for entries synthesized by the resolver.
package registry

import (
	_ "embed"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
)

//go:embed countries.yaml
var seedData []byte

// PlaceholderCode is the generic fallback code used when no country can be
// resolved and no synthesized entry is confirmed.
const PlaceholderCode = "XX"

// Country is one registry entry.
type Country struct {
	Code      string `json:"code" yaml:"code"`
	Name      string `json:"name" yaml:"name"`
	Flag      string `json:"flag" yaml:"flag"`
	Continent string `json:"continent" yaml:"continent"`
}

// seedFile is the shape of the embedded countries.yaml.
type seedFile struct {
	Countries []Country `yaml:"countries"`
}

// Registry is the shared country registry. Entries are never removed;
// Add is the only mutation path.
type Registry struct {
	mu        sync.RWMutex
	countries map[string]Country
	log       *zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry mutations.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = logger
	}
}

// WithCountries adds entries on top of the embedded seed.
func WithCountries(countries ...Country) Option {
	return func(r *Registry) {
		for _, c := range countries {
			r.countries[normalizeCode(c.Code)] = c
		}
	}
}

// New creates a registry seeded from the embedded country table.
func New(opts ...Option) (*Registry, error) {
	var seed seedFile
	if err := yaml.Unmarshal(seedData, &seed); err != nil {
		return nil, errors.WrapParse("yaml", "embedded country seed", err)
	}

	r := &Registry{
		countries: make(map[string]Country, len(seed.Countries)),
		log:       logging.Default(),
	}
	for _, c := range seed.Countries {
		r.countries[normalizeCode(c.Code)] = c
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// MustNew creates a registry and panics on seed errors. The seed is embedded
// at build time, so a failure here is a programming error.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry for a code and whether it exists.
// Codes are matched case-insensitively.
func (r *Registry) Lookup(code string) (Country, bool) {
	r.mu.RLock()
	c, ok := r.countries[normalizeCode(code)]
	r.mu.RUnlock()
	return c, ok
}

// Get returns the entry for a code, or an ErrNotFound error.
func (r *Registry) Get(code string) (Country, error) {
	c, ok := r.Lookup(code)
	if !ok {
		return Country{}, errors.NewNotFoundError("country", code)
	}
	return c, nil
}

// Has reports whether a code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// Name returns the display name for a code, or the code itself when the
// entry is unknown.
func (r *Registry) Name(code string) string {
	if c, ok := r.Lookup(code); ok {
		return c.Name
	}
	return normalizeCode(code)
}

// Add inserts a new entry. Existing entries are never overwritten.
func (r *Registry) Add(c Country) error {
	code := normalizeCode(c.Code)
	if len(code) < 2 {
		return errors.NewValidationError("code", c.Code, "country code must be at least two letters")
	}
	if c.Name == "" {
		return errors.NewValidationError("name", c.Name, "country name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.countries[code]; exists {
		return errors.ErrAlreadyExists
	}

	c.Code = code
	if c.Flag == "" {
		c.Flag = "🏳️"
	}
	if c.Continent == "" {
		c.Continent = "Unknown"
	}
	r.countries[code] = c

	r.log.Info().
		Str("country_code", code).
		Str("country_name", c.Name).
		Msg("registry entry added")
	return nil
}

// Len returns the number of registered countries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.countries)
}

// All returns every entry sorted by code.
func (r *Registry) All() []Country {
	r.mu.RLock()
	out := make([]Country, 0, len(r.countries))
	for _, c := range r.countries {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Map returns a copy of the code to entry map.
func (r *Registry) Map() map[string]Country {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Country, len(r.countries))
	maps.Copy(out, r.countries)
	return out
}

// Continents returns the distinct continent names, sorted.
func (r *Registry) Continents() []string {
	r.mu.RLock()
	seen := make(map[string]struct{})
	for _, c := range r.countries {
		seen[c.Continent] = struct{}{}
	}
	r.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
