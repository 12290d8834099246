// Package resolver maps free-text issuer names and external-service issuer
// codes onto the local country taxonomy. Resolution tries exact code lookup,
// alias tables, fuzzy name matching, and substring variants in order; when
// everything fails the caller can synthesize a new registry entry.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
	"github.com/mintmark/mintmark/pkg/registry"
)

// Threshold is the minimum similarity score for a fuzzy name match.
const Threshold = 0.7

const (
	// synthesisAttempts caps suffix probing when a synthesized code collides.
	synthesisAttempts = 100

	// repairPrefixLen is how many leading characters of the issuer name are
	// matched when repairing placeholder items.
	repairPrefixLen = 5
)

// Confirmer answers yes/no questions that the resolver cannot decide on its
// own, such as whether to register a synthesized country. Production wires a
// UI-backed implementation; tests and batch contexts use scripted ones.
type Confirmer interface {
	Confirm(ctx context.Context, question string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, question string) bool

// Confirm implements the Confirmer interface.
func (f ConfirmerFunc) Confirm(ctx context.Context, question string) bool {
	return f(ctx, question)
}

// AutoApprove accepts every question.
var AutoApprove Confirmer = ConfirmerFunc(func(context.Context, string) bool { return true })

// AutoDecline rejects every question. Non-interactive contexts use this so
// unresolved issuers degrade to the placeholder code without registry writes.
var AutoDecline Confirmer = ConfirmerFunc(func(context.Context, string) bool { return false })

// Resolver resolves issuers against (and extends) a country registry.
type Resolver struct {
	registry *registry.Registry
	log      *zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Resolver) {
		r.log = logger
	}
}

// New creates a resolver bound to the given registry.
func New(reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: reg,
		log:      logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the local country code for an issuer. Either argument may
// be empty. Resolution order, first success wins:
//
//  1. issuerCode is a registered two-letter code (case-insensitive)
//  2. issuerCode matches the external-service slug alias table
//  3. issuerName fuzzy-matches a registry display name at or above Threshold
//  4. issuerName contains a known name variant from the substring alias table
//
// When nothing matches, an UnresolvedCountryError wrapping ErrUnresolved is
// returned and the caller decides between Synthesize and the placeholder.
func (r *Resolver) Resolve(issuerCode, issuerName string) (string, error) {
	// 1. Exact code lookup.
	code := strings.ToUpper(strings.TrimSpace(issuerCode))
	if len(code) == 2 && r.registry.Has(code) {
		return code, nil
	}

	// 2. Slug alias table.
	slug := strings.ToLower(strings.TrimSpace(issuerCode))
	if mapped, ok := slugAliases[slug]; ok {
		return mapped, nil
	}

	bestScore := 0.0
	if issuerName != "" {
		// 3. Fuzzy match against every registry display name.
		bestCode := ""
		for _, c := range r.registry.All() {
			score := Similarity(issuerName, c.Name)
			if score > bestScore {
				bestScore = score
				bestCode = c.Code
			}
		}
		if bestScore >= Threshold {
			r.log.Debug().
				Str("issuer", issuerName).
				Str("country_code", bestCode).
				Float64("score", bestScore).
				Msg("issuer resolved by fuzzy match")
			return bestCode, nil
		}

		// 4. Ordered substring scan over known name variants; the first
		// containment match wins.
		normalized := Normalize(issuerName)
		for _, alias := range nameAliases {
			if strings.Contains(normalized, alias.variant) {
				return alias.code, nil
			}
		}
	}

	return "", &errors.UnresolvedCountryError{
		IssuerCode: issuerCode,
		IssuerName: issuerName,
		BestScore:  bestScore,
	}
}

// SynthesizeCode derives a deterministic candidate code from an issuer name:
// uppercase initials of the first two words, or the first two letters of a
// single word. Collisions with registered codes get an incrementing numeric
// suffix; after synthesisAttempts the placeholder code is returned.
func (r *Resolver) SynthesizeCode(issuerName string) string {
	base := synthesizeBase(issuerName)
	if base == "" {
		return registry.PlaceholderCode
	}

	if !r.registry.Has(base) {
		return base
	}
	for i := 1; i <= synthesisAttempts; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !r.registry.Has(candidate) {
			return candidate
		}
	}

	return registry.PlaceholderCode
}

// Synthesize resolves an issuer that failed Resolve by inserting a new
// registry entry. The Confirmer is asked first; a declined confirmation
// returns the placeholder code with no registry write. Reports the resulting
// code and whether a new entry was added.
func (r *Resolver) Synthesize(ctx context.Context, issuerName string, confirm Confirmer) (string, bool) {
	if confirm == nil {
		confirm = AutoDecline
	}

	code := r.SynthesizeCode(issuerName)
	if code == registry.PlaceholderCode {
		return registry.PlaceholderCode, false
	}

	question := fmt.Sprintf("Add unknown country %q as %s?", issuerName, code)
	if !confirm.Confirm(ctx, question) {
		return registry.PlaceholderCode, false
	}

	err := r.registry.Add(registry.Country{Code: code, Name: strings.TrimSpace(issuerName)})
	if err != nil {
		// Lost a race to another insert; the entry now exists either way.
		if !errors.Is(err, errors.ErrAlreadyExists) {
			r.log.Warn().Err(err).Str("issuer", issuerName).Msg("synthesized country not added")
			return registry.PlaceholderCode, false
		}
	}

	return code, err == nil
}

// Repair retroactively fixes items stored under the placeholder code whose
// country name matches the newly resolved issuer. Matching is a
// case-insensitive substring test on the first repairPrefixLen characters of
// the issuer name. Returns the repaired items.
func (r *Resolver) Repair(items *collection.Items, issuerName, code string) []*collection.Item {
	prefix := strings.ToLower(strings.TrimSpace(issuerName))
	if len(prefix) > repairPrefixLen {
		prefix = prefix[:repairPrefixLen]
	}
	if prefix == "" || code == registry.PlaceholderCode {
		return nil
	}

	name := r.registry.Name(code)

	var repaired []*collection.Item
	items.ForEach(func(_ string, item *collection.Item) bool {
		if item.CountryCode != registry.PlaceholderCode {
			return true
		}
		if !strings.Contains(strings.ToLower(item.CountryName), prefix) {
			return true
		}
		item.CountryCode = code
		item.CountryName = name
		repaired = append(repaired, item)
		return true
	})

	if len(repaired) > 0 {
		r.log.Info().
			Int("count", len(repaired)).
			Str("country_code", code).
			Msg("repaired placeholder items")
	}
	return repaired
}

// synthesizeBase extracts the raw two-letter candidate from a name.
func synthesizeBase(name string) string {
	words := strings.Fields(Normalize(name))
	switch {
	case len(words) == 0:
		return ""
	case len(words) == 1:
		w := words[0]
		if len(w) < 2 {
			return ""
		}
		return strings.ToUpper(w[:2])
	default:
		return strings.ToUpper(words[0][:1] + words[1][:1])
	}
}
