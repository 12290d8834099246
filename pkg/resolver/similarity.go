package resolver

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// minWordLen is the minimum word length considered for edit-distance
	// scoring. Shorter words ("of", "la") produce noisy scores.
	minWordLen = 3

	// containmentFloor is the minimum score assigned when one normalized
	// name contains the other outright.
	containmentFloor = 0.95
)

// foldTransformer strips diacritic marks so "España" and "Espana" compare
// equal. Issuer names arrive in several languages.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a name, strips diacritics and non-letters, and
// collapses whitespace.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Similarity scores how closely two country names match, in [0, 1].
//
// Both names are normalized, then every pair of words of at least three
// letters is compared by edit distance, scored as (maxLen - distance) /
// maxLen, and the best pair wins. When either normalized name contains the
// other, the score is floored at 0.95 so "Korea" still matches
// "South Korea" regardless of word scores.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	best := 0.0
	for _, wa := range strings.Fields(na) {
		if len(wa) < minWordLen {
			continue
		}
		for _, wb := range strings.Fields(nb) {
			if len(wb) < minWordLen {
				continue
			}
			if s := wordSimilarity(wa, wb); s > best {
				best = s
			}
		}
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		if best < containmentFloor {
			best = containmentFloor
		}
	}

	return best
}

func wordSimilarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)
	if dist >= maxLen {
		return 0
	}
	return float64(maxLen-dist) / float64(maxLen)
}
