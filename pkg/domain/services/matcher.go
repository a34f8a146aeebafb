package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shiproute/routing/pkg/domain/entities"
)

// MatchKind classifies the outcome of resolving a raw SKU reference
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchFuzzy
	MatchAmbiguous
	MatchNotFound
)

// String method for MatchKind enum
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "Exact"
	case MatchFuzzy:
		return "Fuzzy"
	case MatchAmbiguous:
		return "Ambiguous"
	case MatchNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// MatchResult is the outcome of resolving a raw reference. SKU is set
// for Exact and Fuzzy; Candidates lists the tied SKUs for Ambiguous,
// sorted for deterministic reporting.
type MatchResult struct {
	Kind       MatchKind
	SKU        entities.SKU
	Candidates []entities.SKU
}

// ResolveSKU resolves a raw order-line reference against the known SKU
// set. Exact matching (case-insensitive, whitespace-trimmed) is tried
// first and always preferred, so an exact code is never shadowed by a
// fuzzy candidate. If no exact match exists, references are compared
// after normalization (punctuation stripped, whitespace collapsed,
// lowercased): an equal normalized form wins outright, otherwise known
// SKUs whose normalized form extends the reference are candidates. A
// unique candidate is a Fuzzy match; multiple candidates are Ambiguous
// and the caller must not pick one silently.
//
// Pure function over its inputs; order data comes from free-text
// spreadsheet cells with stray dashes and mixed case, which is why the
// two phases exist at all.
func ResolveSKU(raw string, known []entities.SKU) MatchResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return MatchResult{Kind: MatchNotFound}
	}

	for _, sku := range known {
		if strings.EqualFold(trimmed, strings.TrimSpace(string(sku))) {
			return MatchResult{Kind: MatchExact, SKU: sku}
		}
	}

	normalized := normalizeSKU(trimmed)
	if normalized == "" {
		return MatchResult{Kind: MatchNotFound}
	}

	var equal []entities.SKU
	var prefixed []entities.SKU
	for _, sku := range known {
		normKnown := normalizeSKU(string(sku))
		switch {
		case normKnown == normalized:
			equal = append(equal, sku)
		case strings.HasPrefix(normKnown, normalized):
			prefixed = append(prefixed, sku)
		}
	}

	// An equal normalized form beats any prefix extension.
	candidates := equal
	if len(candidates) == 0 {
		candidates = prefixed
	}

	switch len(candidates) {
	case 0:
		return MatchResult{Kind: MatchNotFound}
	case 1:
		return MatchResult{Kind: MatchFuzzy, SKU: candidates[0]}
	default:
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i] < candidates[j]
		})
		return MatchResult{Kind: MatchAmbiguous, Candidates: candidates}
	}
}

// normalizeSKU lowercases and keeps only letters and digits, which
// strips punctuation and collapses whitespace in one pass.
func normalizeSKU(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
