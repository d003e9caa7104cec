// Package schema reconciles the header row of an uploaded file with
// the canonical column set. Matching is tolerant of case, punctuation
// and minor wording differences; only the Date and Revenue columns are
// mandatory.
package schema

import (
	"fmt"
	"strings"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

// fuzzyThreshold is the minimum token-overlap (Jaccard) score a header
// must reach against some alias when no exact-normalized match exists.
const fuzzyThreshold = 0.5

// aliases pairs each canonical field with its accepted spellings, in
// priority order. Spellings are compared after normalization.
var aliases = []struct {
	field domain.Field
	keys  []string
}{
	{domain.FieldDate, []string{"date est", "date"}},
	{domain.FieldChannel, []string{"rtb channel", "channel"}},
	{domain.FieldAdvertiser, []string{"rtb advertiser", "advertiser", "adv"}},
	{domain.FieldSSP, []string{"rtb ssp", "ssp"}},
	{domain.FieldSystem, []string{"system"}},
	{domain.FieldDealID, []string{"rtb deal id", "deal id", "deal"}},
	{domain.FieldCreativeID, []string{"rtb creative id", "creative id", "creative"}},
	{domain.FieldRevenue, []string{"revenue", "rev", "amount"}},
}

// Mapping relates each resolved canonical field to the header string
// observed in the file. Unresolved optional fields are absent.
type Mapping map[domain.Field]string

// Resolved reports whether a field was matched to an observed header.
func (m Mapping) Resolved(f domain.Field) bool {
	_, ok := m[f]
	return ok
}

// SchemaError aborts a run: the required Date or Revenue columns could
// not be matched even after fuzzy fallback.
type SchemaError struct {
	Missing []domain.Field
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("unresolved required columns: %s", strings.Join(names, ", "))
}

// Resolve maps the observed header row to canonical fields. Exact
// matches on normalized aliases win; remaining fields fall back to the
// best token-overlap score at or above the threshold, ties broken by
// alias declaration order and then header position.
func Resolve(headers []string) (Mapping, error) {
	normalized := make(map[string]string, len(headers))
	ordered := make([]string, 0, len(headers))
	for _, h := range headers {
		n := Normalize(h)
		if n == "" {
			continue
		}
		if _, seen := normalized[n]; !seen {
			normalized[n] = h
			ordered = append(ordered, n)
		}
	}

	mapping := Mapping{}
	for _, a := range aliases {
		if observed, ok := exactMatch(a.keys, normalized); ok {
			mapping[a.field] = observed
			continue
		}
		if observed, ok := fuzzyMatch(a.keys, ordered, normalized); ok {
			mapping[a.field] = observed
		}
	}

	var missing []domain.Field
	for _, f := range []domain.Field{domain.FieldDate, domain.FieldRevenue} {
		if !mapping.Resolved(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return mapping, nil
}

func exactMatch(keys []string, normalized map[string]string) (string, bool) {
	for _, key := range keys {
		if observed, ok := normalized[key]; ok {
			return observed, true
		}
	}
	return "", false
}

func fuzzyMatch(keys []string, ordered []string, normalized map[string]string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, key := range keys {
		for _, candidate := range ordered {
			score := Overlap(key, candidate)
			if score >= fuzzyThreshold && score > bestScore {
				best = normalized[candidate]
				bestScore = score
			}
		}
	}
	return best, best != ""
}

// Normalize lowercases a header, collapses every non-alphanumeric run
// into a single space and trims the result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// Overlap scores two normalized strings by Jaccard similarity over
// their token sets. Identical strings score 1, disjoint strings 0.
func Overlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ta))
	for _, t := range ta {
		set[t] = true
	}
	union := make(map[string]bool, len(ta)+len(tb))
	for _, t := range ta {
		union[t] = true
	}
	shared := 0
	for _, t := range tb {
		if set[t] {
			set[t] = false
			shared++
		}
		union[t] = true
	}
	return float64(shared) / float64(len(union))
}
