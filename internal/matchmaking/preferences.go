// internal/matchmaking/preferences.go
// Normalizes the two user preference shapes into one canonical view

package matchmaking

import "strings"

// effectivePreferences is the canonical per-facet view of a user's
// preference data. The nested Preferences shape wins over the legacy flat
// fields facet by facet; when a facet is absent in both shapes it simply
// contributes nothing to scoring. Scoring code operates on this view only
// and never branches on the raw shapes.
type effectivePreferences struct {
	categories []string            // lowercased, input order preserved
	settings   map[string]struct{} // lowercased
	priceMin   int
	priceMax   int
	hasPrice   bool
	locations  []string // lowercased substrings to look for in idea locations

	// modernLocation is set only when the nested shape supplied the
	// location facet. The reason generator's location clause fires for
	// that shape alone.
	modernLocation string
}

func normalizePreferences(u *UserProfile) effectivePreferences {
	var p effectivePreferences

	modern := u.Preferences

	switch {
	case modern != nil && modern.Categories != nil:
		p.categories = lowerAll(modern.Categories)
	case u.PreferredCategories != nil:
		p.categories = lowerAll(u.PreferredCategories)
	}

	switch {
	case modern != nil && modern.Settings != nil:
		p.settings = lowerSet(modern.Settings)
	case u.PreferredSettings != nil:
		p.settings = lowerSet(u.PreferredSettings)
	}

	switch {
	case modern != nil && len(modern.PriceLevel) >= 2:
		p.priceMin, p.priceMax = modern.PriceLevel[0], modern.PriceLevel[1]
		p.hasPrice = true
	case len(u.BudgetRange) >= 2:
		p.priceMin, p.priceMax = u.BudgetRange[0], u.BudgetRange[1]
		p.hasPrice = true
	}

	switch {
	case modern != nil && modern.Location != "":
		p.locations = []string{strings.ToLower(modern.Location)}
		p.modernLocation = modern.Location
	case u.PreferredLocations != nil:
		p.locations = lowerAll(u.PreferredLocations)
	}

	return p
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
