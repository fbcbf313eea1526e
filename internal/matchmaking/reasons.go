// internal/matchmaking/reasons.go
// Natural-language explanations for recommended date ideas

package matchmaking

import (
	"fmt"
	"strings"
)

// GenerateMatchReason builds a personalized explanation for why a date
// idea suits a user. Clauses are evaluated in a fixed order and each is
// appended only when its condition holds; when none fire a generic
// fallback is returned. Nil inputs yield an empty string.
func (e *Engine) GenerateMatchReason(user *UserProfile, idea *DateIdea) string {
	if user == nil || idea == nil {
		return ""
	}

	prefs := normalizePreferences(user)
	reasons := make([]string, 0, 5)

	// Matching categories, in the idea's original casing.
	if len(prefs.categories) > 0 && len(idea.Categories) > 0 {
		matching := make([]string, 0, len(idea.Categories))
		for _, category := range idea.Categories {
			if containsString(prefs.categories, strings.ToLower(category)) {
				matching = append(matching, category)
			}
		}

		switch {
		case len(matching) == 1:
			reasons = append(reasons, fmt.Sprintf("This matches your interest in %s activities.", matching[0]))
		case len(matching) > 1:
			last := matching[len(matching)-1]
			rest := strings.Join(matching[:len(matching)-1], ", ")
			reasons = append(reasons, fmt.Sprintf("This combines your interests in %s and %s.", rest, last))
		}
	}

	// Preferred setting.
	if len(prefs.settings) > 0 && idea.Setting != "" {
		if _, ok := prefs.settings[strings.ToLower(idea.Setting)]; ok {
			reasons = append(reasons, fmt.Sprintf("It's a %s setting, which you prefer.", strings.ToLower(idea.Setting)))
		}
	}

	// Price inside the user's range.
	if prefs.hasPrice && idea.PriceLevel > 0 &&
		idea.PriceLevel >= prefs.priceMin && idea.PriceLevel <= prefs.priceMax {
		switch idea.PriceLevel {
		case 1:
			reasons = append(reasons, "It's budget-friendly, fitting your price preferences.")
		case 2:
			reasons = append(reasons, "It's moderately priced, aligning with your budget preferences.")
		default:
			reasons = append(reasons, "The price level matches your budget preferences.")
		}
	}

	// Location clause fires only for the nested single-location
	// preference; the legacy location list does not participate here.
	if prefs.modernLocation != "" && idea.Location != "" {
		if strings.Contains(strings.ToLower(idea.Location), strings.ToLower(prefs.modernLocation)) {
			reasons = append(reasons, fmt.Sprintf("The location (%s) matches your preferences.", idea.Location))
		}
	}

	// Free-text interests contained in any idea category.
	if len(user.Interests) > 0 && len(idea.Categories) > 0 {
		matching := make([]string, 0, len(user.Interests))
		for _, interest := range user.Interests {
			if interestInAnyCategory(interest, idea.Categories) {
				matching = append(matching, interest)
			}
		}
		if len(matching) > 0 {
			reasons = append(reasons, fmt.Sprintf("It aligns with your personal interests in %s.", strings.Join(matching, ", ")))
		}
	}

	if len(reasons) == 0 {
		return "This date idea might be a refreshing new experience for you."
	}

	return strings.Join(reasons, " ")
}

func interestInAnyCategory(interest string, categories []string) bool {
	lower := strings.ToLower(interest)
	for _, category := range categories {
		if strings.Contains(strings.ToLower(category), lower) {
			return true
		}
	}
	return false
}
