// internal/matchmaking/engine.go
// Scoring and ranking for date ideas and user-to-user compatibility

package matchmaking

import (
	"math"
	"sort"
	"strings"
)

// Weights for the date idea match score. Missing preference data makes a
// factor contribute zero; factors are never renormalized, so the ceiling
// shrinks gracefully with incomplete profiles.
const (
	weightCategories = 35.0
	weightSetting    = 20.0
	weightPrice      = 15.0
	weightLocation   = 20.0
	weightPopularity = 10.0
)

// The free-text interest bonus is applied on top of the weighted sum and
// only the final total is clamped to 100.
const (
	interestBonusPerMatch = 5.0
	interestBonusCap      = 15.0
)

// Weights for user-to-user preference compatibility (0-40 total).
const (
	compatWeightCategories = 15.0
	compatWeightBudget     = 10.0
	compatWeightSettings   = 15.0
)

// Shared liked date ideas contribute to the overall user match score.
const (
	sharedIdeaPoints = 15
	sharedIdeaCap    = 60
)

// Engine computes match scores between users and date ideas. It holds no
// state; all methods are pure functions over their inputs and safe for
// concurrent use.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// ScoreDateIdea returns a 0-100 score for how well a date idea fits a
// user's preferences. A nil user or idea scores 0.
func (e *Engine) ScoreDateIdea(user *UserProfile, idea *DateIdea) int {
	if user == nil || idea == nil {
		return 0
	}

	prefs := normalizePreferences(user)
	score := 0.0

	// Categories: fraction of idea categories the user prefers, scaled
	// by the larger of the two category lists.
	if len(prefs.categories) > 0 && len(idea.Categories) > 0 {
		matches := 0
		for _, category := range idea.Categories {
			if containsString(prefs.categories, strings.ToLower(category)) {
				matches++
			}
		}
		if matches > 0 {
			total := maxInt(len(idea.Categories), len(prefs.categories))
			score += float64(matches) / float64(total) * weightCategories
		}
	}

	// Setting: all or nothing.
	if len(prefs.settings) > 0 && idea.Setting != "" {
		if _, ok := prefs.settings[strings.ToLower(idea.Setting)]; ok {
			score += weightSetting
		}
	}

	// Price level: full weight when inside the user's range, inclusive.
	if prefs.hasPrice && idea.PriceLevel > 0 {
		if idea.PriceLevel >= prefs.priceMin && idea.PriceLevel <= prefs.priceMax {
			score += weightPrice
		}
	}

	// Location: substring match against any preferred location.
	if len(prefs.locations) > 0 && idea.Location != "" {
		ideaLocation := strings.ToLower(idea.Location)
		for _, location := range prefs.locations {
			if strings.Contains(ideaLocation, location) {
				score += weightLocation
				break
			}
		}
	}

	// Popularity: saturates at 10 interested users.
	if idea.InterestedCount > 0 {
		score += math.Min(float64(idea.InterestedCount)/10, 1) * weightPopularity
	}

	// Interest bonus: idea categories containing a free-text interest.
	if len(user.Interests) > 0 && len(idea.Categories) > 0 {
		matches := 0
		for _, category := range idea.Categories {
			if categoryMatchesAnyInterest(category, user.Interests) {
				matches++
			}
		}
		if matches > 0 {
			score += math.Min(float64(matches)*interestBonusPerMatch, interestBonusCap)
		}
	}

	return clampInt(int(math.Round(score)), 100)
}

// ScoreUserCompatibility returns a 0-40 preference compatibility score
// between two users. It intentionally reads only the legacy flat-field
// preference shape; the nested Preferences shape does not participate
// here.
func (e *Engine) ScoreUserCompatibility(user1, user2 *UserProfile) int {
	if user1 == nil || user2 == nil {
		return 0
	}

	score := 0.0

	if len(user1.PreferredCategories) > 0 && len(user2.PreferredCategories) > 0 {
		common := countCommon(user1.PreferredCategories, user2.PreferredCategories)
		total := maxInt(len(user1.PreferredCategories), len(user2.PreferredCategories))
		score += float64(common) / float64(total) * compatWeightCategories
	}

	if len(user1.BudgetRange) >= 2 && len(user2.BudgetRange) >= 2 {
		overlap := rangeOverlap(
			user1.BudgetRange[0], user1.BudgetRange[1],
			user2.BudgetRange[0], user2.BudgetRange[1],
		)
		if overlap > 0 {
			score += overlap * compatWeightBudget
		}
	}

	if len(user1.PreferredSettings) > 0 && len(user2.PreferredSettings) > 0 {
		common := countCommon(user1.PreferredSettings, user2.PreferredSettings)
		total := maxInt(len(user1.PreferredSettings), len(user2.PreferredSettings))
		score += float64(common) / float64(total) * compatWeightSettings
	}

	return clampInt(int(math.Round(score)), 40)
}

// rangeOverlap returns the overlap of two inclusive integer ranges as a
// fraction (0-1) of the larger range. Two identical point ranges count as
// full overlap.
func rangeOverlap(min1, max1, min2, max2 int) float64 {
	overlapStart := maxInt(min1, min2)
	overlapEnd := minInt(max1, max2)

	if overlapStart > overlapEnd {
		return 0
	}

	maxRange := maxInt(max1-min1, max2-min2)
	if maxRange == 0 {
		return 1
	}

	return float64(overlapEnd-overlapStart) / float64(maxRange)
}

// FindPotentialMatches scores every candidate against the current user
// and returns them sorted by match score, highest first. The sort is
// stable: candidates with equal scores keep their input order. Nil inputs
// yield an empty result.
func (e *Engine) FindPotentialMatches(currentUser *UserProfile, otherUsers []*UserProfile, allDateIdeas []*DateIdea) []*MatchResult {
	if currentUser == nil || otherUsers == nil || allDateIdeas == nil {
		return []*MatchResult{}
	}

	liked := stringSet(currentUser.LikedDateIdeas)
	userLikedIdeas := make([]*DateIdea, 0, len(liked))
	for _, idea := range allDateIdeas {
		if _, ok := liked[idea.ID]; ok {
			userLikedIdeas = append(userLikedIdeas, idea)
		}
	}

	results := make([]*MatchResult, 0, len(otherUsers))
	for _, other := range otherUsers {
		if other == nil {
			continue
		}

		otherLiked := stringSet(other.LikedDateIdeas)
		shared := make([]*DateIdea, 0)
		for _, idea := range userLikedIdeas {
			if _, ok := otherLiked[idea.ID]; ok {
				shared = append(shared, idea)
			}
		}

		score := minInt(len(shared)*sharedIdeaPoints, sharedIdeaCap)
		score += e.ScoreUserCompatibility(currentUser, other)

		results = append(results, &MatchResult{
			User:                 other,
			MatchScore:           clampInt(score, 100),
			SharedDateIdeas:      shared,
			CompatibilityFactors: e.compatibilityFactors(currentUser, other, shared),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results
}

// compatibilityFactors builds the explanatory breakdown for a pair of
// users. Scores here are informational and never clamped or re-summed
// into the match score.
func (e *Engine) compatibilityFactors(user1, user2 *UserProfile, sharedIdeas []*DateIdea) *CompatibilityFactors {
	factors := &CompatibilityFactors{
		SharedInterests:     FactorScore{Details: []string{}},
		PreferenceAlignment: FactorScore{Details: []string{}},
		ActivityTypes:       FactorScore{Details: []string{}},
	}

	if len(sharedIdeas) > 0 {
		factors.SharedInterests.Score = float64(minInt(len(sharedIdeas)*10, 100))
		for _, idea := range sharedIdeas {
			factors.SharedInterests.Details = append(factors.SharedInterests.Details, idea.Title)
		}

		// Tally category frequency across the shared ideas and keep the
		// top three, ties broken by first appearance.
		counts := make(map[string]int)
		order := make([]string, 0)
		for _, idea := range sharedIdeas {
			for _, category := range idea.Categories {
				if _, seen := counts[category]; !seen {
					order = append(order, category)
				}
				counts[category]++
			}
		}
		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] > counts[order[j]]
		})
		top := order[:minInt(3, len(order))]

		factors.ActivityTypes.Score = float64(len(top) * 20)
		factors.ActivityTypes.Details = append(factors.ActivityTypes.Details, top...)
	}

	// Preference alignment uses the legacy flat categories, matching
	// ScoreUserCompatibility.
	common := make([]string, 0)
	for _, category := range user1.PreferredCategories {
		if containsString(user2.PreferredCategories, category) {
			common = append(common, category)
		}
	}
	if len(common) > 0 {
		factors.PreferenceAlignment.Score = float64(len(common) * 15)
		factors.PreferenceAlignment.Details = append(
			factors.PreferenceAlignment.Details,
			"Both enjoy "+strings.Join(common, ", ")+" activities",
		)
	}

	return factors
}

// RecommendDateIdeas scores all ideas for a user, drops the ones already
// rated, and returns the top results sorted by score (stable, highest
// first). A non-positive limit defaults to 10.
func (e *Engine) RecommendDateIdeas(user *UserProfile, allDateIdeas []*DateIdea, limit int) []*RecommendedIdea {
	if user == nil || allDateIdeas == nil {
		return []*RecommendedIdea{}
	}

	if limit <= 0 {
		limit = 10
	}

	rated := stringSet(user.LikedDateIdeas)
	for _, id := range user.DislikedDateIdeas {
		rated[id] = struct{}{}
	}

	recommendations := make([]*RecommendedIdea, 0, len(allDateIdeas))
	for _, idea := range allDateIdeas {
		if _, ok := rated[idea.ID]; ok {
			continue
		}

		recommendations = append(recommendations, &RecommendedIdea{
			DateIdea:   idea,
			MatchScore: e.ScoreDateIdea(user, idea),
			Reason:     e.GenerateMatchReason(user, idea),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	return recommendations
}

func categoryMatchesAnyInterest(category string, interests []string) bool {
	lower := strings.ToLower(category)
	for _, interest := range interests {
		if strings.Contains(lower, strings.ToLower(interest)) {
			return true
		}
	}
	return false
}

func countCommon(values1, values2 []string) int {
	count := 0
	for _, v := range values1 {
		if containsString(values2, v) {
			count++
		}
	}
	return count
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func clampInt(v, max int) int {
	if v > max {
		return max
	}
	if v < 0 {
		return 0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
