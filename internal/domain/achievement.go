package domain

// Category groups achievements for display
type Category string

const (
	CategoryEngagement  Category = "engagement"
	CategoryContent     Category = "content"
	CategoryPerformance Category = "performance"
	CategoryMilestone   Category = "milestone"
	CategorySpecial     Category = "special"
)

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryEngagement, CategoryContent, CategoryPerformance, CategoryMilestone, CategorySpecial:
		return true
	}
	return false
}

// Tier is informational but drives rarity
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Valid reports whether t is a known tier
func (t Tier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// Rarity is derived from tier and points, never stored
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// CriterionType is the closed set of progress measures an achievement can test.
// Every member must be handled by the evaluator's extractor switch.
type CriterionType string

const (
	CriterionEmailsSent           CriterionType = "emails_sent"
	CriterionLinkedInPosts        CriterionType = "linkedin_posts"
	CriterionTrustScore           CriterionType = "trust_score"
	CriterionStoryScore           CriterionType = "story_score"
	CriterionStreakDays           CriterionType = "streak_days"
	CriterionCallsAnalyzed        CriterionType = "calls_analyzed"
	CriterionCampaignsCreated     CriterionType = "campaigns_created"
	CriterionAccountsResearched   CriterionType = "accounts_researched"
	CriterionTotalPoints          CriterionType = "total_points"
	CriterionAchievementsUnlocked CriterionType = "achievements_unlocked"
)

// AllCriterionTypes lists every criterion type in declaration order
func AllCriterionTypes() []CriterionType {
	return []CriterionType{
		CriterionEmailsSent,
		CriterionLinkedInPosts,
		CriterionTrustScore,
		CriterionStoryScore,
		CriterionStreakDays,
		CriterionCallsAnalyzed,
		CriterionCampaignsCreated,
		CriterionAccountsResearched,
		CriterionTotalPoints,
		CriterionAchievementsUnlocked,
	}
}

// IsComposite reports whether the criterion depends on other unlocks
func (c CriterionType) IsComposite() bool {
	return c == CriterionTotalPoints || c == CriterionAchievementsUnlocked
}

// Criterion is the unlock rule of an achievement
type Criterion struct {
	Type      CriterionType `json:"type"`
	Threshold float64       `json:"threshold"`
}

// Achievement is an immutable catalog definition
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Points      int       `json:"points"`
	Category    Category  `json:"category"`
	Tier        Tier      `json:"tier"`
	Criterion   Criterion `json:"criterion"`
}
