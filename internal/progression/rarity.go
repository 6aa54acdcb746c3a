package progression

import "github.com/Eloquas/Eloverit-sub002/internal/domain"

// Rarity point floors
const (
	LegendaryPoints = 200
	EpicPoints      = 100
	RarePoints      = 50
)

// Rarity classifies a definition by tier or points, first match wins
func Rarity(a domain.Achievement) domain.Rarity {
	switch {
	case a.Tier == domain.TierPlatinum || a.Points >= LegendaryPoints:
		return domain.RarityLegendary
	case a.Tier == domain.TierGold || a.Points >= EpicPoints:
		return domain.RarityEpic
	case a.Tier == domain.TierSilver || a.Points >= RarePoints:
		return domain.RarityRare
	default:
		return domain.RarityCommon
	}
}
