package catalog

import (
	"fmt"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// Default builds and seals the authoritative achievement catalog.
func Default() (*Catalog, error) {
	c := New()
	for _, def := range DefaultAchievements() {
		if err := c.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register default achievement: %w", err)
		}
	}
	c.Seal()
	return c, nil
}

func def(id, name, desc, icon string, points int, cat domain.Category, tier domain.Tier, ct domain.CriterionType, threshold float64) domain.Achievement {
	return domain.Achievement{
		ID:          id,
		Name:        name,
		Description: desc,
		Icon:        icon,
		Points:      points,
		Category:    cat,
		Tier:        tier,
		Criterion:   domain.Criterion{Type: ct, Threshold: threshold},
	}
}

// DefaultAchievements lists the shipped definitions in evaluation order
func DefaultAchievements() []domain.Achievement {
	const (
		eng  = domain.CategoryEngagement
		cont = domain.CategoryContent
		perf = domain.CategoryPerformance
		mile = domain.CategoryMilestone
		spcl = domain.CategorySpecial
	)

	return []domain.Achievement{
		// Email outreach
		def("first_email", "First Contact", "Send your first email", "📧", 10, eng, domain.TierBronze, domain.CriterionEmailsSent, 1),
		def("email_enthusiast", "Email Enthusiast", "Send 10 emails", "✉️", 25, eng, domain.TierBronze, domain.CriterionEmailsSent, 10),
		def("email_pro", "Email Pro", "Send 50 emails", "📨", 75, eng, domain.TierSilver, domain.CriterionEmailsSent, 50),
		def("email_master", "Email Master", "Send 100 emails", "📬", 150, eng, domain.TierGold, domain.CriterionEmailsSent, 100),
		def("email_legend", "Email Legend", "Send 500 emails", "🏆", 300, eng, domain.TierPlatinum, domain.CriterionEmailsSent, 500),

		// LinkedIn content
		def("first_post", "Voice Found", "Publish your first LinkedIn post", "💼", 10, cont, domain.TierBronze, domain.CriterionLinkedInPosts, 1),
		def("thought_leader", "Thought Leader", "Publish 10 LinkedIn posts", "💡", 50, cont, domain.TierSilver, domain.CriterionLinkedInPosts, 10),
		def("content_machine", "Content Machine", "Publish 50 LinkedIn posts", "🚀", 150, cont, domain.TierGold, domain.CriterionLinkedInPosts, 50),

		// Message quality
		def("trusted_advisor", "Trusted Advisor", "Reach a trust score of 80", "🤝", 50, perf, domain.TierSilver, domain.CriterionTrustScore, 80),
		def("trust_champion", "Trust Champion", "Reach a trust score of 95", "🛡️", 100, perf, domain.TierGold, domain.CriterionTrustScore, 95),
		def("storyteller", "Storyteller", "Reach a story score of 15", "📖", 40, perf, domain.TierBronze, domain.CriterionStoryScore, 15),
		def("perfect_story", "Perfect Story", "Reach a perfect story score of 20", "🌟", 120, perf, domain.TierGold, domain.CriterionStoryScore, 20),

		// Calls, campaigns, research
		def("call_analyst", "Call Analyst", "Analyze 5 calls", "📞", 25, perf, domain.TierBronze, domain.CriterionCallsAnalyzed, 5),
		def("call_scientist", "Call Scientist", "Analyze 25 calls", "🔬", 75, perf, domain.TierSilver, domain.CriterionCallsAnalyzed, 25),
		def("campaign_starter", "Campaign Starter", "Create your first campaign", "🎯", 15, eng, domain.TierBronze, domain.CriterionCampaignsCreated, 1),
		def("campaign_strategist", "Campaign Strategist", "Create 10 campaigns", "♟️", 80, eng, domain.TierSilver, domain.CriterionCampaignsCreated, 10),
		def("researcher", "Researcher", "Research 5 accounts", "🔎", 20, eng, domain.TierBronze, domain.CriterionAccountsResearched, 5),
		def("account_expert", "Account Expert", "Research 25 accounts", "🗂️", 60, eng, domain.TierSilver, domain.CriterionAccountsResearched, 25),

		// Consistency
		def("streak_starter", "Streak Starter", "Stay active 3 days in a row", "✨", 15, mile, domain.TierBronze, domain.CriterionStreakDays, 3),
		def("week_warrior", "Week Warrior", "Stay active 7 days in a row", "🔥", 50, mile, domain.TierSilver, domain.CriterionStreakDays, 7),
		def("fortnight_focus", "Fortnight Focus", "Stay active 14 days in a row", "⚡", 100, mile, domain.TierGold, domain.CriterionStreakDays, 14),
		def("unstoppable", "Unstoppable", "Stay active 30 days in a row", "👑", 250, mile, domain.TierPlatinum, domain.CriterionStreakDays, 30),

		// Composite
		def("collector", "Collector", "Unlock 10 achievements", "🎖️", 100, spcl, domain.TierGold, domain.CriterionAchievementsUnlocked, 10),
		def("point_hoarder", "Point Hoarder", "Earn 1000 points", "💰", 200, spcl, domain.TierPlatinum, domain.CriterionTotalPoints, 1000),
	}
}
