package achievement

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eloquas/Eloverit-sub002/internal/catalog"
	"github.com/Eloquas/Eloverit-sub002/internal/clock"
	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/leaderboard"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

// Service defines the achievement engine operations
type Service interface {
	// RecordActivity applies one activity to the user's stats and returns
	// the achievements it newly unlocked, in catalog order.
	RecordActivity(ctx context.Context, userID, activityType string, metadata map[string]any) ([]domain.UnlockEvent, error)
	// Evaluate unlocks everything the user's current stats satisfy
	Evaluate(ctx context.Context, userID string) ([]domain.UnlockEvent, error)
	GetUserAchievements(ctx context.Context, userID string) (*domain.UserAchievements, error)
	GetLeaderboard(ctx context.Context, scope domain.LeaderboardScope) ([]domain.LeaderboardEntry, error)
	GetAllAchievements() []domain.Achievement
	GetAchievementByID(id string) (domain.Achievement, bool)
}

// Ranker serves a pre-ranked all-time leaderboard
type Ranker interface {
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	repo      repository.Achievement
	catalog   *catalog.Catalog
	publisher event.Publisher
	cache     *leaderboard.Cache
	index     Ranker
	clock     clock.Clock
}

// NewService creates the engine. publisher, cache and index may be nil.
// It fails if the catalog uses a criterion the evaluator cannot measure.
func NewService(repo repository.Achievement, cat *catalog.Catalog, publisher event.Publisher, cache *leaderboard.Cache, index Ranker, clk clock.Clock) (Service, error) {
	for _, def := range cat.ListAll() {
		if _, ok := criterionValue(def.Criterion.Type, progressInput{}); !ok {
			return nil, fmt.Errorf("%w: %s: %q uses %q", domain.ErrUnknownCriterion, ErrMsgMissingExtractor, def.ID, def.Criterion.Type)
		}
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		repo:      repo,
		catalog:   cat,
		publisher: publisher,
		cache:     cache,
		index:     index,
		clock:     clk,
	}, nil
}

func (s *service) GetAllAchievements() []domain.Achievement {
	return s.catalog.ListAll()
}

func (s *service) GetAchievementByID(id string) (domain.Achievement, bool) {
	return s.catalog.GetByID(id)
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrUserIDRequired)
	}
	return userID, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

func (s *service) invalidateLeaderboards() {
	if s.cache != nil {
		s.cache.Purge()
	}
}
