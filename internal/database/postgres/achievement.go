package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

const statsColumns = `user_id, display_name, total_emails, total_linkedin_posts, total_calls_analyzed,
	total_campaigns, accounts_researched, total_points, highest_trust_score, best_story_score,
	current_streak, longest_streak, last_activity_date, created_at, updated_at`

// AchievementRepository implements repository.Achievement for PostgreSQL.
// The user's stats row is locked with SELECT ... FOR UPDATE for the length
// of WithinUserTx, which serializes evaluators for the same user.
type AchievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

var _ repository.Achievement = (*AchievementRepository)(nil)

// WithinUserTx runs fn in a transaction holding the user's row lock
func (r *AchievementRepository) WithinUserTx(ctx context.Context, userID string, fn func(tx repository.AchievementTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_stats (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return fmt.Errorf("failed to ensure user stats: %w", err)
	}

	stats, err := scanStats(tx.QueryRow(ctx,
		`SELECT `+statsColumns+` FROM user_stats WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		return fmt.Errorf("failed to lock user stats: %w", err)
	}

	if err := fn(&achievementTx{tx: tx, userID: userID, stats: stats}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListStats returns every user's stats ordered by user id
func (r *AchievementRepository) ListStats(ctx context.Context) ([]domain.UserStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+statsColumns+` FROM user_stats ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user stats: %w", err)
	}
	defer rows.Close()

	var out []domain.UserStats
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user stats: %w", err)
		}
		out = append(out, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user stats: %w", err)
	}
	return out, nil
}

// SumPointsSince totals unlock points at or after since, per user
func (r *AchievementRepository) SumPointsSince(ctx context.Context, since time.Time) ([]domain.PeriodPoints, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.user_id, s.display_name, SUM(u.points)
		FROM achievement_unlocks u
		JOIN user_stats s ON s.user_id = u.user_id
		WHERE u.unlocked_at >= $1
		GROUP BY u.user_id, s.display_name
		HAVING SUM(u.points) > 0
		ORDER BY u.user_id`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query period points: %w", err)
	}
	defer rows.Close()

	var out []domain.PeriodPoints
	for rows.Next() {
		var (
			p     domain.PeriodPoints
			total int64
		)
		if err := rows.Scan(&p.UserID, &p.Name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan period points: %w", err)
		}
		if p.Name == "" {
			p.Name = p.UserID
		}
		p.Points = int(total)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate period points: %w", err)
	}
	return out, nil
}

// ResetStaleStreaks zeroes current streaks last touched before cutoff
func (r *AchievementRepository) ResetStaleStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_stats
		SET current_streak = 0, updated_at = NOW()
		WHERE current_streak > 0
		  AND (last_activity_date IS NULL OR last_activity_date < $1)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reset stale streaks: %w", err)
	}
	return tag.RowsAffected(), nil
}

type achievementTx struct {
	tx     pgx.Tx
	userID string
	stats  *domain.UserStats
}

func (t *achievementTx) Stats(ctx context.Context) (*domain.UserStats, error) {
	cp := *t.stats
	return &cp, nil
}

func (t *achievementTx) SaveStats(ctx context.Context, stats *domain.UserStats) error {
	if stats.UserID != t.userID {
		return fmt.Errorf("%w: transaction for %q cannot save stats of %q", domain.ErrInvalidInput, t.userID, stats.UserID)
	}
	_, err := t.tx.Exec(ctx, `
		UPDATE user_stats SET
			display_name = $2, total_emails = $3, total_linkedin_posts = $4, total_calls_analyzed = $5,
			total_campaigns = $6, accounts_researched = $7, total_points = $8, highest_trust_score = $9,
			best_story_score = $10, current_streak = $11, longest_streak = $12, last_activity_date = $13,
			updated_at = $14
		WHERE user_id = $1`,
		stats.UserID, stats.DisplayName, stats.TotalEmails, stats.TotalLinkedInPosts, stats.TotalCallsAnalyzed,
		stats.TotalCampaigns, stats.AccountsResearched, stats.TotalPoints, stats.HighestTrustScore,
		stats.BestStoryScore, stats.CurrentStreak, stats.LongestStreak, toTimestamptz(stats.LastActivityDate),
		stats.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user stats: %w", err)
	}
	cp := *stats
	t.stats = &cp
	return nil
}

func (t *achievementTx) Unlocks(ctx context.Context) ([]domain.UnlockRecord, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT user_id, achievement_id, points, unlocked_at
		FROM achievement_unlocks WHERE user_id = $1
		ORDER BY unlocked_at, achievement_id`, t.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocks: %w", err)
	}
	defer rows.Close()

	var out []domain.UnlockRecord
	for rows.Next() {
		var rec domain.UnlockRecord
		if err := rows.Scan(&rec.UserID, &rec.AchievementID, &rec.Points, &rec.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlock: %w", err)
		}
		rec.UnlockedAt = rec.UnlockedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unlocks: %w", err)
	}
	return out, nil
}

func (t *achievementTx) InsertUnlock(ctx context.Context, rec domain.UnlockRecord) (bool, error) {
	if rec.UserID != t.userID {
		return false, fmt.Errorf("%w: transaction for %q cannot unlock for %q", domain.ErrInvalidInput, t.userID, rec.UserID)
	}
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO achievement_unlocks (user_id, achievement_id, points, unlocked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		rec.UserID, rec.AchievementID, rec.Points, rec.UnlockedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert unlock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanStats(row pgx.Row) (*domain.UserStats, error) {
	var (
		st           domain.UserStats
		lastActivity pgtype.Timestamptz
	)
	err := row.Scan(&st.UserID, &st.DisplayName, &st.TotalEmails, &st.TotalLinkedInPosts, &st.TotalCallsAnalyzed,
		&st.TotalCampaigns, &st.AccountsResearched, &st.TotalPoints, &st.HighestTrustScore, &st.BestStoryScore,
		&st.CurrentStreak, &st.LongestStreak, &lastActivity, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	st.LastActivityDate = ptrTime(lastActivity)
	st.CreatedAt = st.CreatedAt.UTC()
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}
