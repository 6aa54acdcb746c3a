// Package sqlite is the single-node achievement store. WAL mode lets
// readers proceed during writes; every WithinUserTx opens with BEGIN
// IMMEDIATE so the read-check-write region holds the write lock from its
// first statement.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Eloquas/Eloverit-sub002/internal/database/migrations"
	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

// timeLayout is fixed width so stored timestamps compare correctly as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const statsColumns = `user_id, display_name, total_emails, total_linkedin_posts, total_calls_analyzed,
	total_campaigns, accounts_researched, total_points, highest_trust_score, best_story_score,
	current_streak, longest_streak, last_activity_date, created_at, updated_at`

// Store implements repository.Achievement on SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Achievement = (*Store)(nil)

// Open opens (or creates) the database at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := migrations.Up(ctx, db, migrations.SQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.FromContext(ctx).Info("Opened sqlite store", "path", path)
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// WithinUserTx runs fn inside an immediate transaction
func (s *Store) WithinUserTx(ctx context.Context, userID string, fn func(tx repository.AchievementTx) error) error {
	var tx *sql.Tx
	err := retryOp(ctx, defaultRetryConfig, func() error {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := formatTime(s.now())
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_stats (user_id, created_at, updated_at) VALUES (?, ?, ?)`,
		userID, now, now); err != nil {
		return fmt.Errorf("failed to ensure user stats: %w", err)
	}

	stats, err := scanStats(tx.QueryRowContext(ctx,
		`SELECT `+statsColumns+` FROM user_stats WHERE user_id = ?`, userID))
	if err != nil {
		return fmt.Errorf("failed to read user stats: %w", err)
	}

	if err := fn(&userTx{tx: tx, userID: userID, stats: stats}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListStats returns every user's stats ordered by user id
func (s *Store) ListStats(ctx context.Context) ([]domain.UserStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+statsColumns+` FROM user_stats ORDER BY user_id`)
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
	return out, rows.Err()
}

// SumPointsSince totals unlock points at or after since, per user
func (s *Store) SumPointsSince(ctx context.Context, since time.Time) ([]domain.PeriodPoints, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.user_id, s.display_name, SUM(u.points)
		FROM achievement_unlocks u
		JOIN user_stats s ON s.user_id = u.user_id
		WHERE u.unlocked_at >= ?
		GROUP BY u.user_id, s.display_name
		HAVING SUM(u.points) > 0
		ORDER BY u.user_id`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query period points: %w", err)
	}
	defer rows.Close()

	var out []domain.PeriodPoints
	for rows.Next() {
		var p domain.PeriodPoints
		if err := rows.Scan(&p.UserID, &p.Name, &p.Points); err != nil {
			return nil, fmt.Errorf("failed to scan period points: %w", err)
		}
		if p.Name == "" {
			p.Name = p.UserID
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ResetStaleStreaks zeroes current streaks last touched before cutoff
func (s *Store) ResetStaleStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	var affected int64
	err := retryOp(ctx, defaultRetryConfig, func() error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE user_stats
			SET current_streak = 0, updated_at = ?
			WHERE current_streak > 0
			  AND (last_activity_date IS NULL OR last_activity_date < ?)`,
			formatTime(s.now()), formatTime(cutoff))
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reset stale streaks: %w", err)
	}
	return affected, nil
}

type userTx struct {
	tx     *sql.Tx
	userID string
	stats  *domain.UserStats
}

func (t *userTx) Stats(ctx context.Context) (*domain.UserStats, error) {
	cp := *t.stats
	return &cp, nil
}

func (t *userTx) SaveStats(ctx context.Context, stats *domain.UserStats) error {
	if stats.UserID != t.userID {
		return fmt.Errorf("%w: transaction for %q cannot save stats of %q", domain.ErrInvalidInput, t.userID, stats.UserID)
	}
	var last any
	if stats.LastActivityDate != nil {
		last = formatTime(*stats.LastActivityDate)
	}
	_, err := t.tx.ExecContext(ctx, `
		UPDATE user_stats SET
			display_name = ?, total_emails = ?, total_linkedin_posts = ?, total_calls_analyzed = ?,
			total_campaigns = ?, accounts_researched = ?, total_points = ?, highest_trust_score = ?,
			best_story_score = ?, current_streak = ?, longest_streak = ?, last_activity_date = ?,
			updated_at = ?
		WHERE user_id = ?`,
		stats.DisplayName, stats.TotalEmails, stats.TotalLinkedInPosts, stats.TotalCallsAnalyzed,
		stats.TotalCampaigns, stats.AccountsResearched, stats.TotalPoints, stats.HighestTrustScore,
		stats.BestStoryScore, stats.CurrentStreak, stats.LongestStreak, last,
		formatTime(stats.UpdatedAt), stats.UserID)
	if err != nil {
		return fmt.Errorf("failed to save user stats: %w", err)
	}
	cp := *stats
	t.stats = &cp
	return nil
}

func (t *userTx) Unlocks(ctx context.Context) ([]domain.UnlockRecord, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT user_id, achievement_id, points, unlocked_at
		FROM achievement_unlocks WHERE user_id = ?
		ORDER BY unlocked_at, achievement_id`, t.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocks: %w", err)
	}
	defer rows.Close()

	var out []domain.UnlockRecord
	for rows.Next() {
		var (
			rec domain.UnlockRecord
			at  string
		)
		if err := rows.Scan(&rec.UserID, &rec.AchievementID, &rec.Points, &at); err != nil {
			return nil, fmt.Errorf("failed to scan unlock: %w", err)
		}
		if rec.UnlockedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *userTx) InsertUnlock(ctx context.Context, rec domain.UnlockRecord) (bool, error) {
	if rec.UserID != t.userID {
		return false, fmt.Errorf("%w: transaction for %q cannot unlock for %q", domain.ErrInvalidInput, t.userID, rec.UserID)
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO achievement_unlocks (user_id, achievement_id, points, unlocked_at)
		VALUES (?, ?, ?, ?)`,
		rec.UserID, rec.AchievementID, rec.Points, formatTime(rec.UnlockedAt))
	if err != nil {
		return false, fmt.Errorf("failed to insert unlock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to insert unlock: %w", err)
	}
	return n == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(row rowScanner) (*domain.UserStats, error) {
	var (
		st                   domain.UserStats
		last                 sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&st.UserID, &st.DisplayName, &st.TotalEmails, &st.TotalLinkedInPosts, &st.TotalCallsAnalyzed,
		&st.TotalCampaigns, &st.AccountsResearched, &st.TotalPoints, &st.HighestTrustScore, &st.BestStoryScore,
		&st.CurrentStreak, &st.LongestStreak, &last, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if last.Valid {
		t, err := parseTime(last.String)
		if err != nil {
			return nil, err
		}
		st.LastActivityDate = &t
	}
	if st.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if st.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}
