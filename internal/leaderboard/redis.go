package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
	"github.com/Eloquas/Eloverit-sub002/internal/progression"
)

const (
	defaultRedisPrefix = "eloverit:leaderboard"
	redisDialTimeout   = 5 * time.Second
)

// RedisIndex mirrors all-time point totals into a sorted set so the
// all-time leaderboard can be served without scanning user stats.
// Scores are absolute totals and only ever rise, so replaying or
// reordering events is harmless.
type RedisIndex struct {
	rdb       goredis.UniversalClient
	pointsKey string
	namesKey  string
	cache     *Cache
}

// NewRedisIndex connects to addr and verifies the connection
func NewRedisIndex(ctx context.Context, addr string) (*RedisIndex, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: redisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisIndexWithClient(rdb, defaultRedisPrefix), nil
}

// NewRedisIndexWithClient wraps an existing client under the given key prefix
func NewRedisIndexWithClient(rdb goredis.UniversalClient, prefix string) *RedisIndex {
	return &RedisIndex{
		rdb:       rdb,
		pointsKey: prefix + ":points",
		namesKey:  prefix + ":names",
	}
}

// PurgeOnUpdate drops c whenever the index changes
func (r *RedisIndex) PurgeOnUpdate(c *Cache) {
	r.cache = c
}

func (r *RedisIndex) purge() {
	if r.cache != nil {
		r.cache.Purge()
	}
}

// SetTotal records a user's all-time total and display name. A total lower
// than the stored one is ignored.
func (r *RedisIndex) SetTotal(ctx context.Context, userID, name string, total int) error {
	pipe := r.rdb.TxPipeline()
	pipe.ZAddArgs(ctx, r.pointsKey, goredis.ZAddArgs{
		GT:      true,
		Members: []goredis.Z{{Score: float64(total), Member: userID}},
	})
	pipe.HSet(ctx, r.namesKey, userID, name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set total: %w", err)
	}
	return nil
}

// Rebuild replaces the index contents with stats
func (r *RedisIndex) Rebuild(ctx context.Context, stats []domain.UserStats) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.pointsKey, r.namesKey)
	for i := range stats {
		pipe.ZAdd(ctx, r.pointsKey, goredis.Z{Score: float64(stats[i].TotalPoints), Member: stats[i].UserID})
		pipe.HSet(ctx, r.namesKey, stats[i].UserID, stats[i].Name())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis rebuild: %w", err)
	}
	r.purge()
	return nil
}

// Top returns up to limit ranked entries; limit <= 0 returns everyone.
// Ties are ordered by user id ascending, matching the store's ranking.
func (r *RedisIndex) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	zs, err := r.rdb.ZRevRangeWithScores(ctx, r.pointsKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis top: %w", err)
	}
	zs, err = r.completeTies(ctx, zs, limit)
	if err != nil {
		return nil, err
	}
	if len(zs) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	ids := make([]string, len(zs))
	for i, z := range zs {
		ids[i] = fmt.Sprint(z.Member)
	}
	names, err := r.rdb.HMGet(ctx, r.namesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis names: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		points := int(z.Score)
		name := ids[i]
		if s, ok := names[i].(string); ok && s != "" {
			name = s
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID: ids[i],
			Name:   name,
			Points: points,
			Level:  progression.Level(points),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return Rank(entries), nil
}

// completeTies widens a limited range so every member tied with the last
// score is present; otherwise the cut would keep the highest ids.
func (r *RedisIndex) completeTies(ctx context.Context, zs []goredis.Z, limit int) ([]goredis.Z, error) {
	if limit <= 0 || len(zs) < limit {
		return zs, nil
	}
	last := zs[len(zs)-1].Score
	floor := strconv.FormatFloat(last, 'f', -1, 64)
	tied, err := r.rdb.ZRangeByScoreWithScores(ctx, r.pointsKey, &goredis.ZRangeBy{Min: floor, Max: floor}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis top ties: %w", err)
	}

	out := make([]goredis.Z, 0, len(zs)+len(tied))
	for _, z := range zs {
		if z.Score != last {
			out = append(out, z)
		}
	}
	return append(out, tied...), nil
}

// HandleUnlocked is an event.Handler keeping the index current
func (r *RedisIndex) HandleUnlocked(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	name := payload.DisplayName
	if name == "" {
		name = payload.UserID
	}
	if err := r.SetTotal(ctx, payload.UserID, name, payload.TotalPoints); err != nil {
		logger.FromContext(ctx).Warn("Failed to update leaderboard index", "user_id", payload.UserID, "error", err)
		return err
	}
	r.purge()
	return nil
}

// HandleActivity is an event.Handler that lists users who have recorded
// activity but unlocked nothing yet, at zero points
func (r *RedisIndex) HandleActivity(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ActivityRecordedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	added := pipe.ZAddArgs(ctx, r.pointsKey, goredis.ZAddArgs{
		NX:      true,
		Members: []goredis.Z{{Score: 0, Member: payload.UserID}},
	})
	pipe.HSetNX(ctx, r.namesKey, payload.UserID, payload.UserID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis add member: %w", err)
	}
	if added.Val() > 0 {
		r.purge()
	}
	return nil
}

// Ping checks the Redis connection
func (r *RedisIndex) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the underlying client
func (r *RedisIndex) Close() error {
	return r.rdb.Close()
}
