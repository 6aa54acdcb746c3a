package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Eloquas/Eloverit-sub002/internal/event"
)

type fakeBus struct {
	subscribed []event.Type
}

func (f *fakeBus) Subscribe(eventType event.Type, handler event.Handler) {
	f.subscribed = append(f.subscribed, eventType)
}

func TestEventMetricsCollector_Register(t *testing.T) {
	bus := &fakeBus{}
	NewEventMetricsCollector().Register(bus)

	assert.ElementsMatch(t, []event.Type{
		event.ActivityRecorded, event.AchievementUnlocked, event.LevelUp, event.StreakDecayComplete,
	}, bus.subscribed)
}

func TestEventMetricsCollector_HandleEvent(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()

	unlockedBefore := testutil.ToFloat64(AchievementsUnlocked.WithLabelValues("engagement", "bronze"))
	pointsBefore := testutil.ToFloat64(PointsAwarded)
	activityBefore := testutil.ToFloat64(ActivitiesRecorded.WithLabelValues("email_sent"))
	resetBefore := testutil.ToFloat64(StreaksReset)

	assert.NoError(t, c.HandleEvent(ctx, event.NewActivityRecordedEvent("u1", "email_sent", time.Now())))
	assert.NoError(t, c.HandleEvent(ctx, event.NewAchievementUnlockedEvent(event.AchievementUnlockedPayloadV1{
		UserID: "u1", AchievementID: "first_email", Category: "engagement", Tier: "bronze", Points: 10,
	})))
	// dead-letter replays arrive as generic maps
	assert.NoError(t, c.HandleEvent(ctx, event.Event{
		Type:    event.StreakDecayComplete,
		Payload: map[string]interface{}{"records_affected": 3},
	}))

	assert.Equal(t, activityBefore+1, testutil.ToFloat64(ActivitiesRecorded.WithLabelValues("email_sent")))
	assert.Equal(t, unlockedBefore+1, testutil.ToFloat64(AchievementsUnlocked.WithLabelValues("engagement", "bronze")))
	assert.Equal(t, pointsBefore+10, testutil.ToFloat64(PointsAwarded))
	assert.Equal(t, resetBefore+3, testutil.ToFloat64(StreaksReset))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.AchievementUnlocked)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.AchievementUnlocked,
		Payload: map[string]interface{}{"points": "not a number"},
	})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.AchievementUnlocked))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/users/{userID}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/users/{userID}", "418")))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}
