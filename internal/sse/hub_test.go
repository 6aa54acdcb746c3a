package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.Events:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.Events:
		t.Fatalf("unexpected event %s", e.Type)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		event  Event
		want   bool
	}{
		{"empty filter", Filter{}, Event{Type: EventTypeUnlocked, UserID: "u1"}, true},
		{"type match", Filter{Types: ParseTypes(EventTypeUnlocked)}, Event{Type: EventTypeUnlocked}, true},
		{"type mismatch", Filter{Types: ParseTypes(EventTypeLevelUp)}, Event{Type: EventTypeUnlocked}, false},
		{"user match", Filter{UserID: "u1"}, Event{Type: EventTypeUnlocked, UserID: "u1"}, true},
		{"user mismatch", Filter{UserID: "u1"}, Event{Type: EventTypeUnlocked, UserID: "u2"}, false},
		{"user-less event reaches user filter", Filter{UserID: "u1"}, Event{Type: EventTypeStreakDecay}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.matches(tt.event))
		})
	}
}

func TestParseTypes(t *testing.T) {
	assert.Nil(t, ParseTypes(""))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, ParseTypes("a, b,,"))
}

func TestHub_BroadcastRespectsFilters(t *testing.T) {
	h := startHub(t)

	all := h.Register(Filter{})
	alice := h.Register(Filter{UserID: "alice"})
	levels := h.Register(Filter{Types: ParseTypes(EventTypeLevelUp)})
	waitForClients(t, h, 3)

	h.Broadcast(EventTypeUnlocked, "bob", map[string]string{"achievement_id": "first_email"})

	e := receive(t, all)
	assert.Equal(t, EventTypeUnlocked, e.Type)
	assert.Equal(t, "bob", e.UserID)
	assert.NotEmpty(t, e.ID)
	assertNoEvent(t, alice)
	assertNoEvent(t, levels)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	h := startHub(t)

	c := h.Register(Filter{})
	waitForClients(t, h, 1)

	h.Unregister(c.ID)
	waitForClients(t, h, 0)

	_, ok := <-c.Events
	assert.False(t, ok)
}

func TestHub_StopReleasesGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	h := NewHub()
	h.Start()
	c := h.Register(Filter{})
	waitForClients(t, h, 1)

	h.Stop()
	h.Stop()
	h.Unregister(c.ID)

	_, ok := <-c.Events
	assert.False(t, ok)
	checker.Check(0)
}

func TestFormatMessage(t *testing.T) {
	msg, err := FormatMessage(Event{ID: "1", Type: EventTypeLevelUp, Timestamp: 10, Payload: map[string]int{"new_level": 3}})
	require.NoError(t, err)

	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: 1\nevent: progression.level_up\ndata: {"))
	assert.True(t, strings.HasSuffix(text, "\n\n"))
	assert.Contains(t, text, `"new_level":3`)

	msg, err = FormatMessage(Event{Type: EventTypeKeepalive})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(msg), "event: keepalive\n"))
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	h := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(h).Register(bus)

	c := h.Register(Filter{UserID: "alice"})
	waitForClients(t, h, 1)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewAchievementUnlockedEvent(event.AchievementUnlockedPayloadV1{
		UserID:        "alice",
		AchievementID: "first_email",
		Points:        10,
	})))
	e := receive(t, c)
	assert.Equal(t, EventTypeUnlocked, e.Type)
	assert.Equal(t, "alice", e.UserID)

	require.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent(event.LevelUpPayloadV1{UserID: "alice", OldLevel: 1, NewLevel: 2})))
	assert.Equal(t, EventTypeLevelUp, receive(t, c).Type)

	require.NoError(t, bus.Publish(ctx, event.NewStreakDecayCompleteEvent(time.Now(), 4)))
	assert.Equal(t, EventTypeStreakDecay, receive(t, c).Type)

	// a malformed payload is dropped without failing the publish
	require.NoError(t, bus.Publish(ctx, event.Event{Type: event.LevelUp, Payload: "garbage"}))
	assertNoEvent(t, c)
}

func TestHandler_StreamsEvents(t *testing.T) {
	h := startHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/stream?user_id=alice&types=achievement.unlocked", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Handler(h)(rec, req)
	}()

	waitForClients(t, h, 1)
	h.Broadcast(EventTypeLevelUp, "alice", nil)
	h.Broadcast(EventTypeUnlocked, "bob", nil)
	h.Broadcast(EventTypeUnlocked, "alice", map[string]string{"achievement_id": "first_email"})

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: connected\n")
	assert.Contains(t, body, "first_email")
	assert.NotContains(t, body, "event: progression.level_up")
	assert.Equal(t, 1, strings.Count(body, "event: achievement.unlocked"))
	waitForClients(t, h, 0)
}
