package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(AchievementUnlocked, func(ctx context.Context, evt Event) error {
		payload, err := DecodePayload[AchievementUnlockedPayloadV1](evt.Payload)
		require.NoError(t, err)
		assert.Equal(t, "first_email", payload.AchievementID)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewAchievementUnlockedEvent(AchievementUnlockedPayloadV1{
		UserID:        "u1",
		AchievementID: "first_email",
		Points:        10,
	}))

	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody.listens"}))
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, evt Event) error {
		count++
		return nil
	}

	bus.Subscribe(LevelUp, handler)
	bus.Subscribe(LevelUp, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: LevelUp}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	called := false

	bus.Subscribe(LevelUp, func(ctx context.Context, evt Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(LevelUp, func(ctx context.Context, evt Event) error {
		called = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: LevelUp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
	assert.True(t, called, "later handlers still run after a failure")
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{
		"user_id":   "u1",
		"old_level": 1,
		"new_level": 2,
		"title":     "Sales Apprentice",
	}

	payload, err := DecodePayload[LevelUpPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, 2, payload.NewLevel)
}

func TestDecodePayload_Pointer(t *testing.T) {
	payload, err := DecodePayload[LevelUpPayloadV1](&LevelUpPayloadV1{UserID: "u2", NewLevel: 4})
	require.NoError(t, err)
	assert.Equal(t, "u2", payload.UserID)

	_, err = DecodePayload[LevelUpPayloadV1]("not an object")
	assert.Error(t, err)
}

func TestEventConstructors(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	evt := NewActivityRecordedEvent("u1", "email_sent", at)
	assert.Equal(t, ActivityRecorded, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, at.Unix(), evt.Payload.(ActivityRecordedPayloadV1).Timestamp)

	unlock := NewAchievementUnlockedEvent(AchievementUnlockedPayloadV1{AchievementID: "first_post"})
	assert.Equal(t, "first_post", unlock.GetMetadataValue("achievement_id"))
	assert.Nil(t, evt.GetMetadataValue("achievement_id"))

	decay := NewStreakDecayCompleteEvent(at, 3)
	assert.Equal(t, int64(3), decay.Payload.(StreakDecayCompletePayloadV1).RecordsAffected)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 16*time.Second, CalculateRetryDelay(base, 4))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 0))
}

func TestMemoryBus_DispatchReportsFailingHandlers(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(LevelUp, func(ctx context.Context, evt Event) error { return nil })
	bus.Subscribe(LevelUp, func(ctx context.Context, evt Event) error { return errors.New("boom") })

	failed := bus.Dispatch(context.Background(), Event{Type: LevelUp})
	require.Len(t, failed, 1)
	assert.EqualError(t, failed[0].Err, "boom")
	assert.Error(t, failed[0].Handler(context.Background(), Event{Type: LevelUp}))

	assert.Empty(t, bus.Dispatch(context.Background(), Event{Type: StreakDecayComplete}))
}
