package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event is the envelope carried by the bus
type Event struct {
	Version  string                 `json:"version"`
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue returns a metadata value or nil
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types follow <entity>.<action>
const (
	ActivityRecorded    Type = "activity.recorded"
	AchievementUnlocked Type = "achievement.unlocked"
	LevelUp             Type = "progression.level_up"
	StreakDecayComplete Type = "streak_decay.complete"
)

// ActivityRecordedPayloadV1 is published for every recorded activity
type ActivityRecordedPayloadV1 struct {
	UserID       string `json:"user_id"`
	ActivityType string `json:"activity_type"`
	Timestamp    int64  `json:"timestamp"`
}

// AchievementUnlockedPayloadV1 is published once per unlock
type AchievementUnlockedPayloadV1 struct {
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name,omitempty"`
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	Category      string    `json:"category"`
	Tier          string    `json:"tier"`
	Rarity        string    `json:"rarity"`
	Points        int       `json:"points"`
	TotalPoints   int       `json:"total_points"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// LevelUpPayloadV1 is published when awarded points cross a level boundary
type LevelUpPayloadV1 struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	Title       string `json:"title"`
	TotalPoints int    `json:"total_points"`
}

// StreakDecayCompletePayloadV1 is published after the nightly streak decay
type StreakDecayCompletePayloadV1 struct {
	ResetTime       time.Time `json:"reset_time"`
	RecordsAffected int64     `json:"records_affected"`
}

// NewActivityRecordedEvent creates an activity event
func NewActivityRecordedEvent(userID, activityType string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActivityRecorded,
		Payload: ActivityRecordedPayloadV1{
			UserID:       userID,
			ActivityType: activityType,
			Timestamp:    at.Unix(),
		},
	}
}

// NewAchievementUnlockedEvent creates an unlock event
func NewAchievementUnlockedEvent(payload AchievementUnlockedPayloadV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: payload,
		Metadata: map[string]interface{}{
			"achievement_id": payload.AchievementID,
		},
	}
}

// NewLevelUpEvent creates a level up event
func NewLevelUpEvent(payload LevelUpPayloadV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: payload,
	}
}

// NewStreakDecayCompleteEvent creates a streak decay event
func NewStreakDecayCompleteEvent(resetTime time.Time, recordsAffected int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakDecayComplete,
		Payload: StreakDecayCompletePayloadV1{
			ResetTime:       resetTime,
			RecordsAffected: recordsAffected,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Failure is a handler that returned an error for one event
type Failure struct {
	Handler Handler
	Err     error
}

// Dispatcher delivers an event and reports each failing handler, so a
// retry can target only the handlers that failed.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) []Failure
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	return joinFailures(event.Type, b.Dispatch(ctx, event))
}

// Dispatch runs every subscriber synchronously and returns the ones that failed
func (b *MemoryBus) Dispatch(ctx context.Context, event Event) []Failure {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	return runHandlers(ctx, event, handlers)
}

func runHandlers(ctx context.Context, event Event, handlers []Handler) []Failure {
	var failed []Failure
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			failed = append(failed, Failure{Handler: handler, Err: err})
		}
	}
	return failed
}

func joinFailures(eventType Type, failed []Failure) error {
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, len(failed))
	for i, f := range failed {
		errs[i] = f.Err
	}
	return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), eventType, errs)
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
