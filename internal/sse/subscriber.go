package sse

import (
	"context"
	"log/slog"

	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
)

// Subscriber bridges the event bus to the hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a subscriber for hub
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes to the events worth streaming
func (s *Subscriber) Register(bus event.Bus) {
	bus.Subscribe(event.AchievementUnlocked, s.handleUnlocked)
	bus.Subscribe(event.LevelUp, s.handleLevelUp)
	bus.Subscribe(event.StreakDecayComplete, s.handleStreakDecay)

	slog.Info(LogMsgSubscriberReady, "types", []string{
		EventTypeUnlocked, EventTypeLevelUp, EventTypeStreakDecay,
	})
}

func (s *Subscriber) handleUnlocked(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeUnlocked, p.UserID, p)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast,
		"event_type", EventTypeUnlocked,
		"user_id", p.UserID,
		"achievement_id", p.AchievementID)
	return nil
}

func (s *Subscriber) handleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeLevelUp, p.UserID, p)
	return nil
}

func (s *Subscriber) handleStreakDecay(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.StreakDecayCompletePayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeStreakDecay, "", p)
	return nil
}
