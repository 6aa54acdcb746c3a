package metrics

import (
	"context"

	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Subscriber is the part of event.Bus the collector needs
type Subscriber interface {
	Subscribe(eventType event.Type, handler event.Handler)
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus Subscriber) {
	for _, eventType := range []event.Type{
		event.ActivityRecorded,
		event.AchievementUnlocked,
		event.LevelUp,
		event.StreakDecayComplete,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ActivityRecorded:
		var p event.ActivityRecordedPayloadV1
		if p, err = event.DecodePayload[event.ActivityRecordedPayloadV1](evt.Payload); err == nil {
			ActivitiesRecorded.WithLabelValues(p.ActivityType).Inc()
		}

	case event.AchievementUnlocked:
		var p event.AchievementUnlockedPayloadV1
		if p, err = event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload); err == nil {
			AchievementsUnlocked.WithLabelValues(p.Category, p.Tier).Inc()
			PointsAwarded.Add(float64(p.Points))
		}

	case event.LevelUp:
		LevelUps.Inc()

	case event.StreakDecayComplete:
		var p event.StreakDecayCompletePayloadV1
		if p, err = event.DecodePayload[event.StreakDecayCompletePayloadV1](evt.Payload); err == nil {
			StreaksReset.Add(float64(p.RecordsAffected))
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
