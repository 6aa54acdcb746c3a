package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often an idle stream gets a ping
const KeepaliveInterval = 30 * time.Second

// Stream event types
const (
	EventTypeConnected   = "connected"
	EventTypeKeepalive   = "keepalive"
	EventTypeUnlocked    = "achievement.unlocked"
	EventTypeLevelUp     = "progression.level_up"
	EventTypeStreakDecay = "streak_decay.complete"
)

// Query parameters accepted by the stream endpoint
const (
	QueryParamTypes  = "types"
	QueryParamUserID = "user_id"
)

// Log messages
const (
	LogMsgClientConnected    = "Event stream client connected"
	LogMsgClientDisconnected = "Event stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting stream event"
	LogMsgEventDropped       = "Stream broadcast buffer full, dropping event"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgPayloadError       = "Invalid event payload for stream"
	LogMsgSubscriberReady    = "Event stream subscribed to bus"
)

// ErrMsgStreamingUnsupported is returned when the writer cannot flush
const ErrMsgStreamingUnsupported = "streaming not supported"
