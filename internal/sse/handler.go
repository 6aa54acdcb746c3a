package sse

import (
	"errors"
	"net/http"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/logger"
)

// Handler streams hub events to the caller
// @Summary Stream achievement events
// @Description Server-sent events for unlocks, level ups and streak decay
// @Tags events
// @Produce text/event-stream
// @Param types query string false "Comma separated event types"
// @Param user_id query string false "Only events for this user"
// @Success 200 {string} string "event stream"
// @Router /events/stream [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		rc := http.NewResponseController(w)
		// streams outlive the server's write timeout
		_ = rc.SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		if err := rc.Flush(); errors.Is(err, http.ErrNotSupported) {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		filter := Filter{
			Types:  ParseTypes(q.Get(QueryParamTypes)),
			UserID: q.Get(QueryParamUserID),
		}

		client := hub.Register(filter)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "user_id", filter.UserID)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(e Event) bool {
			msg, err := FormatMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			if err := rc.Flush(); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return true
		}

		if !write(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]string{"client_id": client.ID},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, ok := <-client.Events:
				if !ok {
					return
				}
				if !write(e) {
					return
				}
			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
