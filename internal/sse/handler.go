package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// KeepaliveInterval is how often an idle stream gets a ping so proxies
// do not reap the connection.
const KeepaliveInterval = 30 * time.Second

// EventTypeKeepalive is the ping event type.
const EventTypeKeepalive = "keepalive"

// Handler streams hub events to one client over text/event-stream.
// A "types" query parameter narrows the stream to a comma-separated
// list of event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		var eventTypes []string
		if raw := r.URL.Query().Get("types"); raw != "" {
			eventTypes = strings.Split(raw, ",")
		}

		client := hub.Register(eventTypes)
		slog.Info("Event stream connected",
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			slog.Info("Event stream disconnected",
				"client_id", client.ID,
				"total_clients", hub.ClientCount())
		}()

		greeting := Event{
			ID:        client.ID,
			Type:      "connected",
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}
		if !writeEvent(w, flusher, greeting) {
			return
		}

		stream(r, w, flusher, client)
	}
}

// stream pumps the client's queue until the connection drops, the hub
// closes the client, or a write fails.
func stream(r *http.Request, w http.ResponseWriter, flusher http.Flusher, client *Client) {
	ticker := time.NewTicker(KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case event, ok := <-client.EventChannel:
			if !ok {
				return
			}
			if !writeEvent(w, flusher, event) {
				return
			}

		case <-ticker.C:
			ping := Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}
			if !writeEvent(w, flusher, ping) {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		slog.Error("Failed to encode stream event", "event_type", event.Type, "error", err)
		return true // encoding failures skip the event, the stream survives
	}
	if _, err := w.Write(msg); err != nil {
		slog.Warn("Failed to write stream event", "event_type", event.Type, "error", err)
		return false
	}
	flusher.Flush()
	return true
}
