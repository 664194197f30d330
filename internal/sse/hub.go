// Package sse pushes engine notifications to connected browser clients
// over Server-Sent Events. The hub sits strictly outside the
// transactional boundary; a slow client loses events, never blocks one.
package sse

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Queue sizes. The hub queue absorbs bursts from the event bus; each
// client gets its own smaller queue so one stalled connection cannot
// back up the rest.
const (
	hubQueueSize     = 100
	clientQueueSize  = 50
	controlQueueSize = 10
)

// Event is a single notification pushed to clients.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected event stream. A nil filter receives every
// event type.
type Client struct {
	ID           string
	EventChannel chan Event
	filter       map[string]struct{}
}

func (c *Client) wants(eventType string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[eventType]
	return ok
}

// Hub fans events out to connected clients. The client set is owned by
// the run loop; callers talk to it only through channels, so no lock
// guards the map.
type Hub struct {
	events     chan Event
	register   chan *Client
	unregister chan string

	connected atomic.Int64
	shutdown  chan struct{}
	wg        sync.WaitGroup
}

// NewHub creates a hub; Start must be called before use.
func NewHub() *Hub {
	return &Hub{
		events:     make(chan Event, hubQueueSize),
		register:   make(chan *Client, controlQueueSize),
		unregister: make(chan string, controlQueueSize),
		shutdown:   make(chan struct{}),
	}
}

// Start launches the fan-out loop.
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop terminates the loop and closes every connected client's channel.
func (h *Hub) Stop() {
	close(h.shutdown)
	h.wg.Wait()
}

func (h *Hub) run() {
	defer h.wg.Done()

	clients := make(map[string]*Client)
	defer func() {
		for _, client := range clients {
			close(client.EventChannel)
		}
		// Clients still queued for registration get closed too.
		for {
			select {
			case client := <-h.register:
				close(client.EventChannel)
			default:
				h.connected.Store(0)
				return
			}
		}
	}()

	for {
		select {
		case client := <-h.register:
			clients[client.ID] = client
			h.connected.Store(int64(len(clients)))

		case clientID := <-h.unregister:
			if client, ok := clients[clientID]; ok {
				close(client.EventChannel)
				delete(clients, clientID)
				h.connected.Store(int64(len(clients)))
			}

		case event := <-h.events:
			for _, client := range clients {
				if !client.wants(event.Type) {
					continue
				}
				// Non-blocking send; full client queues drop the event.
				select {
				case client.EventChannel <- event:
				default:
				}
			}

		case <-h.shutdown:
			return
		}
	}
}

// Register connects a new client. An empty eventTypes list subscribes
// to everything.
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, clientQueueSize),
	}
	if len(eventTypes) > 0 {
		client.filter = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			client.filter[t] = struct{}{}
		}
	}

	select {
	case <-h.shutdown:
		// Stopped hubs hand back a closed channel so the caller's
		// stream loop exits immediately.
		close(client.EventChannel)
		return client
	default:
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.EventChannel)
	}
	return client
}

// Unregister disconnects a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for fan-out. Dropped silently when the hub
// queue is full.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.events <- event:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.connected.Load())
}

// FormatSSEMessage renders an event in the text/event-stream wire
// format: "id: <id>\nevent: <type>\ndata: <json>\n\n".
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"
	return []byte(msg), nil
}
