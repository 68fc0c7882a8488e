// Package events pushes record changes to connected consoles over
// WebSockets. Clients subscribe to topics and receive every change
// published to them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Topic names one record collection.
type Topic string

const (
	TopicPatients     Topic = "patients"
	TopicDoctors      Topic = "doctors"
	TopicClinics      Topic = "clinics"
	TopicAppointments Topic = "appointments"
)

// Topics lists every topic a client may subscribe to.
var Topics = []Topic{TopicPatients, TopicDoctors, TopicClinics, TopicAppointments}

func validTopic(t Topic) bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Event is one change as sent to clients.
type Event struct {
	Type      string    `json:"type"`
	Topic     Topic     `json:"topic"`
	RecordID  string    `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Changed builds the event for action on record id, e.g. "patients.created".
func Changed(topic Topic, action Action, id string) Event {
	return Event{
		Type:      string(topic) + "." + string(action),
		Topic:     topic,
		RecordID:  id,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher is implemented by anything that fans events out.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

// ClientMessage is an inbound subscription change.
type ClientMessage struct {
	Action string  `json:"action"`
	Topics []Topic `json:"topics"`
}

// Client is one connected console.
type Client struct {
	ID     string
	UserID string
	Topics []Topic
	Send   chan []byte
}

// Hub tracks clients and their topic subscriptions.
type Hub struct {
	mu      sync.RWMutex
	clients map[Topic]map[*Client]struct{}
	all     map[*Client]struct{}
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[Topic]map[*Client]struct{}),
		all:     make(map[*Client]struct{}),
		logger:  logger.With().Str("component", "events").Logger(),
	}
}

var _ Publisher = (*Hub)(nil)

// Register adds client and subscribes it to its initial topics.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}
	for _, topic := range client.Topics {
		h.subscribeLocked(client, topic)
	}
}

// Unregister removes client and closes its Send channel. Unknown clients
// are ignored.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(client)
}

func (h *Hub) unregisterLocked(client *Client) {
	if _, ok := h.all[client]; !ok {
		return
	}
	for _, topic := range client.Topics {
		h.unsubscribeLocked(client, topic)
	}
	delete(h.all, client)
	close(client.Send)
}

// DisconnectUser drops every connection opened by userID.
func (h *Hub) DisconnectUser(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for client := range h.all {
		if client.UserID == userID {
			h.unregisterLocked(client)
			n++
		}
	}
	return n
}

// Subscribe adds topics to a registered client. Topics it already has are
// skipped.
func (h *Hub) Subscribe(client *Client, topics []Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for _, topic := range topics {
		if !validTopic(topic) || hasTopic(client.Topics, topic) {
			continue
		}
		h.subscribeLocked(client, topic)
		client.Topics = append(client.Topics, topic)
	}
}

func (h *Hub) Unsubscribe(client *Client, topics []Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	remaining := client.Topics[:0]
	for _, t := range client.Topics {
		if hasTopic(topics, t) {
			h.unsubscribeLocked(client, t)
			continue
		}
		remaining = append(remaining, t)
	}
	client.Topics = remaining
}

func (h *Hub) subscribeLocked(client *Client, topic Topic) {
	if h.clients[topic] == nil {
		h.clients[topic] = make(map[*Client]struct{})
	}
	h.clients[topic][client] = struct{}{}
}

func (h *Hub) unsubscribeLocked(client *Client, topic Topic) {
	if subscribers, ok := h.clients[topic]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.clients, topic)
		}
	}
}

func hasTopic(topics []Topic, t Topic) bool {
	for _, x := range topics {
		if x == t {
			return true
		}
	}
	return false
}

// ProcessMessage applies a subscribe or unsubscribe request.
func (h *Hub) ProcessMessage(client *Client, msg ClientMessage) {
	switch msg.Action {
	case "subscribe":
		h.Subscribe(client, msg.Topics)
	case "unsubscribe":
		h.Unsubscribe(client, msg.Topics)
	}
}

// Publish sends event to the subscribers of its topic. Clients whose buffer
// is full miss the event.
func (h *Hub) Publish(_ context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[event.Topic] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn().Str("client_id", client.ID).Str("type", event.Type).Msg("client buffer full, event dropped")
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func (h *Hub) TopicCount(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}
