package events

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/httperr"
)

const sendBuffer = 64

// Gate reports whether a user wants change notifications.
type Gate interface {
	NotificationsEnabled(ctx context.Context, userID string) (bool, error)
}

// Handler upgrades authenticated requests to WebSocket connections.
type Handler struct {
	hub      *Hub
	gate     Gate
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler accepts browser connections only from allowedOrigins; "*"
// allows any origin.
func NewHandler(hub *Hub, gate Gate, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:  hub,
		gate: gate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/events", h.Connect)
}

// Connect subscribes the caller to ?topics=a,b (all topics when empty).
// Users with notifications turned off are refused.
func (h *Handler) Connect(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserIDFromContext(ctx)

	enabled, err := h.gate.NotificationsEnabled(ctx, userID)
	if err != nil {
		return httperr.FromError(err)
	}
	if !enabled {
		return echo.NewHTTPError(http.StatusForbidden, "notifications are disabled")
	}

	topics, err := parseTopics(c.QueryParam("topics"))
	if err != nil {
		return err
	}

	// Registered before the upgrade so that changes made once the client
	// sees the 101 response are delivered.
	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Topics: topics,
		Send:   make(chan []byte, sendBuffer),
	}
	h.hub.Register(client)

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.hub.Unregister(client)
		// The upgrader has already answered the request.
		h.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	h.logger.Info().Str("client_id", client.ID).Str("user_id", userID).Msg("client connected")

	go h.writePump(client, ws)
	go h.readPump(client, ws)
	return nil
}

func parseTopics(raw string) ([]Topic, error) {
	if strings.TrimSpace(raw) == "" {
		return append([]Topic(nil), Topics...), nil
	}
	var out []Topic
	for _, part := range strings.Split(raw, ",") {
		t := Topic(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if !validTopic(t) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown topic: "+string(t))
		}
		if !hasTopic(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (h *Handler) readPump(client *Client, ws *websocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		ws.Close()
	}()

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		h.hub.ProcessMessage(client, msg)
	}
}

// writePump ends when the hub closes Send, which also ends readPump.
func (h *Handler) writePump(client *Client, ws *websocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
