package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	service     *app.QuizService
	defaultBank string
	log         *zap.Logger
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaultBank string, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
		log:         logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one player's session.
// All transitions for the connection happen on this goroutine, in arrival order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	bankID := r.URL.Query().Get("bankId")
	sessionID := r.URL.Query().Get("sessionId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}
	if bankID == "" {
		bankID = h.defaultBank
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &wsConn{conn: conn, log: h.log.With(zap.String("player_id", playerID))}
	ctx := r.Context()

	var current app.Session
	if sessionID != "" {
		current, err = h.service.Get(ctx, sessionID)
		if err == nil && current.PlayerID != playerID {
			err = domain.ErrSessionNotFound
		}
		if err != nil {
			c.sendError(err)
		}
	}
	if current.ID == "" {
		current, err = h.start(ctx, c, playerID, bankID)
		if err != nil && !c.alive {
			return
		}
	}
	if current.ID != "" && !c.sendSession(current) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		var next app.Session
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				c.send("error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			if current.ID == "" {
				c.sendError(domain.ErrSessionNotFound)
				continue
			}
			next, err = h.service.Submit(ctx, current.ID, payload.Option)
		case "next":
			if current.ID == "" {
				c.sendError(domain.ErrSessionNotFound)
				continue
			}
			next, err = h.service.Advance(ctx, current.ID)
		case "restart":
			next, err = h.start(ctx, c, playerID, bankID)
			if err != nil {
				if !c.alive {
					return
				}
				continue
			}
		default:
			c.send("error", errorPayload{Message: "unsupported message type"})
			continue
		}

		if err != nil {
			c.sendError(err)
			if !c.alive {
				return
			}
			continue
		}
		current = next
		if !c.sendSession(current) {
			return
		}
	}
}

// start begins a session and reports load failures to the client.
func (h *WSHandler) start(ctx context.Context, c *wsConn, playerID, bankID string) (app.Session, error) {
	session, err := h.service.Start(ctx, playerID, bankID)
	if err != nil {
		c.sendError(err)
		return app.Session{}, err
	}
	return session, nil
}

// wsConn serializes writes for a single connection.
type wsConn struct {
	conn  *websocket.Conn
	log   *zap.Logger
	alive bool
}

func (c *wsConn) send(kind string, payload any) bool {
	if err := c.conn.WriteJSON(outboundMessage[any]{Type: kind, Payload: payload}); err != nil {
		c.log.Debug("ws write error", zap.Error(err))
		c.alive = false
		return false
	}
	c.alive = true
	return true
}

func (c *wsConn) sendSession(session app.Session) bool {
	if !c.send("state", newStateView(session)) {
		return false
	}
	if session.State.Ended() {
		return c.send("result", newResultView(session.State.Result()))
	}
	return true
}

func (c *wsConn) sendError(err error) {
	message := err.Error()
	if errors.Is(err, domain.ErrLoadFailure) {
		message = "could not load the question bank: " + err.Error()
	}
	c.send("error", errorPayload{Message: message})
}
