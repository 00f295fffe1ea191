package notes

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"pastel-notes/cmd/server/ctxkeys"
	"pastel-notes/cmd/server/handlers/httperr"
	"pastel-notes/internal/logger"
	"pastel-notes/internal/services/notes"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const (
	// WSClosePolicyViolation represents WebSocket close code for policy violation
	WSClosePolicyViolation = 1008

	wsWriteTimeout     = 10 * time.Second
	wsPingInterval     = 25 * time.Second
	wsPingWriteTimeout = 5 * time.Second

	msgFailedToCloseWebSocketConnection = "failed to close WebSocket connection"
)

// Hub interface for WebSocket management
type Hub interface {
	Subscribe(connULID ulid.ULID, viewerID uuid.UUID) (*notes.Subscriber, func())
	Unsubscribe(connULID ulid.ULID)
}

// WebSocketHandlers streams the viewer's visible notes
type WebSocketHandlers struct {
	hub           Hub
	loop          Runner
	viewerID      uuid.UUID
	maxSessionSec int
}

// NewWebSocketHandlers creates new WebSocket handlers
func NewWebSocketHandlers(hub Hub, loop Runner, viewerID uuid.UUID, maxSessionSec int) *WebSocketHandlers {
	return &WebSocketHandlers{
		hub:           hub,
		loop:          loop,
		viewerID:      viewerID,
		maxSessionSec: maxSessionSec,
	}
}

// WSUpgrade upgrades HTTP connection to WebSocket for notes streaming
func (h *WebSocketHandlers) WSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals(ctxkeys.ViewerIDKey, h.viewerID.String())
		// Use Fiber's request-bound context so WSNotesStream gets a real context.Context.
		c.Locals(ctxkeys.ParentCtxKey, c.UserContext())
		return c.Next()
	}

	logger.L().Warn("websocket upgrade required", "handler", "WSUpgrade", "path", c.Path())
	return httperr.Fail(httperr.ErrUpgradeRequired)
}

// WSNotesStream sends the current view, then every view change, to the client
func (h *WebSocketHandlers) WSNotesStream(c *websocket.Conn) {
	conn, parentCtx, err := h.initializeConnection(c)
	if err != nil {
		h.closeConnection(c)
		return
	}

	ctx, cancelCtx := context.WithCancel(parentCtx)
	defer cancelCtx()

	subscriber, cancel := h.hub.Subscribe(conn.connULID, conn.viewerID)
	defer cancel()

	logger.L().Info("WebSocket connection established", "viewer_id", conn.viewerID, "conn_id", conn.connID)

	initial, err := h.snapshot(ctx, subscriber)
	if err != nil {
		logger.L().Warn("failed to take initial view", "error", err, "conn_id", conn.connID)
		h.closeConnection(c)
		return
	}
	if h.sendEvent(c, conn, initial) != nil {
		h.closeConnection(c)
		return
	}

	sessionTimer := h.startSessionTimer(c, conn, cancelCtx)
	defer h.stopSessionTimer(sessionTimer)

	ping := h.startKeepAlive(c, conn)
	defer ping.Stop()

	go h.handleOutgoingMessages(c, conn, subscriber, ctx)

	h.handleIncomingMessages(c, conn)

	logger.L().Info("WebSocket connection closed", "viewer_id", conn.viewerID, "conn_id", conn.connID)
	cancelCtx()
}

// snapshot renders the current view on the store loop. Events already queued
// for sub are older than the snapshot and are discarded.
func (h *WebSocketHandlers) snapshot(ctx context.Context, sub *notes.Subscriber) (notes.ViewEvent, error) {
	var ev notes.ViewEvent
	err := h.loop.Do(ctx, func(s *notes.Store) {
		ev = s.Event()
		for {
			select {
			case <-sub.Ch:
			default:
				return
			}
		}
	})
	return ev, err
}

type wsConnection struct {
	viewerID uuid.UUID
	connULID ulid.ULID
	connID   string
}

// initializeConnection validates and sets up the WebSocket connection
func (h *WebSocketHandlers) initializeConnection(c *websocket.Conn) (*wsConnection, context.Context, error) {
	viewerIDStr, ok := c.Locals(ctxkeys.ViewerIDKey).(string)
	if !ok {
		logger.L().Error(ctxkeys.ViewerIDKey + " not found in WebSocket context")
		return nil, nil, fmt.Errorf("%s not found", ctxkeys.ViewerIDKey)
	}

	viewerID, err := uuid.Parse(viewerIDStr)
	if err != nil {
		logger.L().Error("invalid "+ctxkeys.ViewerIDKey+" in WebSocket context", ctxkeys.ViewerIDKey, viewerIDStr, "error", err)
		return nil, nil, fmt.Errorf("invalid %s: %w", ctxkeys.ViewerIDKey, err)
	}

	parentCtx, ok := c.Locals(ctxkeys.ParentCtxKey).(context.Context)
	if !ok {
		logger.L().Error(ctxkeys.ParentCtxKey + " not found in WebSocket context")
		return nil, nil, fmt.Errorf("%s not found", ctxkeys.ParentCtxKey)
	}

	connULID := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)

	return &wsConnection{
		viewerID: viewerID,
		connULID: connULID,
		connID:   connULID.String(),
	}, parentCtx, nil
}

func (h *WebSocketHandlers) closeConnection(c *websocket.Conn) {
	if err := c.Close(); err != nil {
		logger.L().Error(msgFailedToCloseWebSocketConnection, "error", err)
	}
}

func (h *WebSocketHandlers) startSessionTimer(c *websocket.Conn, conn *wsConnection, cancelCtx context.CancelFunc) *time.Timer {
	return time.AfterFunc(time.Duration(h.maxSessionSec)*time.Second, func() {
		logger.L().Info("WebSocket session timeout", "viewer_id", conn.viewerID, "conn_id", conn.connID)
		h.sendCloseMessage(c, conn)
		h.closeConnection(c)
		cancelCtx()
	})
}

func (h *WebSocketHandlers) stopSessionTimer(timer *time.Timer) {
	if timer != nil {
		timer.Stop()
	}
}

func (h *WebSocketHandlers) sendCloseMessage(c *websocket.Conn, conn *wsConnection) {
	err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(WSClosePolicyViolation, "session timeout"))
	if err != nil {
		logger.L().Error("failed to send close message", "error", err, "conn_id", conn.connID)
	}
}

// startKeepAlive starts the keep-alive ping mechanism
func (h *WebSocketHandlers) startKeepAlive(c *websocket.Conn, conn *wsConnection) *time.Ticker {
	ping := time.NewTicker(wsPingInterval)
	go func() {
		for range ping.C {
			if h.sendPing(c, conn) != nil {
				return
			}
		}
	}()
	return ping
}

func (h *WebSocketHandlers) sendPing(c *websocket.Conn, conn *wsConnection) error {
	if err := c.SetWriteDeadline(time.Now().Add(wsPingWriteTimeout)); err != nil {
		logger.L().Error("failed to set write deadline", "error", err, "conn_id", conn.connID)
		return err
	}
	if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
		logger.L().Warn("failed to write ping message", "error", err, "conn_id", conn.connID)
		return err
	}
	return nil
}

// handleOutgoingMessages forwards hub events to the client
func (h *WebSocketHandlers) handleOutgoingMessages(c *websocket.Conn, conn *wsConnection, subscriber *notes.Subscriber, ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("panic in WebSocket sender", "error", r, "conn_id", conn.connID)
		}
	}()

	for {
		select {
		case event, ok := <-subscriber.Ch:
			if !ok {
				return
			}
			if h.sendEvent(c, conn, event) != nil {
				return
			}
		case <-subscriber.Done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandlers) sendEvent(c *websocket.Conn, conn *wsConnection, event notes.ViewEvent) error {
	if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		logger.L().Error("failed to set write deadline", "error", err, "conn_id", conn.connID)
		return err
	}
	if err := c.WriteJSON(event); err != nil {
		logger.L().Error("failed to write WebSocket message", "error", err, "conn_id", conn.connID)
		return err
	}
	return nil
}

// handleIncomingMessages drains client frames until the connection closes
func (h *WebSocketHandlers) handleIncomingMessages(c *websocket.Conn, conn *wsConnection) {
	for {
		messageType, _, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.L().Error("WebSocket error", "error", err, "conn_id", conn.connID)
			}
			break
		}

		if messageType == websocket.PingMessage {
			if h.sendPong(c, conn) != nil {
				break
			}
		}
	}
}

func (h *WebSocketHandlers) sendPong(c *websocket.Conn, conn *wsConnection) error {
	if err := c.WriteMessage(websocket.PongMessage, nil); err != nil {
		logger.L().Error("failed to send pong", "error", err, "conn_id", conn.connID)
		return err
	}
	return nil
}

// LogWSConnections logs every WebSocket upgrade attempt.
func LogWSConnections() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			logger.L().Info("WebSocket upgrade attempt", "ip", c.IP(), "path", c.Path())
		}
		return c.Next()
	}
}
