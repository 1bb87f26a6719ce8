package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/y122132/pet-trainer-sub000/internal/constants"
	"github.com/y122132/pet-trainer-sub000/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 32
)

// CommandHandler receives the parsed inbound actions of one connection.
// Implementations map their internal errors to *ClientError when the
// failure should be reported to the submitting connection.
type CommandHandler interface {
	HandleQueue(ctx context.Context, userID string) error
	HandleCancel(ctx context.Context, userID string) error
	HandleMove(ctx context.Context, userID string, moveID int) error
	HandleSurrender(ctx context.Context, userID string) error
	HandleDisconnect(userID string)
}

// Client is one websocket connection serving one combatant.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	send      chan Event
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan Event, sendBuffer),
	}
}

// UserID returns the combatant id bound to this connection.
func (c *Client) UserID() string { return c.userID }

// Close tears the connection down once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// trySend queues an event without blocking; a full buffer drops the event
// for this connection only.
func (c *Client) trySend(ev Event) {
	defer func() {
		// Sending on a closed channel during teardown is not an error
		// worth crashing a broadcast over.
		_ = recover()
	}()
	select {
	case c.send <- ev:
	default:
		logging.Info("dropping event for slow client", logging.Fields{constants.LogFieldUserID: c.userID, constants.LogFieldEvent: ev.Type})
	}
}

// Run services the connection until it drops: a writer goroutine drains
// the send queue while the read loop dispatches inbound commands.
func (c *Client) Run(ctx context.Context, handler CommandHandler) {
	go c.writePump()
	c.readPump(ctx, handler)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump(ctx context.Context, handler CommandHandler) {
	defer func() {
		handler.HandleDisconnect(c.userID)
		c.hub.Unregister(c)
		c.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Error("websocket closed unexpectedly", err, logging.Fields{constants.LogFieldUserID: c.userID})
			}
			return
		}
		var cmd ClientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.trySend(Event{Type: constants.EventError, Payload: ErrorPayload{Code: constants.ErrCodeValidation, Message: constants.ErrInvalidRequest}})
			continue
		}
		c.dispatch(ctx, handler, cmd)
	}
}

func (c *Client) dispatch(ctx context.Context, handler CommandHandler, cmd ClientCommand) {
	var err error
	switch cmd.Action {
	case constants.ActionQueue:
		err = handler.HandleQueue(ctx, c.userID)
	case constants.ActionCancel:
		err = handler.HandleCancel(ctx, c.userID)
	case constants.ActionMove:
		err = handler.HandleMove(ctx, c.userID, cmd.MoveID)
	case constants.ActionSurrender:
		err = handler.HandleSurrender(ctx, c.userID)
	default:
		err = NewClientError(constants.ErrCodeValidation, constants.ErrInvalidRequest)
	}
	if err == nil {
		return
	}
	var ce *ClientError
	if errors.As(err, &ce) {
		c.trySend(Event{Type: constants.EventError, Payload: ErrorPayload{Code: ce.Code, Message: ce.Message}})
		return
	}
	logging.Error("command failed", err, logging.Fields{constants.LogFieldUserID: c.userID, "action": cmd.Action})
	c.trySend(Event{Type: constants.EventError, Payload: ErrorPayload{Code: constants.ErrCodeInternal, Message: "Something went wrong; please retry"}})
}
