package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pocha-games/partyroom/internal/game"
	"github.com/pocha-games/partyroom/internal/model"
	"github.com/pocha-games/partyroom/internal/services/registry"
	"github.com/pocha-games/partyroom/internal/services/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is one websocket connection. All intent handling runs on the
// read pump goroutine, so playerID and roomCode need no locking.
type Client struct {
	connID   model.ConnID
	conn     *websocket.Conn
	send     chan []byte
	hub      *Hub
	engine   *room.Engine
	registry *registry.Registry
	logger   *slog.Logger

	playerID model.PlayerID
	roomCode model.RoomCode
}

func newClient(conn *websocket.Conn, hub *Hub, engine *room.Engine, reg *registry.Registry, logger *slog.Logger) *Client {
	connID := model.ConnID(uuid.NewString())
	return &Client{
		connID:   connID,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		hub:      hub,
		engine:   engine,
		registry: reg,
		logger:   logger.With(slog.String("conn", string(connID))),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.cleanup()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}
		c.dispatch(env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// cleanup runs exactly once when the read pump exits. Removal from the
// room is skipped when a newer connection has superseded this one.
func (c *Client) cleanup() {
	if playerID, ok := c.registry.Resolve(c.connID); ok && c.roomCode != "" {
		c.engine.HandleDisconnect(c.roomCode, playerID, c.connID)
	}
	c.registry.Unbind(c.connID)
	if c.roomCode != "" {
		c.hub.Detach(c.roomCode, c)
	}
	close(c.send)
}

func (c *Client) dispatch(env Envelope) {
	switch env.Type {
	case IntentCreateRoom:
		c.handleCreateRoom(env.Payload)
	case IntentJoinRoom:
		c.handleJoinRoom(env.Payload)
	case IntentStartRound:
		c.handleStartRound()
	case IntentAct:
		c.handleAct(env.Payload)
	case IntentChat:
		c.handleChat(env.Payload)
	case IntentForceEnd:
		c.handleForceEnd()
	case IntentLeaveRoom:
		c.handleLeaveRoom()
	default:
		// Unknown messages still count as activity
		if playerID, ok := c.registry.Resolve(c.connID); ok && c.roomCode != "" {
			c.engine.Touch(c.roomCode, playerID)
		}
		c.logger.Debug("unknown intent ignored", slog.String("type", env.Type))
	}
}

func (c *Client) handleCreateRoom(payload json.RawMessage) {
	var intent CreateRoomIntent
	if err := json.Unmarshal(payload, &intent); err != nil {
		c.sendError(IntentCreateRoom, "malformed payload")
		return
	}
	if intent.PlayerID == "" {
		intent.PlayerID = model.PlayerID(uuid.NewString())
	}
	// Reject bad game types before touching current room membership
	if _, err := game.ForType(intent.GameType); err != nil {
		c.sendError(IntentCreateRoom, err.Error())
		return
	}

	c.leaveCurrentRoom()
	c.registry.Bind(c.connID, intent.PlayerID)

	code, err := c.engine.CreateRoom(intent.GameType, intent.PlayerID, intent.Nickname, c.connID)
	if err != nil {
		c.sendError(IntentCreateRoom, err.Error())
		return
	}

	c.playerID = intent.PlayerID
	c.roomCode = code
	c.hub.Attach(code, c)

	c.sendEvent(model.Event{
		Type:     model.EventRoomCreated,
		RoomCode: code,
		Payload:  model.RoomCreatedPayload{Code: code, GameType: intent.GameType},
	})
	// The creation broadcast predates the attach; replay membership
	c.engine.BroadcastMembers(code)
}

func (c *Client) handleJoinRoom(payload json.RawMessage) {
	var intent JoinRoomIntent
	if err := json.Unmarshal(payload, &intent); err != nil {
		c.sendError(IntentJoinRoom, "malformed payload")
		return
	}
	if intent.PlayerID == "" {
		intent.PlayerID = model.PlayerID(uuid.NewString())
	}

	c.leaveCurrentRoom()
	c.registry.Bind(c.connID, intent.PlayerID)

	// Attach before joining so the membership broadcast reaches the joiner
	c.hub.Attach(intent.RoomCode, c)
	if err := c.engine.JoinRoom(intent.RoomCode, intent.PlayerID, intent.Nickname, c.connID); err != nil {
		c.hub.Detach(intent.RoomCode, c)
		c.sendError(IntentJoinRoom, err.Error())
		return
	}

	c.playerID = intent.PlayerID
	c.roomCode = intent.RoomCode
}

func (c *Client) handleStartRound() {
	playerID, ok := c.registry.Resolve(c.connID)
	if !ok || c.roomCode == "" {
		return
	}
	if err := c.engine.StartRound(c.roomCode, playerID); err != nil {
		c.sendError(IntentStartRound, err.Error())
	}
}

func (c *Client) handleAct(payload json.RawMessage) {
	playerID, ok := c.registry.Resolve(c.connID)
	if !ok || c.roomCode == "" {
		return
	}
	var intent ActIntent
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &intent); err != nil {
			return
		}
	}
	c.engine.Act(c.roomCode, playerID, game.Action{Index: intent.Index})
}

func (c *Client) handleChat(payload json.RawMessage) {
	playerID, ok := c.registry.Resolve(c.connID)
	if !ok || c.roomCode == "" {
		return
	}
	var intent ChatIntent
	if err := json.Unmarshal(payload, &intent); err != nil || intent.Text == "" {
		return
	}
	c.engine.Chat(c.roomCode, playerID, intent.Text)
}

func (c *Client) handleForceEnd() {
	playerID, ok := c.registry.Resolve(c.connID)
	if !ok || c.roomCode == "" {
		return
	}
	if err := c.engine.ForceEnd(c.roomCode, playerID); err != nil {
		c.sendError(IntentForceEnd, err.Error())
	}
}

func (c *Client) handleLeaveRoom() {
	playerID, ok := c.registry.Resolve(c.connID)
	if !ok || c.roomCode == "" {
		return
	}
	c.engine.LeaveRoom(c.roomCode, playerID)
	c.hub.Detach(c.roomCode, c)
	c.roomCode = ""
}

func (c *Client) leaveCurrentRoom() {
	if c.roomCode == "" {
		return
	}
	if playerID, ok := c.registry.Resolve(c.connID); ok {
		c.engine.LeaveRoom(c.roomCode, playerID)
	}
	c.hub.Detach(c.roomCode, c)
	c.roomCode = ""
}

// sendEvent delivers an event to this client only
func (c *Client) sendEvent(event model.Event) {
	event.Timestamp = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal event", slog.String("error", err.Error()))
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("message dropped - client buffer full")
	}
}

// sendError surfaces a failed intent to the acting player alone; the
// rest of the room is never notified
func (c *Client) sendError(intent, message string) {
	c.sendEvent(model.Event{
		Type:    model.EventError,
		Payload: model.ErrorPayload{Intent: intent, Message: message},
	})
}
