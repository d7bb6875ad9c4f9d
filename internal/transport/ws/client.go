package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"codenames/internal/app"
	"codenames/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket connection: one opaque player identifier,
// member of at most one room for the connection's lifetime.
type Client struct {
	conn     *websocket.Conn
	hub      *app.Hub
	playerID string

	// session is the room this connection belongs to, nil before the first
	// createRoom/joinRoom. Touched only from the read pump goroutine.
	session *app.Session

	send   chan []byte
	done   chan struct{}
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *app.Hub, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		hub:      hub,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// PlayerID implements app.ClientConn
func (c *Client) PlayerID() string {
	return c.playerID
}

// Send implements app.ClientConn
func (c *Client) Send(message any) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConn
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection. Connection
// teardown is the implicit leave command: the player is swept out of
// whatever room it was in.
func (c *Client) readPump() {
	defer func() {
		c.hub.RemovePlayer(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage decodes and dispatches an inbound command
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(MsgRoleError, ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		c.handleCreateRoom(msg.Payload)
	case MsgJoinRoom:
		c.handleJoinRoom(msg.Payload)
	case MsgSelectRole:
		c.handleSelectRole(msg.Payload)
	case MsgSendClue:
		c.handleSendClue(msg.Payload)
	case MsgEndTurn:
		c.handleEndTurn(msg.Payload)
	case MsgCardClicked:
		c.handleCardClicked(msg.Payload)
	case MsgRequestRestart:
		c.handleRequestRestart(msg.Payload)
	case MsgPing:
		c.Send(NewServerMessage(MsgPong, nil))
	default:
		c.sendError(MsgRoleError, ErrCodeInvalidMessage, "Unknown message type")
	}
}

func (c *Client) handleCreateRoom(raw json.RawMessage) {
	var payload CreateRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(MsgJoinError, ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	nickname := strings.TrimSpace(payload.Nickname)
	if nickname == "" {
		c.sendError(MsgJoinError, ErrCodeInvalidMessage, "Nickname is required")
		return
	}

	if c.session != nil {
		c.sendError(MsgJoinError, ErrCodeAlreadyInRoom, "This connection is already in a room")
		return
	}

	session, err := c.hub.CreateRoom()
	if err != nil {
		c.logger.Error("room creation failed", "error", err)
		c.sendError(MsgJoinError, ErrCodeInternalError, "Failed to create room")
		return
	}

	c.session = session
	session.RegisterClient(c.playerID, c)
	session.Join(c, nickname, true)
}

func (c *Client) handleJoinRoom(raw json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(MsgJoinError, ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	nickname := strings.TrimSpace(payload.Nickname)
	if nickname == "" {
		c.sendError(MsgJoinError, ErrCodeInvalidMessage, "Nickname is required")
		return
	}

	if c.session != nil {
		c.sendError(MsgJoinError, ErrCodeAlreadyInRoom, "This connection is already in a room")
		return
	}

	session, err := c.hub.Session(strings.ToUpper(strings.TrimSpace(payload.RoomCode)))
	if err != nil {
		c.sendError(MsgJoinError, ErrCodeRoomNotFound, "Invalid room code")
		return
	}

	c.session = session
	session.RegisterClient(c.playerID, c)
	session.Join(c, nickname, false)
}

func (c *Client) handleSelectRole(raw json.RawMessage) {
	var payload SelectRolePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(MsgRoleError, ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	session := c.roomSession(payload.RoomCode)
	if session == nil {
		return
	}

	if err := session.SelectRole(c.playerID, payload.Team, payload.Role); err != nil {
		c.sendDomainError(err)
	}
}

func (c *Client) handleSendClue(raw json.RawMessage) {
	var payload SendCluePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(MsgRoleError, ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	session := c.roomSession(payload.RoomCode)
	if session == nil {
		return
	}

	if err := session.SendClue(c.playerID, payload.Clue, payload.Count); err != nil {
		c.sendDomainError(err)
	}
}

func (c *Client) handleEndTurn(raw json.RawMessage) {
	var payload EndTurnPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return
	}

	if session := c.roomSession(payload.RoomCode); session != nil {
		session.EndTurn(c.playerID)
	}
}

func (c *Client) handleCardClicked(raw json.RawMessage) {
	var payload CardClickedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return
	}

	if session := c.roomSession(payload.RoomCode); session != nil {
		session.RevealCard(c.playerID, payload.CardIndex)
	}
}

func (c *Client) handleRequestRestart(raw json.RawMessage) {
	var payload RequestRestartPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return
	}

	if session := c.roomSession(payload.RoomCode); session != nil {
		session.Restart(c.playerID)
	}
}

// roomSession resolves a command's room code against the connection's room.
// Commands for rooms this connection is not in are dropped, matching the
// treatment of any other stale command.
func (c *Client) roomSession(roomCode string) *app.Session {
	if c.session == nil || c.session.RoomCode() != roomCode {
		c.logger.Debug("command for wrong room dropped",
			"playerID", c.playerID, "roomCode", roomCode)
		return nil
	}
	return c.session
}

// sendDomainError maps a domain error to a direct reply. Stale commands
// produce no reply at all.
func (c *Client) sendDomainError(err error) {
	if errors.Is(err, domain.ErrStaleCommand) {
		return
	}

	switch {
	case errors.Is(err, domain.ErrRoleLocked):
		c.sendError(MsgRoleError, ErrCodeAlreadyLocked, "Your team and role are locked for this match")
	case errors.Is(err, domain.ErrInvalidSelection):
		c.sendError(MsgRoleError, ErrCodeInvalidSelection, "Invalid team or role")
	case errors.Is(err, domain.ErrRoleTaken):
		c.sendError(MsgRoleError, ErrCodeRoleTaken, "That team already has a spymaster")
	case errors.Is(err, domain.ErrNotAuthorized):
		c.sendError(MsgRoleError, ErrCodeNotAuthorized, "Only the active team's spymaster can give a clue")
	case errors.Is(err, domain.ErrInvalidClue):
		c.sendError(MsgRoleError, ErrCodeInvalidClue, "Enter a clue with a count between 1 and 9")
	case errors.Is(err, domain.ErrClueActive):
		c.sendError(MsgRoleError, ErrCodeClueActive, "A clue is already active, wait for the turn to end")
	case errors.Is(err, domain.ErrRoomNotFound):
		c.sendError(MsgJoinError, ErrCodeRoomNotFound, "Invalid room code")
	default:
		c.sendError(MsgRoleError, ErrCodeInternalError, err.Error())
	}
}

// sendError sends a direct error reply to this connection only
func (c *Client) sendError(msgType MessageType, code, message string) {
	c.Send(NewServerMessage(msgType, &ErrorPayload{
		Code:    code,
		Message: message,
	}))
}
