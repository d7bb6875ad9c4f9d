package ws

import (
	"encoding/json"
	"time"

	"codenames/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom     MessageType = "createRoom"
	MsgJoinRoom       MessageType = "joinRoom"
	MsgSelectRole     MessageType = "selectRole"
	MsgSendClue       MessageType = "sendClue"
	MsgEndTurn        MessageType = "endTurn"
	MsgCardClicked    MessageType = "cardClicked"
	MsgRequestRestart MessageType = "requestRestart"
	MsgPing           MessageType = "ping"
)

// Server → Client message types for direct replies. Room notifications are
// domain.GameEvents and carry their own type names.
const (
	MsgJoinError MessageType = "joinError"
	MsgRoleError MessageType = "roleError"
	MsgPong      MessageType = "pong"
)

// ClientMessage is the envelope for inbound commands. Payloads stay raw
// until the handler for the type decodes and validates them.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage is the envelope for direct server replies
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload any) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads, one concrete type per command

// CreateRoomPayload is the payload for createRoom
type CreateRoomPayload struct {
	Nickname string `json:"nickname"`
}

// JoinRoomPayload is the payload for joinRoom
type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

// SelectRolePayload is the payload for selectRole
type SelectRolePayload struct {
	RoomCode string      `json:"roomCode"`
	Team     domain.Team `json:"team"`
	Role     domain.Role `json:"role"`
}

// SendCluePayload is the payload for sendClue
type SendCluePayload struct {
	RoomCode string `json:"roomCode"`
	Clue     string `json:"clue"`
	Count    int    `json:"count"`
}

// EndTurnPayload is the payload for endTurn
type EndTurnPayload struct {
	RoomCode string `json:"roomCode"`
}

// CardClickedPayload is the payload for cardClicked
type CardClickedPayload struct {
	RoomCode  string `json:"roomCode"`
	CardIndex int    `json:"cardIndex"`
}

// RequestRestartPayload is the payload for requestRestart
type RequestRestartPayload struct {
	RoomCode string `json:"roomCode"`
}

// ErrorPayload is the payload for joinError and roleError replies
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeRoomNotFound     = "ROOM_NOT_FOUND"
	ErrCodeAlreadyInRoom    = "ALREADY_IN_ROOM"
	ErrCodeAlreadyLocked    = "ALREADY_LOCKED"
	ErrCodeInvalidSelection = "INVALID_SELECTION"
	ErrCodeRoleTaken        = "ROLE_TAKEN"
	ErrCodeNotAuthorized    = "NOT_AUTHORIZED"
	ErrCodeInvalidClue      = "INVALID_CLUE"
	ErrCodeClueActive       = "CLUE_ALREADY_ACTIVE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)
