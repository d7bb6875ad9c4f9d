package domain

import "time"

// EventType names an outbound room notification. The values are the wire
// event names clients subscribe to.
type EventType string

const (
	EventRoomCreated   EventType = "roomCreated"
	EventRoomJoined    EventType = "roomJoined"
	EventPlayersUpdate EventType = "playersUpdate"
	EventGameData      EventType = "gameData"
	EventClueUpdate    EventType = "clueUpdate"
	EventClueCleared   EventType = "clueCleared"
	EventGameOver      EventType = "gameOver"
	EventGameRestarted EventType = "gameRestarted"
	EventLog           EventType = "gameEvent"
)

// GameEvent is a notification emitted by a session. Events with a PlayerID
// go to that player only; the rest fan out to the whole room.
type GameEvent struct {
	Type      EventType `json:"type"`
	RoomID    string    `json:"roomId"`
	PlayerID  string    `json:"-"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a room-wide event
func NewEvent(eventType EventType, roomID string, payload any) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		RoomID:    roomID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates an event addressed to a single player
func NewPlayerEvent(eventType EventType, roomID, playerID string, payload any) *GameEvent {
	event := NewEvent(eventType, roomID, payload)
	event.PlayerID = playerID
	return event
}

// Payload types for the outbound events

// RoomPayload acknowledges room creation or joining
type RoomPayload struct {
	RoomCode string `json:"roomCode"`
}

// GameOverPayload announces the winning team
type GameOverPayload struct {
	Winner Team `json:"winner"`
}

// LogPayload is a human-readable line for the room's event feed
type LogPayload struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
