package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenames/internal/domain"
)

func TestClientMessage_DecodeTypedPayloads(t *testing.T) {
	t.Run("selectRole", func(t *testing.T) {
		raw := []byte(`{"type":"selectRole","payload":{"roomCode":"ABCDE","team":"blue","role":"spymaster"}}`)

		var msg ClientMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MsgSelectRole, msg.Type)

		var payload SelectRolePayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "ABCDE", payload.RoomCode)
		assert.Equal(t, domain.TeamBlue, payload.Team)
		assert.Equal(t, domain.RoleSpymaster, payload.Role)
	})

	t.Run("sendClue", func(t *testing.T) {
		raw := []byte(`{"type":"sendClue","payload":{"roomCode":"ABCDE","clue":"ROBOT","count":3}}`)

		var msg ClientMessage
		require.NoError(t, json.Unmarshal(raw, &msg))

		var payload SendCluePayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "ROBOT", payload.Clue)
		assert.Equal(t, 3, payload.Count)
	})

	t.Run("cardClicked", func(t *testing.T) {
		raw := []byte(`{"type":"cardClicked","payload":{"roomCode":"ABCDE","cardIndex":17}}`)

		var msg ClientMessage
		require.NoError(t, json.Unmarshal(raw, &msg))

		var payload CardClickedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, 17, payload.CardIndex)
	})

	t.Run("missing payload stays raw-nil", func(t *testing.T) {
		raw := []byte(`{"type":"ping"}`)

		var msg ClientMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MsgPing, msg.Type)
		assert.Nil(t, msg.Payload)
	})

	t.Run("malformed count fails at the boundary", func(t *testing.T) {
		raw := []byte(`{"type":"sendClue","payload":{"roomCode":"ABCDE","clue":"ROBOT","count":"three"}}`)

		var msg ClientMessage
		require.NoError(t, json.Unmarshal(raw, &msg))

		var payload SendCluePayload
		assert.Error(t, json.Unmarshal(msg.Payload, &payload))
	})
}

func TestNewServerMessage(t *testing.T) {
	msg := NewServerMessage(MsgRoleError, &ErrorPayload{Code: ErrCodeRoleTaken, Message: "taken"})

	assert.Equal(t, MsgRoleError, msg.Type)

	parsed, err := time.Parse(time.RFC3339, msg.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"roleError"`)
	assert.Contains(t, string(data), `"code":"ROLE_TAKEN"`)
}
