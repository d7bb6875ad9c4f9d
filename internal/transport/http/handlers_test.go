package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenames/internal/app"
	"codenames/internal/config"
)

func newTestServer(t *testing.T) (*Server, *app.Hub) {
	t.Helper()

	words := make([]string, 30)
	for i := range words {
		words[i] = fmt.Sprintf("WORD%02d", i)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := app.NewHub(logger, app.HubOptions{Words: words})
	t.Cleanup(hub.Close)

	cfg := &config.Config{}
	cfg.Server.Bind = "127.0.0.1"
	cfg.Server.Port = 8080

	return NewServer(cfg, hub, logger), hub
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(recorder, httptest.NewRequest(method, path, nil))
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	recorder := doRequest(server, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
}

func TestStats(t *testing.T) {
	server, hub := newTestServer(t)

	_, err := hub.CreateRoom()
	require.NoError(t, err)

	recorder := doRequest(server, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeResponse(t, recorder)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["activeRooms"])
}

func TestRoomExists(t *testing.T) {
	server, hub := newTestServer(t)

	session, err := hub.CreateRoom()
	require.NoError(t, err)

	t.Run("existing room", func(t *testing.T) {
		recorder := doRequest(server, http.MethodGet, "/api/rooms/"+session.RoomCode()+"/exists")
		resp := decodeResponse(t, recorder)
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["exists"])
	})

	t.Run("lowercase code still resolves", func(t *testing.T) {
		// Room codes are uppercase; the lookup normalizes
		lower := ""
		for _, r := range session.RoomCode() {
			lower += string(r | 0x20)
		}
		recorder := doRequest(server, http.MethodGet, "/api/rooms/"+lower+"/exists")
		resp := decodeResponse(t, recorder)
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["exists"])
	})

	t.Run("unknown room", func(t *testing.T) {
		recorder := doRequest(server, http.MethodGet, "/api/rooms/ZZZZZ/exists")
		resp := decodeResponse(t, recorder)
		data := resp.Data.(map[string]any)
		assert.Equal(t, false, data["exists"])
	})
}

func TestRoomQR(t *testing.T) {
	server, hub := newTestServer(t)

	session, err := hub.CreateRoom()
	require.NoError(t, err)

	t.Run("renders a PNG", func(t *testing.T) {
		recorder := doRequest(server, http.MethodGet, "/api/rooms/"+session.RoomCode()+"/qr")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
		assert.NotEmpty(t, recorder.Body.Bytes())
	})

	t.Run("unknown room", func(t *testing.T) {
		recorder := doRequest(server, http.MethodGet, "/api/rooms/ZZZZZ/qr")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
