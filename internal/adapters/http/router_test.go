package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	router "github.com/dkeye/disagree/internal/adapters/http"
	"github.com/dkeye/disagree/internal/app"
	"github.com/dkeye/disagree/internal/app/orch"
	"github.com/dkeye/disagree/internal/config"
	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>disagree</h1>"), 0o644))

	cfg := &config.Config{
		Mode:          "test",
		StaticPath:    static,
		Secret:        "test-secret",
		ReadLimit:     4096,
		SendBuffer:    8,
		ICEURLs:       []string{"stun:stun.example.org:3478", "turn:turn.example.org:3478"},
		ICEUsername:   "u",
		ICECredential: "p",
	}
	o := orch.New(app.NewRegistry(), app.NewDirectory(), app.SimplePolicy{})
	return router.SetupRouter(context.Background(), cfg, o), o
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := setup(t)
	w := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexAndClientToken(t *testing.T) {
	r, _ := setup(t)
	w := get(t, r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disagree")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "disagree=")
}

func TestRooms(t *testing.T) {
	r, o := setup(t)

	w := get(t, r, "/api/rooms")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	room, err := o.CreateRoom("owner-1", "Cats vs dogs", domain.Stance{Side: domain.SideRight, Intensity: 42})
	require.NoError(t, err)

	w = get(t, r, "/api/rooms")
	var rooms []domain.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, room.ID, rooms[0].ID)
	assert.Equal(t, domain.SideRight, rooms[0].Stance.Side)
}

func TestRoomByID(t *testing.T) {
	r, o := setup(t)
	room, err := o.CreateRoom("owner-1", "Tabs", domain.Stance{Side: domain.SideLeft, Intensity: 1})
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "found", path: "/api/rooms/1", code: http.StatusOK},
		{name: "missing", path: "/api/rooms/99", code: http.StatusNotFound},
		{name: "not a number", path: "/api/rooms/abc", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, tt.path)
			assert.Equal(t, tt.code, w.Code)
		})
	}

	var got domain.Room
	require.NoError(t, json.Unmarshal(get(t, r, "/api/rooms/1").Body.Bytes(), &got))
	assert.Equal(t, room.Name, got.Name)
}

func TestStats(t *testing.T) {
	r, o := setup(t)
	_, err := o.CreateRoom("owner-1", "Tabs", domain.Stance{Side: domain.SideLeft, Intensity: 1})
	require.NoError(t, err)

	var s core.Stats
	require.NoError(t, json.Unmarshal(get(t, r, "/api/stats").Body.Bytes(), &s))
	assert.Equal(t, core.Stats{UsersOnline: 0, ActiveDebates: 1, DebatesToday: 1}, s)
}

func TestICE(t *testing.T) {
	r, _ := setup(t)
	w := get(t, r, "/api/ice")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg struct {
		ICEServers []struct {
			URLs       []string `json:"urls"`
			Username   string   `json:"username"`
			Credential string   `json:"credential"`
		} `json:"iceServers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	require.Len(t, cfg.ICEServers, 2)
	assert.Equal(t, []string{"stun:stun.example.org:3478"}, cfg.ICEServers[0].URLs)
	assert.Equal(t, "u", cfg.ICEServers[1].Username)
	assert.Equal(t, "p", cfg.ICEServers[1].Credential)
}
