package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mizuojisan/geoquest/game/config"
	"github.com/mizuojisan/geoquest/game/rpg"
	"github.com/mizuojisan/geoquest/game/service"
	"github.com/mizuojisan/geoquest/game/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	contentMgr, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config.NewManager failed: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), contentMgr)
	return NewServer(svc, nil)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func createTestSession(t *testing.T, srv *Server) *service.SessionInfo {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, "/api/sessions", `{}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, body %s", rec.Code, rec.Body.String())
	}
	var info service.SessionInfo
	decodeBody(t, rec, &info)
	return &info
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "healthy" {
		t.Errorf("health body = %v", body)
	}
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)

	info := createTestSession(t, srv)

	if len(info.ID) != 4 {
		t.Errorf("session id %q has length %d, want 4", info.ID, len(info.ID))
	}
	if info.Pack != "default" {
		t.Errorf("pack = %q, want default", info.Pack)
	}
	if info.Mode != service.ModeRPG {
		t.Errorf("mode = %q, want %q", info.Mode, service.ModeRPG)
	}
	if info.RPG == nil || info.Racing == nil {
		t.Error("session info missing engine status")
	}
}

func TestGetSession(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodGet, "/api/sessions/"+info.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got service.SessionInfo
	decodeBody(t, rec, &got)
	if got.ID != info.ID {
		t.Errorf("id = %q, want %q", got.ID, info.ID)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/sessions/zzzz", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] == "" {
		t.Errorf("error body = %v", body)
	}
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(t)
	createTestSession(t, srv)
	createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodGet, "/api/sessions?limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	decodeBody(t, rec, &body)
	if body.Count != 1 || len(body.Sessions) != 1 {
		t.Errorf("count = %d, sessions = %d, want 1 each", body.Count, len(body.Sessions))
	}
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodDelete, "/api/sessions/"+info.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/sessions/"+info.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d after delete, want 404", rec.Code)
	}
}

func TestSetMode(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/mode", `{"mode":"racing"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result service.ModeResult
	decodeBody(t, rec, &result)
	if result.Mode != service.ModeRacing {
		t.Errorf("mode = %q, want racing", result.Mode)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/mode", `{"mode":"plane"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for unknown mode, want 400", rec.Code)
	}
}

func TestUpdatePosition(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/position", `{"lat":35.68,"lng":139.65}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result service.PositionResult
	decodeBody(t, rec, &result)
	if result.Mode != service.ModeRPG {
		t.Errorf("mode = %q, want rpg", result.Mode)
	}
	if result.RPG == nil {
		t.Error("rpg move result missing")
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/sessions/zzzz/position", `{"lat":35.68,"lng":139.65}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d for unknown session, want 404", rec.Code)
	}
}

func TestBattleActionEngineError(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/rpg/battle", `{"action":"attack"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result rpg.BattleActionResult
	decodeBody(t, rec, &result)
	if result.Error != "no battle in progress" {
		t.Errorf("engine error = %q, want %q", result.Error, "no battle in progress")
	}
}

func TestVisitPOIInvalidIndex(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/rpg/poi/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVehicleShop(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodGet, "/api/sessions/"+info.ID+"/racing/shop", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Vehicles []json.RawMessage `json:"vehicles"`
	}
	decodeBody(t, rec, &body)
	if len(body.Vehicles) != 4 {
		t.Errorf("vehicle count = %d, want 4", len(body.Vehicles))
	}
}

func TestRaceLifecycle(t *testing.T) {
	srv := newTestServer(t)
	info := createTestSession(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/racing/race/start", `{"course":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/sessions/"+info.ID+"/racing/race/finish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("finish status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "isNewRecord") {
		t.Errorf("finish body = %s", rec.Body.String())
	}
}

func TestListPacks(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/packs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var packs []*service.PackInfo
	decodeBody(t, rec, &packs)
	if len(packs) != 1 || packs[0].PackID != "default" {
		t.Errorf("packs = %+v, want the builtin default", packs)
	}
}

func TestCreatePack(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/packs", `{"description":"no name"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d without name, want 400", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/packs", `{"name":"custom","description":"made in a test"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/packs", "")
	var packs []*service.PackInfo
	decodeBody(t, rec, &packs)
	found := false
	for _, p := range packs {
		if p.PackID == "custom" {
			found = true
		}
	}
	if !found {
		t.Errorf("saved pack missing from listing: %+v", packs)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/ws", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d without session param, want 400", rec.Code)
	}
}
