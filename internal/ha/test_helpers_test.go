package ha

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeToken is the access token accepted by the fake instance.
const fakeToken = "test-token"

// Canned listing bodies served by the fake instance.
const (
	fakeServicesJSON = `[{"domain":"light","services":{"turn_on":{},"turn_off":{}}},{"domain":"switch","services":{"toggle":{}}}]`
	fakeStatesJSON   = `[{"entity_id":"light.kitchen","state":"on","attributes":{"brightness":200}},{"entity_id":"sensor.hall_temp","state":"21.5","attributes":{"unit_of_measurement":"°C"}}]`
)

var testUpgrader = websocket.Upgrader{}

// fakeHA is an in-process Home Assistant stand-in serving the REST
// listings and the WebSocket handshake protocol. Fields can be adjusted
// before the first request to script failure scenarios.
type fakeHA struct {
	server *httptest.Server

	servicesJSON   string
	statesJSON     string
	servicesStatus int           // non-zero: respond with this status instead
	restDelay      time.Duration // delay before answering REST requests

	// wsScript, when set, replaces the default handshake script.
	wsScript func(conn *websocket.Conn)

	servicesCalls atomic.Int32
	statesCalls   atomic.Int32
	wsCalls       atomic.Int32

	lastAuthHeader   atomic.Value // string
	lastAcceptHeader atomic.Value // string
}

// newFakeHA starts a fake instance; it is shut down with the test.
func newFakeHA(t *testing.T) *fakeHA {
	t.Helper()

	f := &fakeHA{
		servicesJSON: fakeServicesJSON,
		statesJSON:   fakeStatesJSON,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)

	return f
}

// URL returns the REST base URL of the fake instance.
func (f *fakeHA) URL() string {
	return f.server.URL
}

func (f *fakeHA) handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/services":
		f.servicesCalls.Add(1)
		f.lastAuthHeader.Store(r.Header.Get("Authorization"))
		f.lastAcceptHeader.Store(r.Header.Get("Accept"))
		f.serveListing(w, f.servicesJSON, f.servicesStatus)
	case "/api/states":
		f.statesCalls.Add(1)
		f.serveListing(w, f.statesJSON, 0)
	case "/api/websocket":
		f.wsCalls.Add(1)
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if f.wsScript != nil {
			f.wsScript(conn)
			return
		}
		f.serveHandshake(conn)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeHA) serveListing(w http.ResponseWriter, body string, status int) {
	if f.restDelay > 0 {
		time.Sleep(f.restDelay)
	}
	if status != 0 {
		http.Error(w, `{"message":"error"}`, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// serveHandshake runs the standard auth_required → auth → auth_ok →
// get_config script, echoing the request id back in the result.
func (f *fakeHA) serveHandshake(conn *websocket.Conn) {
	_ = conn.WriteJSON(map[string]any{"type": "auth_required", "ha_version": "2024.1.0"})

	var auth struct {
		Type        string `json:"type"`
		AccessToken string `json:"access_token"`
	}
	if err := conn.ReadJSON(&auth); err != nil {
		return
	}
	if auth.AccessToken != fakeToken {
		_ = conn.WriteJSON(map[string]any{"type": "auth_invalid", "message": "Invalid access token"})
		return
	}
	_ = conn.WriteJSON(map[string]any{"type": "auth_ok", "ha_version": "2024.1.0"})

	var cmd struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&cmd); err != nil {
		return
	}
	if cmd.Type != "get_config" {
		_ = conn.WriteJSON(map[string]any{"id": cmd.ID, "type": "result", "success": false})
		return
	}
	_ = conn.WriteJSON(map[string]any{
		"id":      cmd.ID,
		"type":    "result",
		"success": true,
		"result":  map[string]any{"location_name": "Test Home", "version": "2024.1.0"},
	})
}

// testConnection builds a Connection against the fake instance.
func testConnection(t *testing.T, f *fakeHA, token string) *Connection {
	t.Helper()

	conn, err := NewConnection(Config{
		BaseURL: f.URL(),
		Token:   token,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}

	return conn
}
