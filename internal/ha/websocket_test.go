package ha

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestDiscoverWebSocket(t *testing.T) {
	fake := newFakeHA(t)
	conn := testConnection(t, fake, fakeToken)

	result, err := conn.DiscoverWebSocket(context.Background())
	if err != nil {
		t.Fatalf("DiscoverWebSocket() error = %v", err)
	}

	if result.WebsocketURL != conn.WebsocketURL() {
		t.Errorf("WebsocketURL = %q, want %q", result.WebsocketURL, conn.WebsocketURL())
	}
	if got := result.Config["location_name"]; got != "Test Home" {
		t.Errorf("Config[location_name] = %v, want Test Home", got)
	}
}

func TestDiscoverWebSocketRequiresToken(t *testing.T) {
	fake := newFakeHA(t)
	conn := testConnection(t, fake, "")

	_, err := conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected error without token")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}

	// Fails before any socket is opened.
	if got := fake.wsCalls.Load(); got != 0 {
		t.Errorf("websocket endpoint called %d times, want 0", got)
	}
}

func TestDiscoverWebSocketRejectedToken(t *testing.T) {
	fake := newFakeHA(t)
	conn := testConnection(t, fake, "bad-token")

	_, err := conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected error for rejected token")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}

	// The raw rejection payload is surfaced for diagnosis.
	if !strings.Contains(err.Error(), "auth_invalid") {
		t.Errorf("error %q missing rejection payload", err)
	}
}

func TestDiscoverWebSocketDirectAuthOK(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		// Handshake already complete: no auth_required phase.
		_ = conn.WriteJSON(map[string]any{"type": "auth_ok", "ha_version": "2024.1.0"})

		var cmd struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		_ = conn.WriteJSON(map[string]any{
			"id": cmd.ID, "type": "result", "success": true,
			"result": map[string]any{"version": "2024.1.0"},
		})
	}
	conn := testConnection(t, fake, fakeToken)

	result, err := conn.DiscoverWebSocket(context.Background())
	if err != nil {
		t.Fatalf("DiscoverWebSocket() error = %v", err)
	}
	if got := result.Config["version"]; got != "2024.1.0" {
		t.Errorf("Config[version] = %v, want 2024.1.0", got)
	}
}

func TestDiscoverWebSocketUnexpectedHandshake(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		_ = conn.WriteJSON(map[string]any{"type": "event"})
	}
	conn := testConnection(t, fake, fakeToken)

	_, err := conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected error for unexpected handshake")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}
}

func TestDiscoverWebSocketIDMismatch(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		authThenRead(conn)
		// Reply with a different correlation id: cross-talk.
		_ = conn.WriteJSON(map[string]any{
			"id": "someone-elses-request", "type": "result", "success": true,
			"result": map[string]any{},
		})
	}
	conn := testConnection(t, fake, fakeToken)

	_, err := conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected error for id mismatch")
	}
	if !strings.Contains(err.Error(), "id mismatch") {
		t.Errorf("error %q should mention id mismatch", err)
	}
}

func TestDiscoverWebSocketGetConfigFailure(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		id := authThenRead(conn)
		_ = conn.WriteJSON(map[string]any{"id": id, "type": "result", "success": false})
	}
	conn := testConnection(t, fake, fakeToken)

	_, err := conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected error for failed get_config")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}
}

func TestDiscoverWebSocketMalformedResult(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		id := authThenRead(conn)
		// result present but not a structured object.
		_ = conn.WriteJSON(map[string]any{"id": id, "type": "result", "success": true, "result": []int{1, 2}})
	}
	conn := testConnection(t, fake, fakeToken)

	_, err := conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected error for malformed result")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}
}

func TestDiscoverWebSocketAbsentResult(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		id := authThenRead(conn)
		_ = conn.WriteJSON(map[string]any{"id": id, "type": "result", "success": true})
	}
	conn := testConnection(t, fake, fakeToken)

	// An absent result is treated as an empty config object.
	result, err := conn.DiscoverWebSocket(context.Background())
	if err != nil {
		t.Fatalf("DiscoverWebSocket() error = %v", err)
	}
	if len(result.Config) != 0 {
		t.Errorf("Config = %v, want empty", result.Config)
	}
}

func TestDiscoverWebSocketReceiveTimeout(t *testing.T) {
	fake := newFakeHA(t)
	fake.wsScript = func(conn *websocket.Conn) {
		// Never say anything; the client read must time out.
		time.Sleep(500 * time.Millisecond)
	}

	conn, err := NewConnection(Config{
		BaseURL: fake.URL(),
		Token:   fakeToken,
		Timeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}

	_, err = conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected timeout error")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}
}

func TestDiscoverWebSocketDialFailure(t *testing.T) {
	conn, err := NewConnection(Config{
		BaseURL: "http://127.0.0.1:1",
		Token:   fakeToken,
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}

	_, err = conn.DiscoverWebSocket(context.Background())
	if err == nil {
		t.Fatal("DiscoverWebSocket() expected dial error")
	}
	if !errors.Is(err, ErrDiscovery) {
		t.Errorf("DiscoverWebSocket() error = %v, want ErrDiscovery", err)
	}
}

// authThenRead runs the server side of a successful auth phase and returns
// the id of the following command message.
func authThenRead(conn *websocket.Conn) string {
	_ = conn.WriteJSON(map[string]any{"type": "auth_required"})

	var auth struct {
		Type        string `json:"type"`
		AccessToken string `json:"access_token"`
	}
	if err := conn.ReadJSON(&auth); err != nil {
		return ""
	}
	_ = conn.WriteJSON(map[string]any{"type": "auth_ok"})

	var cmd struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&cmd); err != nil {
		return ""
	}
	return cmd.ID
}
