package ha

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Home Assistant WebSocket message types.
// See https://developers.home-assistant.io/docs/api/websocket/
const (
	wsTypeAuthRequired = "auth_required"
	wsTypeAuthOK       = "auth_ok"
	wsTypeAuth         = "auth"
	wsTypeGetConfig    = "get_config"
	wsTypeResult       = "result"
)

// WebsocketDiscoveryResult is the immutable snapshot produced by one
// successful WebSocket handshake and get_config exchange.
type WebsocketDiscoveryResult struct {
	WebsocketURL string         `json:"websocket_url"`
	Config       map[string]any `json:"config"`
}

// wsAuthMessage authenticates the connection after auth_required.
type wsAuthMessage struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
}

// wsCommandMessage is a request with a correlation id, e.g. get_config.
type wsCommandMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// wsMessage is a decoded inbound message. raw keeps the undecoded payload
// for error reporting.
type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Success bool            `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`

	raw []byte
}

// DiscoverWebSocket validates the WebSocket API and captures the instance
// configuration.
//
// A configured token is required; without one this fails before any
// network operation. The socket is scoped to this call and closed on
// every exit path, including context cancellation. Keepalive pings are
// not configured: the exchange is two short request/response phases.
//
// Protocol:
//  1. Handshake: auth_required → send token → expect auth_ok. A first
//     message of auth_ok completes the handshake directly.
//  2. Config query: send get_config with a fresh random id, expect a
//     result message with the matching id and success=true.
//
// Every receive is bounded by the configured timeout. All transport,
// protocol and timeout failures wrap ErrDiscovery.
func (c *Connection) DiscoverWebSocket(ctx context.Context) (*WebsocketDiscoveryResult, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: websocket discovery requires a long-lived access token", ErrDiscovery)
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, resp, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %w", ErrDiscovery, c.wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Close the socket if the caller goes away mid-read so the pending
	// receive unblocks and the lock in DiscoverAll is released.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := c.performHandshake(conn); err != nil {
		return nil, err
	}

	config, err := c.fetchConfig(conn)
	if err != nil {
		return nil, err
	}

	return &WebsocketDiscoveryResult{
		WebsocketURL: c.wsURL,
		Config:       config,
	}, nil
}

// performHandshake completes the Home Assistant auth phase.
func (c *Connection) performHandshake(conn *websocket.Conn) error {
	first, err := c.readMessage(conn)
	if err != nil {
		return err
	}

	switch first.Type {
	case wsTypeAuthOK:
		// Instance does not require auth for this connection.
		return nil
	case wsTypeAuthRequired:
		if err := c.writeMessage(conn, wsAuthMessage{Type: wsTypeAuth, AccessToken: c.token}); err != nil {
			return err
		}
		result, err := c.readMessage(conn)
		if err != nil {
			return err
		}
		if result.Type != wsTypeAuthOK {
			return fmt.Errorf("%w: access token rejected: %s", ErrDiscovery, result.raw)
		}
		return nil
	default:
		return fmt.Errorf("%w: unexpected handshake response: %s", ErrDiscovery, first.raw)
	}
}

// fetchConfig issues get_config and validates the correlated response.
func (c *Connection) fetchConfig(conn *websocket.Conn) (map[string]any, error) {
	requestID := uuid.NewString()

	if err := c.writeMessage(conn, wsCommandMessage{ID: requestID, Type: wsTypeGetConfig}); err != nil {
		return nil, err
	}

	resp, err := c.readMessage(conn)
	if err != nil {
		return nil, err
	}
	if resp.ID != requestID {
		return nil, fmt.Errorf("%w: get_config response id mismatch: got %q, want %q", ErrDiscovery, resp.ID, requestID)
	}
	if resp.Type != wsTypeResult || !resp.Success {
		return nil, fmt.Errorf("%w: get_config failed: %s", ErrDiscovery, resp.raw)
	}

	// An absent result is treated as an empty config; a present result
	// must be a JSON object.
	config := make(map[string]any)
	if len(resp.Result) > 0 {
		var decoded any
		if err := json.Unmarshal(resp.Result, &decoded); err != nil {
			return nil, fmt.Errorf("%w: get_config returned unexpected payload: %w", ErrDiscovery, err)
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: get_config returned unexpected payload: %s", ErrDiscovery, resp.Result)
		}
		config = obj
	}

	return config, nil
}

// readMessage receives and decodes one JSON message, bounded by the
// configured timeout.
func (c *Connection) readMessage(conn *websocket.Conn) (*wsMessage, error) {
	if err := conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("%w: setting read deadline: %w", ErrDiscovery, err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, fmt.Errorf("%w: timed out waiting for websocket message from %s: %w", ErrDiscovery, c.wsURL, err)
		}
		return nil, fmt.Errorf("%w: reading websocket message: %w", ErrDiscovery, err)
	}

	var msg wsMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode websocket message: %w", ErrDiscovery, err)
	}
	msg.raw = raw

	return &msg, nil
}

// writeMessage encodes and sends one JSON message, bounded by the
// configured timeout.
func (c *Connection) writeMessage(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("%w: setting write deadline: %w", ErrDiscovery, err)
	}
	if err := conn.WriteJSON(v); err != nil {
		return fmt.Errorf("%w: sending websocket message: %w", ErrDiscovery, err)
	}
	return nil
}
