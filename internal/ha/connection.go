package ha

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Defaults applied when Config fields are left zero.
const (
	// DefaultWSPath is the Home Assistant WebSocket API path.
	DefaultWSPath = "api/websocket"

	// DefaultTimeout bounds each REST request and each WebSocket receive.
	// It is a per-operation bound, not a budget for the whole discovery pass.
	DefaultTimeout = 30 * time.Second
)

// Config carries the settings needed to reach one Home Assistant instance.
type Config struct {
	// BaseURL is the REST base URL, e.g. "https://ha.local:8123".
	// Required. Validated and normalized at construction.
	BaseURL string

	// Token is the long-lived access token. Optional for REST discovery,
	// required for WebSocket discovery.
	Token string

	// WSPath is the WebSocket API path relative to BaseURL.
	// Defaults to DefaultWSPath. A leading slash is stripped.
	WSPath string

	// Timeout bounds each network operation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Connection identifies one Home Assistant instance and holds its
// discovery cache.
//
// Thread Safety:
//   - Immutable after construction except for the discovery cache.
//   - DiscoverAll calls against the same Connection are serialized by an
//     internal lock; concurrent callers collapse into a single fetch.
type Connection struct {
	baseURL string
	wsURL   string
	token   string
	wsPath  string
	timeout time.Duration

	// discoveryCache holds at most one result, replaced wholesale on
	// refresh. Guarded by discoveryMu for single-flight semantics.
	discoveryCache *DiscoveryResult
	discoveryMu    sync.Mutex
}

// NewConnection validates the base URL and derives the WebSocket URL.
//
// The base URL must include a scheme and host; any trailing slash is
// removed. The WebSocket URL uses wss when the base scheme is https or
// wss, ws otherwise. Both transformations are pure and happen once here.
//
// Returns:
//   - *Connection: Ready for discovery calls
//   - error: ErrInvalidBaseURL if the base URL fails validation
func NewConnection(cfg Config) (*Connection, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	wsPath := strings.TrimLeft(cfg.WSPath, "/")
	if wsPath == "" {
		wsPath = DefaultWSPath
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Connection{
		baseURL: baseURL,
		wsURL:   buildWebsocketURL(baseURL, wsPath),
		token:   cfg.Token,
		wsPath:  wsPath,
		timeout: timeout,
	}, nil
}

// RESTBaseURL returns the normalized REST base URL.
func (c *Connection) RESTBaseURL() string {
	return c.baseURL
}

// WebsocketURL returns the derived WebSocket URL.
func (c *Connection) WebsocketURL() string {
	return c.wsURL
}

// normalizeBaseURL validates and canonicalizes a raw base URL.
//
// Whitespace is trimmed, the URL must parse with a scheme and host, and
// trailing slashes are removed. Idempotent: normalizing an already
// normalized URL returns it unchanged.
func normalizeBaseURL(raw string) (string, error) {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return "", fmt.Errorf("%w: base URL must not be empty", ErrInvalidBaseURL)
	}

	parsed, err := url.Parse(stripped)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q must include a scheme and host", ErrInvalidBaseURL, stripped)
	}

	return strings.TrimRight(stripped, "/"), nil
}

// buildWebsocketURL joins the normalized base URL with the WebSocket path
// and swaps the scheme: https/wss become wss, everything else becomes ws.
// baseURL must already be validated.
func buildWebsocketURL(baseURL, wsPath string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		// Unreachable: baseURL passed normalizeBaseURL.
		return ""
	}

	switch parsed.Scheme {
	case "https", "wss":
		parsed.Scheme = "wss"
	default:
		parsed.Scheme = "ws"
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/" + wsPath

	return parsed.String()
}

// makeURL joins the base URL with a REST path, stripping any leading slash.
func (c *Connection) makeURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
