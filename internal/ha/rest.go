package ha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxErrorBodySize caps how much of a non-200 response body is included
// in error messages.
const maxErrorBodySize = 16 << 10 // 16KB

// ServiceDomain is one entry of the /api/services listing: a service
// domain (e.g. "light") and the services it exposes.
type ServiceDomain struct {
	Domain   string         `json:"domain"`
	Services map[string]any `json:"services"`
}

// EntityState is one entry of the /api/states listing.
type EntityState struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	LastChanged string         `json:"last_changed,omitempty"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

// RESTDiscoveryResult is the immutable snapshot produced by one REST
// discovery pass. Services and States preserve the order returned by the
// instance.
type RESTDiscoveryResult struct {
	BaseURL  string          `json:"base_url"`
	Services []ServiceDomain `json:"services"`
	States   []EntityState   `json:"states"`
}

// DiscoverREST fetches the service and entity-state listings.
//
// Two authenticated GETs run in sequence: /api/services then /api/states.
// Each request is bounded by the configured timeout. The HTTP client is
// scoped to this call; idle connections are released on every exit path.
//
// A token is not required: Authorization is sent only when one is
// configured. Accept: application/json is always sent.
//
// Returns:
//   - *RESTDiscoveryResult: Both listings, order preserved
//   - error: ErrDiscovery wrapping the status, URL or transport failure
func (c *Connection) DiscoverREST(ctx context.Context) (*RESTDiscoveryResult, error) {
	client := &http.Client{Timeout: c.timeout}
	defer client.CloseIdleConnections()

	var services []ServiceDomain
	if err := c.fetchJSON(ctx, client, "api/services", &services); err != nil {
		return nil, err
	}

	var states []EntityState
	if err := c.fetchJSON(ctx, client, "api/states", &states); err != nil {
		return nil, err
	}

	return &RESTDiscoveryResult{
		BaseURL:  c.baseURL,
		Services: services,
		States:   states,
	}, nil
}

// fetchJSON performs one authenticated GET and decodes the JSON body into out.
func (c *Connection) fetchJSON(ctx context.Context, client *http.Client, path string, out any) error {
	endpoint := c.makeURL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %w", ErrDiscovery, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return fmt.Errorf("%w: timed out while reading %s: %w", ErrDiscovery, endpoint, err)
		}
		return fmt.Errorf("%w: REST request failed for %s: %w", ErrDiscovery, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("%w: REST endpoint %s returned %d: %s", ErrDiscovery, endpoint, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: unable to decode JSON from %s: %w", ErrDiscovery, endpoint, err)
	}

	return nil
}
