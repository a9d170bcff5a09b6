package ha

import "context"

// DiscoveryResult pairs the REST and WebSocket snapshots from one
// discovery pass. It is the cached artifact held by a Connection,
// replaced wholesale on refresh, never partially updated.
type DiscoveryResult struct {
	REST      *RESTDiscoveryResult      `json:"rest"`
	Websocket *WebsocketDiscoveryResult `json:"websocket"`
}

// DiscoverAll runs REST then WebSocket discovery, caching the combined
// result on the Connection.
//
// The discovery lock is held for the whole pass, so concurrent callers
// serialize: a caller that arrives while a fetch is in flight waits and
// then observes the just-produced cache rather than triggering a second
// round-trip. With a populated cache and forceRefresh false, the cached
// result is returned without any I/O.
//
// The two fetches are strictly sequential. A WebSocket failure after a
// successful REST fetch fails the whole call and leaves the prior cache
// (or emptiness) untouched; no partial result is ever stored.
//
// Parameters:
//   - ctx: Bounds and cancels the underlying network operations
//   - forceRefresh: Bypass the cache and replace it on success
//
// Returns:
//   - *DiscoveryResult: The cached or freshly fetched snapshot
//   - error: ErrDiscovery from whichever phase failed
func (c *Connection) DiscoverAll(ctx context.Context, forceRefresh bool) (*DiscoveryResult, error) {
	c.discoveryMu.Lock()
	defer c.discoveryMu.Unlock()

	if c.discoveryCache != nil && !forceRefresh {
		return c.discoveryCache, nil
	}

	rest, err := c.DiscoverREST(ctx)
	if err != nil {
		return nil, err
	}

	websocket, err := c.DiscoverWebSocket(ctx)
	if err != nil {
		return nil, err
	}

	c.discoveryCache = &DiscoveryResult{REST: rest, Websocket: websocket}

	return c.discoveryCache, nil
}
