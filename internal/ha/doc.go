// Package ha provides Home Assistant discovery for central-core hubs.
//
// This package manages:
//   - REST discovery of service and entity-state listings
//   - WebSocket handshake validation and config retrieval
//   - Combined discovery with single-flight caching per connection
//
// # Architecture
//
// Each hub pairs with one Home Assistant instance. A Connection captures the
// normalized REST base URL, the derived WebSocket URL, and an optional
// long-lived access token. Discovery is a one-shot pass that snapshots what
// the instance exposes; the result feeds the sensor telemetry and command
// payloads the hub exchanges with the Vault over MQTT.
//
//	Vault ↔ MQTT Broker ↔ Hub → (REST + WebSocket) → Home Assistant
//
// # Usage
//
//	conn, err := ha.NewConnection(ha.Config{
//	    BaseURL: "https://ha.local:8123",
//	    Token:   token,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conn.DiscoverAll(ctx, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.REST.States), "entities")
//
// # Error Handling
//
// Construction failures (malformed base URL) return ErrInvalidBaseURL.
// Every discovery failure, regardless of transport, wraps ErrDiscovery so
// callers see a single error kind. The package never retries; retry and
// backoff policy belongs to the caller.
package ha
