// Package schema defines the payload contracts exchanged between Hubs and
// the Vault over MQTT.
//
// Payloads fall into four groups, mirroring the topic hierarchy:
//   - Telemetry (Hub → Vault): sensors, system, events, general, addon
//   - Status (Hub → Vault): online heartbeat and offline LWT
//   - Commands (Vault → Hub): config, firmware, tunnel, sensors, addon
//   - Acknowledgements (Hub → Vault): command execution results
//
// All payloads are plain JSON structs. Timestamps are Unix epoch seconds
// (float), the wire format shared by every hub implementation. The
// discovery client (internal/ha) is the data source for sensor telemetry;
// this package defines the shapes it feeds.
//
// Validation here is structural only: required fields and recognised enum
// values. Anything deeper belongs to the component consuming the payload.
package schema
