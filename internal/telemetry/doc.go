// Package telemetry maps Home Assistant discovery results onto the
// hub's MQTT telemetry contract.
//
// The Reporter is the hub-side consumer of discovery snapshots: it
// turns entity states into sensors telemetry payloads, publishes host
// metrics and events, and maintains the retained online/offline status.
// When a time-series sink is attached, numeric states and system
// snapshots are recorded alongside each publish.
//
// The Reporter is deliberately one-shot. Polling cadence, retry and
// delta detection belong to the caller.
package telemetry
