package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/centralcore/mqtt-shared/internal/schema"
)

// WriteSensorState records one sensor entity state.
//
// Used for numeric sensor values discovered from Home Assistant. The
// write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - hubID: The hub that observed the entity
//   - entityID: The Home Assistant entity id (e.g., "sensor.kitchen_temp")
//   - value: The numeric state value
//
// Example:
//
//	client.WriteSensorState("hub-001", "sensor.kitchen_temp", 21.5)
func (c *Client) WriteSensorState(hubID string, entityID string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_state",
		map[string]string{
			"hub_id":    hubID,
			"entity_id": entityID,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteSystemTelemetry records a hub's host metrics snapshot.
//
// Parameters:
//   - hubID: The hub reporting the metrics
//   - telemetry: CPU, RAM, uptime and optional temperature
func (c *Client) WriteSystemTelemetry(hubID string, telemetry schema.SystemTelemetry) {
	if !c.IsConnected() {
		return
	}

	fields := map[string]interface{}{
		"cpu":    telemetry.CPU,
		"ram":    telemetry.RAM,
		"uptime": telemetry.Uptime,
	}
	if telemetry.Temperature != nil {
		fields["temperature"] = *telemetry.Temperature
	}

	point := write.NewPoint(
		"hub_system",
		map[string]string{
			"hub_id": hubID,
		},
		fields,
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEvent records a discrete hub event occurrence.
//
// Events are stored as a count of 1 per occurrence, tagged by type,
// which makes rate queries cheap on the Vault side.
//
// Parameters:
//   - hubID: The hub that observed the event
//   - eventType: The event classification (door, motion, button, power, other)
func (c *Client) WriteEvent(hubID string, eventType schema.EventType) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"hub_events",
		map[string]string{
			"hub_id":     hubID,
			"event_type": string(eventType),
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("discovery_stats",
//	    map[string]string{"hub_id": "hub-001"},
//	    map[string]interface{}{"entities": 42, "duration_ms": 118.0})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., replayed telemetry).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
