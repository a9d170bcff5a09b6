package schema

import "time"

// EventType classifies discrete hub events.
type EventType string

const (
	EventDoor   EventType = "door"
	EventMotion EventType = "motion"
	EventButton EventType = "button"
	EventPower  EventType = "power"
	EventOther  EventType = "other"
)

// Valid reports whether the event type is recognised.
func (e EventType) Valid() bool {
	switch e {
	case EventDoor, EventMotion, EventButton, EventPower, EventOther:
		return true
	}
	return false
}

// Sensor is one Home Assistant entity in a sensors telemetry payload.
//
// A basic entry (discovery lists and delta updates) carries only ID,
// State and Type. A full entry (poll responses and metadata dumps) adds
// Unit and Attributes from the entity registry.
type Sensor struct {
	// ID is the Home Assistant entity id, e.g. "sensor.kitchen_temp".
	ID string `json:"id"`

	// State is the current value. Shape depends on the entity.
	State any `json:"state,omitempty"`

	// Type is the entity domain, e.g. "sensor", "light".
	Type string `json:"type,omitempty"`

	// Unit is the unit of measurement, full entries only.
	Unit string `json:"unit,omitempty"`

	// Attributes are the entity attributes, full entries only.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// SensorsTelemetry wraps sensor data published to the sensors telemetry
// topic.
//
// Partial true marks basic lists or delta updates; false marks a full
// metadata dump.
type SensorsTelemetry struct {
	Partial   bool     `json:"partial"`
	Timestamp float64  `json:"timestamp"`
	Sensors   []Sensor `json:"sensors"`
}

// SystemTelemetry reports hub host metrics.
type SystemTelemetry struct {
	// CPU usage percentage.
	CPU float64 `json:"cpu"`

	// RAM usage percentage.
	RAM float64 `json:"ram"`

	// Uptime in seconds.
	Uptime float64 `json:"uptime"`

	// Temperature of the host, if available.
	Temperature *float64 `json:"temperature,omitempty"`
}

// EventTelemetry reports a discrete event such as door motion or a
// button press.
type EventTelemetry struct {
	EventType EventType      `json:"event_type"`
	Timestamp float64        `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// Validate checks the event payload structure.
func (e EventTelemetry) Validate() error {
	if !e.EventType.Valid() {
		return invalidf("event_type %q is not recognised", e.EventType)
	}
	return nil
}

// GeneralTelemetry is the catch-all category for user-defined or
// extension data.
type GeneralTelemetry struct {
	Data map[string]any `json:"data"`
}

// Timestamp returns the current time as Unix epoch seconds, the wire
// format used by every timestamped payload.
func Timestamp() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
