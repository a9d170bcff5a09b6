package telemetry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/centralcore/mqtt-shared/internal/ha"
	"github.com/centralcore/mqtt-shared/internal/infrastructure/logging"
	"github.com/centralcore/mqtt-shared/internal/infrastructure/mqtt"
	"github.com/centralcore/mqtt-shared/internal/schema"
)

// QoS levels for reporter publishes.
const (
	// telemetryQoS is used for telemetry payloads. At-least-once is
	// acceptable; the Vault deduplicates by timestamp.
	telemetryQoS = 1

	// statusQoS is used for presence payloads.
	statusQoS = 1
)

// Publisher is the MQTT surface the reporter needs. *mqtt.Client
// satisfies it.
type Publisher interface {
	PublishJSON(topic string, payload any, qos byte, retained bool) error
}

// Recorder is the optional time-series sink. *influxdb.Client satisfies
// it. A nil Recorder disables recording.
type Recorder interface {
	WriteSensorState(hubID string, entityID string, value float64)
	WriteSystemTelemetry(hubID string, telemetry schema.SystemTelemetry)
	WriteEvent(hubID string, eventType schema.EventType)
}

// Reporter publishes hub telemetry derived from Home Assistant
// discovery results.
//
// It is a one-shot surface: every Report method performs a single
// publish and returns. Scheduling, retry and batching stay with the
// caller.
type Reporter struct {
	publisher Publisher
	recorder  Recorder
	topics    mqtt.Topics
	logger    *logging.Logger
}

// New creates a Reporter that publishes on the given hub's topics.
//
// Parameters:
//   - publisher: MQTT publish surface (usually *mqtt.Client)
//   - topics: Topic builder for the owning hub
//   - logger: Structured logger; nil falls back to the default
func New(publisher Publisher, topics mqtt.Topics, logger *logging.Logger) *Reporter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Reporter{
		publisher: publisher,
		topics:    topics,
		logger:    logger.With("component", "telemetry"),
	}
}

// SetRecorder attaches a time-series sink. Numeric sensor states,
// system snapshots and events are then recorded alongside each publish.
func (r *Reporter) SetRecorder(recorder Recorder) {
	r.recorder = recorder
}

// ReportSensors publishes entity states as a sensors telemetry payload.
//
// With full false the payload is a basic list (id, state, type) and is
// marked partial. With full true each entry carries unit and attributes
// from the entity registry and the payload is marked as a complete dump.
//
// Numeric states are also recorded to the time-series sink when one is
// attached.
func (r *Reporter) ReportSensors(states []ha.EntityState, full bool) error {
	payload := schema.SensorsTelemetry{
		Partial:   !full,
		Timestamp: schema.Timestamp(),
		Sensors:   make([]schema.Sensor, 0, len(states)),
	}
	for _, state := range states {
		payload.Sensors = append(payload.Sensors, sensorFromState(state, full))
	}

	if err := r.publisher.PublishJSON(r.topics.TelemetrySensors(), payload, telemetryQoS, false); err != nil {
		return fmt.Errorf("publishing sensors telemetry: %w", err)
	}

	if r.recorder != nil {
		for _, state := range states {
			if value, ok := numericState(state.State); ok {
				r.recorder.WriteSensorState(r.topics.HubID, state.EntityID, value)
			}
		}
	}

	r.logger.Debug("sensors telemetry published",
		"entities", len(states),
		"full", full)
	return nil
}

// ReportSystem publishes a host metrics snapshot.
func (r *Reporter) ReportSystem(telemetry schema.SystemTelemetry) error {
	if err := r.publisher.PublishJSON(r.topics.TelemetrySystem(), telemetry, telemetryQoS, false); err != nil {
		return fmt.Errorf("publishing system telemetry: %w", err)
	}
	if r.recorder != nil {
		r.recorder.WriteSystemTelemetry(r.topics.HubID, telemetry)
	}
	return nil
}

// ReportEvent publishes a discrete event.
func (r *Reporter) ReportEvent(event schema.EventTelemetry) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.Timestamp == 0 {
		event.Timestamp = schema.Timestamp()
	}

	if err := r.publisher.PublishJSON(r.topics.TelemetryEvents(), event, telemetryQoS, false); err != nil {
		return fmt.Errorf("publishing event telemetry: %w", err)
	}
	if r.recorder != nil {
		r.recorder.WriteEvent(r.topics.HubID, event.EventType)
	}
	return nil
}

// ReportGeneral publishes a catch-all telemetry payload.
func (r *Reporter) ReportGeneral(payload schema.GeneralTelemetry) error {
	if err := r.publisher.PublishJSON(r.topics.TelemetryGeneral(), payload, telemetryQoS, false); err != nil {
		return fmt.Errorf("publishing general telemetry: %w", err)
	}
	return nil
}

// ReportOnline publishes the retained online heartbeat.
func (r *Reporter) ReportOnline() error {
	if err := r.publisher.PublishJSON(r.topics.StatusOnline(), schema.NewStatusOnline(), statusQoS, true); err != nil {
		return fmt.Errorf("publishing online status: %w", err)
	}
	return nil
}

// ReportOffline publishes the retained offline status for graceful
// shutdown. Unexpected disconnects are covered by the broker LWT.
func (r *Reporter) ReportOffline() error {
	if err := r.publisher.PublishJSON(r.topics.StatusOffline(), schema.NewStatusOffline(), statusQoS, true); err != nil {
		return fmt.Errorf("publishing offline status: %w", err)
	}
	return nil
}

// sensorFromState maps one discovered entity state onto the wire shape.
func sensorFromState(state ha.EntityState, full bool) schema.Sensor {
	sensor := schema.Sensor{
		ID:    state.EntityID,
		State: state.State,
		Type:  entityDomain(state.EntityID),
	}
	if full {
		sensor.Attributes = state.Attributes
		if unit, ok := state.Attributes["unit_of_measurement"].(string); ok {
			sensor.Unit = unit
		}
	}
	return sensor
}

// entityDomain extracts the domain from a Home Assistant entity id,
// e.g. "sensor.kitchen_temp" → "sensor".
func entityDomain(entityID string) string {
	domain, _, found := strings.Cut(entityID, ".")
	if !found {
		return ""
	}
	return domain
}

// numericState parses a state string as a float. Home Assistant reports
// every state as a string; non-numeric states ("on", "unavailable") are
// not recordable.
func numericState(state string) (float64, bool) {
	value, err := strconv.ParseFloat(state, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
