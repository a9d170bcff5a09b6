package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/centralcore/mqtt-shared/internal/infrastructure/config"
	"github.com/centralcore/mqtt-shared/internal/infrastructure/influxdb"
	"github.com/centralcore/mqtt-shared/internal/schema"
)

// fakeInflux is a minimal InfluxDB v2 endpoint: it answers pings and
// captures line-protocol write bodies.
type fakeInflux struct {
	server *httptest.Server

	mu     sync.Mutex
	bodies []string
}

func newFakeInflux(t *testing.T) *fakeInflux {
	t.Helper()

	f := &fakeInflux{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ping":
			w.WriteHeader(http.StatusNoContent)
		case strings.HasPrefix(r.URL.Path, "/api/v2/write"):
			body, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			f.bodies = append(f.bodies, string(body))
			f.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

// written returns everything received on the write endpoint so far.
func (f *fakeInflux) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.bodies, "\n")
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           url,
		Token:         "test-token",
		Org:           "centralcore",
		Bucket:        "telemetry",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// connect establishes a client against the fake server and fails the
// test on any async write error.
func connect(t *testing.T, f *fakeInflux) *influxdb.Client {
	t.Helper()

	client, err := influxdb.Connect(testConfig(f.server.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	client.SetOnError(func(err error) {
		t.Errorf("async write error: %v", err)
	})
	return client
}

// waitForBody polls until the fake server has received a write or the
// deadline passes.
func waitForBody(t *testing.T, f *fakeInflux) string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if body := f.written(); body != "" {
			return body
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no write received")
	return ""
}

// =============================================================================
// Connection Tests
// =============================================================================

func TestConnect(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
}

func TestConnectDisabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:8086")
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnectUnreachable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnectDefaultBatchSettings(t *testing.T) {
	f := newFakeInflux(t)
	cfg := testConfig(f.server.URL)
	cfg.BatchSize = 0
	cfg.FlushInterval = -1

	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false with default batch settings")
	}
}

// =============================================================================
// Health Check Tests
// =============================================================================

func TestHealthCheck(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestHealthCheckCancelled(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() should fail with cancelled context")
	}
}

// =============================================================================
// Write Tests
// =============================================================================

func TestWriteSensorState(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	client.WriteSensorState("hub-001", "sensor.kitchen_temp", 21.5)
	client.Flush()

	body := waitForBody(t, f)
	if !strings.Contains(body, "sensor_state") {
		t.Errorf("write body missing measurement: %q", body)
	}
	if !strings.Contains(body, "hub_id=hub-001") {
		t.Errorf("write body missing hub tag: %q", body)
	}
	if !strings.Contains(body, "entity_id=sensor.kitchen_temp") {
		t.Errorf("write body missing entity tag: %q", body)
	}
}

func TestWriteSystemTelemetry(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	temp := 48.2
	client.WriteSystemTelemetry("hub-001", schema.SystemTelemetry{
		CPU:         12.5,
		RAM:         41.0,
		Uptime:      3600,
		Temperature: &temp,
	})
	client.Flush()

	body := waitForBody(t, f)
	if !strings.Contains(body, "hub_system") {
		t.Errorf("write body missing measurement: %q", body)
	}
	if !strings.Contains(body, "temperature=") {
		t.Errorf("write body missing temperature field: %q", body)
	}
}

func TestWriteSystemTelemetryNoTemperature(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	client.WriteSystemTelemetry("hub-001", schema.SystemTelemetry{
		CPU:    12.5,
		RAM:    41.0,
		Uptime: 3600,
	})
	client.Flush()

	body := waitForBody(t, f)
	if strings.Contains(body, "temperature=") {
		t.Errorf("temperature field should be omitted when nil: %q", body)
	}
}

func TestWriteEvent(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	client.WriteEvent("hub-001", schema.EventMotion)
	client.Flush()

	body := waitForBody(t, f)
	if !strings.Contains(body, "hub_events") {
		t.Errorf("write body missing measurement: %q", body)
	}
	if !strings.Contains(body, "event_type=motion") {
		t.Errorf("write body missing event type tag: %q", body)
	}
}

func TestWritePoint(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	client.WritePoint(
		"discovery_stats",
		map[string]string{"hub_id": "hub-001"},
		map[string]interface{}{"entities": 42},
	)
	client.Flush()

	body := waitForBody(t, f)
	if !strings.Contains(body, "discovery_stats") {
		t.Errorf("write body missing measurement: %q", body)
	}
}

func TestWritePointWithTime(t *testing.T) {
	f := newFakeInflux(t)
	client := connect(t, f)

	timestamp := time.Now().Add(-1 * time.Hour)
	client.WritePointWithTime(
		"discovery_stats",
		map[string]string{"hub_id": "hub-001"},
		map[string]interface{}{"value": 88.8},
		timestamp,
	)
	client.Flush()

	body := waitForBody(t, f)
	if !strings.Contains(body, "discovery_stats") {
		t.Errorf("write body missing measurement: %q", body)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestClose(t *testing.T) {
	f := newFakeInflux(t)

	client, err := influxdb.Connect(testConfig(f.server.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	client.WriteSensorState("hub-001", "sensor.close_test", 1.0)

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
}

func TestWriteAfterCloseIsNoop(t *testing.T) {
	f := newFakeInflux(t)

	client, err := influxdb.Connect(testConfig(f.server.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	client.Close()

	// Must not panic or write.
	client.WriteSensorState("hub-001", "sensor.late", 1.0)
	client.Flush()
}
