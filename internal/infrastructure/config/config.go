package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for a central-core hub.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Hub      HubConfig      `yaml:"hub"`
	HA       HAConfig       `yaml:"ha"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HubConfig identifies this hub inside the central-core ecosystem.
type HubConfig struct {
	// ID is the unique hub identifier used in every hub-scoped topic.
	ID string `yaml:"id"`

	// Version is the protocol version segment of hub topics (the N in vN).
	Version int `yaml:"version"`
}

// HAConfig contains Home Assistant discovery settings.
type HAConfig struct {
	// BaseURL is the REST base URL of the paired instance.
	BaseURL string `yaml:"base_url"`

	// Token is the long-lived access token. Prefer setting HA_TOKEN.
	Token string `yaml:"token"`

	// WSPath is the WebSocket API path. Empty uses the standard path.
	WSPath string `yaml:"ws_path"`

	// Timeout in seconds for each discovery network operation.
	Timeout int `yaml:"timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for local
// telemetry recording.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// Precedence (lowest to highest):
//  1. Built-in defaults
//  2. YAML file values
//  3. Environment variables
//
// Environment variables follow the pattern CENTRALCORE_SECTION_KEY, with
// two exceptions named by the wider ecosystem: HA_REST_URL and HA_TOKEN.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// FromEnvironment builds a configuration purely from defaults and
// environment variables, for hubs deployed without a config file.
func FromEnvironment() (*Config, error) {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Hub: HubConfig{
			ID:      "hub-001",
			Version: 1,
		},
		HA: HAConfig{
			Timeout: 30,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "centralcore-hub",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. HA_REST_URL and HA_TOKEN are the variable names every
// hub deployment documents for Home Assistant credentials; everything
// else follows the CENTRALCORE_SECTION_KEY pattern.
func applyEnvOverrides(cfg *Config) {
	// Hub identity
	if v := os.Getenv("CENTRALCORE_HUB_ID"); v != "" {
		cfg.Hub.ID = v
	}
	if v := os.Getenv("CENTRALCORE_HUB_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Hub.Version = n
		}
	}

	// Home Assistant
	if v := os.Getenv("HA_REST_URL"); v != "" {
		cfg.HA.BaseURL = v
	}
	if v := os.Getenv("HA_TOKEN"); v != "" {
		cfg.HA.Token = v
	}

	// MQTT
	if v := os.Getenv("CENTRALCORE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("CENTRALCORE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("CENTRALCORE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("CENTRALCORE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failures, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Hub.ID == "" {
		errs = append(errs, "hub.id is required")
	}
	if c.Hub.Version < 1 {
		errs = append(errs, "hub.version must be at least 1")
	}

	if c.HA.Timeout < 0 {
		errs = append(errs, "ha.timeout must not be negative")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetHATimeout returns the Home Assistant discovery timeout as a Duration.
func (c *Config) GetHATimeout() time.Duration {
	return time.Duration(c.HA.Timeout) * time.Second
}
