package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// CommandName identifies a command for routing and acknowledgement topics.
type CommandName string

const (
	CommandConfigUpdate   CommandName = "config.update"
	CommandFirmwareUpdate CommandName = "firmware.update"
	CommandTunnelStart    CommandName = "tunnel.start"
	CommandTunnelStop     CommandName = "tunnel.stop"
	CommandSensorsPoll    CommandName = "sensors.poll"
	CommandSensorsSet     CommandName = "sensors.set"
	CommandAddonHA        CommandName = "addon.ha"
)

// Valid reports whether the command name is recognised.
func (n CommandName) Valid() bool {
	switch n {
	case CommandConfigUpdate, CommandFirmwareUpdate, CommandTunnelStart,
		CommandTunnelStop, CommandSensorsPoll, CommandSensorsSet, CommandAddonHA:
		return true
	}
	return false
}

// NewCommandID generates a unique identifier for one command instance.
// The id correlates the command with its acknowledgement topic.
func NewCommandID() string {
	return uuid.NewString()
}

// CommandBase carries the correlation id common to every command payload.
type CommandBase struct {
	CommandID string `json:"command_id"`
}

// Validate checks the common command fields.
func (b CommandBase) Validate() error {
	if b.CommandID == "" {
		return invalidf("command_id is required")
	}
	return nil
}

// ConfigUpdateCommand pushes new configuration or override values to a hub.
type ConfigUpdateCommand struct {
	CommandBase
	Version int            `json:"version"`
	Config  map[string]any `json:"config"`
}

// Validate checks the config update payload.
func (c ConfigUpdateCommand) Validate() error {
	if err := c.CommandBase.Validate(); err != nil {
		return err
	}
	if c.Config == nil {
		return invalidf("config is required")
	}
	return nil
}

// FirmwareUpdateCommand triggers an OTA firmware update.
type FirmwareUpdateCommand struct {
	CommandBase
	DownloadURL string `json:"download_url"`
	Checksum    string `json:"checksum"`
}

// Validate checks the firmware update payload.
func (c FirmwareUpdateCommand) Validate() error {
	if err := c.CommandBase.Validate(); err != nil {
		return err
	}
	if c.DownloadURL == "" {
		return invalidf("download_url is required")
	}
	if c.Checksum == "" {
		return invalidf("checksum is required")
	}
	return nil
}

// TunnelStartCommand starts a reverse tunnel on the hub.
type TunnelStartCommand struct {
	CommandBase
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TunnelStopCommand stops a reverse tunnel on the hub.
type TunnelStopCommand struct {
	CommandBase
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SensorsPollCommand requests full metadata for one sensor.
type SensorsPollCommand struct {
	CommandBase

	// EntityID must be a Home Assistant entity id, e.g. "sensor.kitchen_temp".
	EntityID string `json:"entity_id"`
}

// Validate checks the sensors poll payload.
func (c SensorsPollCommand) Validate() error {
	if err := c.CommandBase.Validate(); err != nil {
		return err
	}
	if c.EntityID == "" {
		return invalidf("entity_id is required")
	}
	return nil
}

// SensorsSetCommand pushes sensor configuration updates.
type SensorsSetCommand struct {
	CommandBase
	Settings map[string]any `json:"settings,omitempty"`
}

// invalidf wraps ErrInvalidPayload with a field-level message.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}
