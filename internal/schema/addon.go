package schema

// HAAddonTelemetry is telemetry emitted by the Home Assistant addon
// running inside a hub.
type HAAddonTelemetry struct {
	State     map[string]any `json:"state"`
	Timestamp float64        `json:"timestamp"`
}

// HAAddonStatus is the lifecycle heartbeat of the HA addon.
type HAAddonStatus struct {
	Online    bool    `json:"online"`
	Version   string  `json:"version"`
	Timestamp float64 `json:"timestamp"`
}

// HAAddonCommand is a command sent from the Vault to the HA addon.
type HAAddonCommand struct {
	CommandBase
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// Validate checks the addon command payload.
func (c HAAddonCommand) Validate() error {
	if err := c.CommandBase.Validate(); err != nil {
		return err
	}
	if c.Action == "" {
		return invalidf("action is required")
	}
	return nil
}
