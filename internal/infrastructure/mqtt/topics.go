package mqtt

import "fmt"

// Topic scheme for the central-core ecosystem.
//
// All hub-scoped topics follow:
//
//	hubs/{hub_id}/v{version}/{category}/{subpath}
//
// Categories: telemetry, status, cmd, ack, addon. The Vault additionally
// broadcasts to hubs/broadcast/v{version}/cmd/{command}.
const (
	// TopicPrefixHubs is the base for all hub-scoped topics.
	TopicPrefixHubs = "hubs"

	// BroadcastHubID is the pseudo hub id used for Vault broadcasts.
	BroadcastHubID = "broadcast"
)

// Topics builds central-core MQTT topics for one hub. Using these
// helpers ensures consistent topic naming across hubs and the Vault.
//
//	topics := mqtt.Topics{HubID: "hub123", Version: 1}
//	topics.TelemetrySensors()
//	// Returns: "hubs/hub123/v1/telemetry/sensors"
type Topics struct {
	// HubID is the unique hub identifier.
	HubID string

	// Version is the protocol version segment (the N in vN).
	Version int
}

// prefix returns the hub-scoped topic base, e.g. "hubs/hub123/v1".
func (t Topics) prefix() string {
	return fmt.Sprintf("%s/%s/v%d", TopicPrefixHubs, t.HubID, t.Version)
}

// =============================================================================
// Telemetry (Hub → Vault)
// =============================================================================

// TelemetrySystem returns the system telemetry topic: CPU, RAM, uptime.
//
// Example: hubs/hub123/v1/telemetry/system
func (t Topics) TelemetrySystem() string {
	return t.prefix() + "/telemetry/system"
}

// TelemetrySensors returns the sensor telemetry topic. Used for basic
// lists, full metadata dumps, and delta updates.
//
// Example: hubs/hub123/v1/telemetry/sensors
func (t Topics) TelemetrySensors() string {
	return t.prefix() + "/telemetry/sensors"
}

// TelemetryEvents returns the discrete event topic: door motion,
// notifications, automation triggers.
//
// Example: hubs/hub123/v1/telemetry/events
func (t Topics) TelemetryEvents() string {
	return t.prefix() + "/telemetry/events"
}

// TelemetryGeneral returns the catch-all telemetry topic for
// user-defined or extension data.
//
// Example: hubs/hub123/v1/telemetry/general
func (t Topics) TelemetryGeneral() string {
	return t.prefix() + "/telemetry/general"
}

// =============================================================================
// Presence / Lifecycle (Hub → Vault)
// =============================================================================

// StatusOnline returns the hub heartbeat topic, published periodically
// and on startup.
//
// Example: hubs/hub123/v1/status/online
func (t Topics) StatusOnline() string {
	return t.prefix() + "/status/online"
}

// StatusOffline returns the hub offline topic. Configured as the MQTT
// Last Will so the broker announces unexpected disconnects.
//
// Example: hubs/hub123/v1/status/offline
func (t Topics) StatusOffline() string {
	return t.prefix() + "/status/offline"
}

// =============================================================================
// Commands (Vault → Hub)
// =============================================================================

// Cmd returns the generic command topic for a domain and action.
//
// Example: Cmd("diagnostics", "run") → hubs/hub123/v1/cmd/diagnostics/run
func (t Topics) Cmd(domain, action string) string {
	return fmt.Sprintf("%s/cmd/%s/%s", t.prefix(), domain, action)
}

// CmdConfigUpdate returns the topic for configuration pushes.
//
// Example: hubs/hub123/v1/cmd/config/update
func (t Topics) CmdConfigUpdate() string {
	return t.Cmd("config", "update")
}

// CmdFirmwareUpdate returns the topic for OTA firmware updates.
//
// Example: hubs/hub123/v1/cmd/firmware/update
func (t Topics) CmdFirmwareUpdate() string {
	return t.Cmd("firmware", "update")
}

// CmdTunnelStart returns the topic for starting a reverse tunnel.
//
// Example: hubs/hub123/v1/cmd/tunnel/start
func (t Topics) CmdTunnelStart() string {
	return t.Cmd("tunnel", "start")
}

// CmdTunnelStop returns the topic for stopping a reverse tunnel.
//
// Example: hubs/hub123/v1/cmd/tunnel/stop
func (t Topics) CmdTunnelStop() string {
	return t.Cmd("tunnel", "stop")
}

// CmdSensorsPoll returns the topic for requesting full sensor metadata.
//
// Example: hubs/hub123/v1/cmd/sensors/poll
func (t Topics) CmdSensorsPoll() string {
	return t.Cmd("sensors", "poll")
}

// CmdSensorsSet returns the topic for pushing sensor configuration.
//
// Example: hubs/hub123/v1/cmd/sensors/set
func (t Topics) CmdSensorsSet() string {
	return t.Cmd("sensors", "set")
}

// =============================================================================
// Acknowledgements (Hub → Vault)
// =============================================================================

// Ack returns the acknowledgement topic for one command instance.
//
// Example: Ack("config.update", "abc123") → hubs/hub123/v1/ack/config.update/abc123
func (t Topics) Ack(commandName, commandID string) string {
	return fmt.Sprintf("%s/ack/%s/%s", t.prefix(), commandName, commandID)
}

// =============================================================================
// Home Assistant Addon Namespace
// =============================================================================

// AddonHATelemetry returns the telemetry topic for the HA addon.
//
// Example: hubs/hub123/v1/addon/ha/telemetry
func (t Topics) AddonHATelemetry() string {
	return t.prefix() + "/addon/ha/telemetry"
}

// AddonHAStatus returns the lifecycle topic for the HA addon.
//
// Example: hubs/hub123/v1/addon/ha/status
func (t Topics) AddonHAStatus() string {
	return t.prefix() + "/addon/ha/status"
}

// AddonHACmd returns the topic for commands to the HA addon.
//
// Example: AddonHACmd("restart") → hubs/hub123/v1/addon/ha/cmd/restart
func (t Topics) AddonHACmd(command string) string {
	return fmt.Sprintf("%s/addon/ha/cmd/%s", t.prefix(), command)
}

// =============================================================================
// Broadcast (Vault → All Hubs)
// =============================================================================

// BroadcastCmd returns the topic the Vault uses to command all hubs.
// The hub id segment is the fixed broadcast pseudo-id.
//
// Example: BroadcastCmd("resync") → hubs/broadcast/v1/cmd/resync
func (t Topics) BroadcastCmd(command string) string {
	return fmt.Sprintf("%s/%s/v%d/cmd/%s", TopicPrefixHubs, BroadcastHubID, t.Version, command)
}

// =============================================================================
// Wildcard Patterns for Subscriptions
// =============================================================================

// AllCmds returns a pattern matching every command addressed to this hub.
//
// Pattern: hubs/hub123/v1/cmd/#
func (t Topics) AllCmds() string {
	return t.prefix() + "/cmd/#"
}

// AllAddonHACmds returns a pattern matching every HA addon command for
// this hub.
//
// Pattern: hubs/hub123/v1/addon/ha/cmd/+
func (t Topics) AllAddonHACmds() string {
	return t.prefix() + "/addon/ha/cmd/+"
}

// AllHubsTelemetry returns the Vault-side pattern matching telemetry
// from every hub at this protocol version.
//
// Pattern: hubs/+/v1/telemetry/#
func (t Topics) AllHubsTelemetry() string {
	return fmt.Sprintf("%s/+/v%d/telemetry/#", TopicPrefixHubs, t.Version)
}

// AllHubsStatus returns the Vault-side pattern matching presence updates
// from every hub at this protocol version.
//
// Pattern: hubs/+/v1/status/+
func (t Topics) AllHubsStatus() string {
	return fmt.Sprintf("%s/+/v%d/status/+", TopicPrefixHubs, t.Version)
}

// AllHubsAcks returns the Vault-side pattern matching acknowledgements
// from every hub at this protocol version.
//
// Pattern: hubs/+/v1/ack/+/+
func (t Topics) AllHubsAcks() string {
	return fmt.Sprintf("%s/+/v%d/ack/+/+", TopicPrefixHubs, t.Version)
}

// AllTopics returns a pattern matching all central-core topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: hubs/#
func (t Topics) AllTopics() string {
	return TopicPrefixHubs + "/#"
}
