package schema

// Status values carried by presence payloads.
const (
	StatusValueOnline  = "online"
	StatusValueOffline = "offline"
)

// StatusOnline is the hub heartbeat, published periodically and on
// startup to the status/online topic.
type StatusOnline struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

// StatusOffline is the hub offline message, configured as the MQTT Last
// Will on the status/offline topic.
type StatusOffline struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

// NewStatusOnline returns a heartbeat payload stamped with the current time.
func NewStatusOnline() StatusOnline {
	return StatusOnline{Status: StatusValueOnline, Timestamp: Timestamp()}
}

// NewStatusOffline returns an offline payload stamped with the current time.
func NewStatusOffline() StatusOffline {
	return StatusOffline{Status: StatusValueOffline, Timestamp: Timestamp()}
}
