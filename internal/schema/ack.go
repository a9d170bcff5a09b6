package schema

// AckStatus is the outcome of a command execution.
type AckStatus string

const (
	AckSuccess AckStatus = "success"
	AckError   AckStatus = "error"
)

// Valid reports whether the ack status is recognised.
func (s AckStatus) Valid() bool {
	return s == AckSuccess || s == AckError
}

// CommandAck acknowledges command execution, published by the hub on the
// ack topic derived from the command name and id.
type CommandAck struct {
	CommandID string    `json:"command_id"`
	Status    AckStatus `json:"status"`

	// Message carries error details when Status is "error".
	Message   string  `json:"message,omitempty"`
	Timestamp float64 `json:"timestamp"`
}

// Validate checks the acknowledgement payload.
func (a CommandAck) Validate() error {
	if a.CommandID == "" {
		return invalidf("command_id is required")
	}
	if !a.Status.Valid() {
		return invalidf("status %q is not recognised", a.Status)
	}
	return nil
}
