package schema

import "errors"

// ErrInvalidPayload is returned when structural validation of a payload
// fails. Check with errors.Is(); the wrapped message names the field.
var ErrInvalidPayload = errors.New("schema: invalid payload")
