package collector

import "fmt"

// SendError reports a failed stats transmission. It wraps the underlying
// serialization or transport error.
type SendError struct {
	Endpoint string
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send stats to %s: %v", e.Endpoint, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
