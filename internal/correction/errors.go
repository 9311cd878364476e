package correction

import "fmt"

// ServiceError represents a failed call to a correction backend.
type ServiceError struct {
	Service    string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Service, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
