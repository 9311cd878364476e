package rendering

import "fmt"

// BackendError represents a failure inside the PDF library.
type BackendError struct {
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf backend error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf backend error: %s", e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ModeError is returned for an unknown gradient setting.
type ModeError struct {
	Setting string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("invalid gradient setting %q: must be one of auto, on, off", e.Setting)
}
