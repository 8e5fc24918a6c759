package inference

import "fmt"

// ValidationError reports a missing required input. It is raised before any
// network activity and is always recoverable by re-prompting for the field.
type ValidationError struct {
	Field string // "question" or "profile"
}

func (e *ValidationError) Error() string {
	return "missing " + e.Field
}

// TransportError reports a failed HTTP exchange with the inference service.
// StatusCode is the non-2xx status the service returned, or 0 when the call
// itself failed (DNS, timeout, connection refusal are not distinguished).
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return "inference request failed"
	}
	return fmt.Sprintf("inference service returned status %d", e.StatusCode)
}
