package domain

import "fmt"

// ResolutionError is returned when a package or one of its classes cannot be resolved.
// Every failure of an enumeration is reported with this type.
type ResolutionError struct {
	Package string // Package being enumerated
	Message string // Description of the cause
	Err     error  // Underlying error, may be nil
}

func (e *ResolutionError) Error() string {
	msg := e.Message
	if e.Package != "" {
		msg = fmt.Sprintf("package %s: %s", e.Package, e.Message)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NewResolutionError creates a ResolutionError for pkg
func NewResolutionError(pkg, message string, err error) *ResolutionError {
	return &ResolutionError{Package: pkg, Message: message, Err: err}
}
