package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing means local credentials or certificates are
	// absent. Fatal for the request, not for the process.
	ErrConfigurationMissing = errors.New("configuration_missing")

	// ErrUnauthenticated means the credential was rejected or expired.
	// Safe to retry manually after renewing it.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNetworkFailure is a transport-level failure, including timeouts
	// and caller cancellation. Safe to retry manually; automatic retries
	// risk double authorization because voucher numbers are not
	// idempotency keys.
	ErrNetworkFailure = errors.New("network_failure")
)

// FieldError is one field-level remote validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationRejectedError carries a remote-side rejection. The message is
// passed through verbatim so the operator sees exactly what the authority
// said.
type ValidationRejectedError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationRejectedError) Error() string {
	return fmt.Sprintf("validation_rejected: %s", e.Message)
}

// AsValidationRejected unwraps a validation rejection if present.
func AsValidationRejected(err error) *ValidationRejectedError {
	var vErr *ValidationRejectedError
	if errors.As(err, &vErr) {
		return vErr
	}
	return nil
}
