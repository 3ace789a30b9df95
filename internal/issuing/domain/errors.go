package domain

import (
	"errors"
	"fmt"

	afipdomain "github.com/fiscalio/facturador/internal/afip/domain"
)

var ErrNoLineItems = errors.New("no_line_items")

// UnrecordedAuthorizationError reports that the remote service authorized the
// voucher but the local record could not be written. The authorization exists
// on the remote side and must not be discarded: the operator recovers it from
// the payload here or by re-querying the last-voucher endpoint.
type UnrecordedAuthorizationError struct {
	Authorization afipdomain.Authorization
	Cause         error
}

func (e *UnrecordedAuthorizationError) Error() string {
	return fmt.Sprintf("voucher %d authorized (cae %s) but not locally recorded: %v",
		e.Authorization.VoucherNumber, e.Authorization.CAE, e.Cause)
}

func (e *UnrecordedAuthorizationError) Unwrap() error { return e.Cause }

// AsUnrecorded unwraps the authorized-but-unrecorded condition if present.
func AsUnrecorded(err error) *UnrecordedAuthorizationError {
	var uErr *UnrecordedAuthorizationError
	if errors.As(err, &uErr) {
		return uErr
	}
	return nil
}
