package domain

import "errors"

var (
	ErrNotFound           = errors.New("voucher_not_found")
	ErrInvalidVoucherID   = errors.New("invalid_voucher_id")
	ErrInvalidDocumentRef = errors.New("invalid_document_path")

	// ErrDuplicateNumber signals that a voucher with the same sales point,
	// type and number is already recorded.
	ErrDuplicateNumber = errors.New("duplicate_voucher_number")

	// ErrStorageUnavailable wraps local persistence I/O failures.
	ErrStorageUnavailable = errors.New("storage_unavailable")
)
