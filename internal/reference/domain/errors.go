package domain

import "errors"

var (
	ErrUnknownTaxRate      = errors.New("unknown_tax_rate")
	ErrUnknownVoucherType  = errors.New("unknown_voucher_type")
	ErrUnknownDocumentType = errors.New("unknown_document_type")
	ErrUnknownConcept      = errors.New("unknown_concept")
)
