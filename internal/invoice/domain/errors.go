package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidLineItem is the parent classification for every line rejection.
var ErrInvalidLineItem = errors.New("invalid_line_item")

var (
	ErrEmptyDescription    = fmt.Errorf("%w: description is required", ErrInvalidLineItem)
	ErrNonPositiveQuantity = fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidLineItem)
	ErrNegativeUnitPrice   = fmt.Errorf("%w: unit price must not be negative", ErrInvalidLineItem)
)
