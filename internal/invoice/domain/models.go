// Package domain contains the invoice line and totals shapes shared by the
// calculator, the authorization gateway and the voucher store.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one invoice line as entered by the operator. Unit prices are
// tax-inclusive: the price the end customer pays. Immutable once submitted;
// edits produce a new LineItem.
type LineItem struct {
	Code        *string         `json:"code,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRateID   int             `json:"vat_rate_id"`
}

// Validate rejects lines that must never reach the remote service.
func (l LineItem) Validate() error {
	if strings.TrimSpace(l.Description) == "" {
		return ErrEmptyDescription
	}
	if l.Quantity.Sign() <= 0 {
		return ErrNonPositiveQuantity
	}
	if l.UnitPrice.Sign() < 0 {
		return ErrNegativeUnitPrice
	}
	return nil
}

// LineAmounts is the rounded result of computing one line.
type LineAmounts struct {
	TaxableBase decimal.Decimal `json:"taxable_base"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// TaxGroup is the accumulated net/tax figures for all lines sharing one VAT
// rate. Derived on every aggregation; persisted only embedded in a voucher.
type TaxGroup struct {
	VATRateID   int             `json:"vat_rate_id"`
	Percentage  decimal.Decimal `json:"percentage"`
	TaxableBase decimal.Decimal `json:"taxable_base"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// Totals is the invoice-level net/tax/total triple, each rounded to two
// decimals independently.
type Totals struct {
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Total decimal.Decimal `json:"total"`
}
