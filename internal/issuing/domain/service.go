// Package domain defines the invoice issuing flow: aggregate the lines,
// authorize the voucher remotely and record it locally, strictly in that
// order.
package domain

import (
	"context"

	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
)

// IssueRequest is one invoice submission.
type IssueRequest struct {
	// SalesPoint overrides the issuer profile's sales point when non-zero.
	SalesPoint        int                      `json:"sales_point,omitempty"`
	VoucherType       int                      `json:"voucher_type"`
	Concept           int                      `json:"concept"`
	DocumentType      int                      `json:"document_type"`
	DocumentNumber    int64                    `json:"document_number"`
	BuyerVATCondition string                   `json:"buyer_vat_condition"`
	BuyerName         *string                  `json:"buyer_name,omitempty"`
	BuyerAddress      *string                  `json:"buyer_address,omitempty"`
	Currency          string                   `json:"currency,omitempty"`
	Items             []invoicedomain.LineItem `json:"items"`
}

// Preview is an aggregation result without side effects.
type Preview struct {
	Groups []invoicedomain.TaxGroup `json:"groups"`
	Totals invoicedomain.Totals     `json:"totals"`
}

type Service interface {
	// Preview aggregates the lines without contacting the remote service.
	Preview(ctx context.Context, items []invoicedomain.LineItem) (Preview, error)

	// Issue authorizes and records one invoice. Validation failures abort
	// before any network call; a cancelled or failed authorization never
	// produces a store write.
	Issue(ctx context.Context, req IssueRequest) (voucherdomain.Voucher, error)

	// LastVoucherNumber surfaces the remote last-number lookup.
	LastVoucherNumber(ctx context.Context, salesPoint, voucherType int) (int64, error)

	// RunCertificateAutomation provisions credentials for the configured
	// issuer.
	RunCertificateAutomation(ctx context.Context) error
}
