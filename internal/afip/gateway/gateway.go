// Package gateway implements the voucher authorization flow against the
// remote billing service.
package gateway

import (
	"context"

	afipdomain "github.com/fiscalio/facturador/internal/afip/domain"
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Request is an aggregated invoice ready for authorization. The voucher
// number is not part of it; the gateway assigns last+1 per call.
type Request struct {
	SalesPoint     int
	VoucherType    int
	Concept        int
	DocumentType   int
	DocumentNumber int64
	Currency       string
	Totals         invoicedomain.Totals
	Groups         []invoicedomain.TaxGroup
}

type Param struct {
	fx.In

	Remote afipdomain.Service
	Log    *zap.Logger
}

type Gateway struct {
	remote afipdomain.Service
	log    *zap.Logger
}

func New(p Param) *Gateway {
	return &Gateway{
		remote: p.Remote,
		log:    p.Log.Named("afip.gateway"),
	}
}

// LastVoucherNumber exposes the remote last-number lookup for the UI.
func (g *Gateway) LastVoucherNumber(ctx context.Context, issuer afipdomain.IssuerContext, salesPoint, voucherType int) (int64, error) {
	return g.remote.LastVoucherNumber(ctx, issuer, salesPoint, voucherType)
}

// Authorize reads the remote last voucher number, submits last+1 and returns
// the authorization. The read-then-submit sequence is a check-then-act race
// inherited from the remote API: two concurrent callers sharing credentials
// can both read the same number and the remote side rejects the second as a
// duplicate. Callers needing strict ordering must hold a per-credential lock
// across the whole call. Failures are never retried here; voucher numbers are
// not idempotency keys, so a blind retry risks double authorization.
func (g *Gateway) Authorize(ctx context.Context, issuer afipdomain.IssuerContext, req Request) (afipdomain.Authorization, error) {
	last, err := g.remote.LastVoucherNumber(ctx, issuer, req.SalesPoint, req.VoucherType)
	if err != nil {
		return afipdomain.Authorization{}, err
	}
	number := last + 1

	currency := req.Currency
	if currency == "" {
		currency = "PES"
	}

	auth, err := g.remote.Authorize(ctx, issuer, afipdomain.AuthorizeRequest{
		SalesPoint:     req.SalesPoint,
		VoucherType:    req.VoucherType,
		VoucherNumber:  number,
		Concept:        req.Concept,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Currency:       currency,
		Net:            round2(req.Totals.Net),
		Tax:            round2(req.Totals.Tax),
		Total:          round2(req.Totals.Total),
		TaxGroups:      req.Groups,
	})
	if err != nil {
		g.log.Warn("authorization failed",
			zap.Int("sales_point", req.SalesPoint),
			zap.Int("voucher_type", req.VoucherType),
			zap.Int64("voucher_number", number),
			zap.Error(err),
		)
		return afipdomain.Authorization{}, err
	}

	g.log.Info("voucher authorized",
		zap.Int("sales_point", req.SalesPoint),
		zap.Int("voucher_type", req.VoucherType),
		zap.Int64("voucher_number", auth.VoucherNumber),
		zap.String("cae", auth.CAE),
	)
	return auth, nil
}

// RunCertificateAutomation forwards credential provisioning to the remote
// capability.
func (g *Gateway) RunCertificateAutomation(ctx context.Context, issuer afipdomain.IssuerContext) error {
	return g.remote.RunCertificateAutomation(ctx, issuer)
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
