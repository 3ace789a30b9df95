// Package domain defines the capability boundary to the tax authority's
// billing web services. The remote side is opaque: implementations may speak
// to an SDK bridge, the SOAP services directly, or a test fake.
package domain

import (
	"context"
	"time"

	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

// IssuerContext identifies the tax identity a call runs under. It travels
// explicitly with every call so multiple identities can coexist in one
// process; there is no process-wide current CUIT.
type IssuerContext struct {
	CUIT            string
	Environment     string // config.EnvSandbox or config.EnvProduction
	CertificatePath string
	PrivateKeyPath  string
}

// AuthorizeRequest is the voucher submitted for authorization.
type AuthorizeRequest struct {
	SalesPoint     int
	VoucherType    int
	VoucherNumber  int64
	Concept        int
	DocumentType   int
	DocumentNumber int64
	Currency       string
	Net            decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	TaxGroups      []invoicedomain.TaxGroup
}

// Authorization is a successful remote response.
type Authorization struct {
	CAE           string    `json:"cae"`
	CAEExpiry     time.Time `json:"cae_expiry"`
	VoucherNumber int64     `json:"voucher_number"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Service is the remote billing capability. Implementations must classify
// failures into the error taxonomy of this package and must not retry.
type Service interface {
	// LastVoucherNumber returns the highest voucher number the remote side
	// has authorized for the sales point and voucher type.
	LastVoucherNumber(ctx context.Context, issuer IssuerContext, salesPoint, voucherType int) (int64, error)

	// Authorize submits one voucher and returns its authorization code.
	Authorize(ctx context.Context, issuer IssuerContext, req AuthorizeRequest) (Authorization, error)

	// RunCertificateAutomation provisions or renews the issuer credential
	// material out of band.
	RunCertificateAutomation(ctx context.Context, issuer IssuerContext) error
}
