package domain

import (
	"context"
	"time"

	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	"github.com/fiscalio/facturador/pkg/db/pagination"
)

// CreateRequest carries everything needed to append one voucher record. It is
// submitted exactly once, after the remote authorization succeeded.
type CreateRequest struct {
	CAE                string
	CAEExpiry          time.Time
	SalesPoint         int
	VoucherType        int
	VoucherLabel       string
	VoucherNumberFrom  int64
	VoucherNumberTo    int64
	Concept            int
	DocumentType       int
	DocumentNumber     int64
	SellerVATCondition string
	BuyerVATCondition  string
	BuyerName          *string
	BuyerAddress       *string
	Currency           string
	Totals             invoicedomain.Totals
	LineItems          []invoicedomain.LineItem
	TaxGroups          []invoicedomain.TaxGroup
	Issuer             issuerdomain.Snapshot
	IssuedAt           time.Time
}

// Filter narrows voucher lookups. All set fields are combined with AND; an
// unset field imposes no constraint.
type Filter struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	DocumentNumber *int64
	DocumentType   *int
	SalesPoint     *int
	VoucherType    *int

	pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Vouchers []Voucher `json:"vouchers"`
}

// Service is the local voucher store. Records are write-once: only
// AttachDocumentPath mutates an existing row, and only its document path.
type Service interface {
	Save(ctx context.Context, req CreateRequest) (Voucher, error)
	Find(ctx context.Context, filter Filter) ([]Voucher, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	List(ctx context.Context, filter Filter) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Voucher, error)
	GetByCAE(ctx context.Context, cae string) (Voucher, error)
	Delete(ctx context.Context, id string) (bool, error)
	AttachDocumentPath(ctx context.Context, id string, path string) error
}
