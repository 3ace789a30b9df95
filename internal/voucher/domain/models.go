// Package domain contains the persisted voucher record: the immutable
// historical trace of one authorized invoice.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Voucher is one authorized invoice. Line items, tax groups and the issuer
// profile are frozen into JSON columns on purpose: the historical record must
// stay reproducible even after rate tables or the issuer configuration
// change. Only DocumentPath may be written after creation.
type Voucher struct {
	ID                 snowflake.ID    `gorm:"primaryKey" json:"id"`
	CAE                string          `gorm:"column:cae;type:text;not null;index" json:"cae"`
	CAEExpiry          time.Time       `gorm:"column:cae_expiry;not null" json:"cae_expiry"`
	SalesPoint         int             `gorm:"not null;index;uniqueIndex:ux_vouchers_number" json:"sales_point"`
	VoucherType        int             `gorm:"not null;index;uniqueIndex:ux_vouchers_number" json:"voucher_type"`
	VoucherLabel       string          `gorm:"type:text;not null" json:"voucher_label"`
	VoucherNumberFrom  int64           `gorm:"not null;uniqueIndex:ux_vouchers_number" json:"voucher_number_from"`
	VoucherNumberTo    int64           `gorm:"not null" json:"voucher_number_to"`
	Concept            int             `gorm:"not null" json:"concept"`
	DocumentType       int             `gorm:"not null;index" json:"document_type"`
	DocumentNumber     int64           `gorm:"not null;index" json:"document_number"`
	SellerVATCondition string          `gorm:"type:text;not null" json:"seller_vat_condition"`
	BuyerVATCondition  string          `gorm:"type:text;not null" json:"buyer_vat_condition"`
	BuyerName          *string         `gorm:"type:text" json:"buyer_name,omitempty"`
	BuyerAddress       *string         `gorm:"type:text" json:"buyer_address,omitempty"`
	NetAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_amount"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency           string          `gorm:"type:text;not null;default:'PES'" json:"currency"`
	LineItems          datatypes.JSON  `gorm:"not null" json:"line_items"`
	TaxGroups          datatypes.JSON  `gorm:"not null" json:"tax_groups"`
	IssuerSnapshot     datatypes.JSON  `gorm:"not null" json:"issuer_snapshot"`
	DocumentPath       *string         `gorm:"type:text" json:"document_path,omitempty"`
	IssuedAt           time.Time       `gorm:"not null;index" json:"issued_at"`
	CreatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Voucher) TableName() string { return "vouchers" }

// Lines decodes the frozen line items.
func (v Voucher) Lines() ([]invoicedomain.LineItem, error) {
	var items []invoicedomain.LineItem
	err := json.Unmarshal(v.LineItems, &items)
	return items, err
}

// Groups decodes the frozen tax groups.
func (v Voucher) Groups() ([]invoicedomain.TaxGroup, error) {
	var groups []invoicedomain.TaxGroup
	err := json.Unmarshal(v.TaxGroups, &groups)
	return groups, err
}

// Issuer decodes the frozen issuer profile.
func (v Voucher) Issuer() (issuerdomain.Snapshot, error) {
	var snapshot issuerdomain.Snapshot
	err := json.Unmarshal(v.IssuerSnapshot, &snapshot)
	return snapshot, err
}

// Totals reassembles the invoice totals triple.
func (v Voucher) Totals() invoicedomain.Totals {
	return invoicedomain.Totals{Net: v.NetAmount, Tax: v.TaxAmount, Total: v.TotalAmount}
}
