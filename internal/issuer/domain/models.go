// Package domain contains the issuer profile: the business identity vouchers
// are issued under.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Issuer is the persisted tax identity of the installation. A frozen copy is
// embedded into every voucher at issuance so historical documents stay
// reproducible after the profile changes.
type Issuer struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CUIT          string       `gorm:"type:text;not null;uniqueIndex" json:"cuit"`
	LegalName     string       `gorm:"type:text;not null" json:"legal_name"`
	TradeName     *string      `gorm:"type:text" json:"trade_name,omitempty"`
	Address       string       `gorm:"type:text" json:"address"`
	GrossIncomeID *string      `gorm:"type:text" json:"gross_income_id,omitempty"`
	ActivityStart *time.Time   `gorm:"" json:"activity_start,omitempty"`
	VATCondition  string       `gorm:"type:text;not null" json:"vat_condition"`
	SalesPoint    int          `gorm:"not null;default:1" json:"sales_point"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Issuer) TableName() string { return "issuers" }

func (i *Issuer) Validate() error {
	if len(strings.TrimSpace(i.CUIT)) != 11 {
		return ErrInvalidCUIT
	}
	if strings.TrimSpace(i.LegalName) == "" {
		return ErrInvalidLegalName
	}
	if i.SalesPoint <= 0 {
		return ErrInvalidSalesPoint
	}
	return nil
}

// Snapshot is the frozen issuer copy serialized into vouchers.
type Snapshot struct {
	CUIT          string     `json:"cuit"`
	LegalName     string     `json:"legal_name"`
	TradeName     *string    `json:"trade_name,omitempty"`
	Address       string     `json:"address"`
	GrossIncomeID *string    `json:"gross_income_id,omitempty"`
	ActivityStart *time.Time `json:"activity_start,omitempty"`
	VATCondition  string     `json:"vat_condition"`
	SalesPoint    int        `json:"sales_point"`
}

// Snapshot freezes the profile fields relevant to a printed document.
func (i Issuer) Snapshot() Snapshot {
	return Snapshot{
		CUIT:          i.CUIT,
		LegalName:     i.LegalName,
		TradeName:     i.TradeName,
		Address:       i.Address,
		GrossIncomeID: i.GrossIncomeID,
		ActivityStart: i.ActivityStart,
		VATCondition:  i.VATCondition,
		SalesPoint:    i.SalesPoint,
	}
}

type UpdateRequest struct {
	CUIT          string     `json:"cuit"`
	LegalName     string     `json:"legal_name"`
	TradeName     *string    `json:"trade_name,omitempty"`
	Address       string     `json:"address"`
	GrossIncomeID *string    `json:"gross_income_id,omitempty"`
	ActivityStart *time.Time `json:"activity_start,omitempty"`
	VATCondition  string     `json:"vat_condition"`
	SalesPoint    int        `json:"sales_point"`
}

type Service interface {
	// Get returns the configured issuer profile.
	Get(ctx context.Context) (Issuer, error)
	// Update creates or replaces the issuer profile.
	Update(ctx context.Context, req UpdateRequest) (Issuer, error)
}

var (
	ErrNotConfigured     = errors.New("issuer_not_configured")
	ErrInvalidCUIT       = errors.New("invalid_cuit")
	ErrInvalidLegalName  = errors.New("invalid_legal_name")
	ErrInvalidSalesPoint = errors.New("invalid_sales_point")

	// ErrDuplicateCUIT signals a profile write that collided with an already
	// persisted CUIT, which only happens on concurrent updates.
	ErrDuplicateCUIT = errors.New("duplicate_cuit")
)
