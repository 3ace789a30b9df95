package migration

import (
	"errors"

	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"gorm.io/gorm"
)

// RunMigrations creates the local schema on startup so a fresh install is
// usable without any manual database step. The schema is append-only in
// practice: vouchers are immutable records, so destructive migrations are
// never expected here.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	return db.AutoMigrate(
		&issuerdomain.Issuer{},
		&voucherdomain.Voucher{},
	)
}
