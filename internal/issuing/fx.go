package issuing

import (
	"github.com/fiscalio/facturador/internal/afip"
	"github.com/fiscalio/facturador/internal/issuer"
	"github.com/fiscalio/facturador/internal/issuing/service"
	"github.com/fiscalio/facturador/internal/voucher"
	"go.uber.org/fx"
)

var Module = fx.Module("issuing.service",
	afip.Module,
	issuer.Module,
	voucher.Module,
	fx.Provide(service.NewService),
)
