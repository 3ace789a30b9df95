package voucher

import (
	"github.com/fiscalio/facturador/internal/voucher/service"
	"go.uber.org/fx"
)

var Module = fx.Module("voucher.service",
	fx.Provide(service.NewService),
)
