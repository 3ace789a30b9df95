package issuer

import (
	"github.com/fiscalio/facturador/internal/issuer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("issuer.service",
	fx.Provide(service.NewService),
)
