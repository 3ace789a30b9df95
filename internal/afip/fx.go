package afip

import (
	"github.com/fiscalio/facturador/internal/afip/arca"
	"github.com/fiscalio/facturador/internal/afip/gateway"
	"go.uber.org/fx"
)

var Module = fx.Module("afip",
	fx.Provide(arca.New),
	fx.Provide(gateway.New),
)
