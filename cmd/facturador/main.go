package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fiscalio/facturador/internal/config"
	"github.com/fiscalio/facturador/internal/migration"
	"github.com/fiscalio/facturador/internal/server"
	"github.com/fiscalio/facturador/pkg/db"
	"github.com/fiscalio/facturador/pkg/log"
	"github.com/fiscalio/facturador/pkg/telemetry"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		telemetry.Module,

		// HTTP surface plus the domain modules it serves
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
