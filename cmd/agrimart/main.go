package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/agrimart/agrimart/internal/config"
	"github.com/agrimart/agrimart/internal/migration"
	"github.com/agrimart/agrimart/internal/observability"
	"github.com/agrimart/agrimart/internal/server"
	"github.com/agrimart/agrimart/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
