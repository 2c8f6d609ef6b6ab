package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/clock"
	"github.com/plantulas/plantbot/internal/config"
	"github.com/plantulas/plantbot/internal/dashboard"
	"github.com/plantulas/plantbot/internal/indoor"
	"github.com/plantulas/plantbot/internal/migration"
	"github.com/plantulas/plantbot/internal/observability"
	"github.com/plantulas/plantbot/internal/plant"
	"github.com/plantulas/plantbot/internal/server"
	"github.com/plantulas/plantbot/internal/user"
	"github.com/plantulas/plantbot/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		user.Module,
		indoor.Module,
		plant.Module,
		dashboard.Module,

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
