package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/migration"
	"github.com/drivia/drivia/internal/observability"
	"github.com/drivia/drivia/internal/server"
	"github.com/drivia/drivia/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
