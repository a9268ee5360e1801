package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/seatcounter/internal/clock"
	"github.com/smallbiznis/seatcounter/internal/config"
	"github.com/smallbiznis/seatcounter/internal/logger"
	"github.com/smallbiznis/seatcounter/internal/migration"
	"github.com/smallbiznis/seatcounter/internal/queue"
	"github.com/smallbiznis/seatcounter/internal/server"
	"github.com/smallbiznis/seatcounter/internal/session"
	"github.com/smallbiznis/seatcounter/internal/table"
	"github.com/smallbiznis/seatcounter/internal/ticket"
	"github.com/smallbiznis/seatcounter/internal/visit"
	"github.com/smallbiznis/seatcounter/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		config.PricingModule,
		migration.Module,

		// Domains
		table.Module,
		session.Module,
		ticket.Module,
		visit.Module,
		queue.Module,

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
