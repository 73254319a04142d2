package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/hamzazerouala/windevexpert/internal/auth"
	"github.com/hamzazerouala/windevexpert/internal/checkout"
	"github.com/hamzazerouala/windevexpert/internal/config"
	"github.com/hamzazerouala/windevexpert/internal/course"
	"github.com/hamzazerouala/windevexpert/internal/enrollment"
	"github.com/hamzazerouala/windevexpert/internal/logger"
	"github.com/hamzazerouala/windevexpert/internal/migration"
	obsmetrics "github.com/hamzazerouala/windevexpert/internal/observability/metrics"
	"github.com/hamzazerouala/windevexpert/internal/payment"
	"github.com/hamzazerouala/windevexpert/internal/profile"
	"github.com/hamzazerouala/windevexpert/internal/providers/email"
	"github.com/hamzazerouala/windevexpert/internal/ratelimit"
	"github.com/hamzazerouala/windevexpert/internal/server"
	"github.com/hamzazerouala/windevexpert/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		obsmetrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		auth.Module,
		course.Module,
		enrollment.Module,
		profile.Module,
		checkout.Module,
		payment.Module,
		email.Module,
		ratelimit.Module,

		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
