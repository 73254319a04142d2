package auth

import (
	"github.com/hamzazerouala/windevexpert/internal/auth/repository"
	"github.com/hamzazerouala/windevexpert/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
