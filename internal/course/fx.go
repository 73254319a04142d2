package course

import (
	"github.com/hamzazerouala/windevexpert/internal/course/repository"
	"github.com/hamzazerouala/windevexpert/internal/course/service"
	"go.uber.org/fx"
)

var Module = fx.Module("course.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
