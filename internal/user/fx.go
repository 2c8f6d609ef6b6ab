package user

import (
	"github.com/plantulas/plantbot/internal/user/repository"
	"github.com/plantulas/plantbot/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
