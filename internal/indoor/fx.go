package indoor

import (
	"github.com/plantulas/plantbot/internal/indoor/repository"
	"github.com/plantulas/plantbot/internal/indoor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("indoor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
