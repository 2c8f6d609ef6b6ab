package plant

import (
	"github.com/plantulas/plantbot/internal/plant/repository"
	"github.com/plantulas/plantbot/internal/plant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
