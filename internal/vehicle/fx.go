package vehicle

import (
	"github.com/drivia/drivia/internal/vehicle/repository"
	"github.com/drivia/drivia/internal/vehicle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vehicle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
