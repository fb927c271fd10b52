package instructor

import (
	"github.com/drivia/drivia/internal/instructor/repository"
	"github.com/drivia/drivia/internal/instructor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("instructor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
