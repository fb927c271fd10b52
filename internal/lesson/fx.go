package lesson

import (
	"github.com/drivia/drivia/internal/lesson/repository"
	"github.com/drivia/drivia/internal/lesson/service"
	"go.uber.org/fx"
)

var Module = fx.Module("lesson.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
