package student

import (
	"github.com/drivia/drivia/internal/student/repository"
	"github.com/drivia/drivia/internal/student/service"
	"go.uber.org/fx"
)

var Module = fx.Module("student.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
