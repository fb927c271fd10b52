package notification

import (
	"github.com/drivia/drivia/internal/notification/repository"
	"github.com/drivia/drivia/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(
		repository.New,
		service.New,
	),
)
