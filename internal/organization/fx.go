package organization

import (
	"github.com/drivia/drivia/internal/organization/repository"
	"github.com/drivia/drivia/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization",
	fx.Provide(
		repository.New,
		service.New,
	),
)
