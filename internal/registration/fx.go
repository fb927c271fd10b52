package registration

import (
	"github.com/drivia/drivia/internal/registration/service"
	"go.uber.org/fx"
)

var Module = fx.Module("registration",
	fx.Provide(service.New),
)
