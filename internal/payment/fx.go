package payment

import (
	"github.com/drivia/drivia/internal/payment/domain"
	"github.com/drivia/drivia/internal/payment/stripe"
	"go.uber.org/fx"
)

var Module = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			stripe.New,
			fx.As(new(domain.Provider)),
		),
	),
)
