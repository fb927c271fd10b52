package auth

import (
	"github.com/drivia/drivia/internal/auth/repository"
	"github.com/drivia/drivia/internal/auth/service"
	"github.com/drivia/drivia/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(repository.NewTempPasswordRepository),
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
