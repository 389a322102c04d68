package auth

import (
	"github.com/agrimart/agrimart/internal/auth/repository"
	"github.com/agrimart/agrimart/internal/auth/service"
	"github.com/agrimart/agrimart/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
