package blog

import (
	"github.com/agrimart/agrimart/internal/blog/repository"
	"github.com/agrimart/agrimart/internal/blog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("blog",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
