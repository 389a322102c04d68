package catalog

import (
	"github.com/agrimart/agrimart/internal/catalog/repository"
	"github.com/agrimart/agrimart/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
