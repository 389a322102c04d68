package order

import (
	"github.com/agrimart/agrimart/internal/order/repository"
	"github.com/agrimart/agrimart/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
