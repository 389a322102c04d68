package cart

import (
	"github.com/agrimart/agrimart/internal/cart/repository"
	"github.com/agrimart/agrimart/internal/cart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cart",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
