package diagnosis

import (
	"github.com/agrimart/agrimart/internal/config"
	"github.com/agrimart/agrimart/internal/diagnosis/loader"
	"github.com/agrimart/agrimart/internal/diagnosis/registry"
	"github.com/agrimart/agrimart/internal/diagnosis/service"
	"go.uber.org/fx"
)

var Module = fx.Module("diagnosis",
	fx.Provide(newRegistry),
	fx.Provide(loader.NewONNX),
	fx.Provide(service.New),
)

func newRegistry(cfg config.Config) *registry.Registry {
	return registry.New(cfg.ModelDir, cfg.ClassDataDir)
}
