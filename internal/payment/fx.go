package payment

import (
	"github.com/agrimart/agrimart/internal/config"
	"github.com/agrimart/agrimart/internal/payment/domain"
	"github.com/agrimart/agrimart/internal/payment/mock"
	"github.com/agrimart/agrimart/internal/payment/razorpay"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("payment",
	fx.Provide(NewGateway),
)

// NewGateway selects the Razorpay gateway when credentials are
// configured and falls back to the mock otherwise.
func NewGateway(cfg config.Config, log *zap.Logger) domain.Gateway {
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Warn("razorpay credentials missing, using mock payment gateway")
		return mock.New()
	}
	return razorpay.New(log, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
}
