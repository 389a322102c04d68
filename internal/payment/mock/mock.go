package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/agrimart/agrimart/internal/payment/domain"
)

// Gateway renders deterministic orders and accepts every signature.
// It stands in when no gateway credentials are configured.
type Gateway struct{}

func New() *Gateway {
	return &Gateway{}
}

func (g *Gateway) KeyID() string {
	return "test_key_id"
}

func (g *Gateway) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*domain.GatewayOrder, error) {
	return &domain.GatewayOrder{
		ID:       fmt.Sprintf("order_%s_%d", receipt, time.Now().Unix()),
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	return nil
}
