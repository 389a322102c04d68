package domain

import (
	"context"
	"errors"
)

// GatewayOrder is the canonical payment-gateway order returned by adapters.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway abstracts the payment provider. Amounts are in the smallest
// currency unit (paise for INR).
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) error
}

var (
	ErrInvalidSignature = errors.New("invalid_payment_signature")
	ErrGatewayFailure   = errors.New("payment_gateway_failure")
)
