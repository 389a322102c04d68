package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/agrimart/agrimart/internal/payment/domain"
	razorpaysdk "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

type Gateway struct {
	log    *zap.Logger
	client *razorpaysdk.Client
	keyID  string
	secret string
}

func New(log *zap.Logger, keyID, keySecret string) *Gateway {
	return &Gateway{
		log:    log.Named("payment.razorpay"),
		client: razorpaysdk.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}
}

func (g *Gateway) KeyID() string {
	return g.keyID
}

func (g *Gateway) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*domain.GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.log.Error("gateway order create failed", zap.Error(err))
		return nil, domain.ErrGatewayFailure
	}

	order := &domain.GatewayOrder{
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	if status, ok := body["status"].(string); ok {
		order.Status = status
	}
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 the checkout form posts back.
// The signed payload is "<order_id>|<payment_id>" keyed with the secret.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(g.secret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%s|%s", orderID, paymentID)))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return domain.ErrInvalidSignature
	}
	return nil
}
