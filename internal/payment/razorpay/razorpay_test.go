package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/agrimart/agrimart/internal/payment/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := New(zap.NewNop(), "rzp_test_key", "secret")

	sig := signPayload("secret", "order_123", "pay_456")
	require.NoError(t, g.VerifySignature("order_123", "pay_456", sig))

	err := g.VerifySignature("order_123", "pay_456", "deadbeef")
	require.ErrorIs(t, err, domain.ErrInvalidSignature)

	err = g.VerifySignature("order_999", "pay_456", sig)
	require.ErrorIs(t, err, domain.ErrInvalidSignature)
}
