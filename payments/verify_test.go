package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyConfirmation(t *testing.T) {
	v := NewVerifier("key_secret", "wh_secret")

	sig := sign("order_123|pay_456", "key_secret")
	assert.NoError(t, v.VerifyConfirmation("order_123", "pay_456", sig))

	// wrong secret
	assert.ErrorIs(t, v.VerifyConfirmation("order_123", "pay_456", sign("order_123|pay_456", "other")), ErrBadSignature)

	// swapped ids
	assert.ErrorIs(t, v.VerifyConfirmation("pay_456", "order_123", sig), ErrBadSignature)
}

func TestVerifyConfirmationBitFlip(t *testing.T) {
	v := NewVerifier("key_secret", "wh_secret")
	sig := sign("order_123|pay_456", "key_secret")

	// Any single hex-digit mutation must fail.
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.ErrorIs(t, v.VerifyConfirmation("order_123", "pay_456", string(mutated)), ErrBadSignature, "position %d", i)
	}
}

func TestVerifyWebhookRawBody(t *testing.T) {
	v := NewVerifier("key_secret", "wh_secret")

	body := []byte(`{"event": "payment.captured",  "payload": {}}`)
	assert.NoError(t, v.VerifyWebhook(body, sign(string(body), "wh_secret")))

	// The signature covers the exact bytes; whitespace changes break it.
	reserialized := []byte(`{"event":"payment.captured","payload":{}}`)
	assert.ErrorIs(t, v.VerifyWebhook(reserialized, sign(string(body), "wh_secret")), ErrBadSignature)
}

func TestVerifyFailsClosedWithoutSecret(t *testing.T) {
	v := NewVerifier("", "")

	body := []byte(`{}`)
	assert.ErrorIs(t, v.VerifyWebhook(body, sign(string(body), "")), ErrMissingSecret)
	assert.ErrorIs(t, v.VerifyConfirmation("o", "p", sign("o|p", "")), ErrMissingSecret)
}
