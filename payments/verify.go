package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Verifier checks that inbound payment events were signed with the gateway's
// shared secrets. Both secrets are fixed at construction; an empty secret
// rejects everything rather than skipping the check.
type Verifier struct {
	keySecret     string
	webhookSecret string
}

func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{keySecret: keySecret, webhookSecret: webhookSecret}
}

// VerifyWebhook checks the signature over the raw request body exactly as
// received. The body must not be re-serialized before this call.
func (v *Verifier) VerifyWebhook(body []byte, signature string) error {
	if v.webhookSecret == "" {
		return ErrMissingSecret
	}
	if !validSignature(body, signature, v.webhookSecret) {
		return ErrBadSignature
	}
	return nil
}

// VerifyConfirmation checks the client-side checkout signature, computed by
// the gateway over "orderID|paymentID" with the key secret. This proof does
// not bind the amount; callers must resolve amounts from the stored order.
func (v *Verifier) VerifyConfirmation(orderID, paymentID, signature string) error {
	if v.keySecret == "" {
		return ErrMissingSecret
	}
	if !validSignature([]byte(orderID+"|"+paymentID), signature, v.keySecret) {
		return ErrBadSignature
	}
	return nil
}

func validSignature(message []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
