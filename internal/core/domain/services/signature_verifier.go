package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrSecretNotConfigured is returned when the verifier was built without
	// a signing secret. This is a deployment fault, not a bad request, and
	// callers must surface it as such.
	ErrSecretNotConfigured = errors.New("payment gateway secret is not configured")

	// ErrInvalidSignature is returned when the supplied signature does not
	// match the expected one. The callback must be rejected unauthenticated.
	ErrInvalidSignature = errors.New("payment callback signature is invalid")
)

// SignatureVerifier authenticates payment gateway callbacks.
//
// The gateway signs each callback with HMAC-SHA256 over the gateway order
// reference and payment reference joined by "|", using a secret shared with
// the storefront. The verifier recomputes the signature and compares it in
// constant time, so a callback can only pass if its sender holds the secret.
//
// Business rules:
//   - Verification happens before any order state is read or written
//   - A missing secret is a configuration fault, distinct from a bad signature
//   - Comparison is constant time to avoid leaking the expected value
type SignatureVerifier struct {
	secret []byte
}

// NewSignatureVerifier creates a verifier with the shared gateway secret.
// An empty secret is accepted at construction so the service can boot, but
// every verification will fail with ErrSecretNotConfigured.
func NewSignatureVerifier(secret string) SignatureVerifier {
	return SignatureVerifier{secret: []byte(secret)}
}

// Verify checks the callback signature for the given gateway references.
//
// Parameters:
//   - gatewayOrderRef: The gateway's order identifier from the callback
//   - gatewayPaymentRef: The gateway's payment identifier from the callback
//   - signature: The hex-encoded HMAC-SHA256 signature supplied by the caller
//
// Returns nil when the signature is authentic, ErrSecretNotConfigured when
// no secret is set, or ErrInvalidSignature otherwise.
func (v SignatureVerifier) Verify(gatewayOrderRef, gatewayPaymentRef, signature string) error {
	if len(v.secret) == 0 {
		return ErrSecretNotConfigured
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(gatewayOrderRef + "|" + gatewayPaymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
