package services_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestSignatureVerifier(t *testing.T) {
	const secret = "test-secret"
	verifier := services.NewSignatureVerifier(secret)

	t.Run("should accept valid signature", func(t *testing.T) {
		signature := signPayload(secret, "gw_42", "pay_7")

		err := verifier.Verify("gw_42", "pay_7", signature)

		require.NoError(t, err)
	})

	t.Run("should reject tampered order ref", func(t *testing.T) {
		signature := signPayload(secret, "gw_42", "pay_7")

		err := verifier.Verify("gw_43", "pay_7", signature)

		assert.ErrorIs(t, err, services.ErrInvalidSignature)
	})

	t.Run("should reject tampered payment ref", func(t *testing.T) {
		signature := signPayload(secret, "gw_42", "pay_7")

		err := verifier.Verify("gw_42", "pay_8", signature)

		assert.ErrorIs(t, err, services.ErrInvalidSignature)
	})

	t.Run("should reject signature made with another secret", func(t *testing.T) {
		signature := signPayload("other-secret", "gw_42", "pay_7")

		err := verifier.Verify("gw_42", "pay_7", signature)

		assert.ErrorIs(t, err, services.ErrInvalidSignature)
	})

	t.Run("should reject empty signature", func(t *testing.T) {
		err := verifier.Verify("gw_42", "pay_7", "")

		assert.ErrorIs(t, err, services.ErrInvalidSignature)
	})

	t.Run("should reject malformed signature", func(t *testing.T) {
		err := verifier.Verify("gw_42", "pay_7", "not-hex-at-all")

		assert.ErrorIs(t, err, services.ErrInvalidSignature)
	})

	t.Run("should report missing secret distinctly", func(t *testing.T) {
		unconfigured := services.NewSignatureVerifier("")
		signature := signPayload(secret, "gw_42", "pay_7")

		err := unconfigured.Verify("gw_42", "pay_7", signature)

		assert.ErrorIs(t, err, services.ErrSecretNotConfigured)
		assert.NotErrorIs(t, err, services.ErrInvalidSignature)
	})
}
