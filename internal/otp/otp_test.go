package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		assert.GreaterOrEqual(t, code[0], byte('1'))
		seen[code] = true
	}
	// 200 draws from 900k values collide with negligible probability.
	assert.Greater(t, len(seen), 190)
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(TTL)

	t.Run("Match", func(t *testing.T) {
		assert.NoError(t, Validate("123456", expiry, "123456", now))
	})

	t.Run("Mismatch", func(t *testing.T) {
		assert.ErrorIs(t, Validate("123456", expiry, "654321", now), ErrInvalidCode)
	})

	t.Run("EmptyStoredCodeNeverMatches", func(t *testing.T) {
		assert.ErrorIs(t, Validate("", expiry, "", now), ErrInvalidCode)
	})

	t.Run("JustBeforeExpiry", func(t *testing.T) {
		assert.NoError(t, Validate("123456", expiry, "123456", expiry.Add(-time.Nanosecond)))
	})

	t.Run("AtExpiryInstant", func(t *testing.T) {
		assert.ErrorIs(t, Validate("123456", expiry, "123456", expiry), ErrExpired)
	})

	t.Run("AfterExpiry", func(t *testing.T) {
		assert.ErrorIs(t, Validate("123456", expiry, "123456", expiry.Add(time.Hour)), ErrExpired)
	})

	t.Run("MismatchReportedBeforeExpiry", func(t *testing.T) {
		// A wrong expired code reads as invalid, not expired, so the
		// error does not leak whether a challenge is still live.
		assert.ErrorIs(t, Validate("123456", expiry, "654321", expiry.Add(time.Hour)), ErrInvalidCode)
	})
}
