package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_AllowsUpToMaxAttempts(t *testing.T) {
	limiter := NewLoginLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1", "reader"), "attempt %d should be allowed", i+1)
		limiter.RecordFailure("10.0.0.1", "reader")
	}

	assert.False(t, limiter.Allow("10.0.0.1", "reader"))
}

func TestLoginLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Hour)

	limiter.RecordFailure("10.0.0.1", "reader")

	assert.False(t, limiter.Allow("10.0.0.1", "reader"))
	assert.True(t, limiter.Allow("10.0.0.2", "reader"))
	assert.True(t, limiter.Allow("10.0.0.1", "other"))
}

func TestLoginLimiter_SuccessResets(t *testing.T) {
	limiter := NewLoginLimiter(2, time.Hour)

	limiter.RecordFailure("10.0.0.1", "reader")
	limiter.RecordFailure("10.0.0.1", "reader")
	assert.False(t, limiter.Allow("10.0.0.1", "reader"))

	limiter.RecordSuccess("10.0.0.1", "reader")

	assert.True(t, limiter.Allow("10.0.0.1", "reader"))
}

func TestLoginLimiter_DefaultsOnBadConfig(t *testing.T) {
	limiter := NewLoginLimiter(0, 0)

	assert.True(t, limiter.Allow("10.0.0.1", "reader"))
}
