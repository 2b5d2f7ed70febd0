package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryRateLimiter(t *testing.T) {
	var limiter InMemoryRateLimiter
	limiter.Init(time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Request("client", 3, 60))
	}
	assert.False(t, limiter.Request("client", 3, 60))

	// other keys are tracked independently
	assert.True(t, limiter.Request("other", 3, 60))
}

func TestInMemoryRateLimiterWindowExpiry(t *testing.T) {
	var limiter InMemoryRateLimiter
	limiter.Init(time.Minute)

	assert.True(t, limiter.Request("burst", 1, 1))
	assert.False(t, limiter.Request("burst", 1, 1))
	time.Sleep(1100 * time.Millisecond)
	assert.True(t, limiter.Request("burst", 1, 1))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := Password2Hash("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)
	assert.True(t, ValidatePasswordAndHash("secret-password", hash))
	assert.False(t, ValidatePasswordAndHash("wrong", hash))
}
