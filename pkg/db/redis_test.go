package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacl-coder/PixelStorm-Survival/config"
)

func TestRedisOptions(t *testing.T) {
	opts := RedisOptions(config.RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 2})
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, redisOpTimeout, opts.ReadTimeout)
}

func TestCloseWithoutConnections(t *testing.T) {
	assert.NotPanics(t, func() {
		Close()
		CloseRedis()
	})
}
