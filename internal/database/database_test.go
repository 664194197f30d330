package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfigDefaults(t *testing.T) {
	cfg := PoolConfig{ConnString: "postgres://localhost/app"}.withDefaults()

	assert.Equal(t, int32(DefaultMaxConns), cfg.MaxConns)
	assert.Equal(t, int32(DefaultMinConns), cfg.MinConns)
	assert.Equal(t, DefaultMaxConnIdleTime, cfg.MaxConnIdleTime)
	assert.Equal(t, DefaultMaxConnLifetime, cfg.MaxConnLifetime)
	assert.Equal(t, DefaultPingTimeout, cfg.PingTimeout)
}

func TestPoolConfigKeepsExplicitSizing(t *testing.T) {
	cfg := PoolConfig{
		MaxConns:        50,
		MinConns:        10,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: time.Hour,
		PingTimeout:     time.Second,
	}.withDefaults()

	assert.Equal(t, int32(50), cfg.MaxConns)
	assert.Equal(t, int32(10), cfg.MinConns)
	assert.Equal(t, time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
	assert.Equal(t, time.Second, cfg.PingTimeout)
}

func TestPoolConfigClampsMinToMax(t *testing.T) {
	cfg := PoolConfig{MaxConns: 1, MinConns: 8}.withDefaults()
	assert.Equal(t, int32(1), cfg.MinConns)
}

func TestConnectRejectsBadDSN(t *testing.T) {
	_, err := Connect(context.Background(), PoolConfig{ConnString: "://not-a-dsn"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse database dsn")
}
