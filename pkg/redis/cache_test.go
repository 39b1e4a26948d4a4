package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "movers:gainers", MoversKey("gainers"))
	assert.Equal(t, "movers:losers", MoversKey("losers"))
	assert.Equal(t, "scan:trending", ScanKey("trending"))
}

func TestCache_DisabledClientIsNoOp(t *testing.T) {
	cache := NewCache(&Client{}, "test")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, ScanKey("trending"), []string{"AAPL"}, time.Minute))

	var dest []string
	hit, err := cache.Get(ctx, ScanKey("trending"), &dest)
	require.NoError(t, err)
	assert.False(t, hit, "disabled tier never serves a hit")
	assert.Empty(t, dest)

	require.NoError(t, cache.Delete(ctx, ScanKey("trending")))
}
