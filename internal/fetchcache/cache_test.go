package fetchcache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_TTLBoundary(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		readAt  time.Time
		wantHit bool
	}{
		{name: "just inside the window", readAt: base.Add(299 * time.Second), wantHit: true},
		{name: "exactly at the window", readAt: base.Add(300 * time.Second), wantHit: false},
		{name: "just past the window", readAt: base.Add(301 * time.Second), wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(300 * time.Second)
			c.SetAt("info_AAPL", "payload", base)

			c.WithNow(func() time.Time { return tt.readAt })

			got, ok := c.Get("info_AAPL")
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, "payload", got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestCache_ExpiredEntryIsDropped(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := New(300 * time.Second)
	c.SetAt("chart_MSFT", 42, base)
	require.Equal(t, 1, c.Len())

	c.WithNow(func() time.Time { return base.Add(10 * time.Minute) })

	_, ok := c.Get("chart_MSFT")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on read")
}

func TestCache_SetRefreshesTimestamp(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base

	c := New(300 * time.Second).WithNow(func() time.Time { return now })

	c.Set("news_NVDA", "old")

	// Rewrite shortly before expiry restarts the window
	now = base.Add(290 * time.Second)
	c.Set("news_NVDA", "new")

	now = base.Add(400 * time.Second)
	got, ok := c.Get("news_NVDA")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestCache_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, New(0).TTL())
	assert.Equal(t, DefaultTTL, New(-time.Second).TTL())
	assert.Equal(t, time.Minute, New(time.Minute).TTL())
}

func TestCache_Delete(t *testing.T) {
	c := New(time.Minute)
	c.Set("info_KO", 1)
	c.Delete("info_KO")

	_, ok := c.Get("info_KO")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("shared", n)
				c.Get("shared")
			}
		}(i)
	}
	wg.Wait()

	_, ok := c.Get("shared")
	assert.True(t, ok)
}
