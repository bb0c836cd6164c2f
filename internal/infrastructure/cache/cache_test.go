package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New()
	defer c.StopJanitor()

	c.Set("site:abc", 42, time.Minute)

	value, found := c.Get("site:abc")
	require.True(t, found)
	require.Equal(t, 42, value)
}

func TestGetMissing(t *testing.T) {
	c := New()
	defer c.StopJanitor()

	_, found := c.Get("nope")
	require.False(t, found)
}

func TestExpiredEntryIsGone(t *testing.T) {
	c := New()
	defer c.StopJanitor()

	c.Set("short", "lived", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("short")
	require.False(t, found)
}

func TestDelete(t *testing.T) {
	c := New()
	defer c.StopJanitor()

	c.Set("k", "v", time.Minute)
	c.Delete("k")

	_, found := c.Get("k")
	require.False(t, found)
}
