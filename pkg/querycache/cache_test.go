package querycache_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbk-gemmy/finance-platform/pkg/querycache"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newCache(t *testing.T, maxSize int) (*querycache.Cache[string], *clock) {
	t.Helper()

	clk := &clock{t: time.Now()}
	c := querycache.New[string](maxSize, time.Minute)
	c.SetClock(clk.now)

	return c, clk
}

func TestGetFresh(t *testing.T) {
	c, clk := newCache(t, 10)

	c.Set("accounts", "list")
	clk.advance(59 * time.Second)

	got, ok := c.Get("accounts")
	require.True(t, ok)
	assert.Equal(t, "list", got)
}

func TestGetStaleKeepsPeek(t *testing.T) {
	c, clk := newCache(t, 10)

	c.Set("accounts", "list")
	clk.advance(time.Minute)

	_, ok := c.Get("accounts")
	assert.False(t, ok)

	got, ok := c.Peek("accounts")
	require.True(t, ok, "stale entry must stay readable")
	assert.Equal(t, "list", got)
}

func TestSetRefreshes(t *testing.T) {
	c, clk := newCache(t, 10)

	c.Set("accounts", "old")
	clk.advance(50 * time.Second)
	c.Set("accounts", "new")
	clk.advance(50 * time.Second)

	got, ok := c.Get("accounts")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newCache(t, 2)

	c.Set("a", "1")
	c.Set("b", "2")
	_, _ = c.Get("a")
	c.Set("c", "3")

	_, ok := c.Peek("b")
	assert.False(t, ok, "b should be evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestInvalidate(t *testing.T) {
	c, _ := newCache(t, 10)

	c.Set("accounts", "list")
	c.Invalidate("accounts")
	c.Invalidate("missing")

	_, ok := c.Peek("accounts")
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	c, _ := newCache(t, 10)

	c.Set("accounts", "list")
	c.Set("account/1", "one")
	c.Set("account/2", "two")

	assert.Equal(t, 2, c.InvalidatePrefix("account/"))

	_, ok := c.Get("accounts")
	assert.True(t, ok)

	_, ok = c.Peek("account/1")
	assert.False(t, ok)
}

func TestNewDefaultsMaxSize(t *testing.T) {
	c := querycache.New[int](0, time.Minute)

	for i := 0; i <= querycache.DefaultMaxSize; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	_, ok := c.Peek("0")
	assert.False(t, ok, "oldest entry should be evicted past DefaultMaxSize")

	got, ok := c.Get(strconv.Itoa(querycache.DefaultMaxSize))
	require.True(t, ok)
	assert.Equal(t, querycache.DefaultMaxSize, got)
}

func TestZeroStaleTimeIsAlwaysStale(t *testing.T) {
	c := querycache.New[string](10, 0)

	c.Set("accounts", "list")

	_, ok := c.Get("accounts")
	assert.False(t, ok)

	_, ok = c.Peek("accounts")
	assert.True(t, ok)
}
