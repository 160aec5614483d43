package querycache

import "time"

// SetClock replaces the time source of c.
func (c *Cache[T]) SetClock(now func() time.Time) {
	c.now = now
}
