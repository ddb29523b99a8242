package sexagenary

import (
	"container/list"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

// DefaultCacheCapacity is the number of days a Cache keeps by default.
const DefaultCacheCapacity = 100

// InfoSource computes sexagenary info. *Calculator implements it.
type InfoSource interface {
	FullInfo(t time.Time) (*Info, error)
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// Cache memoizes FullInfo per calendar day.
//
// Eviction is first-in first-out: once the cache holds more than its
// capacity, the earliest inserted days are dropped regardless of how
// recently they were read. Replacing a day's entry keeps its original
// position in the queue.
type Cache struct {
	source   InfoSource
	capacity int
	logger   *slog.Logger

	mu      sync.RWMutex
	entries map[dayKey]*Info
	order   *list.List // of dayKey, oldest first
}

// NewCache creates a cache over source. A capacity <= 0 selects
// DefaultCacheCapacity.
func NewCache(source InfoSource, capacity int, logger *slog.Logger) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		source:   source,
		capacity: capacity,
		logger:   logger,
		entries:  make(map[dayKey]*Info),
		order:    list.New(),
	}
}

// Get returns the info for t, computing it on a miss.
//
// An entry is reused only if it was computed for the same instant: a
// date-only entry is recomputed (and replaced) when t carries a time of day,
// and vice versa.
func (c *Cache) Get(t time.Time) (*Info, error) {
	key := keyOf(t)

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && cached.Date.Equal(t) {
		return cached, nil
	}

	info, err := c.source.FullInfo(t)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = info
		return info, nil
	}

	c.entries[key] = info
	c.order.PushBack(key)
	for len(c.entries) > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(dayKey))
		c.logger.Debug("sexagenary cache eviction",
			slog.Int("size", len(c.entries)),
			slog.Int("capacity", c.capacity),
		)
	}
	return info, nil
}

// GetRange returns one date-only entry per calendar day from start to end,
// both inclusive, in ascending order.
func (c *Cache) GetRange(start, end time.Time) ([]*Info, error) {
	from := calendar.DateOf(start)
	to := calendar.DateOf(end)
	if from.After(to) {
		return nil, fmt.Errorf("%w: range start %s after end %s",
			ErrInvalidArgument, calendar.FormatDate(start), calendar.FormatDate(end))
	}

	var out []*Info
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		info, err := c.Get(d)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[dayKey]*Info)
	c.order.Init()
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Capacity returns the maximum number of resident entries.
func (c *Cache) Capacity() int {
	return c.capacity
}
