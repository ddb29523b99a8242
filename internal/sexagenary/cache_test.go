package sexagenary

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

// countingSource counts how often the cache falls through to the calculator.
type countingSource struct {
	calc  *Calculator
	calls atomic.Int64
}

func (s *countingSource) FullInfo(t time.Time) (*Info, error) {
	s.calls.Add(1)
	return s.calc.FullInfo(t)
}

func newTestCache(t *testing.T, capacity int) (*Cache, *countingSource) {
	t.Helper()
	src := &countingSource{calc: NewCalculator(calendar.NewVietnameseConverter())}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewCache(src, capacity, logger), src
}

func TestCache_Identity(t *testing.T) {
	cache, src := newTestCache(t, 10)
	d := calendar.Date(2025, time.January, 29)

	first, err := cache.Get(d)
	require.NoError(t, err)
	second, err := cache.Get(d)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestCache_ClearRecomputes(t *testing.T) {
	cache, src := newTestCache(t, 10)
	d := calendar.Date(2025, time.January, 29)

	before, err := cache.Get(d)
	require.NoError(t, err)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())

	after, err := cache.Get(d)
	require.NoError(t, err)

	assert.NotSame(t, before, after)
	assert.Equal(t, before, after)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestCache_TimeOfDayGranularity(t *testing.T) {
	cache, src := newTestCache(t, 10)
	dateOnly := calendar.Date(2025, time.March, 1)
	timed := time.Date(2025, 3, 1, 14, 15, 0, 0, time.UTC)

	plain, err := cache.Get(dateOnly)
	require.NoError(t, err)
	assert.Nil(t, plain.Hour)

	withHour, err := cache.Get(timed)
	require.NoError(t, err)
	require.NotNil(t, withHour.Hour)
	assert.EqualValues(t, 2, src.calls.Load())
	assert.Equal(t, 1, cache.Len(), "one entry per calendar day")

	again, err := cache.Get(timed)
	require.NoError(t, err)
	assert.Same(t, withHour, again)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestCache_EvictionBound(t *testing.T) {
	cache, _ := newTestCache(t, 5)
	start := calendar.Date(2025, time.January, 1)

	for i := 0; i < 20; i++ {
		_, err := cache.Get(start.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.LessOrEqual(t, cache.Len(), cache.Capacity())
	}
	assert.Equal(t, 5, cache.Len())
}

func TestCache_EvictsInInsertionOrder(t *testing.T) {
	cache, src := newTestCache(t, 3)
	d1 := calendar.Date(2025, time.January, 1)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	d4 := d1.AddDate(0, 0, 3)

	for _, d := range []time.Time{d1, d2, d3} {
		_, err := cache.Get(d)
		require.NoError(t, err)
	}
	// Reading d1 again does not protect it.
	_, err := cache.Get(d1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, src.calls.Load())

	_, err = cache.Get(d4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, src.calls.Load())

	_, err = cache.Get(d2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, src.calls.Load(), "d2 is still resident")

	_, err = cache.Get(d1)
	require.NoError(t, err)
	assert.EqualValues(t, 5, src.calls.Load(), "d1 was evicted first")
}

func TestCache_DefaultCapacity(t *testing.T) {
	cache := NewCache(NewCalculator(calendar.NewVietnameseConverter()), 0, nil)
	assert.Equal(t, DefaultCacheCapacity, cache.Capacity())
}

func TestCache_PropagatesRangeError(t *testing.T) {
	cache, _ := newTestCache(t, 5)
	_, err := cache.Get(calendar.Date(1899, time.December, 31))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_GetRange(t *testing.T) {
	cache, _ := newTestCache(t, 100)
	start := calendar.Date(2025, time.January, 25)
	end := calendar.Date(2025, time.February, 3)

	infos, err := cache.GetRange(start, end)
	require.NoError(t, err)
	require.Len(t, infos, 10)
	for i, info := range infos {
		assert.True(t, calendar.SameDate(start.AddDate(0, 0, i), info.Date))
	}

	single, err := cache.GetRange(start, start)
	require.NoError(t, err)
	assert.Len(t, single, 1)

	// Times of day are ignored for the bounds.
	withClock, err := cache.GetRange(start.Add(20*time.Hour), end.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, withClock, 10)

	_, err = cache.GetRange(end, start)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCache_Concurrent(t *testing.T) {
	cache, _ := newTestCache(t, 20)
	start := calendar.Date(2024, time.June, 1)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				d := start.AddDate(0, 0, (i*7+g)%50)
				info, err := cache.Get(d)
				if err != nil {
					errs <- err
					return
				}
				if !calendar.SameDate(info.Date, d) {
					t.Errorf("Get(%s) returned %s", calendar.FormatDate(d), calendar.FormatDate(info.Date))
				}
				if i%50 == 0 {
					cache.Clear()
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
	assert.LessOrEqual(t, cache.Len(), 20)
}
