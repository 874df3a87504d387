// Package interactive models the view state of client-side widgets
// (carousels, tabs, accordions). Keeping the index math and timer ownership
// here lets the section renderers stay pure and makes the bounds behaviour
// testable without a browser.
package interactive

import (
	"sync"
	"time"
)

// Viewport breakpoints in CSS pixels. Widths below Tablet are mobile.
const (
	BreakpointTablet  = 768
	BreakpointDesktop = 1200
)

// Carousel tracks the sliding window over a fixed item list. When infinite is
// off, Next clamps at itemCount-itemsPerView; when on, it wraps to 0 past the
// end (and Prev wraps to the max).
type Carousel struct {
	itemCount    int
	itemsPerView int
	infinite     bool
	index        int
}

// NewCarousel builds a carousel. Non-positive itemsPerView is treated as 1.
func NewCarousel(itemCount, itemsPerView int, infinite bool) *Carousel {
	if itemsPerView < 1 {
		itemsPerView = 1
	}
	if itemCount < 0 {
		itemCount = 0
	}
	return &Carousel{
		itemCount:    itemCount,
		itemsPerView: itemsPerView,
		infinite:     infinite,
	}
}

// MaxIndex is the furthest reachable start index.
func (c *Carousel) MaxIndex() int {
	max := c.itemCount - c.itemsPerView
	if max < 0 {
		return 0
	}
	return max
}

// Index returns the current start index.
func (c *Carousel) Index() int {
	return c.index
}

// SetIndex positions the window, clamping into the valid range.
func (c *Carousel) SetIndex(index int) {
	if index < 0 {
		index = 0
	}
	if index > c.MaxIndex() {
		index = c.MaxIndex()
	}
	c.index = index
}

// CanAdvance reports whether Next/Prev can move at all. A carousel showing
// all of its items at once never advances.
func (c *Carousel) CanAdvance() bool {
	return c.itemCount > c.itemsPerView
}

// Next advances one step, clamping or wrapping per the infinite flag, and
// returns the new index.
func (c *Carousel) Next() int {
	if !c.CanAdvance() {
		return c.index
	}
	if c.index >= c.MaxIndex() {
		if c.infinite {
			c.index = 0
		}
		return c.index
	}
	c.index++
	return c.index
}

// Prev moves one step back, clamping or wrapping per the infinite flag, and
// returns the new index.
func (c *Carousel) Prev() int {
	if !c.CanAdvance() {
		return c.index
	}
	if c.index <= 0 {
		if c.infinite {
			c.index = c.MaxIndex()
		}
		return c.index
	}
	c.index--
	return c.index
}

// ItemsForWidth returns the responsive item count for a viewport width given
// the per-breakpoint configuration. Non-positive settings fall back to 1.
func ItemsForWidth(width, mobile, tablet, desktop int) int {
	pick := func(n int) int {
		if n < 1 {
			return 1
		}
		return n
	}
	switch {
	case width >= BreakpointDesktop:
		return pick(desktop)
	case width >= BreakpointTablet:
		return pick(tablet)
	default:
		return pick(mobile)
	}
}

// DefaultIndex picks the initial selection for tabbed/accordion widgets: the
// first item flagged as default in the CMS, falling back to index 0.
func DefaultIndex(isDefault []bool) int {
	for i, flagged := range isDefault {
		if flagged {
			return i
		}
	}
	return 0
}

// Autoplay owns a ticker driving carousel advancement. It is acquired with
// StartAutoplay and must be released with Stop; Stop is idempotent and safe
// from any goroutine. No free-running timer survives its owner.
type Autoplay struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// StartAutoplay fires fn every interval until Stop is called. It returns nil
// when the carousel cannot advance (one slide or fewer than a full view) or
// the interval is not positive, so callers can unconditionally guard with a
// nil check and a deferred Stop.
func StartAutoplay(c *Carousel, interval time.Duration, fn func(index int)) *Autoplay {
	if c == nil || !c.CanAdvance() || interval <= 0 || fn == nil {
		return nil
	}

	a := &Autoplay{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-a.done:
				return
			case <-a.ticker.C:
				fn(c.Next())
			}
		}
	}()

	return a
}

// Stop cancels the autoplay and releases the ticker. Safe to call multiple
// times and on a nil receiver.
func (a *Autoplay) Stop() {
	if a == nil {
		return
	}
	a.once.Do(func() {
		a.ticker.Stop()
		close(a.done)
	})
}
