package interactive

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCarouselClampsAtBounds(t *testing.T) {
	c := NewCarousel(5, 2, false)

	for i := 0; i < 10; i++ {
		c.Next()
	}
	if c.Index() != 3 {
		t.Fatalf("expected clamp at 3 (5-2), got %d", c.Index())
	}

	for i := 0; i < 10; i++ {
		c.Prev()
	}
	if c.Index() != 0 {
		t.Fatalf("expected clamp at 0, got %d", c.Index())
	}
}

func TestCarouselWrapsWhenInfinite(t *testing.T) {
	c := NewCarousel(5, 2, true)

	for i := 0; i < 3; i++ {
		c.Next()
	}
	if c.Index() != 3 {
		t.Fatalf("expected index 3 before wrap, got %d", c.Index())
	}
	if got := c.Next(); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := c.Prev(); got != 3 {
		t.Fatalf("expected wrap back to max, got %d", got)
	}
}

func TestCarouselSingleViewNeverAdvances(t *testing.T) {
	c := NewCarousel(2, 2, true)
	if c.CanAdvance() {
		t.Fatal("carousel showing all items should not advance")
	}
	if got := c.Next(); got != 0 {
		t.Fatalf("expected index to stay 0, got %d", got)
	}
}

func TestSetIndexClamps(t *testing.T) {
	c := NewCarousel(4, 1, false)
	c.SetIndex(99)
	if c.Index() != 3 {
		t.Fatalf("expected clamp to 3, got %d", c.Index())
	}
	c.SetIndex(-5)
	if c.Index() != 0 {
		t.Fatalf("expected clamp to 0, got %d", c.Index())
	}
}

func TestItemsForWidth(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{320, 1},
		{800, 2},
		{1440, 3},
	}
	for _, tc := range cases {
		if got := ItemsForWidth(tc.width, 1, 2, 3); got != tc.want {
			t.Errorf("ItemsForWidth(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}

	if got := ItemsForWidth(320, 0, 2, 3); got != 1 {
		t.Errorf("non-positive config should fall back to 1, got %d", got)
	}
}

func TestDefaultIndex(t *testing.T) {
	if got := DefaultIndex([]bool{false, true, false}); got != 1 {
		t.Errorf("expected flagged index 1, got %d", got)
	}
	if got := DefaultIndex([]bool{false, false}); got != 0 {
		t.Errorf("expected fallback 0, got %d", got)
	}
	if got := DefaultIndex(nil); got != 0 {
		t.Errorf("expected fallback 0 for empty, got %d", got)
	}
}

func TestAutoplayAdvancesAndStops(t *testing.T) {
	c := NewCarousel(4, 1, true)
	var ticks atomic.Int32

	a := StartAutoplay(c, 5*time.Millisecond, func(int) {
		ticks.Add(1)
	})
	if a == nil {
		t.Fatal("expected autoplay to start")
	}

	deadline := time.After(time.Second)
	for ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("autoplay never ticked")
		case <-time.After(time.Millisecond):
		}
	}

	a.Stop()
	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	if ticks.Load() != settled {
		t.Fatal("autoplay kept ticking after Stop")
	}

	// Stop is idempotent and nil-safe.
	a.Stop()
	(*Autoplay)(nil).Stop()
}

func TestAutoplayRefusesSingleItem(t *testing.T) {
	c := NewCarousel(1, 1, true)
	if a := StartAutoplay(c, time.Millisecond, func(int) {}); a != nil {
		a.Stop()
		t.Fatal("autoplay must not start when the carousel cannot advance")
	}
}
