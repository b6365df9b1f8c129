package catalog

import "time"

// DefaultSlideInterval is the auto-advance period of the featured
// carousel.
const DefaultSlideInterval = 3 * time.Second

// Carousel is the featured-properties slide state machine. It has two
// states, playing and paused: pointer-enter pauses, pointer-leave
// resumes, and manual navigation always applies regardless of state.
// Values are immutable; every transition returns a new Carousel.
type Carousel struct {
	Index  int
	Count  int
	Paused bool
}

// NewCarousel starts at the first slide, playing.
func NewCarousel(count int) Carousel {
	if count < 0 {
		count = 0
	}
	return Carousel{Count: count}
}

// Empty reports whether there are no slides. An empty carousel defines
// no transitions; callers render an empty state and schedule no timer.
func (c Carousel) Empty() bool {
	return c.Count == 0
}

// Next advances one slide, wrapping from last to first.
func (c Carousel) Next() Carousel {
	if c.Count == 0 {
		return c
	}
	c.Index = (c.Index + 1) % c.Count
	return c
}

// Prev moves one slide back, wrapping from first to last.
func (c Carousel) Prev() Carousel {
	if c.Count == 0 {
		return c
	}
	c.Index = (c.Index - 1 + c.Count) % c.Count
	return c
}

// GoTo jumps directly to a slide (dot navigation). Out-of-range
// indexes are ignored.
func (c Carousel) GoTo(i int) Carousel {
	if i < 0 || i >= c.Count {
		return c
	}
	c.Index = i
	return c
}

// PointerEnter pauses auto-advance.
func (c Carousel) PointerEnter() Carousel {
	c.Paused = true
	return c
}

// PointerLeave resumes auto-advance.
func (c Carousel) PointerLeave() Carousel {
	c.Paused = false
	return c
}

// Tick is the scheduled auto-advance message. It advances only while
// playing and with more than one slide; otherwise the state is
// unchanged.
func (c Carousel) Tick() Carousel {
	if c.Paused || c.Count <= 1 {
		return c
	}
	return c.Next()
}
