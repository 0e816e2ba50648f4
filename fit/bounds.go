package fit

import "math"

const (
	// DefaultMinFontSize is the floor of a descent when none is configured
	DefaultMinFontSize = 7
	// DefaultMaxFontSize is the starting size of a descent when none is configured
	DefaultMaxFontSize = 1000
	// DefaultSpeedFactor is the divisor applied to the font size on each shrink step
	DefaultSpeedFactor = 1.05
)

// SizeBounds holds a font size clamped to [min, max]
type SizeBounds struct {
	min     int
	max     int
	current int
}

// NewSizeBounds returns bounds starting at max. Non-positive bounds take the
// defaults and a max below min is raised to min.
func NewSizeBounds(min, max int) *SizeBounds {
	if min <= 0 {
		min = DefaultMinFontSize
	}
	if max <= 0 {
		max = DefaultMaxFontSize
	}
	if max < min {
		max = min
	}
	return &SizeBounds{min: min, max: max, current: max}
}

// Min returns the floor
func (b *SizeBounds) Min() int { return b.min }

// Max returns the ceiling
func (b *SizeBounds) Max() int { return b.max }

// Current returns the (already clamped) current size
func (b *SizeBounds) Current() int { return b.current }

// SetCurrent stores v clamped to [min, max]
func (b *SizeBounds) SetCurrent(v int) {
	switch {
	case v < b.min:
		b.current = b.min
	case v > b.max:
		b.current = b.max
	default:
		b.current = v
	}
}

// Reset puts current back to max
func (b *SizeBounds) Reset() {
	b.current = b.max
}

// NextSize returns floor(currentSize / speedFactor). For speedFactor > 1 and
// currentSize >= 1 the result is strictly smaller than currentSize.
func NextSize(currentSize int, speedFactor float64) int {
	return int(math.Floor(float64(currentSize) / speedFactor))
}
