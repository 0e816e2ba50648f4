// Package fit shrinks a font size until text stops overflowing its container.
//
// An Engine owns a SizeBounds and walks the size down geometrically, one Step
// per measurement, until the content fits or the minimum size is reached.
// Measurements come from the caller; the engine never measures anything itself.
package fit

// State of an Engine
type State int

const (
	// Idle - not evaluated since creation or the last reset
	Idle State = iota
	// Fitting - at least one visible measurement has been evaluated
	Fitting
	// Done - content fits or the floor was reached. Further steps are ignored
	// until Reset.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fitting:
		return "fitting"
	case Done:
		return "done"
	}
	return "unknown"
}

// Options configures an Engine. Zero values take the package defaults.
type Options struct {
	MinFontSize int
	MaxFontSize int
	SpeedFactor float64
	// OnChange is called once per shrink step with the new size
	OnChange func(size int)
}

// Measurer supplies a fresh container/content measurement with the text set
// at the given font size.
type Measurer interface {
	Measure(size int) (container, content Box)
}

// MeasurerFunc adapts a function to Measurer
type MeasurerFunc func(size int) (container, content Box)

// Measure calls f(size)
func (f MeasurerFunc) Measure(size int) (container, content Box) {
	return f(size)
}

// Engine runs fit passes for a single element. It is not safe for concurrent use.
type Engine struct {
	bounds   *SizeBounds
	speed    float64
	onChange func(size int)
	state    State
	floored  bool
}

// New returns an Idle engine with current size at max
func New(opts Options) *Engine {
	speed := opts.SpeedFactor
	if speed <= 1 {
		speed = DefaultSpeedFactor
	}
	return &Engine{
		bounds:   NewSizeBounds(opts.MinFontSize, opts.MaxFontSize),
		speed:    speed,
		onChange: opts.OnChange,
	}
}

// Step evaluates one measurement snapshot and shrinks the size at most once.
// It returns true only when the size changed.
func (e *Engine) Step(container, content Box) bool {
	if e.state == Done || !IsVisible(container) {
		return false
	}
	e.state = Fitting

	if !HasOverflow(container, content) {
		e.state = Done
		return false
	}
	current := e.bounds.Current()
	if current <= e.bounds.Min() {
		// Overflow at the floor is accepted
		e.state = Done
		e.floored = true
		return false
	}

	e.bounds.SetCurrent(NextSize(current, e.speed))
	if e.onChange != nil {
		e.onChange(e.bounds.Current())
	}
	return true
}

// AttemptFit re-measures and steps until the size stops changing, returning
// the resulting size. It is a no-op once the engine is Done.
func (e *Engine) AttemptFit(m Measurer) int {
	for {
		container, content := m.Measure(e.bounds.Current())
		if !e.Step(container, content) {
			break
		}
	}
	return e.bounds.Current()
}

// Reset returns the engine to Idle with the size back at max
func (e *Engine) Reset() {
	e.state = Idle
	e.floored = false
	e.bounds.Reset()
}

// ResetTo is Reset followed by starting the next descent from size (clamped)
func (e *Engine) ResetTo(size int) {
	e.Reset()
	e.bounds.SetCurrent(size)
}

// Current returns the current font size
func (e *Engine) Current() int { return e.bounds.Current() }

// State returns the engine state
func (e *Engine) State() State { return e.state }

// Done reports whether the last pass finished
func (e *Engine) Done() bool { return e.state == Done }

// Floored reports whether the last pass stopped at the minimum size while the
// content still overflowed.
func (e *Engine) Floored() bool { return e.floored }

// Bounds returns the engine's size bounds
func (e *Engine) Bounds() *SizeBounds { return e.bounds }

// SpeedFactor returns the divisor used per shrink step
func (e *Engine) SpeedFactor() float64 { return e.speed }
