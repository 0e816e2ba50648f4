package common

import (
	"fmt"

	"github.com/ankurkotwal/fitcard/fit"
)

// FittedTextOptions configures when a FittedText refits itself
type FittedTextOptions struct {
	fit.Options
	ActivateOnResize bool
	ActivateOnInput  bool
	// Start each descent from OriginalSize instead of the maximum
	UseOriginalSize bool
	OriginalSize    int
	// Resize and input restart from the container height instead
	SeedFromHeight bool
	// Called for every size change with the new size
	OnFontSizeChanged func(size int)
}

// FittedText keeps one piece of text fitted to its container as the text and
// the container change. Each trigger restarts the descent from the top.
type FittedText struct {
	engine   *fit.Engine
	measurer *TextMeasurer
	opts     FittedTextOptions
	attached bool
}

// NewFittedText wraps a measurer. Nothing is fitted until Attach.
func NewFittedText(measurer *TextMeasurer, opts FittedTextOptions) *FittedText {
	f := &FittedText{measurer: measurer, opts: opts}
	engineOpts := opts.Options
	engineOpts.OnChange = func(size int) {
		if f.opts.OnFontSizeChanged != nil {
			f.opts.OnFontSizeChanged(size)
		}
	}
	f.engine = fit.New(engineOpts)
	return f
}

// Attach runs the first fit pass
func (f *FittedText) Attach() int {
	f.attached = true
	return f.Refit()
}

// Refit restarts the descent and runs it to completion
func (f *FittedText) Refit() int {
	if f.opts.UseOriginalSize && f.opts.OriginalSize > 0 {
		f.engine.ResetTo(f.opts.OriginalSize)
	} else {
		f.engine.Reset()
	}
	return f.engine.AttemptFit(f.measurer)
}

// refitFromHeight restarts a resize or input triggered descent
func (f *FittedText) refitFromHeight() int {
	if !f.opts.SeedFromHeight || f.measurer.Height <= 0 {
		return f.Refit()
	}
	f.engine.ResetTo(f.measurer.Height)
	return f.engine.AttemptFit(f.measurer)
}

// Update continues the current pass without a reset. It changes nothing once
// the pass is done, and lets a pass that was skipped because the container
// had no height start once it does.
func (f *FittedText) Update() int {
	return f.engine.AttemptFit(f.measurer)
}

// Resize sets the container size, refitting if resize activation is on
func (f *FittedText) Resize(width, height int) int {
	f.measurer.Width, f.measurer.Height = width, height
	if !f.attached || !f.opts.ActivateOnResize {
		return f.engine.Current()
	}
	return f.refitFromHeight()
}

// SetText replaces the watched text and refits
func (f *FittedText) SetText(text string) int {
	f.measurer.Text = text
	if !f.attached {
		return f.engine.Current()
	}
	return f.Refit()
}

// Input handles text typed into the element, refitting if input activation is on
func (f *FittedText) Input(text string) int {
	f.measurer.Text = text
	if !f.attached || !f.opts.ActivateOnInput {
		return f.engine.Current()
	}
	return f.refitFromHeight()
}

// FontSize returns the current font size
func (f *FittedText) FontSize() int { return f.engine.Current() }

// Style formats the font size as a css property value
func (f *FittedText) Style() string {
	return fmt.Sprintf("%dpx", f.engine.Current())
}

// Done reports whether the last pass finished
func (f *FittedText) Done() bool { return f.engine.Done() }

// Floored reports whether the text still overflows at the minimum size
func (f *FittedText) Floored() bool { return f.engine.Floored() }

// Err returns the last measurement error
func (f *FittedText) Err() error { return f.measurer.Err() }
