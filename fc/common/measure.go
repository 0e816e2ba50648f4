package common

import (
	"strings"

	"golang.org/x/image/font"

	"github.com/ankurkotwal/fitcard/fit"
)

// TextMeasurer measures text set in a TrueType font against a fixed
// container. It implements fit.Measurer.
type TextMeasurer struct {
	Text     string
	FontsDir string
	Font     string
	Loader   FontLoader
	// Container client size in pixels
	Width  int
	Height int

	err error
}

// Measure returns the container box and the content box of the text at size.
// If the font can't be loaded the container reports no height so no fitting
// is attempted; the error is kept for Err.
func (m *TextMeasurer) Measure(size int) (container, content fit.Box) {
	container = fit.Box{ClientWidth: m.Width, ClientHeight: m.Height,
		ScrollWidth: m.Width, ScrollHeight: m.Height}
	face, err := m.Loader.MeasureFont(m.FontsDir, m.Font, size)
	if err != nil {
		m.err = err
		container.ClientHeight = 0
		return container, content
	}
	m.err = nil
	w, h := measureText(face, m.Text)
	content = fit.Box{ClientWidth: w, ClientHeight: h, ScrollWidth: w, ScrollHeight: h}
	return container, content
}

// Err returns the error from the last measurement
func (m *TextMeasurer) Err() error {
	return m.err
}

func measureString(fontFace font.Face, text string) (int, int) {
	calcX := font.MeasureString(fontFace, text).Round()
	calcY := fontFace.Metrics().Height.Round()
	return calcX, calcY
}

// measureText returns the widest line and the height of all lines
func measureText(fontFace font.Face, text string) (int, int) {
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if w, _ := measureString(fontFace, line); w > width {
			width = w
		}
	}
	return width, len(lines) * fontFace.Metrics().Height.Round()
}
