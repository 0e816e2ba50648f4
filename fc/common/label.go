package common

import (
	"fmt"
	"math"
)

// FitResult describes one completed fit pass
type FitResult struct {
	FontSize int    `json:"fontSize"`
	Style    string `json:"style"`
	Steps    []int  `json:"steps"`
	Done     bool   `json:"done"`
	Floored  bool   `json:"floored"`
}

// Host events replayed against a fitted label
const (
	EventResize = "resize"
	EventInput  = "input"
	EventText   = "text"
	EventUpdate = "update"
)

// FitEvent is one change to a fitted label. Width and Height are the new
// label box for resize, Text the new content for input and text.
type FitEvent struct {
	Type   string `json:"type" binding:"required,oneof=resize input text update"`
	Width  int    `json:"width" binding:"gte=0"`
	Height int    `json:"height" binding:"gte=0"`
	Text   string `json:"text"`
}

// textFit is a request to fit text into a width x height area
type textFit struct {
	text        string
	font        string
	width       int
	height      int
	minFontSize int
	maxFontSize int
}

// labelSession keeps one FittedText and the steps since the last result
type labelSession struct {
	fitted *FittedText
	steps  []int
}

func newLabelSession(req textFit, config *Config, fontLoader FontLoader) *labelSession {
	session := &labelSession{steps: []int{}}
	measurer := &TextMeasurer{
		Text:     req.text,
		FontsDir: config.FontsDir,
		Font:     req.font,
		Loader:   fontLoader,
		Width:    req.width,
		Height:   req.height,
	}
	session.fitted = NewFittedText(measurer, FittedTextOptions{
		Options:          config.FitOptions(req.minFontSize, req.maxFontSize),
		ActivateOnResize: config.ActivateOnResize,
		ActivateOnInput:  config.ActivateOnInput,
		SeedFromHeight:   config.SeedFromHeight,
		OnFontSizeChanged: func(size int) {
			session.steps = append(session.steps, size)
		},
	})
	return session
}

// result collects the outcome of the last trigger and starts a new step list
func (s *labelSession) result() (FitResult, error) {
	result := FitResult{
		FontSize: s.fitted.FontSize(),
		Style:    s.fitted.Style(),
		Steps:    s.steps,
		Done:     s.fitted.Done(),
		Floored:  s.fitted.Floored(),
	}
	s.steps = []int{}
	return result, s.fitted.Err()
}

func fitText(req textFit, config *Config, fontLoader FontLoader) (FitResult, error) {
	session := newLabelSession(req, config, fontLoader)
	session.fitted.Attach()
	return session.result()
}

// labelArea returns the box a label's text must fit into, less the insets
func labelArea(label Label, config *Config) (int, int) {
	return insetArea(label.Box.W, label.Box.H, config)
}

func insetArea(w, h int, config *Config) (int, int) {
	width := int(math.Round(float64(w) - 2*config.PixelXInset))
	height := int(math.Round(float64(h) - 2*config.PixelYInset))
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}

// labelFont returns the label's font or the configured default
func labelFont(label Label, config *Config) string {
	if len(label.Font) > 0 {
		return label.Font
	}
	return config.DefaultFont
}

func labelFit(label Label, config *Config) textFit {
	width, height := labelArea(label, config)
	return textFit{
		text:        label.DisplayText(),
		font:        labelFont(label, config),
		width:       width,
		height:      height,
		minFontSize: label.MinFontSize,
		maxFontSize: label.MaxFontSize,
	}
}

// FitLabel finds the font size at which the label's text fits its box
func FitLabel(label Label, config *Config, fontLoader FontLoader,
	log *Logger) (FitResult, error) {
	result, err := fitText(labelFit(label, config), config, fontLoader)
	if err != nil {
		return result, fmt.Errorf("fit label %q: %w", label.Text, err)
	}
	logFitResult(label.Text, result, log)
	return result, nil
}

// ReplayLabel attaches the label, then applies each event in order to the
// same fitted text. Resize and input only refit when the configuration
// activates them. One result is returned per event, after the initial one.
func ReplayLabel(label Label, events []FitEvent, config *Config, fontLoader FontLoader,
	log *Logger) (FitResult, []FitResult, error) {
	session := newLabelSession(labelFit(label, config), config, fontLoader)
	session.fitted.Attach()
	initial, err := session.result()
	if err != nil {
		return initial, nil, fmt.Errorf("fit label %q: %w", label.Text, err)
	}
	logFitResult(label.Text, initial, log)

	results := make([]FitResult, 0, len(events))
	for idx, event := range events {
		switch event.Type {
		case EventResize:
			session.fitted.Resize(insetArea(event.Width, event.Height, config))
		case EventInput:
			session.fitted.Input(applyCase(event.Text, label.Case))
		case EventText:
			session.fitted.SetText(applyCase(event.Text, label.Case))
		case EventUpdate:
			session.fitted.Update()
		default:
			return initial, results, fmt.Errorf("event %d: unknown type %q", idx, event.Type)
		}
		result, err := session.result()
		if err != nil {
			return initial, results, fmt.Errorf("event %d %s: %w", idx, event.Type, err)
		}
		log.Dbg("Label %q %s event -> %d", label.Text, event.Type, result.FontSize)
		results = append(results, result)
	}
	return initial, results, nil
}

func logFitResult(text string, result FitResult, log *Logger) {
	if !result.Done {
		log.Err("Label %q not fitted, its box has no height", text)
	} else if result.Floored {
		log.Err("Label %q overflows its box at minimum font size %d", text,
			result.FontSize)
	}
	log.Dbg("Label %q fitted at %d after %d steps", text, result.FontSize,
		len(result.Steps))
}
