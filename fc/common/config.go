package common

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"github.com/ankurkotwal/fitcard/fit"
)

// Config contains all the configuration data for the app
type Config struct {
	AppName     string `yaml:"AppName"`
	Version     string `yaml:"Version"`
	Domain      string `yaml:"Domain"`
	DebugOutput bool   `yaml:"DebugOutput"`

	BackgroundsDir string       `yaml:"BackgroundsDir"`
	DefaultCard    Dimensions2d `yaml:"DefaultCard"`
	JpgQuality     int          `yaml:"JpgQuality"`

	FontsDir    string  `yaml:"FontsDir"`
	DefaultFont string  `yaml:"DefaultFont"`
	MinFontSize int     `yaml:"MinFontSize"`
	MaxFontSize int     `yaml:"MaxFontSize"`
	SpeedFactor float64 `yaml:"SpeedFactor"`
	PixelXInset float64 `yaml:"PixelXInset"`
	PixelYInset float64 `yaml:"PixelYInset"`

	// Host triggers for refitting a watched label
	ActivateOnResize bool `yaml:"ActivateOnResize"`
	ActivateOnInput  bool `yaml:"ActivateOnInput"`
	// Resize and input restart the descent from the container height
	SeedFromHeight bool `yaml:"SeedFromHeight"`

	Header    HeaderData    `yaml:"Header"`
	Watermark WatermarkData `yaml:"Watermark"`

	BackgroundColour string `yaml:"BackgroundColour"`
	LabelColour      string `yaml:"LabelColour"`
	TextColour       string `yaml:"TextColour"`
}

// HeaderData contains necessary data to generate a card header
type HeaderData struct {
	Font             string  `yaml:"Font"`
	FontSize         int     `yaml:"FontSize"`
	Inset            Point2d `yaml:"Inset"`
	TextColour       string  `yaml:"TextColour"`
	BackgroundHeight float64 `yaml:"BackgroundHeight"`
	BackgroundColour string  `yaml:"BackgroundColour"`
}

// WatermarkData contains necessary data to generate watermark
type WatermarkData struct {
	Text             string  `yaml:"Text"`
	TextColour       string  `yaml:"TextColour"`
	BackgroundColour string  `yaml:"BackgroundColour"`
	Font             string  `yaml:"Font"`
	FontSize         int     `yaml:"FontSize"`
	Location         Point2d `yaml:"Location"`
}

// DefaultConfig returns a configuration that works without any files on disk
func DefaultConfig() *Config {
	return &Config{
		AppName:     "FitCard",
		Version:     "0.1.0",
		Domain:      "localhost",
		DefaultCard: Dimensions2d{W: 800, H: 600},
		JpgQuality:  85,

		FontsDir:    "resources/fonts",
		DefaultFont: BuiltinFontPrefix + "goregular",
		MinFontSize: fit.DefaultMinFontSize,
		MaxFontSize: fit.DefaultMaxFontSize,
		SpeedFactor: fit.DefaultSpeedFactor,
		PixelXInset: 2,
		PixelYInset: 2,

		ActivateOnResize: true,
		ActivateOnInput:  true,
		SeedFromHeight:   true,

		Header: HeaderData{
			Font:             BuiltinFontPrefix + "gobold",
			FontSize:         40,
			Inset:            Point2d{X: 10, Y: 6},
			TextColour:       "#FFFFFF",
			BackgroundHeight: 56,
			BackgroundColour: "#2B3A55",
		},
		Watermark: WatermarkData{
			Text:             "FitCard",
			TextColour:       "#2B3A55",
			BackgroundColour: "#E8E8E8",
			Font:             BuiltinFontPrefix + "gomono",
			FontSize:         12,
			Location:         Point2d{X: 10, Y: -24},
		},

		BackgroundColour: "#FFFFFF",
		LabelColour:      "#CDE8E5",
		TextColour:       "#000000",
	}
}

// LoadConfig reads a yaml file over the defaults and validates the result
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	if err := LoadYaml(filename, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// FontSizeLimit is the largest font size any label or header may ask for
const FontSizeLimit = fit.DefaultMaxFontSize

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New()

// isHexColour checks a #-prefixed hex colour as the hexcolor tag does
func isHexColour(s string) bool {
	return validate.Var(s, "hexcolor") == nil
}

// Validate reports every problem with the configuration
func (c *Config) Validate() error {
	var err error
	if c.DefaultFont == "" {
		err = multierr.Append(err, fmt.Errorf("DefaultFont is empty"))
	}
	if c.JpgQuality < 1 || c.JpgQuality > 100 {
		err = multierr.Append(err, fmt.Errorf("JpgQuality %d outside 1-100", c.JpgQuality))
	}
	if c.DefaultCard.W <= 0 || c.DefaultCard.H <= 0 {
		err = multierr.Append(err, fmt.Errorf("DefaultCard %dx%d has no area",
			c.DefaultCard.W, c.DefaultCard.H))
	}
	if c.PixelXInset < 0 || c.PixelYInset < 0 {
		err = multierr.Append(err, fmt.Errorf("negative inset %v,%v",
			c.PixelXInset, c.PixelYInset))
	}
	for name, size := range map[string]int{
		"MinFontSize":        c.MinFontSize,
		"MaxFontSize":        c.MaxFontSize,
		"Header.FontSize":    c.Header.FontSize,
		"Watermark.FontSize": c.Watermark.FontSize,
	} {
		if size < 0 || size > FontSizeLimit {
			err = multierr.Append(err, fmt.Errorf("%s %d outside 0-%d", name, size,
				FontSizeLimit))
		}
	}
	for name, colour := range map[string]string{
		"BackgroundColour":           c.BackgroundColour,
		"LabelColour":                c.LabelColour,
		"TextColour":                 c.TextColour,
		"Header.TextColour":          c.Header.TextColour,
		"Header.BackgroundColour":    c.Header.BackgroundColour,
		"Watermark.TextColour":       c.Watermark.TextColour,
		"Watermark.BackgroundColour": c.Watermark.BackgroundColour,
	} {
		if !isHexColour(colour) {
			err = multierr.Append(err, fmt.Errorf("%s %q is not a hex colour", name, colour))
		}
	}
	return err
}

// FitOptions returns the engine options for a label, preferring the label's
// own bounds over the configured ones. The configured maximum caps both.
func (c *Config) FitOptions(minFontSize, maxFontSize int) fit.Options {
	limit := c.MaxFontSize
	if limit <= 0 || limit > FontSizeLimit {
		limit = FontSizeLimit
	}
	if maxFontSize <= 0 || maxFontSize > limit {
		maxFontSize = limit
	}
	if minFontSize <= 0 {
		minFontSize = c.MinFontSize
	}
	return fit.Options{
		MinFontSize: minFontSize,
		MaxFontSize: maxFontSize,
		SpeedFactor: c.SpeedFactor,
	}
}
