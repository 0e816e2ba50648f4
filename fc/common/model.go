package common

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Point2d contains x and y
type Point2d struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Dimensions2d contains width and height
type Dimensions2d struct {
	W int `yaml:"w"` // Width
	H int `yaml:"h"` // Height
}

// Rect - location and size of a label box on a card
type Rect struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// Label is a piece of text fitted into a box
type Label struct {
	Text        string `yaml:"Text"`
	Box         Rect   `yaml:"Box"`
	Font        string `yaml:"Font"`
	MinFontSize int    `yaml:"MinFontSize"`
	MaxFontSize int    `yaml:"MaxFontSize"`
	Case        string `yaml:"Case"` // title, upper, lower or empty
	Colour      string `yaml:"Colour"`
	TextColour  string `yaml:"TextColour"`
}

// Card is one generated image holding a set of labels
type Card struct {
	Name             string       `yaml:"Name"`
	Title            string       `yaml:"Title"`
	Background       string       `yaml:"Background"` // jpg in BackgroundsDir
	Size             Dimensions2d `yaml:"Size"`
	BackgroundColour string       `yaml:"BackgroundColour"`
	Labels           []Label      `yaml:"Labels"`
}

// Cards is the layout of a card file
type Cards struct {
	Cards []Card `yaml:"Cards"`
}

// ParseCards decodes a yaml card file
func ParseCards(data []byte) ([]Card, error) {
	var cards Cards
	if err := yaml.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}
	return cards.Cards, nil
}

// Casers are not safe for concurrent use so one is built per call
func applyCase(text string, mode string) string {
	switch mode {
	case "title":
		return cases.Title(language.AmericanEnglish).String(text)
	case "upper":
		return cases.Upper(language.Und).String(text)
	case "lower":
		return cases.Lower(language.Und).String(text)
	}
	return text
}

// DisplayText returns the label text after its case transform
func (l Label) DisplayText() string {
	return applyCase(l.Text, l.Case)
}
