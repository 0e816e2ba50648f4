package common

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fogleman/gg"
	"github.com/pixiv/go-libjpeg/jpeg"
	"golang.org/x/image/font"
)

// GenerateImages renders every card to a jpg. Output order matches the
// input order; cards that fail to render leave an empty buffer.
func GenerateImages(cards []Card, config *Config, log *Logger) ([]bytes.Buffer, int) {
	files := make([]bytes.Buffer, len(cards))
	var totalBytes int64

	var wg sync.WaitGroup
	for idx, card := range cards {
		wg.Add(1)
		go func(idx int, card Card) {
			defer wg.Done()

			// font.Face is not thread safe, so each card gets its own cache
			fontCache := NewFontFaceCache()
			dc, err := newCardContext(card, config, log)
			if err != nil {
				log.Err("card %s: %v", card.Name, err)
				return
			}
			addCardHeader(dc, &config.Header, card.Title, config, fontCache, log)
			populateCard(dc, card, config, fontCache, log)
			addWatermark(dc, &config.Watermark, config.Version, config.Domain,
				config.FontsDir, fontCache, log)

			var imgBytes bytes.Buffer
			if err := jpeg.Encode(&imgBytes, dc.Image(),
				&jpeg.EncoderOptions{Quality: config.JpgQuality}); err != nil {
				log.Err("jpeg encode %s failed: %v", card.Name, err)
				return
			}
			files[idx] = imgBytes
			atomic.AddInt64(&totalBytes, int64(imgBytes.Len()))
		}(idx, card)
	}
	wg.Wait()
	return files, int(totalBytes)
}

// RenderLabel renders a single label on its own, sized to the label box
func RenderLabel(label Label, config *Config, log *Logger) (bytes.Buffer, FitResult, error) {
	var imgBytes bytes.Buffer
	if label.Box.W <= 0 || label.Box.H <= 0 {
		return imgBytes, FitResult{}, fmt.Errorf("label box %dx%d has no area",
			label.Box.W, label.Box.H)
	}
	fontCache := NewFontFaceCache()
	label.Box.X, label.Box.Y = 0, 0
	result, err := FitLabel(label, config, fontCache, log)
	if err != nil {
		return imgBytes, result, err
	}

	dc := gg.NewContext(label.Box.W, label.Box.H)
	dc.SetHexColor(config.BackgroundColour)
	dc.Clear()
	if err := drawLabel(dc, label, result.FontSize, config, fontCache); err != nil {
		return imgBytes, result, err
	}
	err = jpeg.Encode(&imgBytes, dc.Image(), &jpeg.EncoderOptions{Quality: config.JpgQuality})
	return imgBytes, result, err
}

// newCardContext starts a card from its background image or a plain colour
func newCardContext(card Card, config *Config, log *Logger) (*gg.Context, error) {
	if len(card.Background) > 0 {
		img, err := decodeJpg(filepath.Join(config.BackgroundsDir, card.Background), log)
		if err != nil {
			return nil, err
		}
		return gg.NewContextForRGBA(img), nil
	}
	size := card.Size
	if size.W <= 0 || size.H <= 0 {
		size = config.DefaultCard
	}
	dc := gg.NewContext(size.W, size.H)
	colour := card.BackgroundColour
	if len(colour) == 0 {
		colour = config.BackgroundColour
	} else if !isHexColour(colour) {
		log.Err("card %s background %q is not a hex colour", card.Name, colour)
		colour = config.BackgroundColour
	}
	dc.SetHexColor(colour)
	dc.Clear()
	return dc, nil
}

func populateCard(dc *gg.Context, card Card, config *Config, fontCache FontLoader,
	log *Logger) {
	for _, label := range card.Labels {
		if label.Box.X >= dc.Width() || label.Box.Y >= dc.Height() {
			log.Err("Label %q outside bounds of card %s (%dx%d)", label.Text,
				card.Name, dc.Width(), dc.Height())
			continue
		}
		result, err := FitLabel(label, config, fontCache, log)
		if err != nil {
			log.Err("%v", err)
			continue
		}
		if !result.Done {
			continue
		}
		if err := drawLabel(dc, label, result.FontSize, config, fontCache); err != nil {
			log.Err("draw label %q: %v", label.Text, err)
		}
	}
}

func decodeJpg(imageName string, log *Logger) (image *image.RGBA, err error) {
	var r *os.File
	r, err = os.Open(imageName)
	if err != nil {
		log.Err("failed to open: %v", err)
		return
	}
	defer r.Close()

	image, err = jpeg.DecodeIntoRGBA(r, &jpeg.DecoderOptions{})
	if err != nil {
		log.Err("failed to decode: %v", err)
		return
	}
	return
}

// drawLabel draws the label's text at fontSize centred in its box on a
// rounded background sized to the text
func drawLabel(dc *gg.Context, label Label, fontSize int, config *Config,
	fontCache FontLoader) error {
	face, err := fontCache.LoadFont(config.FontsDir, labelFont(label, config), fontSize)
	if err != nil {
		return err
	}
	background := label.Colour
	if len(background) == 0 {
		background = config.LabelColour
	}
	textColour := label.TextColour
	if len(textColour) == 0 {
		textColour = config.TextColour
	}
	if !isHexColour(background) || !isHexColour(textColour) {
		return fmt.Errorf("colours %q/%q are not hex colours", background, textColour)
	}

	text := label.DisplayText()
	w, h := measureText(face, text)
	x := float64(label.Box.X) + float64(label.Box.W-w)/2
	y := float64(label.Box.Y) + float64(label.Box.H-h)/2
	drawTextWithBackgroundRec(dc, text, x, y, w, h, face, background, textColour)
	return nil
}

func drawTextWithBackgroundRec(dc *gg.Context, text string, x, y float64, w, h int,
	face font.Face, backgroundColour string, textColour string) {
	dc.SetHexColor(backgroundColour)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), 6)
	dc.Fill()
	dc.SetHexColor(textColour)
	dc.SetFontFace(face)
	lineHeight := float64(face.Metrics().Height.Round())
	ascent := float64(face.Metrics().Ascent.Round())
	for idx, line := range strings.Split(text, "\n") {
		lw, _ := measureString(face, line)
		dc.DrawString(line, x+float64(w-lw)/2, y+ascent+float64(idx)*lineHeight)
	}
}

// addCardHeader fits the card title into the header band
func addCardHeader(dc *gg.Context, header *HeaderData, title string, config *Config,
	fontCache FontLoader, log *Logger) {
	if header.BackgroundHeight <= 0 {
		return
	}
	dc.SetHexColor(header.BackgroundColour)
	dc.DrawRectangle(0, 0, float64(dc.Width()), header.BackgroundHeight)
	dc.Fill()
	if len(title) == 0 {
		return
	}

	result, err := fitText(textFit{
		text:        title,
		font:        header.Font,
		width:       dc.Width() - int(2*header.Inset.X),
		height:      int(header.BackgroundHeight - 2*header.Inset.Y),
		maxFontSize: header.FontSize,
	}, config, fontCache)
	if err != nil {
		log.Err("header %q: %v", title, err)
		return
	}
	face, err := fontCache.LoadFont(config.FontsDir, header.Font, result.FontSize)
	if err != nil {
		log.Err("header %q: %v", title, err)
		return
	}
	dc.SetHexColor(header.TextColour)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(title, header.Inset.X, header.BackgroundHeight/2, 0, 0.35)
}

// addWatermark writes the app name and version. A negative location is
// measured from the bottom/right edge.
func addWatermark(dc *gg.Context, watermark *WatermarkData, version string, domain string,
	fontsDir string, fontCache FontLoader, log *Logger) {
	if len(watermark.Text) == 0 {
		return
	}
	face, err := fontCache.LoadFont(fontsDir, watermark.Font, watermark.FontSize)
	if err != nil {
		log.Err("watermark: %v", err)
		return
	}
	text := fmt.Sprintf("%s v%s (%s)", watermark.Text, version, domain)
	w, h := measureString(face, text)
	x, y := watermark.Location.X, watermark.Location.Y
	if x < 0 {
		x += float64(dc.Width() - w)
	}
	if y < 0 {
		y += float64(dc.Height())
	}
	drawTextWithBackgroundRec(dc, text, x, y, w, h, face,
		watermark.BackgroundColour, watermark.TextColour)
}
