package service

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/stylesync/stylesync/internal/domain"
)

const (
	placeholderWidth   = 512
	placeholderHeight  = 768
	placeholderQuality = 85
)

// Gradient endpoints, deep purple into indigo
var (
	gradientTop    = color.RGBA{R: 88, G: 40, B: 150, A: 255}
	gradientBottom = color.RGBA{R: 40, G: 30, B: 90, A: 255}
	textColor      = color.RGBA{R: 245, G: 242, B: 250, A: 255}
	mutedColor     = color.RGBA{R: 200, G: 190, B: 220, A: 255}
)

var occasionIcons = map[domain.Occasion]string{
	domain.OccasionCasual: "[~]",
	domain.OccasionWork:   "[#]",
	domain.OccasionParty:  "[*]",
	domain.OccasionSport:  "[>]",
}

// PlaceholderRenderer draws a local stand-in card when no remote image is
// available. Rendering is pure CPU work over fixed inputs, so for the same
// recommendation and occasion it produces byte-identical JPEG output, which
// keeps hash-based deduplication stable.
type PlaceholderRenderer struct{}

// NewPlaceholderRenderer creates a placeholder renderer.
func NewPlaceholderRenderer() *PlaceholderRenderer {
	return &PlaceholderRenderer{}
}

// Render draws the placeholder card for a recommendation.
// Parameters:
//   - rec: recommendation whose title, description and items are drawn.
//   - occasion: target occasion, selects the icon glyph.
// Returns:
//   - *domain.LookImage: 512x768 JPEG, Source set to placeholder. Render
//     never fails; malformed input degrades to an emptier card.
func (r *PlaceholderRenderer) Render(rec *domain.Recommendation, occasion domain.Occasion) *domain.LookImage {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	drawGradient(img)

	icon, ok := occasionIcons[occasion]
	if !ok {
		icon = occasionIcons[domain.OccasionCasual]
	}

	y := 120
	drawText(img, icon, placeholderWidth/2, y, textColor, true)
	y += 80

	title := "Look of the Day"
	desc := ""
	var items []string
	if rec != nil {
		if rec.Title != "" {
			title = rec.Title
		}
		desc = rec.Description
		items = rec.Items
	}

	for _, line := range wrapText(title, 28) {
		drawText(img, line, placeholderWidth/2, y, textColor, true)
		y += 24
	}
	y += 24

	for _, line := range wrapText(desc, 48) {
		drawText(img, line, placeholderWidth/2, y, mutedColor, true)
		y += 18
	}
	y += 40

	// At most three checklist items fit the card without crowding
	max := len(items)
	if max > 3 {
		max = 3
	}
	for _, item := range items[:max] {
		for i, line := range wrapText(item, 44) {
			prefix := "  "
			if i == 0 {
				prefix = "- "
			}
			drawText(img, prefix+line, 60, y, textColor, false)
			y += 18
		}
		y += 10
	}

	var buf bytes.Buffer
	// Encoding an in-memory RGBA into a buffer cannot fail
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: placeholderQuality})

	return &domain.LookImage{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  placeholderWidth,
		Height: placeholderHeight,
		Source: domain.ImageSourcePlaceholder,
	}
}

// drawGradient fills the canvas with a vertical purple gradient.
func drawGradient(img *image.RGBA) {
	bounds := img.Bounds()
	height := bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		t := float64(y-bounds.Min.Y) / float64(height-1)
		row := color.RGBA{
			R: lerp(gradientTop.R, gradientBottom.R, t),
			G: lerp(gradientTop.G, gradientBottom.G, t),
			B: lerp(gradientTop.B, gradientBottom.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(bounds.Min.X, y, bounds.Max.X, y+1), &image.Uniform{C: row}, image.Point{}, draw.Src)
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// drawText renders one line with the fixed 7x13 face. Glyphs outside the
// face's coverage render as the missing-glyph box, which is acceptable for a
// stand-in card.
func drawText(img *image.RGBA, text string, x, y int, col color.RGBA, center bool) {
	face := basicfont.Face7x13
	if center {
		width := font.MeasureString(face, text).Round()
		x -= width / 2
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// wrapText splits text into lines of at most maxChars characters, breaking
// on spaces. A single overlong word becomes its own line.
func wrapText(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	var lines []string
	var current string
	for _, word := range splitWords(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxChars:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func splitWords(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}
