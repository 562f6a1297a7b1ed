package ogimage

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Preview images are always 1200x630, the size crawlers expect for
// large-card previews.
const (
	canvasWidth  = 1200
	canvasHeight = 630
	margin       = 64.0
	contentWidth = canvasWidth - 2*margin
)

const (
	colorBackground = "#101418"
	colorAccent     = "#34D399"
	colorTitle      = "#F3F4F6"
	colorSubtitle   = "#9CA3AF"
	colorBody       = "#6B7280"
	colorBadgeText  = "#0B1220"
)

// Renderer rasterizes cards into PNG bytes with one shared template. Fonts
// are parsed once at construction; construction is the only fallible step,
// every instance can always at least produce its pre-rendered fallback.
type Renderer struct {
	brand    font.Face
	title    font.Face
	subtitle font.Face
	body     font.Face
	badge    font.Face

	siteName string
	fallback []byte
}

// NewRenderer parses the bundled Go fonts and pre-renders the content-free
// fallback card from the site identity.
func NewRenderer(siteName, tagline string) (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	r := &Renderer{siteName: siteName}
	faces := []struct {
		dst  *font.Face
		src  *sfnt.Font
		size float64
	}{
		{&r.brand, bold, 30},
		{&r.title, bold, 62},
		{&r.subtitle, regular, 34},
		{&r.body, regular, 27},
		{&r.badge, bold, 26},
	}
	for _, f := range faces {
		face, err := opentype.NewFace(f.src, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("build %gpx font face: %w", f.size, err)
		}
		*f.dst = face
	}

	fallback, err := r.Render(Card{Title: siteName, Subtitle: tagline})
	if err != nil {
		return nil, fmt.Errorf("render fallback card: %w", err)
	}
	r.fallback = fallback

	return r, nil
}

// Fallback returns the pre-rendered branded placeholder. It never fails;
// handlers serve it whenever assembly or rendering of the real card breaks.
func (r *Renderer) Fallback() []byte {
	return r.fallback
}

// Render draws the card onto the shared template and encodes it as PNG.
// Identical cards produce identical bytes.
func (r *Renderer) Render(card Card) ([]byte, error) {
	dc := gg.NewContext(canvasWidth, canvasHeight)

	dc.SetHexColor(colorBackground)
	dc.Clear()

	// Brand row: accent dot + site name.
	dc.SetHexColor(colorAccent)
	dc.DrawCircle(margin+14, 96, 14)
	dc.Fill()
	dc.SetFontFace(r.brand)
	dc.DrawStringAnchored(r.siteName, margin+44, 96, 0, 0.35)

	// Title, wrapped to at most three lines.
	dc.SetFontFace(r.title)
	dc.SetHexColor(colorTitle)
	const titleLineHeight = 74.0
	titleLines := clampLines(dc, card.Title, contentWidth, 3)
	y := 230.0
	for _, line := range titleLines {
		dc.DrawString(line, margin, y)
		y += titleLineHeight
	}

	if card.Subtitle != "" {
		dc.SetFontFace(r.subtitle)
		dc.SetHexColor(colorSubtitle)
		dc.DrawString(card.Subtitle, margin, y)
		y += 52
	}

	// Supporting copy, skipped when a long title already fills the canvas.
	if card.Description != "" && len(titleLines) < 3 {
		dc.SetFontFace(r.body)
		dc.SetHexColor(colorBody)
		for _, line := range clampLines(dc, card.Description, contentWidth, 2) {
			dc.DrawString(line, margin, y)
			y += 38
		}
	}

	if card.Badge != "" {
		dc.SetFontFace(r.badge)
		textWidth, _ := dc.MeasureString(card.Badge)
		pillWidth := textWidth + 48
		const pillHeight = 56.0
		pillY := canvasHeight - margin - pillHeight

		dc.SetHexColor(colorAccent)
		dc.DrawRoundedRectangle(margin, pillY, pillWidth, pillHeight, pillHeight/2)
		dc.Fill()
		dc.SetHexColor(colorBadgeText)
		dc.DrawStringAnchored(card.Badge, margin+pillWidth/2, pillY+pillHeight/2, 0.5, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// clampLines wraps s with the current font face and keeps at most maxLines
// lines, ellipsizing the last kept line when anything was cut.
func clampLines(dc *gg.Context, s string, width float64, maxLines int) []string {
	lines := dc.WordWrap(s, width)
	if len(lines) <= maxLines {
		return lines
	}

	last := lines[maxLines-1]
	for len(last) > 0 {
		if w, _ := dc.MeasureString(last + "…"); w <= width {
			break
		}
		runes := []rune(last)
		last = string(runes[:len(runes)-1])
	}

	clamped := append([]string{}, lines[:maxLines-1]...)
	return append(clamped, last+"…")
}
