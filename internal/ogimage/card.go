package ogimage

// Card is the normalized field set every variant assembles into. The
// renderer draws exactly these fields; empty fields are simply omitted
// from the canvas.
type Card struct {
	// Title is the headline, wrapped across up to three lines.
	Title string
	// Subtitle sits under the title: a tagline or byline.
	Subtitle string
	// Badge is the pill at the bottom, e.g. the x402 price tag.
	Badge string
	// Description is dimmer supporting copy under the subtitle.
	Description string
}
