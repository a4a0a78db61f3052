package render

import "image/color"

// Palette maps cell colors to RGBA. Index 0 is the background.
var Palette = []color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0xff, 0xff, 0xff, 0xff},
	{0xff, 0x00, 0xff, 0xff},
	{0xff, 0xff, 0x00, 0xff},
	{0x00, 0xff, 0x00, 0xff},
	{0x00, 0xff, 0xff, 0xff},
	{0xff, 0x00, 0x00, 0xff},
	{0xff, 0xa5, 0x00, 0xff},
	{0x00, 0x00, 0xff, 0xff},
	{0xff, 0x69, 0xb4, 0xff},
	{0xda, 0x70, 0xd6, 0xff},
	{0x8a, 0x2b, 0xe2, 0xff},
}

// AntColor marks ant positions.
var AntColor = color.RGBA{0xff, 0x20, 0x20, 0xff}

// ColorFor returns the palette entry for c. Colors past the end of the
// palette reuse the last entry.
func ColorFor(c int) color.RGBA {
	if c < 0 {
		c = 0
	}
	if c >= len(Palette) {
		c = len(Palette) - 1
	}
	return Palette[c]
}
