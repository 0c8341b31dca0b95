package gfx

import "image/color"

// RGB565 packs 8-bit channels into the panel's native 16-bit format.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
}

// FromColor packs a color.RGBA (as handed over by font renderers).
func FromColor(c color.RGBA) uint16 { return RGB565(c.R, c.G, c.B) }

// ToColor expands a packed pixel back to 8-bit channels, replicating the
// high bits so full-scale values round-trip (0xFFFF -> pure white).
func ToColor(p uint16) color.RGBA {
	r := uint8(p >> 11 & 0x1F)
	g := uint8(p >> 5 & 0x3F)
	b := uint8(p & 0x1F)
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

// Panel palette.
const (
	Black   uint16 = 0x0000
	White   uint16 = 0xFFFF
	Red     uint16 = 0xF800
	Green   uint16 = 0x07E0
	Blue    uint16 = 0x001F
	Cyan    uint16 = 0x07FF
	Magenta uint16 = 0xF81F
	Yellow  uint16 = 0xFFE0
	Orange  uint16 = 0xFD20
	Gray    uint16 = 0x8410
)
