package gfx

import "image/color"

// Canvas is a small off-screen RGB565 tile. It implements the Displayer
// contract font renderers draw against (Size/SetPixel/Display), so text is
// rendered here at 1x and then block-scaled into the frame buffer.
type Canvas struct {
	w, h int16
	pix  []uint16
}

func NewCanvas(w, h int16) *Canvas {
	if w <= 0 || h <= 0 {
		panic("gfx: canvas dimensions must be positive")
	}
	return &Canvas{w: w, h: h, pix: make([]uint16, int(w)*int(h))}
}

func (c *Canvas) Size() (int16, int16) { return c.w, c.h }

// Resize reshapes the canvas, reusing the backing slice when it is large
// enough. Contents after a resize are undefined; callers Fill first.
func (c *Canvas) Resize(w, h int16) {
	if w <= 0 || h <= 0 {
		panic("gfx: canvas dimensions must be positive")
	}
	need := int(w) * int(h)
	if cap(c.pix) < need {
		c.pix = make([]uint16, need)
	}
	c.pix = c.pix[:need]
	c.w, c.h = w, h
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.pix[int(y)*int(c.w)+int(x)] = FromColor(col)
}

// Display satisfies the Displayer contract; the canvas has no hardware.
func (c *Canvas) Display() error { return nil }

func (c *Canvas) Fill(p uint16) {
	for i := range c.pix {
		c.pix[i] = p
	}
}

// FillRect paints a clipped rectangle, for the little non-text marks
// (battery badge, status dots) drawn at 1x.
func (c *Canvas) FillRect(r Rect, p uint16) {
	r = r.Clip(Rect{W: c.w, H: c.h})
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := c.pix[int(y)*int(c.w)+int(r.X) : int(y)*int(c.w)+int(r.Right())]
		for i := range row {
			row[i] = p
		}
	}
}

// Pix exposes the backing pixels, row-major.
func (c *Canvas) Pix() []uint16 { return c.pix }

// ScaledSize reports the pixel count of a ScaleTo result.
func (c *Canvas) ScaledSize(scale int16) (w, h int16) {
	return c.w * scale, c.h * scale
}

// ScaleTo expands the canvas by an integer factor into dst, row-major,
// each source pixel becoming a scale x scale block. dst must hold
// (w*scale)*(h*scale) pixels; ScaleTo returns the slice it filled.
func (c *Canvas) ScaleTo(dst []uint16, scale int16) []uint16 {
	if scale < 1 {
		scale = 1
	}
	sw, sh := int(c.w), int(c.h)
	k := int(scale)
	dw := sw * k
	need := dw * sh * k
	if cap(dst) < need {
		dst = make([]uint16, need)
	}
	dst = dst[:need]
	for sy := 0; sy < sh; sy++ {
		// Expand one source row into the first destination row of the band,
		// then replicate that row k-1 times.
		base := sy * k * dw
		for sx := 0; sx < sw; sx++ {
			p := c.pix[sy*sw+sx]
			off := base + sx*k
			for i := 0; i < k; i++ {
				dst[off+i] = p
			}
		}
		row := dst[base : base+dw]
		for i := 1; i < k; i++ {
			copy(dst[base+i*dw:base+(i+1)*dw], row)
		}
	}
	return dst
}
