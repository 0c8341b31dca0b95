// Package framebuf owns the in-RAM pixel state of the panel and tracks
// which rectangles changed since the last flush. All mutation goes
// through Write/FillRect/Fill so the dirty set and the pixels never
// disagree. Single-owner; no internal locking.
package framebuf

import (
	"wristcode-go/errcode"
	"wristcode-go/gfx"
)

type Options struct {
	// MergeThresholdPct tunes coalescing: two pending rectangles are
	// unioned when 100*area(union) <= MergeThresholdPct*(area(a)+area(b)).
	// Zero selects 150.
	MergeThresholdPct uint16

	// MaxRegions caps the pending set; past it the least wasteful pair
	// is unioned. Zero selects 8.
	MaxRegions int
}

type FrameBuffer struct {
	w, h int16
	pix  []uint16
	dirt *tracker
}

func New(w, h int16, opts Options) *FrameBuffer {
	if w <= 0 || h <= 0 {
		panic("framebuf: dimensions must be positive")
	}
	if opts.MergeThresholdPct == 0 {
		opts.MergeThresholdPct = 150
	}
	if opts.MaxRegions == 0 {
		opts.MaxRegions = 8
	}
	fb := &FrameBuffer{w: w, h: h, pix: make([]uint16, int(w)*int(h))}
	fb.dirt = newTracker(fb.Bounds(), opts.MergeThresholdPct, opts.MaxRegions)
	return fb
}

func (fb *FrameBuffer) Size() (w, h int16) { return fb.w, fb.h }

func (fb *FrameBuffer) Bounds() gfx.Rect { return gfx.Rect{W: fb.w, H: fb.h} }

// Write copies pix (row-major, len == r.Area()) into r and records it
// dirty. A write covering the whole frame collapses the dirty set to a
// single full-frame region.
func (fb *FrameBuffer) Write(r gfx.Rect, pix []uint16) error {
	if r.Empty() {
		return nil
	}
	if !r.In(fb.Bounds()) {
		return &errcode.E{C: errcode.OutOfBounds, Op: "framebuf.Write", Msg: "region outside frame"}
	}
	if int32(len(pix)) != r.Area() {
		return &errcode.E{C: errcode.InvalidParams, Op: "framebuf.Write", Msg: "pixel count mismatch"}
	}
	w := int(r.W)
	for row := 0; row < int(r.H); row++ {
		copy(fb.row(r.Y+int16(row), r.X, r.W), pix[row*w:(row+1)*w])
	}
	fb.dirt.mark(r)
	return nil
}

// FillRect paints r with a single color and records it dirty.
func (fb *FrameBuffer) FillRect(r gfx.Rect, c uint16) error {
	if r.Empty() {
		return nil
	}
	if !r.In(fb.Bounds()) {
		return &errcode.E{C: errcode.OutOfBounds, Op: "framebuf.FillRect", Msg: "region outside frame"}
	}
	for row := int16(0); row < r.H; row++ {
		dst := fb.row(r.Y+row, r.X, r.W)
		for i := range dst {
			dst[i] = c
		}
	}
	fb.dirt.mark(r)
	return nil
}

// SetPixel writes one pixel and records it dirty. Out-of-range writes
// are dropped. Glyph renderers drawing directly on the frame go through
// here; the tracker coalesces adjacent marks.
func (fb *FrameBuffer) SetPixel(x, y int16, c uint16) {
	if x < 0 || y < 0 || x >= fb.w || y >= fb.h {
		return
	}
	fb.pix[int(y)*int(fb.w)+int(x)] = c
	fb.dirt.mark(gfx.Rect{X: x, Y: y, W: 1, H: 1})
}

// Fill paints the whole frame.
func (fb *FrameBuffer) Fill(c uint16) {
	for i := range fb.pix {
		fb.pix[i] = c
	}
	fb.dirt.markFull()
}

// ReadRegion appends r's pixels, row-major, to dst and returns the
// extended slice. What was written is exactly what comes back.
func (fb *FrameBuffer) ReadRegion(r gfx.Rect, dst []uint16) ([]uint16, error) {
	if r.Empty() {
		return dst, nil
	}
	if !r.In(fb.Bounds()) {
		return dst, &errcode.E{C: errcode.OutOfBounds, Op: "framebuf.ReadRegion", Msg: "region outside frame"}
	}
	for row := int16(0); row < r.H; row++ {
		dst = append(dst, fb.row(r.Y+row, r.X, r.W)...)
	}
	return dst, nil
}

// TakeDirty appends the coalesced pending regions to dst in ascending
// row order and atomically clears tracking. Empty result means nothing
// to flush.
func (fb *FrameBuffer) TakeDirty(dst []gfx.Rect) []gfx.Rect { return fb.dirt.take(dst) }

// HasDirty reports whether a flush would have work.
func (fb *FrameBuffer) HasDirty() bool { return fb.dirt.pending() }

// MarkFull forces the next flush to repaint the whole frame.
func (fb *FrameBuffer) MarkFull() { fb.dirt.markFull() }

// Reset reinitializes pixels to black and schedules a full repaint.
// The fault-recovery path calls this.
func (fb *FrameBuffer) Reset() {
	for i := range fb.pix {
		fb.pix[i] = 0
	}
	fb.dirt.markFull()
}

func (fb *FrameBuffer) row(y, x, w int16) []uint16 {
	off := int(y)*int(fb.w) + int(x)
	return fb.pix[off : off+int(w)]
}
