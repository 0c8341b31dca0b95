// Package transport streams dirty framebuffer regions to the panel. It
// performs I/O only inside Flush, on the caller's thread; nothing here
// runs on its own.
package transport

import (
	"wristcode-go/errcode"
	"wristcode-go/gfx"
)

// PanelBus is the write side of the panel controller.
type PanelBus interface {
	WriteWindow(x, y, w, h int16, pix []byte) error
}

// PixelSource hands out region pixels for serialization. Implemented by
// the frame buffer.
type PixelSource interface {
	Size() (w, h int16)
	ReadRegion(r gfx.Rect, dst []uint16) ([]uint16, error)
}

type Transport struct {
	bus      PanelBus
	degraded bool

	pix  []uint16
	wire []byte
}

func New(bus PanelBus) *Transport {
	return &Transport{bus: bus}
}

// Degraded reports whether the last flush left the panel state suspect.
// While set, the caller repaints the whole frame on the next cycle; a
// successful full-frame flush clears it.
func (t *Transport) Degraded() bool { return t.degraded }

// MarkDegraded forces the degraded state. The fault-recovery path uses
// it when panel state can no longer be trusted.
func (t *Transport) MarkDegraded() { t.degraded = true }

// Flush serializes each region in ascending row order: window address,
// then the RGB565 pixel stream, big-endian. Each region is retried once
// on a bus error; a second failure latches Degraded and abandons the
// rest of the set, since partial panel state is assumed inconsistent.
func (t *Transport) Flush(src PixelSource, regions []gfx.Rect) error {
	if len(regions) == 0 {
		return nil
	}
	sortAscending(regions)

	w, h := src.Size()
	full := gfx.Rect{W: w, H: h}
	flushedFull := false

	for _, r := range regions {
		if r.Empty() {
			continue
		}
		var err error
		t.pix, err = src.ReadRegion(r, t.pix[:0])
		if err != nil {
			return err
		}
		t.wire = packBE(t.wire[:0], t.pix)

		if err := t.write(r); err != nil {
			if err2 := t.write(r); err2 != nil {
				t.degraded = true
				return &errcode.E{C: errcode.Degraded, Op: "transport.Flush", Err: err2}
			}
		}
		if r == full {
			flushedFull = true
		}
	}
	if flushedFull {
		t.degraded = false
	}
	return nil
}

func (t *Transport) write(r gfx.Rect) error {
	return t.bus.WriteWindow(r.X, r.Y, r.W, r.H, t.wire)
}

func packBE(dst []byte, pix []uint16) []byte {
	for _, p := range pix {
		dst = append(dst, byte(p>>8), byte(p))
	}
	return dst
}

func sortAscending(rs []gfx.Rect) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && before(rs[j], rs[j-1]); j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

func before(a, b gfx.Rect) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
