package face

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"wristcode-go/framebuf"
	"wristcode-go/gfx"
	"wristcode-go/x/fmtx"
	"wristcode-go/x/logring"
)

// fbDisplay adapts the frame buffer to the Displayer contract the
// terminal draws against. Display is a no-op; flushing stays with the
// transport.
type fbDisplay struct {
	fb *framebuf.FrameBuffer
}

func (d fbDisplay) Size() (int16, int16) { return d.fb.Size() }

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.SetPixel(x, y, gfx.FromColor(c))
}

func (d fbDisplay) Display() error { return nil }

func (d fbDisplay) FillRectangle(x, y, w, h int16, c color.RGBA) error {
	return d.fb.FillRect(gfx.Rect{X: x, Y: y, W: w, H: h}, gfx.FromColor(c))
}

// SetScroll is a no-op: the frame buffer has no hardware scroll window,
// so the terminal's line pointer wraps in place instead. Each line is
// cleared before it is redrawn, which is enough for boot output.
func (d fbDisplay) SetScroll(line int16) {}

// Console scrolls boot progress and crash reports on the panel before
// the view loop owns the frame.
type Console struct {
	term *tinyterm.Terminal
}

func NewConsole(fb *framebuf.FrameBuffer) *Console {
	w, h := fb.Size()
	term := tinyterm.NewTerminal(fbDisplay{fb: fb})
	term.Configure(&tinyterm.Config{
		ScreenBounds: image.Rect(0, 0, int(w), int(h)),
		Font:         &proggy.TinySZ8pt7b,
		FontHeight:   10,
		FontOffset:   6,
	})
	return &Console{term: term}
}

// Printf appends one line.
func (c *Console) Printf(format string, a ...any) {
	c.term.Write([]byte(fmtx.Sprintf(format, a...)))
	c.term.Write([]byte{'\n'})
}

// CrashReport paints the fault cause followed by the retained log tail.
func (c *Console) CrashReport(cause string, ring *logring.Ring) {
	c.term.Write([]byte("\n*** FAULT ***\n"))
	c.term.Write([]byte(cause))
	c.term.Write([]byte{'\n'})
	if ring != nil {
		c.term.Write(ring.Snapshot(nil))
	}
}
