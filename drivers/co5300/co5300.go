// Package co5300 drives the CO5300 AMOLED panel controller over a
// single-data-lane serial link.
//
//	panel := co5300.New(spi, csPin, rstPin, co5300.Config{})
//	if err := panel.Configure(); err != nil { ... }
//	err := panel.WriteWindow(0, 0, 410, 502, frame)
//
// Every transaction, command or pixel stream, is framed as
// [0x02 0x00 cmd 0x00 data...] with chip select asserted throughout.
// The controller is write-only on this link; state worth reading back
// lives in the caller.
package co5300

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// OutputPin drives one GPIO line (chip select, reset).
type OutputPin func(high bool)

var (
	ErrPixelCount = errors.New("co5300: pixel byte count does not match window")
	ErrBadWindow  = errors.New("co5300: window outside panel")
)

type Config struct {
	// Panel geometry. Zero values select the 410x502 module.
	Width  int16
	Height int16

	// Offsets between logical and controller coordinates.
	// The 410x502 module maps column 0 to controller column 20.
	ColumnOffset int16
	RowOffset    int16

	// ChunkSize bounds a single pixel-stream transfer in bytes.
	// Zero selects 4096.
	ChunkSize int

	// Brightness level applied by Configure, 0-255. Zero selects full.
	Brightness uint8
}

type Device struct {
	bus drivers.SPI
	cs  OutputPin
	rst OutputPin

	width, height int16
	colOff        int16
	rowOff        int16
	chunk         int
	bright        uint8

	w [12]byte // command frame scratch
}

func New(bus drivers.SPI, cs, rst OutputPin, cfg Config) *Device {
	if cfg.Width == 0 {
		cfg.Width = 410
		cfg.ColumnOffset = 20
	}
	if cfg.Height == 0 {
		cfg.Height = 502
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 4096
	}
	if cfg.Brightness == 0 {
		cfg.Brightness = 0xFF
	}
	return &Device{
		bus:    bus,
		cs:     cs,
		rst:    rst,
		width:  cfg.Width,
		height: cfg.Height,
		colOff: cfg.ColumnOffset,
		rowOff: cfg.RowOffset,
		chunk:  cfg.ChunkSize,
		bright: cfg.Brightness,
	}
}

func (d *Device) Size() (w, h int16) { return d.width, d.height }

// Configure resets the controller and runs the power-up sequence.
func (d *Device) Configure() error {
	d.reset()

	if err := d.command(cmdSleepOut); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)

	steps := []struct {
		cmd  uint8
		data []byte
	}{
		{cmdUserCmdSet, []byte{0x00}},
		{cmdSPIMode, []byte{spiModeSingle}},
		{cmdPixelFmt, []byte{pixelFmt16bpp}},
		{cmdCtrlD1, []byte{ctrlD1Dimming}},
		{cmdHBMBright, []byte{0xFF}},
		{cmdDisplayOn, nil},
		{cmdBrightness, []byte{d.bright}},
		{cmdColorEnh, []byte{0x00}},
	}
	for _, s := range steps {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
	}
	time.Sleep(50 * time.Millisecond)
	return nil
}

func (d *Device) reset() {
	if d.rst == nil {
		return
	}
	d.rst(true)
	time.Sleep(10 * time.Millisecond)
	d.rst(false)
	time.Sleep(20 * time.Millisecond)
	d.rst(true)
	time.Sleep(200 * time.Millisecond)
}

// SetBrightness sets the panel luminance, 0 (off) to 255 (full).
func (d *Device) SetBrightness(level uint8) error {
	return d.command(cmdBrightness, level)
}

// Sleep blanks the panel and enters the controller's low-power mode.
func (d *Device) Sleep() error {
	if err := d.command(cmdDisplayOff); err != nil {
		return err
	}
	time.Sleep(20 * time.Millisecond)
	if err := d.command(cmdSleepIn); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)
	return nil
}

// Wake leaves sleep mode and turns the panel back on.
func (d *Device) Wake() error {
	if err := d.command(cmdSleepOut); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)
	return d.command(cmdDisplayOn)
}

func (d *Device) Invert(on bool) error {
	if on {
		return d.command(cmdInvertOn)
	}
	return d.command(cmdInvertOff)
}

// WriteWindow streams pix (RGB565, big-endian, row-major) into the
// addressed rectangle. len(pix) must equal 2*w*h.
func (d *Device) WriteWindow(x, y, w, h int16, pix []byte) error {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > d.width || y+h > d.height {
		return ErrBadWindow
	}
	if len(pix) != 2*int(w)*int(h) {
		return ErrPixelCount
	}
	if err := d.setWindow(x, y, w, h); err != nil {
		return err
	}

	d.cs(false)
	defer d.cs(true)
	hdr := d.w[:4]
	hdr[0], hdr[1], hdr[2], hdr[3] = opWrite, 0x00, cmdMemWrite, 0x00
	if err := d.bus.Tx(hdr, nil); err != nil {
		return err
	}
	for off := 0; off < len(pix); off += d.chunk {
		end := off + d.chunk
		if end > len(pix) {
			end = len(pix)
		}
		if err := d.bus.Tx(pix[off:end], nil); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) setWindow(x, y, w, h int16) error {
	x0 := uint16(x + d.colOff)
	x1 := x0 + uint16(w) - 1
	y0 := uint16(y + d.rowOff)
	y1 := y0 + uint16(h) - 1
	err := d.command(cmdColumnSet,
		byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	if err != nil {
		return err
	}
	return d.command(cmdRowSet,
		byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
}

func (d *Device) command(cmd uint8, data ...byte) error {
	d.cs(false)
	defer d.cs(true)
	buf := d.w[:0]
	buf = append(buf, opWrite, 0x00, cmd, 0x00)
	buf = append(buf, data...)
	return d.bus.Tx(buf, nil)
}
