// Package ft3168 reads the FT3168 capacitive touch controller in polling
// mode over I2C. Coordinates are 12-bit panel positions; up to two
// concurrent touch points.
package ft3168

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// OutputPin drives the controller reset line.
type OutputPin func(high bool)

var ErrGlitch = errors.New("ft3168: implausible touch count")

// Phase is the controller-reported contact phase of one point.
type Phase uint8

const (
	PhaseDown Phase = iota
	PhaseUp
	PhaseContact
	PhaseNone
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseUp:
		return "up"
	case PhaseContact:
		return "contact"
	}
	return "none"
}

type Point struct {
	X, Y  int16
	Phase Phase
}

type Config struct {
	Address   uint16 // default 0x18
	Threshold uint8  // detect threshold, default 22
}

type Device struct {
	bus  drivers.I2C
	rst  OutputPin
	addr uint16
	thr  uint8

	w [2]byte
	r [13]byte
}

func New(bus drivers.I2C, rst OutputPin, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = 0x18
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = defaultThreshold
	}
	return &Device{bus: bus, rst: rst, addr: cfg.Address, thr: cfg.Threshold}
}

// Configure resets the controller and puts it in polled normal mode.
func (d *Device) Configure() error {
	if d.rst != nil {
		d.rst(false)
		time.Sleep(10 * time.Millisecond)
		d.rst(true)
		time.Sleep(300 * time.Millisecond)
	}
	if err := d.writeRegister(regDeviceMode, 0x00); err != nil {
		return err
	}
	if err := d.writeRegister(regThreshold, d.thr); err != nil {
		return err
	}
	return d.writeRegister(regIRQMode, 0x00)
}

func (d *Device) ChipID() (uint8, error) {
	if err := d.readRegisters(regChipID, d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// ReadTouches fills pts with the current contact points and returns how
// many are valid. Zero with nil error means no finger on the panel.
func (d *Device) ReadTouches(pts *[2]Point) (int, error) {
	if err := d.readRegisters(regTDStatus, d.r[:]); err != nil {
		return 0, err
	}
	n := int(d.r[0] & 0x0F)
	if n == 0 {
		return 0, nil
	}
	if n > 2 {
		// Counts above two show up transiently while the controller
		// re-acquires; treat as no data.
		return 0, ErrGlitch
	}
	for i := 0; i < n; i++ {
		off := 1 + i*6
		pts[i] = Point{
			X:     int16(d.r[off]&0x0F)<<8 | int16(d.r[off+1]),
			Y:     int16(d.r[off+2]&0x0F)<<8 | int16(d.r[off+3]),
			Phase: decodePhase(d.r[off] >> 6 & 0x03),
		}
	}
	return n, nil
}

func decodePhase(ev uint8) Phase {
	switch ev {
	case evPressDown:
		return PhaseDown
	case evLiftUp:
		return PhaseUp
	case evContact:
		return PhaseContact
	}
	return PhaseNone
}

func (d *Device) readRegisters(reg uint8, buf []byte) error {
	d.w[0] = reg
	return d.bus.Tx(d.addr, d.w[:1], buf)
}

func (d *Device) writeRegister(reg, val uint8) error {
	d.w[0], d.w[1] = reg, val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}
