// Package pcf85063 drives the PCF85063A battery-backed real-time clock.
// The chip holds UTC; presentation offsets are applied downstream.
package pcf85063

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// ErrClockInvalid means the oscillator stopped since the last set (flat
// backup cell, first power-up) and the stored time cannot be trusted.
var ErrClockInvalid = errors.New("pcf85063: oscillator stopped, time invalid")

type Config struct {
	Address uint16 // default 0x51
}

type Device struct {
	bus  drivers.I2C
	addr uint16

	w [8]byte
	r [7]byte
}

func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = 0x51
	}
	return &Device{bus: bus, addr: cfg.Address}
}

// ReadTime returns the stored calendar time. ErrClockInvalid is returned
// when the oscillator-stop flag is set; the value is then the zero Time.
func (d *Device) ReadTime() (time.Time, error) {
	d.w[0] = regSeconds
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:7]); err != nil {
		return time.Time{}, err
	}
	if d.r[0]&secondsOSFlag != 0 {
		return time.Time{}, ErrClockInvalid
	}
	sec := decodeBCD(d.r[0] & 0x7F)
	min := decodeBCD(d.r[1] & 0x7F)
	hour := decodeBCD(d.r[2] & 0x3F)
	day := decodeBCD(d.r[3] & 0x3F)
	month := decodeBCD(d.r[5] & 0x1F)
	year := 2000 + decodeBCD(d.r[6])
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC), nil
}

// SetTime writes t (converted to UTC) into the calendar registers.
// One auto-increment burst keeps the write atomic across a rollover,
// and writing seconds clears the oscillator-stop flag.
func (d *Device) SetTime(t time.Time) error {
	t = t.UTC()
	d.w[0] = regSeconds
	d.w[1] = encodeBCD(t.Second())
	d.w[2] = encodeBCD(t.Minute())
	d.w[3] = encodeBCD(t.Hour())
	d.w[4] = encodeBCD(t.Day())
	d.w[5] = uint8(t.Weekday()) // 0=Sunday, matching the chip
	d.w[6] = encodeBCD(int(t.Month()))
	d.w[7] = encodeBCD(t.Year() - 2000)
	return d.bus.Tx(d.addr, d.w[:8], nil)
}

// Reset performs the chip's software reset.
func (d *Device) Reset() error {
	d.w[0], d.w[1] = regCtrl1, ctrl1SoftReset
	return d.bus.Tx(d.addr, d.w[:2], nil)
}

func decodeBCD(b uint8) int { return int(b>>4)*10 + int(b&0x0F) }

func encodeBCD(v int) uint8 { return uint8(v/10)<<4 | uint8(v%10) }
