// Package axp2101 reads battery and charger telemetry from the AXP2101
// power management IC and exposes its coarse power controls.
//
//	pmic := axp2101.New(i2c, axp2101.Config{})
//	if err := pmic.Configure(); err != nil { ... }
//	pct, err := pmic.BatteryPercent()
//
// Voltage ADC counts are 1.1 mV per LSB; accessors return millivolts.
package axp2101

import (
	"tinygo.org/x/drivers"
)

type Config struct {
	Address uint16 // default 0x34
}

type Device struct {
	bus  drivers.I2C
	addr uint16

	w [2]byte
	r [2]byte
}

func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = 0x34
	}
	return &Device{bus: bus, addr: cfg.Address}
}

// Connected reports whether the expected chip answers at the address.
func (d *Device) Connected() bool {
	id, err := d.readRegister(regICType)
	return err == nil && id == chipID
}

// Configure enables the voltage ADCs and clears pending interrupt state.
func (d *Device) Configure() error {
	if err := d.writeRegister(regADCEnable, adcEnableVBatTS); err != nil {
		return err
	}
	for _, reg := range []uint8{regIRQStatus0, regIRQStatus1, regIRQStatus2} {
		if err := d.writeRegister(reg, 0xFF); err != nil {
			return err
		}
	}
	return nil
}

// BatteryPercent returns the fuel-gauge level, 0-100.
func (d *Device) BatteryPercent() (uint8, error) {
	v, err := d.readRegister(regBatPercent)
	return v & 0x7F, err
}

func (d *Device) BatteryMilliV() (int32, error) { return d.readVoltage(regVBatH) }
func (d *Device) VBusMilliV() (int32, error)    { return d.readVoltage(regVBusH) }
func (d *Device) SystemMilliV() (int32, error)  { return d.readVoltage(regVSysH) }

func (d *Device) Charging() (bool, error) {
	v, err := d.readRegister(regStatus2)
	return v&status2ChargeBits != 0, err
}

func (d *Device) VBusPresent() (bool, error) {
	v, err := d.readRegister(regStatus1)
	return v&status1VBusPresent != 0, err
}

func (d *Device) BatteryPresent() (bool, error) {
	v, err := d.readRegister(regStatus1)
	return v&status1BatPresent != 0, err
}

// EnableCharging gates the battery charger.
func (d *Device) EnableCharging(on bool) error {
	if on {
		return d.setBits(regChgControl, 0x01)
	}
	return d.clearBits(regChgControl, 0x01)
}

// PowerOff shuts the whole system down. Does not return on hardware.
func (d *Device) PowerOff() error {
	return d.setBits(regPwrOffEn, 0x01)
}

// readVoltage decodes the 14-bit split ADC value at regH/regH+1.
// 1.1 mV per count.
func (d *Device) readVoltage(regH uint8) (int32, error) {
	d.w[0] = regH
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, err
	}
	raw := int32(d.r[0])<<4 | int32(d.r[1]&0x0F)
	return raw * 11 / 10, nil
}

func (d *Device) readRegister(reg uint8) (uint8, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeRegister(reg, val uint8) error {
	d.w[0], d.w[1] = reg, val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}

func (d *Device) setBits(reg, mask uint8) error {
	v, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	return d.writeRegister(reg, v|mask)
}

func (d *Device) clearBits(reg, mask uint8) error {
	v, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	return d.writeRegister(reg, v&^mask)
}
