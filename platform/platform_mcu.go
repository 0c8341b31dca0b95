//go:build tinygo

package platform

import (
	"machine"

	"wristcode-go/drivers/axp2101"
	"wristcode-go/drivers/co5300"
	"wristcode-go/drivers/ft3168"
	"wristcode-go/drivers/pcf85063"
	"wristcode-go/services/config"
	"wristcode-go/services/orchestrator"
	"wristcode-go/transport"
	"wristcode-go/x/logx"
)

// Main board wiring. The panel controller has SPI0 to itself; touch,
// RTC and PMIC share I2C0.
const (
	pinPanelSCK = machine.Pin(18)
	pinPanelSDO = machine.Pin(19)
	pinPanelCS  = machine.Pin(17)
	pinPanelRST = machine.Pin(20)

	pinBusSDA   = machine.Pin(4)
	pinBusSCL   = machine.Pin(5)
	pinTouchRST = machine.Pin(21)
)

// output configures p as a GPIO output and returns its setter.
func output(p machine.Pin) func(bool) {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return p.Set
}

// Open brings up the board peripherals. The panel must come up or boot
// fails; touch, RTC and PMIC are probed best effort and the loop runs
// their no-data paths when absent. No network association on this
// build, so time runs from the RTC alone.
func Open(cfg config.Config, log *logx.Logger) (orchestrator.Devices, error) {
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: 40 * machine.MHz,
		SCK:       pinPanelSCK,
		SDO:       pinPanelSDO,
	}); err != nil {
		return orchestrator.Devices{}, err
	}
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       pinBusSDA,
		SCL:       pinBusSCL,
	}); err != nil {
		return orchestrator.Devices{}, err
	}

	panel := co5300.New(spi, output(pinPanelCS), output(pinPanelRST), co5300.Config{
		Brightness: cfg.Display.Brightness,
	})
	if err := panel.Configure(); err != nil {
		return orchestrator.Devices{}, err
	}

	touch := ft3168.New(i2c, output(pinTouchRST), ft3168.Config{})
	if err := touch.Configure(); err != nil {
		log.Warnf("platform: touch configure: %v", err)
	}

	pmic := axp2101.New(i2c, axp2101.Config{})
	if err := pmic.Configure(); err != nil {
		log.Warnf("platform: pmic configure: %v", err)
	}

	return orchestrator.Devices{
		Panel:   panel,
		Flusher: transport.New(panel),
		Touch:   touchSource{poller: ft3168.NewPoller(touch)},
		RTC:     pcf85063.New(i2c, pcf85063.Config{}),
		Battery: gaugeSampler{dev: pmic},
	}, nil
}
