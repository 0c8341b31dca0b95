// Package platform assembles the watch hardware, or its host
// simulation, behind the device surfaces the control loop owns. Build
// tags pick the wiring; everything above this package is identical in
// both worlds.
package platform

import (
	"wristcode-go/drivers/axp2101"
	"wristcode-go/drivers/ft3168"
	"wristcode-go/inputroute"
	"wristcode-go/types"
)

// The fitted panel module is 410x502 RGB565.
const (
	PanelWidth  = 410
	PanelHeight = 502
)

// touchSource feeds the synthesized controller event stream to the
// gesture router.
type touchSource struct {
	poller *ft3168.Poller
}

func (s touchSource) Poll() (inputroute.TouchEvent, bool, error) {
	pt, ok, err := s.poller.Next()
	if !ok || err != nil {
		return inputroute.TouchEvent{}, false, err
	}
	return inputroute.TouchEvent{X: pt.X, Y: pt.Y, Phase: routePhase(pt.Phase)}, true, nil
}

func routePhase(p ft3168.Phase) inputroute.Phase {
	switch p {
	case ft3168.PhaseDown:
		return inputroute.Down
	case ft3168.PhaseUp:
		return inputroute.Up
	}
	return inputroute.Contact
}

// gaugeSampler snapshots the PMIC battery telemetry.
type gaugeSampler struct {
	dev *axp2101.Device
}

func (g gaugeSampler) Sample() (types.BatteryStatus, bool) {
	if !g.dev.Connected() {
		return types.BatteryStatus{}, false
	}
	snap := g.dev.Snapshot()
	return types.BatteryStatus{
		Percent:     snap.Percent,
		MilliV:      snap.Battery_mV,
		Charging:    snap.Charging,
		VBusPresent: snap.VBusPresent,
	}, true
}
