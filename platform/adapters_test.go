package platform

import (
	"testing"

	"wristcode-go/drivers/axp2101"
	"wristcode-go/drivers/ft3168"
	"wristcode-go/inputroute"
)

// touchI2C replays one touch register burst per status read, sticking on
// the last.
type touchI2C struct {
	bursts [][]byte
	i      int
}

func (f *touchI2C) Tx(addr uint16, w, r []byte) error {
	if len(r) == 0 {
		return nil
	}
	b := f.bursts[f.i]
	if f.i < len(f.bursts)-1 {
		f.i++
	}
	copy(r, b)
	return nil
}

// contactBurst encodes one controller "contact" report at (x, y).
func contactBurst(x, y int16) []byte {
	b := make([]byte, 13)
	b[0] = 1
	b[1] = 0x2<<6 | byte(x>>8)&0x0F
	b[2] = byte(x)
	b[3] = byte(y>>8) & 0x0F
	b[4] = byte(y)
	return b
}

func TestTouchSourceEmitsRouterPhases(t *testing.T) {
	bus := &touchI2C{bursts: [][]byte{
		contactBurst(100, 200),
		make([]byte, 13), // finger gone
	}}
	src := touchSource{poller: ft3168.NewPoller(ft3168.New(bus, nil, ft3168.Config{}))}

	ev, ok, err := src.Poll()
	if err != nil || !ok {
		t.Fatalf("Poll = (%+v, %v, %v), want an event", ev, ok, err)
	}
	if ev.Phase != inputroute.Down || ev.X != 100 || ev.Y != 200 {
		t.Fatalf("first event = %+v, want down at (100, 200)", ev)
	}
	ev, ok, err = src.Poll()
	if err != nil || !ok || ev.Phase != inputroute.Up {
		t.Fatalf("second event = (%+v, %v, %v), want synthesized up", ev, ok, err)
	}
	if _, ok, _ := src.Poll(); ok {
		t.Fatalf("idle panel produced an event")
	}
}

func TestRoutePhaseMapping(t *testing.T) {
	tests := []struct {
		in   ft3168.Phase
		want inputroute.Phase
	}{
		{ft3168.PhaseDown, inputroute.Down},
		{ft3168.PhaseUp, inputroute.Up},
		{ft3168.PhaseContact, inputroute.Contact},
	}
	for _, tt := range tests {
		if got := routePhase(tt.in); got != tt.want {
			t.Fatalf("routePhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// gaugeI2C answers PMIC register reads from a fixed map.
type gaugeI2C struct {
	regs map[uint8][]byte
}

func (f *gaugeI2C) Tx(addr uint16, w, r []byte) error {
	if len(r) == 0 {
		return nil
	}
	copy(r, f.regs[w[0]])
	return nil
}

func TestGaugeSamplerSnapshot(t *testing.T) {
	bus := &gaugeI2C{regs: map[uint8][]byte{
		0x03: {0x4B},       // chip ID
		0x00: {0x28},       // vbus and battery present
		0x01: {0x20},       // charging
		0x34: {0xBB, 0x08}, // battery: 3000 counts = 3300 mV
		0x38: {0x00, 0x00},
		0xA4: {80},
	}}
	g := gaugeSampler{dev: axp2101.New(bus, axp2101.Config{})}

	st, ok := g.Sample()
	if !ok {
		t.Fatalf("Sample reported no gauge")
	}
	if st.Percent != 80 || st.MilliV != 3300 || !st.Charging || !st.VBusPresent {
		t.Fatalf("Sample = %+v, want 80 pct, 3300 mV, charging on vbus", st)
	}
}

func TestGaugeSamplerAbsentChip(t *testing.T) {
	bus := &gaugeI2C{regs: map[uint8][]byte{0x03: {0x00}}}
	g := gaugeSampler{dev: axp2101.New(bus, axp2101.Config{})}
	if st, ok := g.Sample(); ok || st.Percent != 0 {
		t.Fatalf("Sample = (%+v, %v), want no data for absent chip", st, ok)
	}
}
