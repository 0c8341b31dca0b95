//go:build !tinygo

package platform

import (
	"sync"
	"time"

	"wristcode-go/errcode"
	"wristcode-go/gfx"
	"wristcode-go/inputroute"
	"wristcode-go/netx/openmeteo"
	"wristcode-go/netx/sntp"
	"wristcode-go/services/config"
	"wristcode-go/services/orchestrator"
	"wristcode-go/transport"
	"wristcode-go/types"
	"wristcode-go/x/logx"
)

// SimPanel stands in for the panel controller on host builds. It records
// window traffic and control calls; the loop runs against it exactly as
// it would against the hardware. Methods are safe to call while the loop
// is running.
type SimPanel struct {
	mu      sync.Mutex
	writes  int
	full    int
	bytes   int
	last    gfx.Rect
	bright  uint8
	asleep  bool
	failing int
}

// SimPanelStats is one consistent snapshot of the panel side.
type SimPanelStats struct {
	Writes     int
	FullWrites int
	Bytes      int
	LastWindow gfx.Rect
	Brightness uint8
	Asleep     bool
}

func (p *SimPanel) WriteWindow(x, y, w, h int16, pix []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing > 0 {
		p.failing--
		return &errcode.E{C: errcode.BusTimeout, Op: "simpanel.WriteWindow"}
	}
	if x < 0 || y < 0 || x+w > PanelWidth || y+h > PanelHeight {
		return &errcode.E{C: errcode.OutOfBounds, Op: "simpanel.WriteWindow"}
	}
	p.last = gfx.Rect{X: x, Y: y, W: w, H: h}
	p.writes++
	if w == PanelWidth && h == PanelHeight {
		p.full++
	}
	p.bytes += len(pix)
	return nil
}

func (p *SimPanel) SetBrightness(level uint8) error {
	p.mu.Lock()
	p.bright = level
	p.mu.Unlock()
	return nil
}

func (p *SimPanel) Sleep() error {
	p.mu.Lock()
	p.asleep = true
	p.mu.Unlock()
	return nil
}

func (p *SimPanel) Wake() error {
	p.mu.Lock()
	p.asleep = false
	p.mu.Unlock()
	return nil
}

// FailNextWrites makes the next n window writes return a bus timeout,
// for exercising the degraded flush path from a sim script.
func (p *SimPanel) FailNextWrites(n int) {
	p.mu.Lock()
	p.failing = n
	p.mu.Unlock()
}

func (p *SimPanel) Stats() SimPanelStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return SimPanelStats{
		Writes:     p.writes,
		FullWrites: p.full,
		Bytes:      p.bytes,
		LastWindow: p.last,
		Brightness: p.bright,
		Asleep:     p.asleep,
	}
}

// SimTouch is a scripted touch source. Queued events drain one per Poll,
// the same contract the controller poller has.
type SimTouch struct {
	mu sync.Mutex
	q  []inputroute.TouchEvent
}

func (s *SimTouch) Poll() (inputroute.TouchEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.q) == 0 {
		return inputroute.TouchEvent{}, false, nil
	}
	ev := s.q[0]
	s.q = s.q[1:]
	return ev, true, nil
}

// Tap queues a press and release at one point.
func (s *SimTouch) Tap(x, y int16) {
	s.mu.Lock()
	s.q = append(s.q,
		inputroute.TouchEvent{X: x, Y: y, Phase: inputroute.Down},
		inputroute.TouchEvent{X: x, Y: y, Phase: inputroute.Up},
	)
	s.mu.Unlock()
}

// Drag queues a press, a midpoint contact and a release.
func (s *SimTouch) Drag(x0, y0, x1, y1 int16) {
	s.mu.Lock()
	s.q = append(s.q,
		inputroute.TouchEvent{X: x0, Y: y0, Phase: inputroute.Down},
		inputroute.TouchEvent{X: (x0 + x1) / 2, Y: (y0 + y1) / 2, Phase: inputroute.Contact},
		inputroute.TouchEvent{X: x1, Y: y1, Phase: inputroute.Up},
	)
	s.mu.Unlock()
}

// SimRTC derives its reading from the host clock plus an offset, so a
// SetTime behaves like trimming a real RTC: the skew is gone afterwards
// but the clock keeps running.
type SimRTC struct {
	mu  sync.Mutex
	off time.Duration
}

func NewSimRTC(skew time.Duration) *SimRTC { return &SimRTC{off: skew} }

func (r *SimRTC) ReadTime() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Now().UTC().Add(r.off), nil
}

func (r *SimRTC) SetTime(t time.Time) error {
	r.mu.Lock()
	r.off = time.Until(t)
	r.mu.Unlock()
	return nil
}

// Offset reports the current skew against the host clock.
func (r *SimRTC) Offset() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.off
}

// SimBattery discharges linearly from Percent at PerHour points per
// hour, starting from the first sample. Voltage tracks the percentage.
type SimBattery struct {
	Percent uint8
	PerHour float64

	start time.Time
}

func (b *SimBattery) Sample() (types.BatteryStatus, bool) {
	now := time.Now()
	if b.start.IsZero() {
		b.start = now
	}
	pct := float64(b.Percent) - now.Sub(b.start).Hours()*b.PerHour
	if pct < 0 {
		pct = 0
	}
	return types.BatteryStatus{
		Percent: uint8(pct + 0.5),
		MilliV:  3500 + int32(pct*6),
	}, true
}

// Sim exposes the simulated peripherals so a driver program can script
// input and inspect the panel side while the loop runs.
type Sim struct {
	Panel   *SimPanel
	Touch   *SimTouch
	RTC     *SimRTC
	Battery *SimBattery
}

// Open assembles the device set for this build. Host builds run the
// simulation; use OpenSim when the sim handles are needed.
func Open(cfg config.Config, log *logx.Logger) (orchestrator.Devices, error) {
	dev, _ := OpenSim(cfg, log)
	return dev, nil
}

// OpenSim assembles the simulated watch. The RTC starts 90 seconds slow
// so a network fix has something to correct; network clients are real,
// their failures surface as ok=false the same way they do on hardware.
func OpenSim(cfg config.Config, log *logx.Logger) (orchestrator.Devices, *Sim) {
	sim := &Sim{
		Panel:   &SimPanel{},
		Touch:   &SimTouch{},
		RTC:     NewSimRTC(-90 * time.Second),
		Battery: &SimBattery{Percent: 87, PerHour: 4},
	}

	dev := orchestrator.Devices{
		Panel:   sim.Panel,
		Flusher: transport.New(sim.Panel),
		Touch:   sim.Touch,
		RTC:     sim.RTC,
		Battery: sim.Battery,
		TimeFix: &sntp.Client{Host: cfg.Net.NTPHost},
	}
	if cfg.Location.Latitude != 0 || cfg.Location.Longitude != 0 {
		dev.Weather = &openmeteo.Client{Query: openmeteo.Query{
			Latitude:   cfg.Location.Latitude,
			Longitude:  cfg.Location.Longitude,
			Fahrenheit: cfg.Weather.Fahrenheit,
		}}
	} else {
		log.Infof("platform: no location configured, weather disabled")
	}
	log.Infof("platform: host simulation, panel %dx%d", PanelWidth, PanelHeight)
	return dev, sim
}
