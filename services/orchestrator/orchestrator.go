// Package orchestrator drives the watch control loop: one goroutine, a
// tick whose period follows the power state, and a fixed read ->
// compute -> write order inside each tick so no component observes a
// half-updated frame or power state. All peripheral I/O happens here,
// on the loop goroutine.
package orchestrator

import (
	"context"
	"time"

	"wristcode-go/bus"
	"wristcode-go/face"
	"wristcode-go/framebuf"
	"wristcode-go/gfx"
	"wristcode-go/inputroute"
	"wristcode-go/netx/openmeteo"
	"wristcode-go/powerctl"
	"wristcode-go/services/config"
	"wristcode-go/timekeep"
	"wristcode-go/transport"
	"wristcode-go/types"
	"wristcode-go/x/logx"
	"wristcode-go/x/mathx"
	"wristcode-go/x/ramp"
	"wristcode-go/x/timex"
)

// PanelControl is the command side of the display controller. Pixel
// traffic goes through the transport instead.
type PanelControl interface {
	SetBrightness(level uint8) error
	Sleep() error
	Wake() error
}

// RTC is the battery-backed clock. Stored time is UTC.
type RTC interface {
	ReadTime() (time.Time, error)
	SetTime(t time.Time) error
}

// BatterySampler reads one gauge snapshot. ok=false means the gauge
// was unreachable; the previous reading is then dropped from display.
type BatterySampler interface {
	Sample() (types.BatteryStatus, bool)
}

// TimeFixer obtains a network time fix, best effort.
type TimeFixer interface {
	FetchTimeFix() (time.Time, bool)
}

// WeatherSource fetches current conditions, best effort.
type WeatherSource interface {
	FetchCurrentConditions() (openmeteo.Conditions, bool)
}

// Devices is the hardware the loop owns. TimeFix and Weather may be
// nil on builds without a network association.
type Devices struct {
	Panel   PanelControl
	Flusher *transport.Transport
	Touch   inputroute.Source
	RTC     RTC
	Battery BatterySampler
	TimeFix TimeFixer
	Weather WeatherSource
}

// Gauge reads cost power; while awake they happen at most this often.
const batterySampleEvery = 10 * time.Second

// Dimming ramps rather than steps so the drop reads as intentional.
const (
	dimRampMs    = 150
	dimRampSteps = 6
)

type Service struct {
	cfg  config.Config
	dev  Devices
	conn *bus.Connection
	log  *logx.Logger

	fb     *framebuf.FrameBuffer
	face   *face.Face
	router *inputroute.Router
	rec    *timekeep.Reconciler
	power  *powerctl.Controller

	bootAt   time.Time
	lastTick time.Time

	lastSync time.Time
	haveSync bool

	lastSample time.Time
	haveSample bool
	bat        types.BatteryStatus
	haveBat    bool

	lastWx time.Time
	wx     openmeteo.Conditions

	dirty   []gfx.Rect
	frames  uint32
	regions uint32
	faults  uint32
}

func New(cfg config.Config, dev Devices, fb *framebuf.FrameBuffer, conn *bus.Connection, log *logx.Logger) *Service {
	return &Service{
		cfg:    cfg,
		dev:    dev,
		conn:   conn,
		log:    log,
		fb:     fb,
		face:   face.New(fb),
		router: inputroute.New(dev.Touch, cfg.InputConfig()),
		rec:    timekeep.New(cfg.TimeConfig()),
		power:  powerctl.New(cfg.PowerConfig()),
	}
}

// Run blocks on the caller's goroutine until ctx is cancelled. The
// first tick runs immediately so the face appears at boot, then the
// timer is re-armed each pass with the period the power state selects.
func (s *Service) Run(ctx context.Context) error {
	if s.bootAt.IsZero() {
		s.bootAt = time.Now()
	}
	s.safeTick(time.Now())

	timer := time.NewTimer(s.period())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Infof("loop: stopping")
			return ctx.Err()
		case <-timer.C:
		}
		s.safeTick(time.Now())
		resetTimer(timer, s.period())
	}
}

// period selects the tick length. While Active it is clamped to
// [50ms, T_dim/10] so the seconds patch visibly ticks long before the
// dim timeout can land.
func (s *Service) period() time.Duration {
	switch s.power.State() {
	case powerctl.Sleeping:
		return s.cfg.Display.SleepPoll.Duration
	case powerctl.Dimmed:
		return s.cfg.Display.DimmedPeriod.Duration
	}
	lo := 50 * time.Millisecond
	hi := mathx.Max(s.cfg.Power.DimAfter.Duration/10, lo)
	return mathx.Clamp(s.cfg.Display.TickPeriod.Duration, lo, hi)
}

// safeTick is the loop's fault boundary. A panicking tick is logged,
// the frame and panel state are reset to known-bad-repaint-everything,
// and the loop carries on.
func (s *Service) safeTick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.faults++
			s.log.Errorf("tick fault: %v", r)
			s.fb.Reset()
			s.dev.Flusher.MarkDegraded()
			s.face.Invalidate()
		}
	}()
	s.tick(now)
}

func (s *Service) tick(now time.Time) {
	wasSleeping := s.power.State() == powerctl.Sleeping

	// Input first: gestures and activity feed everything below.
	res, err := s.router.Tick(now)
	if err != nil {
		s.log.Warnf("touch: %v", err)
	}

	// Time sources. Network fixes are attempted only while Active and
	// at most once per sync interval; failed attempts wait out the
	// interval too.
	rtc := s.readRTC()
	var fix *time.Time
	if s.dev.TimeFix != nil && !wasSleeping && s.syncDue(now) {
		s.lastSync = now
		s.haveSync = true
		if t, ok := s.dev.TimeFix.FetchTimeFix(); ok {
			fix = &t
		} else {
			s.log.Warnf("time fix unavailable")
		}
	}
	out := s.rec.Reconcile(rtc, fix, now)
	if out.Rejected {
		s.log.Warnf("time fix rejected: outside skew bound")
	}
	if out.WriteRTC {
		if err := s.dev.RTC.SetTime(out.Estimate.Wall); err != nil {
			s.log.Warnf("rtc write-back: %v", err)
		} else {
			s.log.Infof("time synced, rtc updated")
		}
	}

	// Power transitions: touch wins, then the scheduled minute wake,
	// then the explicit sleep gesture, then plain idle advancement.
	if res.Activity {
		s.applyPower(s.power.Touch(now))
	} else if wasSleeping && s.power.MinuteWake() && s.minuteCrossed(now) {
		s.applyPower(s.power.Wake(now))
	}
	if res.SleepGesture && !wasSleeping {
		s.applyPower(s.power.Sleep(now))
	}
	s.applyPower(s.power.Advance(now))
	sleeping := s.power.State() == powerctl.Sleeping

	// Navigation. A tap that woke the watch is consumed: it brings the
	// face back, it does not also flip the view.
	if !sleeping && !wasSleeping {
		switch res.Action {
		case inputroute.NextView:
			s.face.Next()
		case inputroute.PrevView:
			s.face.Prev()
		}
		if res.Action != inputroute.None && s.face.View() == face.WeatherView {
			// Arriving on the weather view refreshes it.
			s.lastWx = time.Time{}
		}
	}

	if !sleeping && s.sampleDue(now) {
		s.lastSample = now
		s.haveSample = true
		s.bat, s.haveBat = s.dev.Battery.Sample()
	}

	if s.dev.Weather != nil && s.power.State() == powerctl.Active && s.weatherDue(now) {
		s.lastWx = now
		if c, ok := s.dev.Weather.FetchCurrentConditions(); ok {
			s.wx = c
			s.log.Infof("weather: %v code %d", c.Temperature, c.Code)
		} else {
			s.log.Warnf("weather fetch failed")
		}
	}

	// Render and flush. The panel is never touched while Sleeping.
	if !sleeping {
		if s.dev.Flusher.Degraded() {
			s.fb.MarkFull()
		}
		if err := s.face.Render(s.faceState(now)); err != nil {
			s.log.Warnf("render: %v", err)
		}
		s.dirty = s.fb.TakeDirty(s.dirty[:0])
		if len(s.dirty) > 0 {
			if err := s.dev.Flusher.Flush(s.fb, s.dirty); err != nil {
				s.log.Warnf("flush: %v", err)
			} else {
				s.frames++
				s.regions += uint32(len(s.dirty))
			}
		}
	}

	s.publishTelemetry(now)
	s.lastTick = now
}

// applyPower performs the panel side effects of a state transition.
func (s *Service) applyPower(tr powerctl.Transition) {
	if !tr.Changed {
		return
	}
	s.log.Infof("power: %s -> %s", tr.From.String(), tr.To.String())
	switch tr.To {
	case powerctl.Active:
		if tr.From == powerctl.Sleeping {
			if err := s.dev.Panel.Wake(); err != nil {
				s.log.Warnf("panel wake: %v", err)
			}
			s.face.Invalidate()
		}
		if err := s.dev.Panel.SetBrightness(s.cfg.Display.Brightness); err != nil {
			s.log.Warnf("brightness: %v", err)
		}
	case powerctl.Dimmed:
		s.rampBrightness(s.cfg.Display.Brightness, s.cfg.Display.DimBrightness)
	case powerctl.Sleeping:
		if err := s.dev.Panel.Sleep(); err != nil {
			s.log.Warnf("panel sleep: %v", err)
		}
	}
}

func (s *Service) rampBrightness(from, to uint8) {
	var rampErr error
	ramp.StartLinear(uint16(from), uint16(to), 0xFF, dimRampMs, dimRampSteps,
		func(d time.Duration) bool { time.Sleep(d); return true },
		func(level uint16) {
			if err := s.dev.Panel.SetBrightness(uint8(level)); err != nil && rampErr == nil {
				rampErr = err
			}
		})
	if rampErr != nil {
		s.log.Warnf("dim ramp: %v", rampErr)
	}
}

func (s *Service) readRTC() timekeep.RTCReading {
	t, err := s.dev.RTC.ReadTime()
	if err != nil {
		return timekeep.RTCReading{}
	}
	return timekeep.RTCReading{Wall: t, OK: true}
}

func (s *Service) syncDue(now time.Time) bool {
	return !s.haveSync || now.Sub(s.lastSync) >= s.cfg.Net.SyncInterval.Duration
}

func (s *Service) sampleDue(now time.Time) bool {
	return !s.haveSample || now.Sub(s.lastSample) >= batterySampleEvery
}

func (s *Service) weatherDue(now time.Time) bool {
	return s.lastWx.IsZero() || now.Sub(s.lastWx) >= s.cfg.Weather.Refresh.Duration
}

// minuteCrossed reports whether a minute boundary passed since the
// previous tick.
func (s *Service) minuteCrossed(now time.Time) bool {
	if s.lastTick.IsZero() {
		return false
	}
	return timex.MinuteCrossed(s.lastTick, now)
}

func (s *Service) faceState(now time.Time) face.State {
	est := s.rec.Estimate()
	st := face.State{
		Valid:        est.Valid(),
		Confidence:   est.Confidence,
		Use12h:       s.cfg.Time.Use12h,
		Battery:      s.bat,
		HaveBattery:  s.haveBat,
		Weather:      s.wx,
		WeatherStale: s.wx.Stale(now, s.cfg.Weather.Refresh.Duration),
		Fahrenheit:   s.cfg.Weather.Fahrenheit,
		Degraded:     s.dev.Flusher.Degraded(),
		Uptime:       now.Sub(s.bootAt),
	}
	if st.Valid {
		st.Local = s.rec.Local()
	}
	return st
}
