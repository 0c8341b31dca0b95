// Package face renders the watch views into the frame buffer. Views draw
// only the patches whose backing state changed since the last pass, so a
// quiet tick costs a seconds-sized region, not a frame. Navigation swaps
// views wholesale with a full repaint.
package face

import (
	"time"

	"wristcode-go/framebuf"
	"wristcode-go/gfx"
	"wristcode-go/netx/openmeteo"
	"wristcode-go/timekeep"
	"wristcode-go/types"
)

type View uint8

const (
	ClockView View = iota
	WeatherView
	InfoView
	viewCount
)

func (v View) String() string {
	switch v {
	case WeatherView:
		return "weather"
	case InfoView:
		return "info"
	}
	return "clock"
}

// State is everything a render pass may draw. The loop assembles it; the
// face never reads hardware or clocks on its own.
type State struct {
	Valid      bool // time estimate usable
	Local      time.Time
	Confidence timekeep.Confidence
	Use12h     bool

	Battery     types.BatteryStatus
	HaveBattery bool

	Weather      openmeteo.Conditions
	WeatherStale bool
	Fahrenheit   bool

	Degraded bool
	Uptime   time.Duration
}

type Face struct {
	fb   *framebuf.FrameBuffer
	view View
	full bool

	tile   gfx.Canvas
	scaled []uint16

	// last-drawn values, one set per patch
	timeStr  string
	secStr   string
	dateStr  string
	badgePct int
	badgeChg bool
	dotColor uint16

	wxTemp  string
	wxLabel string
	wxRange string
	wxMet   string
	wxStale bool

	infoLines [4]string
}

func New(fb *framebuf.FrameBuffer) *Face {
	return &Face{fb: fb, view: ClockView, full: true, badgePct: -1}
}

func (f *Face) View() View { return f.view }

// Next and Prev cycle the view ring and schedule a full repaint.
func (f *Face) Next() {
	f.view = (f.view + 1) % viewCount
	f.full = true
}

func (f *Face) Prev() {
	f.view = (f.view + viewCount - 1) % viewCount
	f.full = true
}

// Invalidate forces the next Render to repaint everything. Used after
// wake and after a crash reset.
func (f *Face) Invalidate() { f.full = true }

// Render draws the active view. On a full pass the background fill marks
// the whole frame dirty; otherwise only changed patches are written.
func (f *Face) Render(st State) error {
	if f.full {
		f.fb.Fill(gfx.Black)
	}
	err := f.drawStatusStrip(st)
	if err == nil {
		switch f.view {
		case WeatherView:
			err = f.renderWeather(st)
		case InfoView:
			err = f.renderInfo(st)
		default:
			err = f.renderClock(st)
		}
	}
	f.full = false
	return err
}

// drawStatusStrip keeps the battery badge and time-confidence dot
// current on every view.
func (f *Face) drawStatusStrip(st State) error {
	if err := f.drawBadge(st); err != nil {
		return err
	}
	return f.drawSyncDot(st.Confidence)
}

func (f *Face) drawBadge(st State) error {
	pct := -1
	chg := false
	if st.HaveBattery {
		pct = int(st.Battery.Percent)
		chg = st.Battery.Charging
	}
	if !f.full && pct == f.badgePct && chg == f.badgeChg {
		return nil
	}
	f.badgePct, f.badgeChg = pct, chg

	outline := gfx.Gray
	if chg {
		outline = gfx.Cyan
	}
	fill := gfx.Green
	switch {
	case pct < 0:
		fill = gfx.Gray
	case pct <= 15:
		fill = gfx.Red
	case pct <= 40:
		fill = gfx.Orange
	}

	r := rectBadge
	if err := f.fb.FillRect(r, outline); err != nil {
		return err
	}
	inner := gfx.Rect{X: r.X + 2, Y: r.Y + 2, W: r.W - 4, H: r.H - 4}
	if err := f.fb.FillRect(inner, gfx.Black); err != nil {
		return err
	}
	if pct > 0 {
		w := int16(int(inner.W-2) * pct / 100)
		if w < 1 {
			w = 1
		}
		bar := gfx.Rect{X: inner.X + 1, Y: inner.Y + 1, W: w, H: inner.H - 2}
		if err := f.fb.FillRect(bar, fill); err != nil {
			return err
		}
	}
	nub := gfx.Rect{X: r.Right(), Y: r.Y + 5, W: 3, H: r.H - 10}
	return f.fb.FillRect(nub, outline)
}

func (f *Face) drawSyncDot(c timekeep.Confidence) error {
	col := confidenceColor(c)
	if !f.full && col == f.dotColor {
		return nil
	}
	f.dotColor = col
	return f.fb.FillRect(rectSyncDot, col)
}

func confidenceColor(c timekeep.Confidence) uint16 {
	switch c {
	case timekeep.NetworkSynced:
		return gfx.Green
	case timekeep.Stale:
		return gfx.Yellow
	case timekeep.RtcOnly:
		return gfx.Orange
	}
	return gfx.Red
}
