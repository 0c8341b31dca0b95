// Package inputroute turns raw touch phases into view navigation. It
// owns no hardware: the loop hands it a Source each tick and forwards
// the result. Timing uses the tick clock, not per-event stamps, which is
// as fine-grained as the poll loop can see anyway.
package inputroute

import (
	"time"

	"wristcode-go/x/mathx"
)

// Phase is the contact lifecycle as the panel reports it.
type Phase uint8

const (
	Down Phase = iota
	Up
	Contact
)

func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return "contact"
}

// TouchEvent is one decoded panel report.
type TouchEvent struct {
	X, Y  int16
	Phase Phase
}

// Source yields queued events one at a time. ok=false means drained.
type Source interface {
	Poll() (TouchEvent, bool, error)
}

// Action is what a completed gesture asks the face layer to do.
type Action uint8

const (
	None Action = iota
	NextView
	PrevView
)

func (a Action) String() string {
	switch a {
	case NextView:
		return "next"
	case PrevView:
		return "prev"
	}
	return "none"
}

// Result summarizes one tick of input. Activity is true whenever any raw
// event was seen, even ones the debounce dropped; the power controller
// cares about presence, not meaning.
type Result struct {
	Action       Action
	SleepGesture bool
	Activity     bool
}

type Config struct {
	// DebounceWindow drops a Down arriving this soon after the prior Up.
	// Zero selects 300ms.
	DebounceWindow time.Duration
	// DragThreshold is the largest per-axis movement still read as a
	// tap. Zero selects 20px.
	DragThreshold int16
	// SleepDrag is the minimum downward pull that puts the watch to
	// sleep. Zero selects 120px.
	SleepDrag int16
}

type Router struct {
	src Source
	cfg Config

	tracking   bool
	suppressed bool
	startX     int16
	startY     int16
	lastX      int16
	lastY      int16
	lastUp     time.Time
	haveUp     bool
}

func New(src Source, cfg Config) *Router {
	if cfg.DebounceWindow == 0 {
		cfg.DebounceWindow = 300 * time.Millisecond
	}
	if cfg.DragThreshold == 0 {
		cfg.DragThreshold = 20
	}
	if cfg.SleepDrag == 0 {
		cfg.SleepDrag = 120
	}
	return &Router{src: src, cfg: cfg}
}

// A finger dragging across the panel can produce contact reports as
// fast as the source is polled; the drain is bounded so one tick never
// stalls behind it. Leftovers surface next tick.
const maxEventsPerTick = 8

// Tick drains the source and folds every queued event into the gesture
// state. A source error abandons the rest of the queue; whatever was
// consumed first still counts.
func (r *Router) Tick(now time.Time) (Result, error) {
	var res Result
	for i := 0; i < maxEventsPerTick; i++ {
		ev, ok, err := r.src.Poll()
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}
		res.Activity = true
		r.feed(ev, now, &res)
	}
	return res, nil
}

func (r *Router) feed(ev TouchEvent, now time.Time, res *Result) {
	switch ev.Phase {
	case Down:
		r.tracking = true
		r.suppressed = r.haveUp && now.Sub(r.lastUp) < r.cfg.DebounceWindow
		r.startX, r.startY = ev.X, ev.Y
		r.lastX, r.lastY = ev.X, ev.Y
	case Contact:
		// A contact with no Down seen (finger already resting at boot)
		// starts a sequence from here.
		if !r.tracking {
			r.tracking = true
			r.suppressed = false
			r.startX, r.startY = ev.X, ev.Y
		}
		r.lastX, r.lastY = ev.X, ev.Y
	case Up:
		r.lastX, r.lastY = ev.X, ev.Y
		if r.tracking && !r.suppressed {
			r.classify(res)
		}
		r.tracking = false
		r.suppressed = false
		r.lastUp = now
		r.haveUp = true
	}
}

// classify maps the finished Down..Up movement onto an action. Taps and
// left drags step forward, right drags step back, a long downward pull
// sleeps. Upward and short vertical drags are unbound.
func (r *Router) classify(res *Result) {
	dx := int(r.lastX) - int(r.startX)
	dy := int(r.lastY) - int(r.startY)
	adx, ady := mathx.Abs(dx), mathx.Abs(dy)
	if adx <= int(r.cfg.DragThreshold) && ady <= int(r.cfg.DragThreshold) {
		res.Action = NextView
		return
	}
	if adx >= ady {
		if dx < 0 {
			res.Action = NextView
		} else {
			res.Action = PrevView
		}
		return
	}
	if dy > 0 && dy >= int(r.cfg.SleepDrag) {
		res.Action = None
		res.SleepGesture = true
	}
}
