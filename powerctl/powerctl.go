// Package powerctl holds the watch power state. Transitions are driven
// entirely by idle time and touch activity; battery readings are display
// data and never feed back in here.
package powerctl

import "time"

// State is the current power mode. Only this package assigns it.
type State uint8

const (
	Active State = iota
	Dimmed
	Sleeping
)

func (s State) String() string {
	switch s {
	case Dimmed:
		return "dimmed"
	case Sleeping:
		return "sleeping"
	}
	return "active"
}

// Transition reports one evaluation. The caller applies the panel side
// effects (brightness ramp, sleep-in/out); the controller never touches
// hardware.
type Transition struct {
	From    State
	To      State
	Changed bool
}

type Config struct {
	// DimAfter is the idle span before Active drops to Dimmed. Zero
	// selects 20 seconds.
	DimAfter time.Duration
	// SleepAfter is the idle span before Sleeping. Zero selects 60
	// seconds. Must exceed DimAfter; the config loader enforces that.
	SleepAfter time.Duration
	// WakeOnMinute lets the loop schedule a Wake at minute boundaries
	// while Sleeping, trading battery for an always-current face.
	WakeOnMinute bool
}

type Controller struct {
	cfg       Config
	state     State
	idleSince time.Time
}

// New starts Active. Idle is measured from the first call that carries a
// timestamp.
func New(cfg Config) *Controller {
	if cfg.DimAfter == 0 {
		cfg.DimAfter = 20 * time.Second
	}
	if cfg.SleepAfter == 0 {
		cfg.SleepAfter = 60 * time.Second
	}
	return &Controller{cfg: cfg, state: Active}
}

// Touch records user activity. Any touch, whatever the router made of
// it, resets idle and returns the watch to Active.
func (c *Controller) Touch(now time.Time) Transition {
	c.idleSince = now
	return c.set(Active)
}

// Sleep forces Sleeping immediately, for the explicit sleep gesture.
func (c *Controller) Sleep(now time.Time) Transition {
	c.idleSince = now
	return c.set(Sleeping)
}

// Wake leaves Sleeping on a schedule rather than a touch. Idle restarts
// so the face stays up for a full dim cycle.
func (c *Controller) Wake(now time.Time) Transition {
	c.idleSince = now
	return c.set(Active)
}

// Advance applies the idle thresholds. Sleeping is left only by Touch or
// Wake, never by the passage of time.
func (c *Controller) Advance(now time.Time) Transition {
	if c.idleSince.IsZero() {
		c.idleSince = now
	}
	if c.state == Sleeping {
		return Transition{From: Sleeping, To: Sleeping}
	}
	idle := now.Sub(c.idleSince)
	switch {
	case idle >= c.cfg.SleepAfter:
		return c.set(Sleeping)
	case idle >= c.cfg.DimAfter:
		if c.state == Active {
			return c.set(Dimmed)
		}
	}
	return Transition{From: c.state, To: c.state}
}

func (c *Controller) set(next State) Transition {
	t := Transition{From: c.state, To: next, Changed: c.state != next}
	c.state = next
	return t
}

func (c *Controller) State() State { return c.state }

// IdleFor is the time since the last recorded activity.
func (c *Controller) IdleFor(now time.Time) time.Duration {
	if c.idleSince.IsZero() {
		return 0
	}
	return now.Sub(c.idleSince)
}

// MinuteWake reports whether scheduled minute-boundary wakes are wanted.
func (c *Controller) MinuteWake() bool { return c.cfg.WakeOnMinute }
