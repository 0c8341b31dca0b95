package powerctl

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

func newTest() *Controller {
	return New(Config{DimAfter: 20 * time.Second, SleepAfter: 60 * time.Second})
}

func TestBootsActive(t *testing.T) {
	c := newTest()
	if c.State() != Active {
		t.Fatalf("boot state = %v, want %v", c.State(), Active)
	}
}

func TestDimsExactlyAtBoundary(t *testing.T) {
	c := newTest()
	c.Touch(t0)

	tr := c.Advance(t0.Add(20*time.Second - time.Millisecond))
	if tr.Changed {
		t.Fatalf("dimmed before the boundary: %+v", tr)
	}

	tr = c.Advance(t0.Add(20 * time.Second))
	if !tr.Changed || tr.From != Active || tr.To != Dimmed {
		t.Fatalf("transition at boundary = %+v, want Active->Dimmed", tr)
	}
}

func TestSleepsAtBoundary(t *testing.T) {
	c := newTest()
	c.Touch(t0)
	c.Advance(t0.Add(20 * time.Second))

	tr := c.Advance(t0.Add(60*time.Second - time.Millisecond))
	if tr.Changed {
		t.Fatalf("slept before the boundary: %+v", tr)
	}

	tr = c.Advance(t0.Add(60 * time.Second))
	if !tr.Changed || tr.From != Dimmed || tr.To != Sleeping {
		t.Fatalf("transition at boundary = %+v, want Dimmed->Sleeping", tr)
	}
}

func TestLongStallSkipsDimmed(t *testing.T) {
	c := newTest()
	c.Touch(t0)

	tr := c.Advance(t0.Add(5 * time.Minute))
	if tr.From != Active || tr.To != Sleeping {
		t.Fatalf("transition = %+v, want Active->Sleeping in one step", tr)
	}
}

func TestTouchRestoresActive(t *testing.T) {
	tests := []struct {
		name string
		prep func(c *Controller)
	}{
		{name: "from dimmed", prep: func(c *Controller) { c.Advance(t0.Add(20 * time.Second)) }},
		{name: "from sleeping", prep: func(c *Controller) { c.Advance(t0.Add(2 * time.Minute)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTest()
			c.Touch(t0)
			tt.prep(c)

			at := t0.Add(3 * time.Minute)
			tr := c.Touch(at)
			if !tr.Changed || tr.To != Active {
				t.Fatalf("touch transition = %+v, want change to Active", tr)
			}
			// Idle restarted: just under a dim window later we are still up.
			tr = c.Advance(at.Add(20*time.Second - time.Millisecond))
			if tr.To != Active {
				t.Fatalf("state shortly after touch = %v, want Active", tr.To)
			}
		})
	}
}

func TestTouchWhileActiveResetsIdle(t *testing.T) {
	c := newTest()
	c.Touch(t0)

	tr := c.Touch(t0.Add(19 * time.Second))
	if tr.Changed {
		t.Fatalf("touch while Active reported a change: %+v", tr)
	}
	// Without the reset this instant would be 38s idle and dim.
	tr = c.Advance(t0.Add(38 * time.Second))
	if tr.To != Active {
		t.Fatalf("state = %v, want Active after idle reset", tr.To)
	}
}

func TestExplicitSleep(t *testing.T) {
	c := newTest()
	c.Touch(t0)

	tr := c.Sleep(t0.Add(time.Second))
	if !tr.Changed || tr.From != Active || tr.To != Sleeping {
		t.Fatalf("transition = %+v, want Active->Sleeping", tr)
	}
	// Time alone never leaves Sleeping.
	tr = c.Advance(t0.Add(10 * time.Minute))
	if tr.Changed || tr.To != Sleeping {
		t.Fatalf("advance while sleeping = %+v, want no change", tr)
	}
	tr = c.Touch(t0.Add(11 * time.Minute))
	if tr.To != Active {
		t.Fatalf("touch after sleep = %+v, want Active", tr)
	}
}

func TestScheduledWake(t *testing.T) {
	c := newTest()
	c.Touch(t0)
	c.Sleep(t0.Add(time.Second))

	at := t0.Add(time.Minute)
	tr := c.Wake(at)
	if !tr.Changed || tr.From != Sleeping || tr.To != Active {
		t.Fatalf("wake transition = %+v, want Sleeping->Active", tr)
	}
	// A full idle cycle runs again before re-dimming.
	tr = c.Advance(at.Add(20*time.Second - time.Millisecond))
	if tr.To != Active {
		t.Fatalf("state after wake = %v, want Active", tr.To)
	}
}

func TestIdleFor(t *testing.T) {
	c := newTest()
	if got := c.IdleFor(t0); got != 0 {
		t.Fatalf("idle before any activity = %v, want 0", got)
	}
	c.Touch(t0)
	if got := c.IdleFor(t0.Add(7 * time.Second)); got != 7*time.Second {
		t.Fatalf("idle = %v, want 7s", got)
	}
}

func TestScriptedSequenceIsDeterministic(t *testing.T) {
	type step struct {
		at   time.Duration
		op   string
		want State
	}
	script := []step{
		{at: 0, op: "touch", want: Active},
		{at: 19 * time.Second, op: "advance", want: Active},
		{at: 20 * time.Second, op: "advance", want: Dimmed},
		{at: 25 * time.Second, op: "touch", want: Active},
		{at: 45 * time.Second, op: "advance", want: Dimmed},
		{at: 85 * time.Second, op: "advance", want: Sleeping},
		{at: 90 * time.Second, op: "advance", want: Sleeping},
		{at: 91 * time.Second, op: "touch", want: Active},
	}
	for run := 0; run < 2; run++ {
		c := newTest()
		for i, s := range script {
			var tr Transition
			switch s.op {
			case "touch":
				tr = c.Touch(t0.Add(s.at))
			case "advance":
				tr = c.Advance(t0.Add(s.at))
			}
			if tr.To != s.want {
				t.Fatalf("run %d step %d (%s at %v): state = %v, want %v",
					run, i, s.op, s.at, tr.To, s.want)
			}
		}
	}
}

func TestZeroConfigDefaults(t *testing.T) {
	c := New(Config{})
	c.Touch(t0)
	if tr := c.Advance(t0.Add(20 * time.Second)); tr.To != Dimmed {
		t.Fatalf("default dim window: state = %v, want Dimmed at 20s", tr.To)
	}
	if tr := c.Advance(t0.Add(60 * time.Second)); tr.To != Sleeping {
		t.Fatalf("default sleep window: state = %v, want Sleeping at 60s", tr.To)
	}
}
