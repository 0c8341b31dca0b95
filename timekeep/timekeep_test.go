package timekeep

import (
	"testing"
	"time"
)

var (
	mono = time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	wall = time.Date(2026, 8, 21, 14, 7, 39, 0, time.UTC)
)

func TestFirstRTCReadLeavesUnsynced(t *testing.T) {
	r := New(Config{})
	if got := r.Estimate().Confidence; got != Unsynced {
		t.Fatalf("initial confidence = %v, want %v", got, Unsynced)
	}

	out := r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)
	if out.Estimate.Confidence != RtcOnly {
		t.Fatalf("confidence = %v, want %v", out.Estimate.Confidence, RtcOnly)
	}
	if !out.Estimate.Wall.Equal(wall) {
		t.Fatalf("wall = %v, want %v", out.Estimate.Wall, wall)
	}
	if out.WriteRTC || out.Accepted || out.Rejected {
		t.Fatalf("outcome flags = %+v, want none set", out)
	}
}

func TestFixWithinBoundAccepted(t *testing.T) {
	r := New(Config{SkewBound: time.Minute})
	r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)

	fix := wall.Add(40 * time.Second)
	out := r.Reconcile(RTCReading{Wall: wall, OK: true}, &fix, mono.Add(time.Second))
	if !out.Accepted {
		t.Fatal("fix within bound not accepted")
	}
	if !out.WriteRTC {
		t.Fatal("accepted fix did not request an RTC write-back")
	}
	if !out.Estimate.Wall.Equal(fix) {
		t.Fatalf("wall = %v, want %v", out.Estimate.Wall, fix)
	}
	if out.Estimate.Confidence != NetworkSynced {
		t.Fatalf("confidence = %v, want %v", out.Estimate.Confidence, NetworkSynced)
	}
}

func TestFixOutsideBoundRejected(t *testing.T) {
	r := New(Config{SkewBound: time.Minute})
	r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)

	rtc2 := wall.Add(time.Second)
	fix := wall.Add(2 * time.Hour)
	out := r.Reconcile(RTCReading{Wall: rtc2, OK: true}, &fix, mono.Add(time.Second))
	if !out.Rejected {
		t.Fatal("fix outside bound not rejected")
	}
	if out.Accepted || out.WriteRTC {
		t.Fatalf("outcome flags = %+v, want rejection only", out)
	}
	if !out.Estimate.Wall.Equal(rtc2) {
		t.Fatalf("wall = %v, want RTC value %v", out.Estimate.Wall, rtc2)
	}
	if out.Estimate.Confidence != RtcOnly {
		t.Fatalf("confidence = %v, want %v unchanged", out.Estimate.Confidence, RtcOnly)
	}
}

func TestNegativeSkewSymmetric(t *testing.T) {
	r := New(Config{SkewBound: time.Minute})
	r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)

	fix := wall.Add(-40 * time.Second)
	out := r.Reconcile(RTCReading{Wall: wall, OK: true}, &fix, mono.Add(time.Second))
	if !out.Accepted {
		t.Fatal("fix behind the RTC within bound not accepted")
	}
}

func TestSyncedDecaysToStale(t *testing.T) {
	r := New(Config{SkewBound: time.Minute, StaleAfter: time.Hour})
	fix := wall
	r.Reconcile(RTCReading{Wall: wall, OK: true}, &fix, mono)

	// Just inside the window: still synced.
	rtc := wall.Add(time.Hour)
	out := r.Reconcile(RTCReading{Wall: rtc, OK: true}, nil, mono.Add(time.Hour))
	if out.Estimate.Confidence != NetworkSynced {
		t.Fatalf("confidence at window edge = %v, want %v", out.Estimate.Confidence, NetworkSynced)
	}

	// Past it: stale, but the wall clock keeps tracking the RTC.
	rtc = wall.Add(time.Hour + time.Minute)
	out = r.Reconcile(RTCReading{Wall: rtc, OK: true}, nil, mono.Add(time.Hour+time.Minute))
	if out.Estimate.Confidence != Stale {
		t.Fatalf("confidence past window = %v, want %v", out.Estimate.Confidence, Stale)
	}
	if !out.Estimate.Wall.Equal(rtc) {
		t.Fatalf("stale wall = %v, want %v", out.Estimate.Wall, rtc)
	}

	// Only a fresh accepted fix restores NetworkSynced.
	rtc = rtc.Add(time.Second)
	out = r.Reconcile(RTCReading{Wall: rtc, OK: true}, nil, mono.Add(time.Hour+2*time.Minute))
	if out.Estimate.Confidence != Stale {
		t.Fatalf("RTC read alone lifted staleness: %v", out.Estimate.Confidence)
	}
	fix2 := rtc.Add(time.Second)
	out = r.Reconcile(RTCReading{Wall: rtc, OK: true}, &fix2, mono.Add(time.Hour+3*time.Minute))
	if !out.Accepted || out.Estimate.Confidence != NetworkSynced {
		t.Fatalf("fresh fix after staleness: accepted=%v confidence=%v", out.Accepted, out.Estimate.Confidence)
	}
}

func TestRTCFailureAdvancesByElapsed(t *testing.T) {
	r := New(Config{})
	r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)

	out := r.Reconcile(RTCReading{}, nil, mono.Add(250*time.Millisecond))
	want := wall.Add(250 * time.Millisecond)
	if !out.Estimate.Wall.Equal(want) {
		t.Fatalf("wall after RTC failure = %v, want %v", out.Estimate.Wall, want)
	}
	if out.Estimate.Confidence != RtcOnly {
		t.Fatalf("confidence = %v, want %v", out.Estimate.Confidence, RtcOnly)
	}

	out = r.Reconcile(RTCReading{}, nil, mono.Add(550*time.Millisecond))
	want = wall.Add(550 * time.Millisecond)
	if !out.Estimate.Wall.Equal(want) {
		t.Fatalf("wall after second failure = %v, want %v", out.Estimate.Wall, want)
	}
}

func TestDeadRTCFirstFixAccepted(t *testing.T) {
	r := New(Config{SkewBound: time.Minute})

	// Nothing to compare against, so any fix must be taken.
	fix := wall
	out := r.Reconcile(RTCReading{}, &fix, mono)
	if !out.Accepted || !out.WriteRTC {
		t.Fatalf("outcome = %+v, want accept with write-back", out)
	}
	if out.Estimate.Confidence != NetworkSynced {
		t.Fatalf("confidence = %v, want %v", out.Estimate.Confidence, NetworkSynced)
	}
}

func TestFixCheckedAgainstAdvancedEstimate(t *testing.T) {
	r := New(Config{SkewBound: time.Minute})
	r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)

	// RTC gone, estimate coasting. A wild fix must still be rejected.
	fix := wall.Add(3 * time.Hour)
	out := r.Reconcile(RTCReading{}, &fix, mono.Add(time.Second))
	if !out.Rejected {
		t.Fatal("wild fix accepted with a coasting estimate as reference")
	}
	want := wall.Add(time.Second)
	if !out.Estimate.Wall.Equal(want) {
		t.Fatalf("wall = %v, want coasted %v", out.Estimate.Wall, want)
	}
}

func TestUnsyncedStaysUnsyncedWithoutSources(t *testing.T) {
	r := New(Config{})
	out := r.Reconcile(RTCReading{}, nil, mono)
	if out.Estimate.Confidence != Unsynced || !out.Estimate.Wall.IsZero() {
		t.Fatalf("estimate = %+v, want zero unsynced", out.Estimate)
	}
}

func TestLocalAppliesOffset(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		hour    int
		minute  int
		wantDay int
	}{
		{name: "utc", offset: 0, hour: 14, minute: 7, wantDay: 21},
		{name: "east", offset: 330, hour: 19, minute: 37, wantDay: 21},
		{name: "west past midnight", offset: -15 * 60, hour: 23, minute: 7, wantDay: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Config{UTCOffsetMinutes: tt.offset})
			r.Reconcile(RTCReading{Wall: wall, OK: true}, nil, mono)
			loc := r.Local()
			if loc.Hour() != tt.hour || loc.Minute() != tt.minute || loc.Day() != tt.wantDay {
				t.Fatalf("local = %v, want %02d:%02d day %d", loc, tt.hour, tt.minute, tt.wantDay)
			}
		})
	}
}

func TestConfidenceString(t *testing.T) {
	tests := []struct {
		c    Confidence
		want string
	}{
		{Unsynced, "unsynced"},
		{RtcOnly, "rtc"},
		{NetworkSynced, "synced"},
		{Stale, "stale"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Fatalf("String(%d) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
