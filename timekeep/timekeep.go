// Package timekeep reconciles the two time sources the watch has: the
// battery-backed RTC (drifts, survives reboots) and occasional network
// fixes (accurate, rarely available). It never performs I/O; the loop
// reads the RTC and fetches fixes, then feeds both in here.
package timekeep

import "time"

// Confidence tags how trustworthy the current estimate is.
type Confidence uint8

const (
	// Unsynced: no valid reading from any source yet.
	Unsynced Confidence = iota
	// RtcOnly: tracking the RTC, never network-synced since boot.
	RtcOnly
	// NetworkSynced: a network fix was accepted recently.
	NetworkSynced
	// Stale: was NetworkSynced, but the fix outlived the staleness
	// window. Still displayed, never blanked.
	Stale
)

func (c Confidence) String() string {
	switch c {
	case RtcOnly:
		return "rtc"
	case NetworkSynced:
		return "synced"
	case Stale:
		return "stale"
	}
	return "unsynced"
}

// Estimate is the current wall-clock belief, always UTC.
type Estimate struct {
	Wall       time.Time
	Confidence Confidence
}

func (e Estimate) Valid() bool { return e.Confidence != Unsynced && !e.Wall.IsZero() }

// RTCReading is one hardware clock sample. OK=false covers both bus
// failures and an invalid (oscillator-stopped) clock.
type RTCReading struct {
	Wall time.Time
	OK   bool
}

// Outcome reports what one reconcile pass decided.
type Outcome struct {
	Estimate Estimate
	// WriteRTC asks the caller to persist the accepted fix into the RTC
	// so the next reboot starts accurate without network.
	WriteRTC bool
	Accepted bool
	Rejected bool
}

type Config struct {
	// SkewBound is the largest |fix - reference| an incoming network fix
	// may show and still be accepted. Zero selects 10 minutes.
	SkewBound time.Duration
	// StaleAfter decays NetworkSynced to Stale once the accepted fix is
	// this old. Zero selects 24 hours.
	StaleAfter time.Duration
	// UTCOffsetMinutes shifts Local presentation. May be negative.
	UTCOffsetMinutes int
}

type Reconciler struct {
	cfg  Config
	zone *time.Location

	est       Estimate
	lastNow   time.Time // monotonic reference of the previous pass
	haveNow   bool
	fixAtNow  time.Time // monotonic reference of the last accepted fix
	haveFixAt bool
}

func New(cfg Config) *Reconciler {
	if cfg.SkewBound == 0 {
		cfg.SkewBound = 10 * time.Minute
	}
	if cfg.StaleAfter == 0 {
		cfg.StaleAfter = 24 * time.Hour
	}
	return &Reconciler{
		cfg:  cfg,
		zone: time.FixedZone("local", cfg.UTCOffsetMinutes*60),
	}
}

// Reconcile folds one RTC sample and an optional network fix into the
// estimate. now must come from the monotonic clock; it orders passes and
// ages the last fix, it is never shown.
func (r *Reconciler) Reconcile(rtc RTCReading, fix *time.Time, now time.Time) Outcome {
	var out Outcome

	if fix != nil {
		ref, haveRef := r.reference(rtc, now)
		skew := fix.Sub(ref)
		if skew < 0 {
			skew = -skew
		}
		if !haveRef || skew <= r.cfg.SkewBound {
			r.est = Estimate{Wall: fix.UTC(), Confidence: NetworkSynced}
			r.fixAtNow = now
			r.haveFixAt = true
			r.lastNow = now
			r.haveNow = true
			out.Accepted = true
			out.WriteRTC = true
			out.Estimate = r.est
			return out
		}
		// Outside the bound: a corrupt or hostile source. Keep tracking
		// the RTC as if no fix arrived.
		out.Rejected = true
	}

	switch {
	case rtc.OK:
		r.est.Wall = rtc.Wall.UTC()
		if r.est.Confidence == Unsynced {
			r.est.Confidence = RtcOnly
		}
	case r.est.Valid() && r.haveNow:
		// RTC unreadable this pass: advance by elapsed monotonic time so
		// the face keeps moving.
		r.est.Wall = r.est.Wall.Add(now.Sub(r.lastNow))
	}

	if r.est.Confidence == NetworkSynced && r.haveFixAt &&
		now.Sub(r.fixAtNow) > r.cfg.StaleAfter {
		r.est.Confidence = Stale
	}

	r.lastNow = now
	r.haveNow = true
	out.Estimate = r.est
	return out
}

// reference picks what an incoming fix is checked against: the RTC
// sample when it is valid, otherwise the advanced estimate. No reference
// at all (first boot, dead RTC) accepts the fix unconditionally.
func (r *Reconciler) reference(rtc RTCReading, now time.Time) (time.Time, bool) {
	if rtc.OK {
		return rtc.Wall.UTC(), true
	}
	if r.est.Valid() && r.haveNow {
		return r.est.Wall.Add(now.Sub(r.lastNow)), true
	}
	return time.Time{}, false
}

// Estimate returns the current belief without advancing anything.
func (r *Reconciler) Estimate() Estimate { return r.est }

// Local is the estimate shifted into the configured presentation zone.
// Hours, minutes and date for the face all derive from this one value.
func (r *Reconciler) Local() time.Time { return r.est.Wall.In(r.zone) }
