package ft3168

// Poller turns raw touch reads into a dependable Down/Contact/Up stream.
// In polled mode the controller's event bits routinely miss the press
// and lift edges, so presence transitions are tracked here and missing
// phases are synthesized. Repeated identical contacts report nothing,
// which bounds bus traffic while a finger rests on the panel.
type Poller struct {
	dev  *Device
	pts  [2]Point
	down bool
	last Point
}

func NewPoller(dev *Device) *Poller { return &Poller{dev: dev} }

// Next reads the controller once and returns at most one event.
// ok=false means nothing new. Transient glitch reads report nothing.
func (p *Poller) Next() (Point, bool, error) {
	n, err := p.dev.ReadTouches(&p.pts)
	if err == ErrGlitch {
		return Point{}, false, nil
	}
	if err != nil {
		return Point{}, false, err
	}
	if n == 0 {
		if p.down {
			// Finger left without a lift event; synthesize it.
			p.down = false
			ev := p.last
			ev.Phase = PhaseUp
			return ev, true, nil
		}
		return Point{}, false, nil
	}

	pt := p.pts[0]
	switch pt.Phase {
	case PhaseUp:
		p.down = false
		p.last = pt
		return pt, true, nil
	case PhaseDown:
		p.down = true
		p.last = pt
		return pt, true, nil
	default:
		if !p.down {
			// Missed the press edge.
			pt.Phase = PhaseDown
		} else {
			if pt.X == p.last.X && pt.Y == p.last.Y {
				return Point{}, false, nil
			}
			pt.Phase = PhaseContact
		}
		p.down = true
		p.last = pt
		return pt, true, nil
	}
}
