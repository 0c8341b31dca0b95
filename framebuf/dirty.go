package framebuf

import "wristcode-go/gfx"

// tracker accumulates dirty rectangles between flushes. The pending set
// stays small (maxRegions) and non-overlapping; coverage is never dropped.
type tracker struct {
	bounds  gfx.Rect
	thrPct  int64
	max     int
	full    bool
	regions []gfx.Rect
}

func newTracker(bounds gfx.Rect, thresholdPct uint16, maxRegions int) *tracker {
	return &tracker{
		bounds:  bounds,
		thrPct:  int64(thresholdPct),
		max:     maxRegions,
		regions: make([]gfx.Rect, 0, maxRegions+1),
	}
}

func (t *tracker) markFull() {
	t.full = true
	t.regions = t.regions[:0]
}

func (t *tracker) mark(r gfx.Rect) {
	if t.full {
		return
	}
	r = r.Clip(t.bounds)
	if r.Empty() {
		return
	}
	if r == t.bounds {
		t.markFull()
		return
	}
	t.regions = append(t.regions, r)
	t.coalesce()
	t.reduce()
}

// shouldMerge applies the coalescing rule: overlapping rectangles always
// union (the pending set must stay non-overlapping); disjoint ones union
// when 100*area(union) <= thrPct*(area(a)+area(b)).
func (t *tracker) shouldMerge(a, b gfx.Rect) bool {
	if a.Intersects(b) {
		return true
	}
	u := a.Union(b)
	return 100*int64(u.Area()) <= t.thrPct*int64(a.Area()+b.Area())
}

// coalesce merges pairs until no pair satisfies shouldMerge.
func (t *tracker) coalesce() {
	for {
		merged := false
	scan:
		for i := 0; i < len(t.regions); i++ {
			for j := i + 1; j < len(t.regions); j++ {
				if t.shouldMerge(t.regions[i], t.regions[j]) {
					t.regions[i] = t.regions[i].Union(t.regions[j])
					t.regions = append(t.regions[:j], t.regions[j+1:]...)
					merged = true
					break scan
				}
			}
		}
		if !merged {
			return
		}
	}
}

// reduce enforces the cap by unioning the pair that wastes the least area.
func (t *tracker) reduce() {
	for len(t.regions) > t.max {
		bi, bj := 0, 1
		bestWaste := int64(1) << 62
		for i := 0; i < len(t.regions); i++ {
			for j := i + 1; j < len(t.regions); j++ {
				u := t.regions[i].Union(t.regions[j])
				waste := int64(u.Area()) - int64(t.regions[i].Area()) - int64(t.regions[j].Area())
				if waste < bestWaste {
					bestWaste, bi, bj = waste, i, j
				}
			}
		}
		t.regions[bi] = t.regions[bi].Union(t.regions[bj])
		t.regions = append(t.regions[:bj], t.regions[bj+1:]...)
		t.coalesce()
	}
	if !t.full && len(t.regions) == 1 && t.regions[0] == t.bounds {
		t.markFull()
	}
}

func (t *tracker) pending() bool { return t.full || len(t.regions) > 0 }

// take appends the pending set to dst, sorted by ascending row then
// column, and clears the tracker.
func (t *tracker) take(dst []gfx.Rect) []gfx.Rect {
	if t.full {
		dst = append(dst, t.bounds)
	} else {
		sortRects(t.regions)
		dst = append(dst, t.regions...)
	}
	t.full = false
	t.regions = t.regions[:0]
	return dst
}

// Insertion sort; the set never exceeds maxRegions.
func sortRects(rs []gfx.Rect) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rectLess(rs[j], rs[j-1]); j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

func rectLess(a, b gfx.Rect) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
