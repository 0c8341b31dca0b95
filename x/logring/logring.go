// Package logring keeps the newest log bytes in a fixed ring so the
// crash path can show what led up to a fault. Oldest bytes fall off
// the back once the ring is full.
package logring

// Ring is a single-owner byte ring. The loop thread writes, the crash
// path reads. Not safe for concurrent use.
type Ring struct {
	buf  []byte
	mask uint32
	wr   uint32 // monotonic; the retained window is [wr-Len(), wr)
}

func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("logring: size must be power of two >= 2")
	}
	return &Ring{
		buf:  make([]byte, size),
		mask: uint32(size - 1),
	}
}

// Write implements io.Writer. It never fails; when p exceeds the free
// window the oldest retained bytes are overwritten.
func (r *Ring) Write(p []byte) (int, error) {
	n := len(p)
	if n == 0 {
		return 0, nil
	}
	if n >= len(r.buf) {
		// Only the newest ring-sized window of p survives.
		p = p[n-len(r.buf):]
	}
	size := uint32(len(r.buf))
	wrIdx := r.wr & r.mask
	first := size - wrIdx
	if int(first) > len(p) {
		first = uint32(len(p))
	}
	copy(r.buf[wrIdx:wrIdx+first], p[:first])
	if second := len(p) - int(first); second > 0 {
		copy(r.buf[:second], p[first:])
	}
	r.wr += uint32(len(p))
	return n, nil
}

// Len reports how many bytes are currently retained.
func (r *Ring) Len() int {
	if r.wr < uint32(len(r.buf)) {
		return int(r.wr)
	}
	return len(r.buf)
}

func (r *Ring) Cap() int { return len(r.buf) }

// Snapshot appends the retained bytes, oldest first, to dst and
// returns the extended slice.
func (r *Ring) Snapshot(dst []byte) []byte {
	n := uint32(r.Len())
	if n == 0 {
		return dst
	}
	size := uint32(len(r.buf))
	rdIdx := (r.wr - n) & r.mask
	first := size - rdIdx
	if first > n {
		first = n
	}
	dst = append(dst, r.buf[rdIdx:rdIdx+first]...)
	if second := n - first; second > 0 {
		dst = append(dst, r.buf[:second]...)
	}
	return dst
}

// Tail appends at most the newest n retained bytes to dst.
func (r *Ring) Tail(dst []byte, n int) []byte {
	have := r.Len()
	if n > have {
		n = have
	}
	if n <= 0 {
		return dst
	}
	full := r.Snapshot(nil)
	return append(dst, full[len(full)-n:]...)
}

// Reset drops everything retained.
func (r *Ring) Reset() { r.wr = 0 }
