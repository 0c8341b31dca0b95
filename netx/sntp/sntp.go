// Package sntp speaks just enough SNTPv4 (RFC 4330) to pull one
// wall-clock fix: a fixed 48-byte query and the server transmit
// timestamp out of the reply. The codec is pure; the network client
// lives behind a host build tag.
package sntp

import (
	"encoding/binary"
	"errors"
	"time"
)

const PacketSize = 48

// Seconds between the NTP epoch (1900-01-01) and the Unix epoch.
const ntpUnixDelta = 2208988800

var (
	ErrShortPacket    = errors.New("sntp: short packet")
	ErrNotServerReply = errors.New("sntp: not a server reply")
	ErrUnsynchronized = errors.New("sntp: server clock not synchronized")
	ErrKissOfDeath    = errors.New("sntp: kiss-of-death reply")
)

// NewRequest builds a client query: leap 0, version 4, mode 3, all
// timestamp fields zero.
func NewRequest() [PacketSize]byte {
	var b [PacketSize]byte
	b[0] = 0x23
	return b
}

// ParseReply validates a server response and returns its transmit time
// in UTC.
func ParseReply(b []byte) (time.Time, error) {
	if len(b) < PacketSize {
		return time.Time{}, ErrShortPacket
	}
	if mode := b[0] & 0x07; mode != 4 {
		return time.Time{}, ErrNotServerReply
	}
	if leap := b[0] >> 6; leap == 3 {
		return time.Time{}, ErrUnsynchronized
	}
	if stratum := b[1]; stratum == 0 {
		return time.Time{}, ErrKissOfDeath
	}
	secs := binary.BigEndian.Uint32(b[40:44])
	frac := binary.BigEndian.Uint32(b[44:48])
	if secs == 0 && frac == 0 {
		return time.Time{}, ErrUnsynchronized
	}
	return toTime(secs, frac), nil
}

// toTime converts an NTP timestamp. The 32-bit seconds field rolls over
// on 2036-02-07; a value with the high bit clear is read as era 1, which
// keeps the conversion valid until 2104.
func toTime(secs, frac uint32) time.Time {
	sec := int64(secs) - ntpUnixDelta
	if secs < 1<<31 {
		sec += 1 << 32
	}
	nsec := (uint64(frac) * uint64(time.Second)) >> 32
	return time.Unix(sec, int64(nsec)).UTC()
}
