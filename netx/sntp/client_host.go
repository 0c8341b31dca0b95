//go:build !tinygo

package sntp

import (
	"net"
	"time"

	"wristcode-go/x/strx"
)

// Client fetches best-effort time fixes over UDP. Any failure (resolve,
// timeout, malformed reply) reports ok=false; the caller keeps running
// on the RTC.
type Client struct {
	// Host is the NTP server. Empty selects pool.ntp.org.
	Host string
	// Timeout bounds the whole exchange. Zero selects 2 seconds.
	Timeout time.Duration
}

func (c *Client) FetchTimeFix() (time.Time, bool) {
	host := strx.Coalesce(c.Host, "pool.ntp.org")
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}

	conn, err := net.DialTimeout("udp", net.JoinHostPort(host, "123"), timeout)
	if err != nil {
		return time.Time{}, false
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return time.Time{}, false
	}

	req := NewRequest()
	if _, err := conn.Write(req[:]); err != nil {
		return time.Time{}, false
	}
	var reply [PacketSize]byte
	n, err := conn.Read(reply[:])
	if err != nil {
		return time.Time{}, false
	}
	t, err := ParseReply(reply[:n])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
