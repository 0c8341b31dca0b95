//go:build !tinygo

package openmeteo

import (
	"io"
	"net/http"
	"time"
)

// Client fetches conditions over HTTPS, best effort. Failures report
// ok=false and the face keeps its last payload.
type Client struct {
	Query Query
	// HTTP overrides the transport, mainly for tests. Nil selects a
	// client with a 5 second timeout.
	HTTP *http.Client
}

func (c *Client) FetchCurrentConditions() (Conditions, bool) {
	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	resp, err := hc.Get(URL(c.Query))
	if err != nil {
		return Conditions{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Conditions{}, false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Conditions{}, false
	}
	cond, err := Decode(body, time.Now())
	if err != nil {
		return Conditions{}, false
	}
	return cond, true
}
