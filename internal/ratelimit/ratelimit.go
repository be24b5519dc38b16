package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultRequests = 40
	DefaultWindow   = time.Minute
	DefaultSize     = 10_000
)

// Decision is the outcome of one request against a client's budget.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Store counts requests per client key.
type Store interface {
	Take(ctx context.Context, key string) (Decision, error)
}

// Config holds the limit shared by all clients.
type Config struct {
	Requests  int
	Window    time.Duration
	Size      int
	RedisAddr string
}

// Normalize fills zero or negative values with defaults.
func (c Config) Normalize() Config {
	if c.Requests <= 0 {
		c.Requests = DefaultRequests
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	return c
}

// ClientKey identifies the caller by the first X-Forwarded-For entry, falling back to the remote IP.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
