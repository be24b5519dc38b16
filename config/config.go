package config

import (
	"github.com/daniilsolovey/fu-news/internal/ratelimit"
	"github.com/go-pg/pg/v10"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host       string
		Port       int
		LogQueries bool
	}
	Auth       Auth
	RateLimit  RateLimit
	Migrations struct {
		Dir string
		Up  bool
	}
}

// Auth configures token signing and the built-in administrator.
type Auth struct {
	Secret        string
	Issuer        string
	TTL           Duration
	AdminEmail    string
	AdminPassword string
}

type RateLimit struct {
	Requests  int
	Window    Duration
	Size      int
	RedisAddr string
}

func (r RateLimit) Config() ratelimit.Config {
	return ratelimit.Config{
		Requests:  r.Requests,
		Window:    r.Window.Duration,
		Size:      r.Size,
		RedisAddr: r.RedisAddr,
	}
}
