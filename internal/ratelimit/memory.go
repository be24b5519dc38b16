package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// MemoryStore keeps a token bucket per client in a bounded LRU.
// Idle clients are evicted after one window, when their bucket would be full again.
type MemoryStore struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryStore(cfg Config) *MemoryStore {
	cfg = cfg.Normalize()

	return &MemoryStore{
		limiters: expirable.NewLRU[string, *rate.Limiter](cfg.Size, nil, cfg.Window),
		limit:    rate.Every(cfg.Window / time.Duration(cfg.Requests)),
		burst:    cfg.Requests,
		window:   cfg.Window,
		now:      time.Now,
	}
}

func (s *MemoryStore) Take(_ context.Context, key string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	lim, ok := s.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(s.limit, s.burst)
	}
	s.limiters.Add(key, lim)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	reset := now
	if tokens < 1 {
		wait := time.Duration((1 - tokens) / float64(s.limit) * float64(time.Second))
		reset = now.Add(wait)
	}

	return Decision{
		Allowed:   allowed,
		Limit:     s.burst,
		Remaining: max(int(tokens), 0),
		Reset:     reset,
	}, nil
}

// Len returns the number of tracked clients.
func (s *MemoryStore) Len() int {
	return s.limiters.Len()
}
