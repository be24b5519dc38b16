package rest

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/ratelimit"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const claimsKey = "claims"

// authenticate requires a valid bearer token and stores its claims in the context.
func authenticate(tokens *newsportal.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return fail(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return fail(c, http.StatusUnauthorized, "unauthorized", newsportal.ErrInvalidToken.Error())
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// requireRoles must run after authenticate.
func requireRoles(roles ...newsportal.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return fail(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			}
			if !slices.Contains(roles, claims.Role) {
				return fail(c, http.StatusForbidden, "forbidden", "role "+claims.Role.String()+" is not allowed")
			}

			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) (newsportal.Claims, bool) {
	claims, ok := c.Get(claimsKey).(newsportal.Claims)
	return claims, ok
}

// rateLimit rejects clients over budget with 429. Store errors let the request through.
func rateLimit(store ratelimit.Store, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			d, err := store.Take(ctx, ratelimit.ClientKey(c.Request()))
			if err != nil {
				log.WarnContext(ctx, "rate limit store failed", "error", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

			if !d.Allowed {
				retry := max(int(time.Until(d.Reset).Seconds()+0.999), 1)
				h.Set("Retry-After", strconv.Itoa(retry))
				return fail(c, http.StatusTooManyRequests, "too many requests", "rate limit exceeded")
			}

			return next(c)
		}
	}
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fu_news",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fu_news",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)

	return m
}

func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		if err != nil {
			status = errorCode(err)
		}

		m.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())

		return err
	}
}

// requestLogger logs every request once it is served.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = errorCode(err)
			}

			log.InfoContext(c.Request().Context(), "HTTP request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", c.RealIP(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	}
}

func errorCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
