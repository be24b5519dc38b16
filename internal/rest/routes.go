package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daniilsolovey/fu-news/docs"
	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/ratelimit"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix = "/api"

	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"
	rpcPath     = "/rpc/"
)

type Options struct {
	Portal   Portal
	Tokens   *newsportal.Tokens
	Limiter  ratelimit.Store
	Registry *prometheus.Registry
	// RPC is mounted under /rpc/ when set.
	RPC    http.Handler
	Logger *slog.Logger
}

// RegisterRoutes builds the HTTP server with middleware and every route.
func RegisterRoutes(opts Options) *echo.Echo {
	h := NewHandler(opts.Portal, opts.Logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = h.httpErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(opts.Logger))
	if opts.Registry != nil {
		e.Use(newMetrics(opts.Registry).middleware)
	}
	if opts.Limiter != nil {
		e.Use(rateLimit(opts.Limiter, opts.Logger))
	}
	e.Use(middleware.Recover())

	e.GET(healthPath, h.Health)
	e.GET(swaggerPath, swaggerDoc)
	if opts.Registry != nil {
		e.GET(metricsPath, echo.WrapHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	if opts.RPC != nil {
		e.Any(rpcPath, echo.WrapHandler(opts.RPC))
	}

	registerAPIRoutes(e.Group(apiPrefix), h, opts.Tokens)

	return e
}

func registerAPIRoutes(api *echo.Group, h *Handler, tokens *newsportal.Tokens) {
	auth := authenticate(tokens)
	staff := requireRoles(newsportal.RoleStaff)
	editors := requireRoles(newsportal.RoleAdmin, newsportal.RoleStaff)
	admin := requireRoles(newsportal.RoleAdmin)

	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", h.Me, auth)

	news := api.Group("/news-articles")
	news.GET("", h.News)
	news.GET("/active", h.ActiveNews)
	news.GET("/my-news", h.MyNews, auth, staff)
	news.GET("/:id", h.NewsByID)
	news.POST("", h.CreateNews, auth, staff)
	news.PUT("/:id", h.UpdateNews, auth, staff)
	news.DELETE("/:id", h.DeleteNews, auth, staff)

	categories := api.Group("/categories")
	categories.GET("", h.Categories)
	categories.GET("/active", h.ActiveCategories)
	categories.GET("/:id", h.CategoryByID)
	categories.POST("", h.CreateCategory, auth, editors)
	categories.PUT("/:id", h.UpdateCategory, auth, editors)
	categories.DELETE("/:id", h.DeleteCategory, auth, editors)

	tags := api.Group("/tags")
	tags.GET("", h.Tags)
	tags.GET("/:id", h.TagByID)
	tags.POST("", h.CreateTag, auth, editors)
	tags.PUT("/:id", h.UpdateTag, auth, editors)
	tags.DELETE("/:id", h.DeleteTag, auth, editors)

	accounts := api.Group("/accounts", auth, admin)
	accounts.GET("", h.Accounts)
	accounts.GET("/:id", h.AccountByID)
	accounts.POST("", h.CreateAccount)
	accounts.PUT("/:id", h.UpdateAccount)
	accounts.DELETE("/:id", h.DeleteAccount)

	api.GET("/reports/statistics", h.Statistics, auth, admin)
}

func swaggerDoc(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(docs.SwaggerInfo.ReadDoc()))
}

// httpErrorHandler renders router and middleware errors in the response envelope.
func (h *Handler) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := internalErrorMessage
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		h.log.ErrorContext(c.Request().Context(), "unhandled error", "error", err, "path", c.Path())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = fail(c, status, message)
	}
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
	}
}
