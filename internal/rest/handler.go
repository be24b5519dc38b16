package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/labstack/echo/v4"
)

// Portal is the business layer served over HTTP. *newsportal.Manager implements it.
type Portal interface {
	Login(ctx context.Context, email, password string) (*newsportal.Session, error)

	NewsArticles(ctx context.Context, q newsportal.NewsQuery) (paging.Envelope[newsportal.News], error)
	ActiveNews(ctx context.Context) ([]newsportal.News, error)
	NewsByCreator(ctx context.Context, accountID int) ([]newsportal.News, error)
	NewsByID(ctx context.Context, id string) (*newsportal.News, error)
	CreateNews(ctx context.Context, in newsportal.NewsInput, authorID int) (*newsportal.News, error)
	UpdateNews(ctx context.Context, id string, in newsportal.NewsInput, editorID int) (*newsportal.News, error)
	DeleteNews(ctx context.Context, id string) error

	Categories(ctx context.Context, q newsportal.CategoryQuery) (paging.Envelope[newsportal.Category], error)
	ActiveCategories(ctx context.Context) ([]newsportal.Category, error)
	CategoryByID(ctx context.Context, id int) (*newsportal.Category, error)
	CreateCategory(ctx context.Context, in newsportal.CategoryInput) (*newsportal.Category, error)
	UpdateCategory(ctx context.Context, id int, in newsportal.CategoryInput) (*newsportal.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	Accounts(ctx context.Context, q newsportal.AccountQuery) (paging.Envelope[newsportal.Account], error)
	AccountByID(ctx context.Context, id int) (*newsportal.Account, error)
	CreateAccount(ctx context.Context, in newsportal.AccountInput) (*newsportal.Account, error)
	UpdateAccount(ctx context.Context, id int, in newsportal.AccountInput) (*newsportal.Account, error)
	DeleteAccount(ctx context.Context, id int) error

	Tags(ctx context.Context, q newsportal.TagQuery) (paging.Envelope[newsportal.Tag], error)
	TagByID(ctx context.Context, id int) (*newsportal.Tag, error)
	CreateTag(ctx context.Context, in newsportal.TagInput) (*newsportal.Tag, error)
	UpdateTag(ctx context.Context, id int, in newsportal.TagInput) (*newsportal.Tag, error)
	DeleteTag(ctx context.Context, id int) error

	NewsStatistics(ctx context.Context, from, to time.Time) (*newsportal.NewsStatistics, error)
}

type Handler struct {
	portal Portal
	log    *slog.Logger
}

func NewHandler(portal Portal, log *slog.Logger) *Handler {
	return &Handler{
		portal: portal,
		log:    log,
	}
}

// Login handles POST /api/auth/login
// @Summary Sign in
// @Description Exchanges email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.Response{data=rest.LoginResponse}
// @Failure 400,401,500 {object} rest.Response
// @Router /api/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	session, err := h.portal.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "signed in", NewLoginResponse(*session))
}

// Me handles GET /api/auth/me
// @Summary Current account
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} rest.Response{data=rest.Account}
// @Failure 401,404,500 {object} rest.Response
// @Router /api/auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	claims, _ := claimsFrom(c)
	if claims.Role == newsportal.RoleAdmin {
		return ok(c, http.StatusOK, "account retrieved", Account{
			AccountID: claims.AccountID,
			Name:      newsportal.AdminName,
			Email:     claims.Email,
			Role:      int(claims.Role),
			RoleName:  claims.Role.String(),
		})
	}

	account, err := h.portal.AccountByID(c.Request().Context(), claims.AccountID)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "account retrieved", NewAccountDetail(*account))
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
