package rest

import (
	"net/http"
	"strings"

	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/labstack/echo/v4"
)

// News handles GET /api/news-articles
// @Summary List news
// @Description Filters, sorts and pages news articles. Supports searchTerm over title, headline and content.
// @Tags news
// @Produce json
// @Param searchTerm query string false "Substring of title, headline or content"
// @Param status query bool false "Filter by status"
// @Param categoryId query int false "Filter by category ID"
// @Param createdById query int false "Filter by author ID"
// @Param tagId query int false "Filter by tag ID"
// @Param fromDate query string false "Created on or after (2006-01-02 or RFC 3339)"
// @Param toDate query string false "Created on or before (2006-01-02 or RFC 3339)"
// @Param sortBy query string false "title, createdDate or category"
// @Param isDescending query bool false "Sort descending"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} rest.Response{data=paging.Envelope[rest.NewsArticle]}
// @Failure 400,500 {object} rest.Response
// @Router /api/news-articles [get]
func (h *Handler) News(c echo.Context) error {
	var req NewsListRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	env, err := h.portal.NewsArticles(c.Request().Context(), req.Query())
	if err != nil {
		return h.handleError(c, err)
	}

	return okPage(c, "news retrieved", paging.MapEnvelope(env, NewNewsArticle))
}

// ActiveNews handles GET /api/news-articles/active
// @Summary List active news
// @Description Public feed of news with status true, newest first
// @Tags news
// @Produce json
// @Success 200 {object} rest.Response{data=[]rest.NewsArticle}
// @Failure 500 {object} rest.Response
// @Router /api/news-articles/active [get]
func (h *Handler) ActiveNews(c echo.Context) error {
	list, err := h.portal.ActiveNews(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "news retrieved", Map(list, NewNewsArticle))
}

// MyNews handles GET /api/news-articles/my-news
// @Summary List own news
// @Tags news
// @Produce json
// @Security Bearer
// @Success 200 {object} rest.Response{data=[]rest.NewsArticle}
// @Failure 401,403,500 {object} rest.Response
// @Router /api/news-articles/my-news [get]
func (h *Handler) MyNews(c echo.Context) error {
	claims, _ := claimsFrom(c)

	list, err := h.portal.NewsByCreator(c.Request().Context(), claims.AccountID)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "news retrieved", Map(list, NewNewsArticle))
}

// NewsByID handles GET /api/news-articles/:id
// @Summary Get news by ID
// @Tags news
// @Produce json
// @Param id path string true "News ID, e.g. NEWS0001"
// @Success 200 {object} rest.Response{data=rest.NewsArticle}
// @Failure 404,500 {object} rest.Response
// @Router /api/news-articles/{id} [get]
func (h *Handler) NewsByID(c echo.Context) error {
	news, err := h.portal.NewsByID(c.Request().Context(), newsID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "news retrieved", NewNewsArticle(*news))
}

// CreateNews handles POST /api/news-articles
// @Summary Create news
// @Description The ID is assigned as the next NEWSnnnn value. The caller becomes the author.
// @Tags news
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body rest.NewsArticleRequest true "News"
// @Success 201 {object} rest.Response{data=rest.NewsArticle}
// @Failure 400,401,403,500 {object} rest.Response
// @Router /api/news-articles [post]
func (h *Handler) CreateNews(c echo.Context) error {
	var req NewsArticleRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}
	claims, _ := claimsFrom(c)

	news, err := h.portal.CreateNews(c.Request().Context(), req.Input(), claims.AccountID)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusCreated, "news created", NewNewsArticle(*news))
}

// UpdateNews handles PUT /api/news-articles/:id
// @Summary Update news
// @Tags news
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "News ID"
// @Param request body rest.NewsArticleRequest true "News"
// @Success 200 {object} rest.Response{data=rest.NewsArticle}
// @Failure 400,401,403,404,500 {object} rest.Response
// @Router /api/news-articles/{id} [put]
func (h *Handler) UpdateNews(c echo.Context) error {
	var req NewsArticleRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}
	claims, _ := claimsFrom(c)

	news, err := h.portal.UpdateNews(c.Request().Context(), newsID(c), req.Input(), claims.AccountID)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "news updated", NewNewsArticle(*news))
}

// DeleteNews handles DELETE /api/news-articles/:id
// @Summary Delete news
// @Tags news
// @Produce json
// @Security Bearer
// @Param id path string true "News ID"
// @Success 200 {object} rest.Response
// @Failure 401,403,404,500 {object} rest.Response
// @Router /api/news-articles/{id} [delete]
func (h *Handler) DeleteNews(c echo.Context) error {
	if err := h.portal.DeleteNews(c.Request().Context(), newsID(c)); err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "news deleted", nil)
}

// Statistics handles GET /api/reports/statistics
// @Summary News statistics
// @Description News created in the period, newest first. Plain dates cover the whole day.
// @Tags reports
// @Produce json
// @Security Bearer
// @Param startDate query string true "Period start"
// @Param endDate query string true "Period end"
// @Success 200 {object} rest.Response{data=rest.NewsStatistics}
// @Failure 400,401,403,500 {object} rest.Response
// @Router /api/reports/statistics [get]
func (h *Handler) Statistics(c echo.Context) error {
	var req StatisticsRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	stats, err := h.portal.NewsStatistics(c.Request().Context(), *req.StartDate.Start(), *req.EndDate.End())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "statistics retrieved", NewNewsStatistics(*stats))
}

func newsID(c echo.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("id")))
}
