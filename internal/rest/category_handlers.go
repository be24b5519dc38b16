package rest

import (
	"net/http"

	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/labstack/echo/v4"
)

// Categories handles GET /api/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Param searchTerm query string false "Substring of name or description"
// @Param isActive query bool false "Filter by active flag"
// @Param parentCategoryId query int false "Filter by parent category"
// @Param sortBy query string false "name or status"
// @Param isDescending query bool false "Sort descending"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} rest.Response{data=paging.Envelope[rest.Category]}
// @Failure 400,500 {object} rest.Response
// @Router /api/categories [get]
func (h *Handler) Categories(c echo.Context) error {
	var req CategoryListRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	env, err := h.portal.Categories(c.Request().Context(), req.Query())
	if err != nil {
		return h.handleError(c, err)
	}

	return okPage(c, "categories retrieved", paging.MapEnvelope(env, NewCategory))
}

// ActiveCategories handles GET /api/categories/active
// @Summary List active categories
// @Tags categories
// @Produce json
// @Success 200 {object} rest.Response{data=[]rest.Category}
// @Failure 500 {object} rest.Response
// @Router /api/categories/active [get]
func (h *Handler) ActiveCategories(c echo.Context) error {
	list, err := h.portal.ActiveCategories(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "categories retrieved", Map(list, NewCategory))
}

// CategoryByID handles GET /api/categories/:id
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} rest.Response{data=rest.Category}
// @Failure 400,404,500 {object} rest.Response
// @Router /api/categories/{id} [get]
func (h *Handler) CategoryByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	category, err := h.portal.CategoryByID(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "category retrieved", NewCategory(*category))
}

// CreateCategory handles POST /api/categories
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body rest.CategoryRequest true "Category"
// @Success 201 {object} rest.Response{data=rest.Category}
// @Failure 400,401,403,500 {object} rest.Response
// @Router /api/categories [post]
func (h *Handler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	category, err := h.portal.CreateCategory(c.Request().Context(), req.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusCreated, "category created", NewCategory(*category))
}

// UpdateCategory handles PUT /api/categories/:id
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Category ID"
// @Param request body rest.CategoryRequest true "Category"
// @Success 200 {object} rest.Response{data=rest.Category}
// @Failure 400,401,403,404,500 {object} rest.Response
// @Router /api/categories/{id} [put]
func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	category, err := h.portal.UpdateCategory(c.Request().Context(), id, req.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "category updated", NewCategory(*category))
}

// DeleteCategory handles DELETE /api/categories/:id
// @Summary Delete category
// @Description Fails with 409 while news or child categories reference the category
// @Tags categories
// @Produce json
// @Security Bearer
// @Param id path int true "Category ID"
// @Success 200 {object} rest.Response
// @Failure 400,401,403,404,409,500 {object} rest.Response
// @Router /api/categories/{id} [delete]
func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.portal.DeleteCategory(c.Request().Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "category deleted", nil)
}
