package rest

import (
	"net/http"

	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/labstack/echo/v4"
)

// Tags handles GET /api/tags
// @Summary List tags
// @Tags tags
// @Produce json
// @Param searchTerm query string false "Substring of name or note"
// @Param sortBy query string false "name"
// @Param isDescending query bool false "Sort descending"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} rest.Response{data=paging.Envelope[rest.Tag]}
// @Failure 400,500 {object} rest.Response
// @Router /api/tags [get]
func (h *Handler) Tags(c echo.Context) error {
	var req TagListRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	env, err := h.portal.Tags(c.Request().Context(), req.Query())
	if err != nil {
		return h.handleError(c, err)
	}

	return okPage(c, "tags retrieved", paging.MapEnvelope(env, NewTag))
}

// TagByID handles GET /api/tags/:id
// @Summary Get tag by ID
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} rest.Response{data=rest.Tag}
// @Failure 400,404,500 {object} rest.Response
// @Router /api/tags/{id} [get]
func (h *Handler) TagByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	tag, err := h.portal.TagByID(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "tag retrieved", NewTag(*tag))
}

// CreateTag handles POST /api/tags
// @Summary Create tag
// @Tags tags
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body rest.TagRequest true "Tag"
// @Success 201 {object} rest.Response{data=rest.Tag}
// @Failure 400,401,403,409,500 {object} rest.Response
// @Router /api/tags [post]
func (h *Handler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	tag, err := h.portal.CreateTag(c.Request().Context(), req.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusCreated, "tag created", NewTag(*tag))
}

// UpdateTag handles PUT /api/tags/:id
// @Summary Update tag
// @Tags tags
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Tag ID"
// @Param request body rest.TagRequest true "Tag"
// @Success 200 {object} rest.Response{data=rest.Tag}
// @Failure 400,401,403,404,409,500 {object} rest.Response
// @Router /api/tags/{id} [put]
func (h *Handler) UpdateTag(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	var req TagRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	tag, err := h.portal.UpdateTag(c.Request().Context(), id, req.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "tag updated", NewTag(*tag))
}

// DeleteTag handles DELETE /api/tags/:id
// @Summary Delete tag
// @Tags tags
// @Produce json
// @Security Bearer
// @Param id path int true "Tag ID"
// @Success 200 {object} rest.Response
// @Failure 400,401,403,404,409,500 {object} rest.Response
// @Router /api/tags/{id} [delete]
func (h *Handler) DeleteTag(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.portal.DeleteTag(c.Request().Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "tag deleted", nil)
}
