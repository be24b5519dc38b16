package rest

import (
	"net/http"

	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/labstack/echo/v4"
)

// Accounts handles GET /api/accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param searchTerm query string false "Substring of name or email"
// @Param role query int false "Filter by role"
// @Param sortBy query string false "name, email or role"
// @Param isDescending query bool false "Sort descending"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} rest.Response{data=paging.Envelope[rest.Account]}
// @Failure 400,401,403,500 {object} rest.Response
// @Router /api/accounts [get]
func (h *Handler) Accounts(c echo.Context) error {
	var req AccountListRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	env, err := h.portal.Accounts(c.Request().Context(), req.Query())
	if err != nil {
		return h.handleError(c, err)
	}

	return okPage(c, "accounts retrieved", paging.MapEnvelope(env, NewAccount))
}

// AccountByID handles GET /api/accounts/:id
// @Summary Get account by ID
// @Description Includes the number of news the account created
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Success 200 {object} rest.Response{data=rest.Account}
// @Failure 400,401,403,404,500 {object} rest.Response
// @Router /api/accounts/{id} [get]
func (h *Handler) AccountByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	account, err := h.portal.AccountByID(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "account retrieved", NewAccountDetail(*account))
}

// CreateAccount handles POST /api/accounts
// @Summary Create account
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body rest.CreateAccountRequest true "Account"
// @Success 201 {object} rest.Response{data=rest.Account}
// @Failure 400,401,403,409,500 {object} rest.Response
// @Router /api/accounts [post]
func (h *Handler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	account, err := h.portal.CreateAccount(c.Request().Context(), req.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusCreated, "account created", NewAccount(*account))
}

// UpdateAccount handles PUT /api/accounts/:id
// @Summary Update account
// @Description An empty password keeps the current one
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Param request body rest.UpdateAccountRequest true "Account"
// @Success 200 {object} rest.Response{data=rest.Account}
// @Failure 400,401,403,404,409,500 {object} rest.Response
// @Router /api/accounts/{id} [put]
func (h *Handler) UpdateAccount(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	var req UpdateAccountRequest
	if err := bind(c, &req); err != nil {
		return h.handleError(c, err)
	}

	account, err := h.portal.UpdateAccount(c.Request().Context(), id, req.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "account updated", NewAccount(*account))
}

// DeleteAccount handles DELETE /api/accounts/:id
// @Summary Delete account
// @Description Fails with 409 while the account authors news
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Success 200 {object} rest.Response
// @Failure 400,401,403,404,409,500 {object} rest.Response
// @Router /api/accounts/{id} [delete]
func (h *Handler) DeleteAccount(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.portal.DeleteAccount(c.Request().Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return ok(c, http.StatusOK, "account deleted", nil)
}
