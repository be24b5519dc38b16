package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal error"

func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// okPage writes a paged reply and a Link header pointing at neighbouring pages.
func okPage[T any](c echo.Context, message string, env paging.Envelope[T]) error {
	if link := linkHeader(c.Request().URL, env.Page, env.PageSize, env.TotalPages); link != "" {
		c.Response().Header().Set("Link", link)
	}

	return ok(c, http.StatusOK, message, env)
}

func fail(c echo.Context, status int, message string, errs ...string) error {
	return c.JSON(status, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// requestError is a malformed or invalid request. It is reported as 400.
type requestError struct {
	message string
	errs    []string
}

func (e *requestError) Error() string {
	return e.message + ": " + strings.Join(e.errs, "; ")
}

// handleError writes err as a failed reply. Errors without a known status are logged and hidden.
func (h *Handler) handleError(c echo.Context, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return fail(c, http.StatusBadRequest, re.message, re.errs...)
	}

	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(c.Request().Context(), "request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
		)
		return fail(c, status, internalErrorMessage)
	}

	return fail(c, status, message, err.Error())
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, newsportal.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, newsportal.ErrInvalidCredentials),
		errors.Is(err, newsportal.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, newsportal.ErrEmailExists),
		errors.Is(err, newsportal.ErrTagNameExists),
		errors.Is(err, newsportal.ErrInUse):
		return http.StatusConflict, "conflict"
	case errors.Is(err, newsportal.ErrSelfParent),
		errors.Is(err, newsportal.ErrParentNotFound),
		errors.Is(err, newsportal.ErrCategoryNotFound),
		errors.Is(err, newsportal.ErrCategoryInactive),
		errors.Is(err, newsportal.ErrInvalidPeriod):
		return http.StatusBadRequest, "invalid request"
	}

	return http.StatusInternalServerError, internalErrorMessage
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return &requestError{message: "invalid request parameters", errs: []string{fmt.Sprint(he.Message)}}
		}
		return &requestError{message: "invalid request parameters", errs: []string{err.Error()}}
	}

	if err := c.Validate(req); err != nil {
		return &requestError{message: "validation failed", errs: validationMessages(err)}
	}

	return nil
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			out[i] = fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			out[i] = fmt.Sprintf("%s: must satisfy %s", fe.Field(), fe.Tag())
		}
	}
	return out
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		return 0, &requestError{message: "invalid " + name, errs: []string{name + " must be a positive integer"}}
	}
	return v, nil
}

// linkHeader builds an RFC 8288 Link value with first, previous, next and last pages.
func linkHeader(u *url.URL, page, pageSize, totalPages int) string {
	last := max(totalPages, 1)

	pageURL := func(p int) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("pageSize", strconv.Itoa(pageSize))
		next := url.URL{Path: u.Path, RawQuery: q.Encode()}
		return next.String()
	}

	links := []string{fmt.Sprintf(`<%s>; rel="first"`, pageURL(1))}
	if page > 1 {
		links = append(links, fmt.Sprintf(`<%s>; rel="previous"`, pageURL(min(page-1, last))))
	}
	if page < totalPages {
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, pageURL(page+1)))
	}
	links = append(links, fmt.Sprintf(`<%s>; rel="last"`, pageURL(last)))

	return strings.Join(links, ", ")
}

// requestValidator plugs go-playground/validator into echo.
type requestValidator struct {
	v *validator.Validate
}

func newValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}
