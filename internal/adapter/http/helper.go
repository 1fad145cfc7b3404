package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	regdomain "auction-registration/internal/domain/registration"
)

// Stable machine-readable codes, one per error class. Clients branch on these,
// not on messages.
const (
	codeNotFound          = "not_found"
	codeConflict          = "conflict"
	codeForbidden         = "forbidden"
	codeBadRequest        = "bad_request"
	codeRetryableExternal = "retryable_external"
	codeTerminalRejection = "terminal_rejection"
	codeInternal          = "internal"
)

// respondError maps the domain error classes onto HTTP statuses. Anything
// unclassified is a 500 with no detail leaked.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, regdomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: codeNotFound})
	case errors.Is(err, regdomain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: codeConflict})
	case errors.Is(err, regdomain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: codeForbidden})
	case errors.Is(err, regdomain.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeBadRequest})
	case errors.Is(err, regdomain.ErrRetryableExternal):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: codeRetryableExternal})
	case errors.Is(err, regdomain.ErrTerminalRejection):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: codeTerminalRejection})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: codeInternal})
}

func respondValidation(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Code:    codeBadRequest,
		Details: ToFieldErrors(err),
	})
}

// headerID pulls a 32-char hex id from a header, empty string when absent or
// malformed.
func headerID(c echo.Context, name string) string {
	v := strings.TrimSpace(c.Request().Header.Get(name))
	if !reHex32.MatchString(v) {
		return ""
	}
	return v
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
