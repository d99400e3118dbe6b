package http

import (
	"errors"
	"log/slog"
	"net/http"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type shortfallDetail struct {
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

type transitionDetail struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Allowed []string `json:"allowed"`
}

// toHTTPError maps core errors to responses. Anything unrecognised is an
// internal error and its text is not exposed.
func toHTTPError(err error) Error {
	var (
		stockErr      *inventory.InsufficientStockError
		transitionErr *order.InvalidTransitionError
		conflictErr   *errs.ConflictError
		ruleErr       *errs.BusinessRuleError
		forbiddenErr  *errs.ForbiddenError
	)

	switch {
	case errors.As(err, &stockErr):
		details := make([]shortfallDetail, 0, len(stockErr.Shortfalls))
		for _, s := range stockErr.Shortfalls {
			details = append(details, shortfallDetail{
				ItemID:    s.ItemID.String(),
				ItemName:  s.ItemName,
				Available: s.Available,
				Requested: s.Requested,
			})
		}
		return Error{Code: http.StatusUnprocessableEntity, Message: stockErr.Error(), Details: details}

	case errors.As(err, &transitionErr):
		allowed := make([]string, 0, len(transitionErr.Allowed))
		for _, s := range transitionErr.Allowed {
			allowed = append(allowed, s.String())
		}
		return Error{
			Code:    http.StatusUnprocessableEntity,
			Message: transitionErr.Error(),
			Details: transitionDetail{From: transitionErr.From.String(), To: transitionErr.To.String(), Allowed: allowed},
		}

	case errors.As(err, &conflictErr):
		return Error{Code: http.StatusConflict, Message: conflictErr.Reason}

	case errors.As(err, &ruleErr):
		return Error{Code: http.StatusUnprocessableEntity, Message: ruleErr.Reason, Details: map[string]string{"rule": ruleErr.Rule}}

	case errors.As(err, &forbiddenErr):
		return Error{Code: http.StatusForbidden, Message: "You do not have permission to " + forbiddenErr.Action}

	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return Error{Code: http.StatusBadRequest, Message: err.Error()}

	default:
		return Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	body := toHTTPError(err)
	if body.Code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err))
	}
	return c.JSON(body.Code, body)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
