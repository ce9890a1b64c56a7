package http

import (
	"errors"
	"net/http"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/services"
	"shipment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authenticating gateway in front of this
// service. The service trusts them; it performs authorization, not
// authentication.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// actorFromRequest builds the acting identity from the gateway headers.
func actorFromRequest(ctx echo.Context) (order.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderUserID)
	if rawID == "" {
		return order.Actor{}, errs.NewValueIsRequiredError(HeaderUserID)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return order.Actor{}, err
	}

	rawRole := ctx.Request().Header.Get(HeaderUserRole)
	if rawRole == "" {
		return order.Actor{}, errs.NewValueIsRequiredError(HeaderUserRole)
	}

	role, err := order.RoleFromString(rawRole)
	if err != nil {
		return order.Actor{}, err
	}

	return order.NewActor(id, role)
}

// requireRole rejects requests from actors that don't hold the given role.
func requireRole(actor order.Actor, role order.Role) error {
	if actor.Role != role {
		return errs.NewPermissionDeniedError(
			"operation requires the " + role.String() + " role")
	}
	return nil
}

// respondError maps domain errors onto HTTP status codes and writes the
// uniform error body.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusBadRequest
	// Eligibility failures wrap the permission sentinel but are conflicts
	// on the wire: the request was allowed, the driver's state wasn't.
	case errors.Is(err, services.ErrDriverHasActiveOrder),
		errors.Is(err, services.ErrDriverHasUnconfirmedPayments),
		errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "Internal server error"
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}
