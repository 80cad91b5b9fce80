package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"ticket-marketplace/internal/status"
)

// workflowError maps workflow sentinel errors onto the API error surface.
// Anything unrecognized is a collaborator failure and surfaces generically.
func workflowError(err error) error {
	switch {
	case errors.Is(err, status.ErrMissingFields),
		errors.Is(err, status.ErrInvalidPrice),
		errors.Is(err, status.ErrInvalidAmount),
		errors.Is(err, status.ErrAmountNotBelow),
		errors.Is(err, status.ErrSelfOffer):
		return apis.NewBadRequestError(err.Error(), err)

	case errors.Is(err, status.ErrTicketNotFound),
		errors.Is(err, status.ErrOfferNotFound):
		return apis.NewNotFoundError(err.Error(), err)

	case errors.Is(err, status.ErrNotSeller):
		return apis.NewForbiddenError(err.Error(), err)

	case errors.Is(err, status.ErrTicketUnavailable),
		errors.Is(err, status.ErrOfferResolved),
		errors.Is(err, status.ErrDuplicateSubmit),
		errors.Is(err, status.ErrResolutionBusy):
		return apis.NewApiError(http.StatusConflict, err.Error(), err)

	default:
		return apis.NewBadRequestError("Operation failed", err)
	}
}
