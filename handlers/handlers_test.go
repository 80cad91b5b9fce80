package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-marketplace/internal/status"
)

func TestTicketHandler_CreateListing_Unauthorized(t *testing.T) {
	app := pocketbase.New()

	handler := &TicketHandler{
		app:      app,
		listings: nil, // never reached without auth
	}

	event := &core.RequestEvent{}
	// No authenticated user set

	err := handler.CreateListing(event)

	assert.Error(t, err)
	assertApiStatus(t, err, http.StatusUnauthorized)
}

func TestTicketHandler_Browse_Unauthorized(t *testing.T) {
	app := pocketbase.New()

	handler := &TicketHandler{app: app}

	err := handler.Browse(&core.RequestEvent{})

	assert.Error(t, err)
	assertApiStatus(t, err, http.StatusUnauthorized)
}

func TestOfferHandler_CreateOffer_Unauthorized(t *testing.T) {
	app := pocketbase.New()

	handler := &OfferHandler{app: app}

	err := handler.CreateOffer(&core.RequestEvent{})

	assert.Error(t, err)
	assertApiStatus(t, err, http.StatusUnauthorized)
}

func TestOfferHandler_Resolve_MissingOfferID(t *testing.T) {
	app := pocketbase.New()

	handler := &OfferHandler{
		app:    app,
		offers: nil, // never reached without an offer id
	}

	auth := &core.Record{}
	auth.Id = "user-1"

	event := &core.RequestEvent{}
	event.Auth = auth
	event.Request = httptest.NewRequest(http.MethodPost, "/api/v1/offers//approve", nil)

	err := handler.Approve(event)

	assert.Error(t, err)
	assertApiStatus(t, err, http.StatusBadRequest)
}

func TestWorkflowError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{status.ErrMissingFields, http.StatusBadRequest},
		{status.ErrInvalidPrice, http.StatusBadRequest},
		{status.ErrInvalidAmount, http.StatusBadRequest},
		{status.ErrAmountNotBelow, http.StatusBadRequest},
		{status.ErrSelfOffer, http.StatusBadRequest},
		{status.ErrTicketNotFound, http.StatusNotFound},
		{status.ErrOfferNotFound, http.StatusNotFound},
		{status.ErrNotSeller, http.StatusForbidden},
		{status.ErrTicketUnavailable, http.StatusConflict},
		{status.ErrOfferResolved, http.StatusConflict},
		{status.ErrDuplicateSubmit, http.StatusConflict},
		{status.ErrResolutionBusy, http.StatusConflict},
		{errors.New("backend down"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		assertApiStatus(t, workflowError(tc.err), tc.status)
	}
}

func assertApiStatus(t *testing.T, err error, expected int) {
	t.Helper()

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, expected, apiErr.Status)
}
