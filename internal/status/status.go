package status

import "errors"

var (
	ErrMissingFields     = errors.New("listing: required fields missing")
	ErrInvalidPrice      = errors.New("listing: price must be a positive number")
	ErrTicketNotFound    = errors.New("listing: ticket not found")
	ErrInvalidAmount     = errors.New("offer: amount must be a positive number")
	ErrAmountNotBelow    = errors.New("offer: amount must be below the listed price")
	ErrTicketUnavailable = errors.New("offer: ticket is not available")
	ErrSelfOffer         = errors.New("offer: cannot bid on your own listing")
	ErrOfferNotFound     = errors.New("offer: offer not found")
	ErrOfferResolved     = errors.New("offer: offer already resolved")
	ErrNotSeller         = errors.New("offer: only the seller can resolve an offer")
	ErrDuplicateSubmit   = errors.New("offer: duplicate submission")
	ErrResolutionBusy    = errors.New("offer: resolution already in progress")
)
