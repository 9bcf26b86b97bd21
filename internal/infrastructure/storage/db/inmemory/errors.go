package inmemory

import "errors"

var (
	// ErrOfferInvalidRequest ...
	ErrOfferInvalidRequest = errors.New("offer is null")
	// ErrOfferAlreadyExists ...
	ErrOfferAlreadyExists = errors.New("offer already exists")
)
