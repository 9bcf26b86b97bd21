package domain

import "errors"

var (
	// ErrOfferNotFound ...
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferNullWallet ...
	ErrOfferNullWallet = errors.New("offer wallet name must not be null")
	// ErrOfferInvalidRole ...
	ErrOfferInvalidRole = errors.New("offer role must be either maker or taker")
	// ErrOfferMustBeMakePending is returned when trying to make an offer that
	// is not new.
	ErrOfferMustBeMakePending = errors.New("offer must be make pending")
	// ErrOfferMustBeTakePending is returned when trying to take an offer that
	// is already taken or final.
	ErrOfferMustBeTakePending = errors.New("offer must be make or take pending")
	// ErrOfferMustBeAcceptPending is returned when trying to complete an
	// offer that has not been signed by all parties.
	ErrOfferMustBeAcceptPending = errors.New("offer must be accept pending")
	// ErrOfferWrongRole ...
	ErrOfferWrongRole = errors.New("operation not allowed for the role of the offer")
	// ErrOfferNullTx ...
	ErrOfferNullTx = errors.New("offer tx must not be null")
	// ErrOfferNullTxID ...
	ErrOfferNullTxID = errors.New("offer txid must not be null")
)
