package domain

import (
	"context"

	"github.com/google/uuid"
)

// OfferRepository is the abstraction for any kind of database intended to
// persist Offers.
type OfferRepository interface {
	// AddOffer inserts a new offer.
	AddOffer(ctx context.Context, offer *Offer) error
	// GetOffer returns the offer with the given id.
	GetOffer(ctx context.Context, id uuid.UUID) (*Offer, error)
	// GetAllOffers returns all the offers stored in the repository.
	GetAllOffers(ctx context.Context) ([]*Offer, error)
	// GetOffersForWallet returns all the offers of the given wallet.
	GetOffersForWallet(ctx context.Context, wallet string) ([]*Offer, error)
	// UpdateOffer allows to commit multiple changes to the same offer in a
	// transactional way.
	UpdateOffer(
		ctx context.Context,
		id uuid.UUID,
		updateFn func(o *Offer) (*Offer, error),
	) error
}
