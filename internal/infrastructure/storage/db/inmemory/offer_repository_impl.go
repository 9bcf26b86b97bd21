package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/xswap-network/xswap/internal/core/domain"
)

type offerRepositoryImpl struct {
	offers map[uuid.UUID]domain.Offer
	locker *sync.Mutex
}

// NewOfferRepositoryImpl returns a new inmemory OfferRepository implementation.
func NewOfferRepositoryImpl() domain.OfferRepository {
	return &offerRepositoryImpl{
		offers: map[uuid.UUID]domain.Offer{},
		locker: &sync.Mutex{},
	}
}

func (r *offerRepositoryImpl) AddOffer(_ context.Context, offer *domain.Offer) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if offer == nil {
		return ErrOfferInvalidRequest
	}
	if _, ok := r.offers[offer.ID]; ok {
		return ErrOfferAlreadyExists
	}
	r.offers[offer.ID] = copyOffer(*offer)
	return nil
}

func (r *offerRepositoryImpl) GetOffer(_ context.Context, id uuid.UUID) (*domain.Offer, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	o := copyOffer(offer)
	return &o, nil
}

func (r *offerRepositoryImpl) GetAllOffers(_ context.Context) ([]*domain.Offer, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.findOffers(func(domain.Offer) bool { return true }), nil
}

func (r *offerRepositoryImpl) GetOffersForWallet(
	_ context.Context, wallet string,
) ([]*domain.Offer, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.findOffers(func(o domain.Offer) bool {
		return o.Wallet == wallet
	}), nil
}

func (r *offerRepositoryImpl) UpdateOffer(
	_ context.Context,
	id uuid.UUID,
	updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	offer, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}

	current := copyOffer(offer)
	updated, err := updateFn(&current)
	if err != nil {
		return err
	}
	r.offers[updated.ID] = copyOffer(*updated)
	return nil
}

func (r *offerRepositoryImpl) findOffers(filter func(domain.Offer) bool) []*domain.Offer {
	offers := make([]*domain.Offer, 0)
	for _, offer := range r.offers {
		if filter(offer) {
			o := copyOffer(offer)
			offers = append(offers, &o)
		}
	}
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].CreatedAt == offers[j].CreatedAt {
			return offers[i].ID.String() < offers[j].ID.String()
		}
		return offers[i].CreatedAt < offers[j].CreatedAt
	})
	return offers
}

func copyOffer(offer domain.Offer) domain.Offer {
	offer.InputIDs = append([]string(nil), offer.InputIDs...)
	return offer
}
