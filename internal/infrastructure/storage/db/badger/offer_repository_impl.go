package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"
	"github.com/xswap-network/xswap/internal/core/domain"
)

type offerRepositoryImpl struct {
	store *badgerhold.Store
}

// NewOfferRepositoryImpl returns a new badger OfferRepository implementation.
func NewOfferRepositoryImpl(store *badgerhold.Store) domain.OfferRepository {
	return offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddOffer(
	_ context.Context, offer *domain.Offer,
) error {
	if offer == nil {
		return ErrOfferInvalidRequest
	}
	if err := r.store.Insert(offer.ID, *offer); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return ErrOfferAlreadyExists
		}
		return err
	}
	return nil
}

func (r offerRepositoryImpl) GetOffer(
	_ context.Context, id uuid.UUID,
) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.store.Get(id, &offer); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r offerRepositoryImpl) GetAllOffers(
	_ context.Context,
) ([]*domain.Offer, error) {
	return r.findOffers(nil)
}

func (r offerRepositoryImpl) GetOffersForWallet(
	_ context.Context, wallet string,
) ([]*domain.Offer, error) {
	query := badgerhold.Where("Wallet").Eq(wallet)
	return r.findOffers(query)
}

func (r offerRepositoryImpl) UpdateOffer(
	_ context.Context,
	id uuid.UUID,
	updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var offer domain.Offer
		if err := r.store.TxGet(tx, id, &offer); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrOfferNotFound
			}
			return err
		}

		updated, err := updateFn(&offer)
		if err != nil {
			return err
		}
		return r.store.TxUpdate(tx, updated.ID, *updated)
	})
}

func (r offerRepositoryImpl) findOffers(
	query *badgerhold.Query,
) ([]*domain.Offer, error) {
	var found []domain.Offer
	if err := r.store.Find(&found, query); err != nil {
		return nil, err
	}

	offers := make([]*domain.Offer, 0, len(found))
	for i := range found {
		offers = append(offers, &found[i])
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt < offers[j].CreatedAt
	})
	return offers, nil
}
