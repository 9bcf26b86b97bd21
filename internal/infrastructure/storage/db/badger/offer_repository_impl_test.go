package dbbadger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xswap-network/xswap/internal/core/domain"
	"github.com/xswap-network/xswap/pkg/swap"
)

func newTestRepoManager(t *testing.T) *RepoManager {
	repoManager, err := NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager.(*RepoManager)
}

func newTestOffer(t *testing.T, role domain.Role, wallet string) *domain.Offer {
	offer, err := domain.NewOffer(role, wallet, "mainnet")
	require.NoError(t, err)
	return offer
}

func TestOfferRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepoManager(t).OfferRepository()

	alice := newTestOffer(t, domain.RoleMaker, "alice")
	bob := newTestOffer(t, domain.RoleTaker, "bob")
	alice2 := newTestOffer(t, domain.RoleMaker, "alice")

	for _, o := range []*domain.Offer{alice, bob, alice2} {
		require.NoError(t, repo.AddOffer(ctx, o))
	}
	require.ErrorIs(t, repo.AddOffer(ctx, alice), ErrOfferAlreadyExists)
	require.ErrorIs(t, repo.AddOffer(ctx, nil), ErrOfferInvalidRequest)

	all, err := repo.GetAllOffers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	offers, err := repo.GetOffersForWallet(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, offers, 2)
	for _, o := range offers {
		require.Equal(t, "alice", o.Wallet)
	}

	offers, err = repo.GetOffersForWallet(ctx, "carol")
	require.NoError(t, err)
	require.Empty(t, offers)

	got, err := repo.GetOffer(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, got.ID)
	require.Equal(t, domain.RoleTaker, got.Role)

	_, err = repo.GetOffer(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestUpdateOffer(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepoManager(t).OfferRepository()

	offer := newTestOffer(t, domain.RoleMaker, "alice")
	require.NoError(t, repo.AddOffer(ctx, offer))

	err := repo.UpdateOffer(ctx, offer.ID, func(o *domain.Offer) (*domain.Offer, error) {
		if _, err := o.Make(
			swap.EncodedMessage{TxHex: "00", AddrReferences: "{}"},
			swap.Terms{Asset: "asset", Amount: 10, Price: 20},
			[]string{"utxo"},
		); err != nil {
			return nil, err
		}
		return o, nil
	})
	require.NoError(t, err)

	got, err := repo.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	require.Equal(t, swap.StatusTakePending, got.Status)
	require.Equal(t, []string{"utxo"}, got.InputIDs)
	require.Equal(t, uint64(10), got.Amount)

	// a failing update leaves the offer untouched
	err = repo.UpdateOffer(ctx, offer.ID, func(o *domain.Offer) (*domain.Offer, error) {
		_, err := o.Complete("")
		return nil, err
	})
	require.ErrorIs(t, err, domain.ErrOfferMustBeAcceptPending)

	got, err = repo.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	require.Equal(t, swap.StatusTakePending, got.Status)

	err = repo.UpdateOffer(ctx, uuid.New(), func(o *domain.Offer) (*domain.Offer, error) {
		return o, nil
	})
	require.ErrorIs(t, err, domain.ErrOfferNotFound)
}
