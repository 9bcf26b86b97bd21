package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/internal/core/domain"
	"github.com/xswap-network/xswap/internal/core/ports"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/mathutil"
	"github.com/xswap-network/xswap/pkg/swap"
	"github.com/xswap-network/xswap/pkg/wallet"
)

var (
	// ErrNullTxHex ...
	ErrNullTxHex = errors.New("transaction hex must not be null")
	// ErrNullAddrReferences ...
	ErrNullAddrReferences = errors.New("address references must not be null")
)

type OfferService interface {
	MakeOffer(ctx context.Context, req MakeOfferRequest) (*OfferReply, error)
	TakeOffer(ctx context.Context, req TakeOfferRequest) (*OfferReply, error)
	AcceptOffer(ctx context.Context, req AcceptOfferRequest) (*AcceptOfferReply, error)
	ListOffers(ctx context.Context, wallet string) ([]*domain.Offer, error)
}

type offerService struct {
	*accountLoader
	repoManager ports.RepoManager
}

func NewOfferService(
	walletStore ports.WalletStore,
	explorerFactory ExplorerFactory,
	repoManager ports.RepoManager,
) OfferService {
	return &offerService{
		accountLoader: &accountLoader{walletStore, explorerFactory},
		repoManager:   repoManager,
	}
}

func (s *offerService) MakeOffer(
	ctx context.Context, req MakeOfferRequest,
) (*OfferReply, error) {
	if err := validateQuantity(req.Wallet, req.Quantity); err != nil {
		return nil, err
	}
	if len(req.Asset) <= 0 {
		return nil, withKind(ErrValidation, ErrNullAsset)
	}
	if len(req.FeeAssetQuantity) <= 0 {
		return nil, withKind(ErrValidation, ErrNullQuantity)
	}

	acc, _, err := s.loadAccount(ctx, req.Wallet, req.Password)
	if err != nil {
		return nil, err
	}
	network := acc.Network()

	assetID := resolveAsset(req.Asset, network)
	if assetID == network.FeeAsset {
		return nil, withKind(ErrValidation, swap.ErrSellingFeeAsset)
	}
	denom, err := denomination(acc, assetID)
	if err != nil {
		return nil, err
	}
	amount, err := mathutil.ToBaseUnits(req.Quantity, denom)
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}
	price, err := mathutil.ToBaseUnits(req.FeeAssetQuantity, avm.FeeAssetDenomination)
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}

	msg, err := swap.Make(swap.MakeOpts{
		Wallet: acc,
		Asset:  assetID,
		Amount: amount,
		Price:  price,
	})
	if err != nil {
		return nil, classify(err)
	}

	encoded, err := msg.Encode()
	if err != nil {
		return nil, classify(err)
	}
	terms, err := swap.ParseTerms(msg.Tx, network)
	if err != nil {
		return nil, classify(err)
	}

	offerID := s.journal(ctx, func() (*domain.Offer, error) {
		offer, err := domain.NewOffer(domain.RoleMaker, req.Wallet, network.Name)
		if err != nil {
			return nil, err
		}
		if _, err := offer.Make(*encoded, *terms, inputIDs(msg.Tx, 0)); err != nil {
			return nil, err
		}
		return offer, nil
	})

	return &OfferReply{OfferID: offerID, Message: *encoded, Terms: *terms}, nil
}

func (s *offerService) TakeOffer(
	ctx context.Context, req TakeOfferRequest,
) (*OfferReply, error) {
	msg, err := decodeMessage(req.Wallet, req.TxHex, req.AddrReferences)
	if err != nil {
		return nil, err
	}

	acc, _, err := s.loadAccount(ctx, req.Wallet, req.Password)
	if err != nil {
		return nil, err
	}
	network := acc.Network()

	taken, err := swap.Take(swap.TakeOpts{Wallet: acc, Message: msg})
	if err != nil {
		return nil, classify(err)
	}

	terms, err := swap.ParseTerms(msg.Tx, network)
	if err != nil {
		return nil, classify(err)
	}
	encoded, err := taken.Encode()
	if err != nil {
		return nil, classify(err)
	}

	offerID := s.journal(ctx, func() (*domain.Offer, error) {
		offer, err := domain.NewOffer(domain.RoleTaker, req.Wallet, network.Name)
		if err != nil {
			return nil, err
		}
		ins := inputIDs(taken.Tx, len(msg.Tx.Unsigned.Inputs))
		if _, err := offer.Take(*encoded, *terms, ins); err != nil {
			return nil, err
		}
		return offer, nil
	})

	return &OfferReply{OfferID: offerID, Message: *encoded, Terms: *terms}, nil
}

// AcceptOffer signs the inputs of the maker and, unless told otherwise,
// broadcasts the fully signed transaction. If the offer was made with the
// same datadir, the taken transaction must extend the made one. Otherwise the
// expected terms of the request are verified before signing.
func (s *offerService) AcceptOffer(
	ctx context.Context, req AcceptOfferRequest,
) (*AcceptOfferReply, error) {
	msg, err := decodeMessage(req.Wallet, req.TxHex, req.AddrReferences)
	if err != nil {
		return nil, err
	}

	acc, svc, err := s.loadAccount(ctx, req.Wallet, req.Password)
	if err != nil {
		return nil, err
	}

	offer := s.findMadeOffer(ctx, req.Wallet, inputIDs(msg.Tx, 0))
	var madeTx *avm.Tx
	if offer != nil {
		if madeTx, err = avm.NewTxFromHex(offer.TxHex); err != nil {
			log.WithError(err).Warnf("offer %s: invalid journaled transaction", offer.ID)
			madeTx = nil
		}
	}

	var terms *swap.Terms
	if madeTx == nil {
		if terms, err = expectedTerms(acc, req); err != nil {
			return nil, err
		}
	}

	accepted, err := swap.Accept(swap.AcceptOpts{
		Wallet:  acc,
		Message: msg,
		Offer:   madeTx,
		Terms:   terms,
	})
	if err != nil {
		if offer != nil {
			s.updateOffer(ctx, offer, func(o *domain.Offer) error {
				o.Fail(err.Error())
				return nil
			})
		}
		return nil, classify(err)
	}

	encoded, err := accepted.Encode()
	if err != nil {
		return nil, classify(err)
	}
	txID, err := accepted.Tx.ID()
	if err != nil {
		return nil, classify(err)
	}

	reply := &AcceptOfferReply{TxID: txID, TxHex: encoded.TxHex}
	if offer != nil {
		reply.OfferID = offer.ID.String()
		s.updateOffer(ctx, offer, func(o *domain.Offer) error {
			_, err := o.Accept(*encoded, txID)
			return err
		})
	}

	if req.NoBroadcast {
		return reply, nil
	}

	broadcastedID, err := svc.BroadcastTransaction(ctx, encoded.TxHex)
	if err != nil {
		return nil, withKind(ErrExplorer, err)
	}
	if broadcastedID != txID {
		log.Warnf("node returned txid %s, expected %s", broadcastedID, txID)
	}
	reply.TxID = broadcastedID
	reply.Broadcasted = true

	if offer != nil {
		s.updateOffer(ctx, offer, func(o *domain.Offer) error {
			_, err := o.Complete(broadcastedID)
			return err
		})
	}

	log.Debugf("swap transaction %s broadcasted", broadcastedID)
	return reply, nil
}

func (s *offerService) ListOffers(
	ctx context.Context, wallet string,
) ([]*domain.Offer, error) {
	repo := s.repoManager.OfferRepository()
	var (
		offers []*domain.Offer
		err    error
	)
	if len(wallet) > 0 {
		offers, err = repo.GetOffersForWallet(ctx, wallet)
	} else {
		offers, err = repo.GetAllOffers(ctx)
	}
	if err != nil {
		return nil, withKind(ErrStorage, err)
	}
	return offers, nil
}

// journal stores the offer returned by newOffer and returns its id. Journal
// failures never fail the swap step.
func (s *offerService) journal(
	ctx context.Context, newOffer func() (*domain.Offer, error),
) string {
	offer, err := newOffer()
	if err != nil {
		log.WithError(err).Warn("failed to record offer")
		return ""
	}
	if err := s.repoManager.OfferRepository().AddOffer(ctx, offer); err != nil {
		log.WithError(err).Warn("failed to record offer")
		return ""
	}
	log.Debugf("offer %s recorded as %s", offer.ID, offer.Status)
	return offer.ID.String()
}

func (s *offerService) updateOffer(
	ctx context.Context, offer *domain.Offer, updateFn func(o *domain.Offer) error,
) {
	if err := s.repoManager.OfferRepository().UpdateOffer(
		ctx, offer.ID, func(o *domain.Offer) (*domain.Offer, error) {
			if err := updateFn(o); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		log.WithError(err).Warnf("failed to update offer %s", offer.ID)
	}
}

// findMadeOffer returns the pending maker offer of the wallet whose inputs
// are all spent by the given ones, if any.
func (s *offerService) findMadeOffer(
	ctx context.Context, wallet string, utxoIDs []string,
) *domain.Offer {
	offers, err := s.repoManager.OfferRepository().GetOffersForWallet(ctx, wallet)
	if err != nil {
		log.WithError(err).Warn("failed to look up offer journal")
		return nil
	}
	for _, o := range offers {
		if o.Role != domain.RoleMaker {
			continue
		}
		if o.Status != swap.StatusTakePending && o.Status != swap.StatusAcceptPending {
			continue
		}
		if o.SpendsAll(utxoIDs) {
			return o
		}
	}
	return nil
}

// expectedTerms converts the terms given with an accept request into base
// units. It returns nil if none are given.
func expectedTerms(acc *wallet.Account, req AcceptOfferRequest) (*swap.Terms, error) {
	if len(req.Asset) <= 0 {
		return nil, nil
	}
	if len(req.Quantity) <= 0 || len(req.FeeAssetQuantity) <= 0 {
		return nil, withKind(ErrValidation, ErrNullQuantity)
	}

	assetID := resolveAsset(req.Asset, acc.Network())
	denom, err := denomination(acc, assetID)
	if err != nil {
		return nil, err
	}
	amount, err := mathutil.ToBaseUnits(req.Quantity, denom)
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}
	price, err := mathutil.ToBaseUnits(req.FeeAssetQuantity, avm.FeeAssetDenomination)
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}
	return &swap.Terms{Asset: assetID, Amount: amount, Price: price}, nil
}

func decodeMessage(walletName, txHex, refs string) (*swap.Message, error) {
	if len(walletName) <= 0 {
		return nil, withKind(ErrValidation, ErrNullWalletName)
	}
	if len(txHex) <= 0 {
		return nil, withKind(ErrValidation, ErrNullTxHex)
	}
	if len(refs) <= 0 {
		return nil, withKind(ErrValidation, ErrNullAddrReferences)
	}
	msg, err := swap.EncodedMessage{TxHex: txHex, AddrReferences: refs}.Decode()
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}
	return msg, nil
}

// inputIDs returns the utxo ids of the inputs of tx, starting from the given
// index.
func inputIDs(tx *avm.Tx, from int) []string {
	ins := tx.Unsigned.Inputs
	if from > len(ins) {
		from = len(ins)
	}
	ids := make([]string, 0, len(ins)-from)
	for _, in := range ins[from:] {
		ids = append(ids, in.UTXOID())
	}
	return ids
}
