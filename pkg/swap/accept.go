package swap

import (
	"fmt"
	"reflect"

	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/mathutil"
	"github.com/xswap-network/xswap/pkg/wallet"
)

// AcceptOpts is the struct given to Accept method
type AcceptOpts struct {
	Wallet  Wallet
	Message *Message
	// Offer is the transaction of the message returned by Make, if known.
	// When given, the taken transaction must extend it.
	Offer *avm.Tx
	// Terms are the expected terms of the offer, required when Offer is not
	// known. The wallet must not sell more than Amount of Asset, must receive
	// at least Price of fee asset and must not lose any other asset.
	Terms *Terms
}

func (o AcceptOpts) validate() error {
	if o.Wallet == nil {
		return ErrNullWallet
	}
	if o.Message == nil || o.Message.Tx == nil || o.Message.Tx.Unsigned == nil {
		return ErrNullMessage
	}
	if err := checkNetwork(o.Message.Tx, o.Wallet.Network()); err != nil {
		return err
	}
	if o.Offer != nil && o.Offer.Unsigned != nil {
		if !extends(o.Message.Tx.Unsigned, o.Offer.Unsigned) {
			return ErrOfferMismatch
		}
		return nil
	}
	if o.Terms == nil {
		return ErrUnknownOffer
	}
	if len(o.Terms.Asset) <= 0 {
		return ErrNullAsset
	}
	if o.Terms.Amount == 0 {
		return ErrZeroAmount
	}
	if o.Terms.Price == 0 {
		return ErrZeroPrice
	}
	return nil
}

// Accept finalizes a taken offer by signing the inputs of the maker. The
// resulting transaction must be fully signed and is then ready to be
// broadcasted.
func Accept(opts AcceptOpts) (*Message, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	w := opts.Wallet
	tx := opts.Message.Tx

	if err := validateConservation(tx, w.Network(), w.NetworkFee()); err != nil {
		return nil, err
	}
	if opts.Offer == nil || opts.Offer.Unsigned == nil {
		if err := checkTerms(opts.Message, w, *opts.Terms); err != nil {
			return nil, err
		}
	}

	signed, err := wallet.PartialSign(wallet.PartialSignOpts{
		Tx:         tx,
		Signer:     w,
		References: opts.Message.References,
	})
	if err != nil {
		return nil, err
	}

	if !signed.IsFullySigned() {
		missing := make([]int, 0)
		for i, cred := range signed.Credentials {
			if cred.IsEmpty() {
				missing = append(missing, i)
			}
		}
		return nil, fmt.Errorf("%w: missing signatures for inputs %v", ErrTxNotFullySigned, missing)
	}

	return &Message{Tx: signed, References: opts.Message.References}, nil
}

// extends returns whether tx starts with the inputs and outputs of prev, in
// the same order.
func extends(tx, prev *avm.BaseTx) bool {
	if tx.NetworkID != prev.NetworkID || tx.BlockchainID != prev.BlockchainID {
		return false
	}
	if len(tx.Inputs) < len(prev.Inputs) || len(tx.Outputs) < len(prev.Outputs) {
		return false
	}
	return reflect.DeepEqual(tx.Inputs[:len(prev.Inputs)], prev.Inputs) &&
		reflect.DeepEqual(tx.Outputs[:len(prev.Outputs)], prev.Outputs)
}

// checkTerms verifies the net flow of the wallet in the message against the
// given terms. Inputs belong to the wallet when their reference is one of its
// addresses, outputs when their only owner is.
func checkTerms(msg *Message, w Wallet, terms Terms) error {
	network := w.Network()
	feeAsset, err := network.FeeAssetID()
	if err != nil {
		return err
	}
	asset, err := avm.IDFromString(terms.Asset)
	if err != nil {
		return err
	}

	spent := map[avm.ID]uint64{}
	for _, in := range msg.Tx.Unsigned.Inputs {
		if !w.Controls(msg.References[in.UTXOID()]) {
			continue
		}
		if spent[in.AssetID], err = mathutil.SafeAdd(spent[in.AssetID], in.Amount); err != nil {
			return err
		}
	}
	received := map[avm.ID]uint64{}
	for _, out := range msg.Tx.Unsigned.Outputs {
		if len(out.Addresses) != 1 {
			continue
		}
		addr, err := network.FormatAddress(out.Addresses[0])
		if err != nil {
			return err
		}
		if !w.Controls(addr) {
			continue
		}
		if received[out.AssetID], err = mathutil.SafeAdd(received[out.AssetID], out.Amount); err != nil {
			return err
		}
	}

	minFee, err := mathutil.SafeAdd(spent[feeAsset], terms.Price)
	if err != nil {
		return err
	}
	if received[feeAsset] < minFee {
		return fmt.Errorf(
			"%w: expected at least %d of fee asset, received %d spending %d",
			ErrTermsNotHonored, terms.Price, received[feeAsset], spent[feeAsset],
		)
	}
	for id, amount := range spent {
		if id == feeAsset {
			continue
		}
		limit := received[id]
		if id == asset {
			if limit, err = mathutil.SafeAdd(limit, terms.Amount); err != nil {
				return err
			}
		}
		if amount > limit {
			return fmt.Errorf(
				"%w: spending %d of asset %s, at most %d expected", ErrTermsNotHonored, amount, id, limit,
			)
		}
	}
	return nil
}
