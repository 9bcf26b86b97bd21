package swap

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/mathutil"
	"github.com/xswap-network/xswap/pkg/wallet"
)

// TakeOpts is the struct given to Take method
type TakeOpts struct {
	Wallet  Wallet
	Message *Message
}

func (o TakeOpts) validate() error {
	if o.Wallet == nil {
		return ErrNullWallet
	}
	if o.Message == nil || o.Message.Tx == nil || o.Message.Tx.Unsigned == nil {
		return ErrNullMessage
	}
	tx := o.Message.Tx
	if err := checkNetwork(tx, o.Wallet.Network()); err != nil {
		return err
	}
	for i, in := range tx.Unsigned.Inputs {
		if i < len(tx.Credentials) && !tx.Credentials[i].IsEmpty() {
			return ErrOfferAlreadySigned
		}
		if _, ok := o.Message.References[in.UTXOID()]; !ok {
			return fmt.Errorf("%w: input %d (%s)", ErrMissingReference, i, in.UTXOID())
		}
	}
	return nil
}

// Take completes a made offer. The smallest fee asset utxo of the taker that
// covers the price plus the network fee is appended as new input, followed by
// the outputs giving the sold asset and the change to the taker. The taker's
// input is signed, and its reference merged into the message ones.
func Take(opts TakeOpts) (*Message, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	w := opts.Wallet
	network := w.Network()
	tx := opts.Message.Tx

	terms, err := ParseTerms(tx, network)
	if err != nil {
		return nil, err
	}

	fee := w.NetworkFee()
	required, err := mathutil.SafeAdd(terms.Price, fee)
	if err != nil {
		return nil, err
	}

	if err := CheckBalance(w, network.FeeAsset, required); err != nil {
		return nil, err
	}
	utxo, ok := explorer.SelectUnspent(
		w.ListUnspents(network.FeeAsset), required, network.FeeAsset,
	)
	if !ok {
		return nil, fmt.Errorf("%w: required %d", ErrNotEnoughFeeAsset, required)
	}

	outputs := []wallet.Output{{
		Asset:   terms.Asset,
		Amount:  terms.Amount,
		Address: w.Address(),
	}}
	if change := utxo.Value() - required; change > 0 {
		outputs = append(outputs, wallet.Output{
			Asset:   network.FeeAsset,
			Amount:  change,
			Address: w.Address(),
		})
	}

	taken, err := wallet.UpdateTx(wallet.UpdateTxOpts{
		Tx:      tx,
		Network: network,
		Inputs:  []explorer.Utxo{utxo},
		Outputs: outputs,
	})
	if err != nil {
		return nil, err
	}

	if err := validateConservation(taken, network, fee); err != nil {
		return nil, err
	}

	refs := opts.Message.References.Merge(References{utxo.ID(): w.Address()})
	signed, err := wallet.PartialSign(wallet.PartialSignOpts{
		Tx:         taken,
		Signer:     w,
		References: refs,
	})
	if err != nil {
		return nil, err
	}

	log.Debugf(
		"offer taken: buying %d of %s for %d %s with utxo %s",
		terms.Amount, terms.Asset, terms.Price, network.FeeAssetName, utxo.ID(),
	)

	return &Message{Tx: signed, References: refs}, nil
}

func validateConservation(tx *avm.Tx, network avm.Network, fee uint64) error {
	feeAsset, err := network.FeeAssetID()
	if err != nil {
		return err
	}
	return wallet.ValidateConservation(tx.Unsigned, feeAsset, fee)
}
