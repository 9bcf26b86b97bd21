package swap

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/wallet"
)

// MakeOpts is the struct given to Make method
type MakeOpts struct {
	Wallet Wallet
	// Asset is the id of the asset to sell.
	Asset string
	// Amount of Asset to sell, in base units.
	Amount uint64
	// Price is the amount of fee asset asked in exchange, in base units.
	Price uint64
}

func (o MakeOpts) validate() error {
	if o.Wallet == nil {
		return ErrNullWallet
	}
	if len(o.Asset) <= 0 {
		return ErrNullAsset
	}
	if o.Asset == o.Wallet.Network().FeeAsset {
		return ErrSellingFeeAsset
	}
	if o.Amount == 0 {
		return ErrZeroAmount
	}
	if o.Price == 0 {
		return ErrZeroPrice
	}
	return nil
}

// Make creates a new offer. The returned message holds a transaction that
// spends the smallest utxo of the maker covering the amount to sell, pays
// the price to the maker and gives back the remainder, if any. The amount
// sold is left unassigned for the taker to claim.
func Make(opts MakeOpts) (*Message, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	w := opts.Wallet
	network := w.Network()

	if err := CheckBalance(w, opts.Asset, opts.Amount); err != nil {
		return nil, err
	}

	utxo, ok := explorer.SelectUnspent(
		w.ListUnspents(opts.Asset), opts.Amount, opts.Asset,
	)
	if !ok {
		return nil, fmt.Errorf(
			"%w: asset %s, amount %d", ErrNoSuitableUnspent, opts.Asset, opts.Amount,
		)
	}

	remainder, err := wallet.SpendOutputs(wallet.SpendOpts{
		Utxo:          utxo,
		Amount:        opts.Amount,
		ChangeAddress: w.Address(),
	})
	if err != nil {
		return nil, err
	}
	outputs := append([]wallet.Output{{
		Asset:   network.FeeAsset,
		Amount:  opts.Price,
		Address: w.Address(),
	}}, remainder...)

	tx, err := wallet.CreateTx(wallet.CreateTxOpts{
		Network: network,
		Inputs:  []explorer.Utxo{utxo},
		Outputs: outputs,
	})
	if err != nil {
		return nil, err
	}

	log.Debugf(
		"offer made: selling %d of %s for %d %s with utxo %s",
		opts.Amount, opts.Asset, opts.Price, network.FeeAssetName, utxo.ID(),
	)

	return &Message{
		Tx:         tx,
		References: References{utxo.ID(): w.Address()},
	}, nil
}

// CheckBalance makes sure the wallet holds at least amount of asset.
func CheckBalance(w Wallet, assetID string, amount uint64) error {
	asset, ok := w.GetAsset(assetID)
	if !ok || asset.Amount == 0 {
		return fmt.Errorf(
			"%w: you are trying to send %s, but the wallet doesn't have any",
			ErrInsufficientFunds, assetName(asset, assetID),
		)
	}
	if asset.Amount < amount {
		return fmt.Errorf(
			"%w: %s, held %d, requested %d",
			ErrNotEnoughAsset, assetName(asset, assetID), asset.Amount, amount,
		)
	}
	return nil
}

func assetName(asset explorer.Asset, assetID string) string {
	if len(asset.Name) > 0 {
		return asset.Name
	}
	if len(asset.Symbol) > 0 {
		return asset.Symbol
	}
	return assetID
}
