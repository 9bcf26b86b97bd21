package swap

import (
	"fmt"

	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/mathutil"
	"github.com/xswap-network/xswap/pkg/wallet"
)

// Terms is what a made offer trades: Amount of Asset sold by Maker for Price
// of fee asset.
type Terms struct {
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
	Price  uint64 `json:"price"`
	Maker  string `json:"maker"`
}

// ParseTerms extracts the terms of a made (not yet taken) offer. The offer
// must spend exactly one asset other than the fee asset, whose inputs not
// given back as remainder are for sale, and must ask for some fee asset.
func ParseTerms(tx *avm.Tx, network avm.Network) (*Terms, error) {
	if tx == nil || tx.Unsigned == nil {
		return nil, ErrNullMessage
	}
	feeAsset, err := network.FeeAssetID()
	if err != nil {
		return nil, err
	}

	ins, outs, err := wallet.AmountsByAsset(tx.Unsigned)
	if err != nil {
		return nil, err
	}
	if ins[feeAsset] > 0 {
		return nil, fmt.Errorf("%w: maker inputs must not spend the fee asset", ErrInvalidOffer)
	}
	price := outs[feeAsset]
	if price == 0 {
		return nil, fmt.Errorf("%w: no fee asset is requested", ErrInvalidOffer)
	}

	for asset, amount := range outs {
		if asset != feeAsset && amount > ins[asset] {
			return nil, fmt.Errorf(
				"%w: outputs of asset %s exceed inputs", ErrInvalidOffer, asset,
			)
		}
	}

	var (
		sold   avm.ID
		amount uint64
	)
	for _, in := range tx.Unsigned.Inputs {
		if in.AssetID == sold && amount > 0 {
			continue
		}
		diff, _ := mathutil.SafeSub(ins[in.AssetID], outs[in.AssetID])
		if diff == 0 {
			continue
		}
		if amount > 0 {
			return nil, fmt.Errorf("%w: more than one asset is for sale", ErrInvalidOffer)
		}
		sold, amount = in.AssetID, diff
	}
	if amount == 0 {
		return nil, fmt.Errorf("%w: nothing is for sale", ErrInvalidOffer)
	}

	var maker string
	for _, out := range tx.Unsigned.Outputs {
		if out.AssetID == feeAsset && len(out.Addresses) > 0 {
			if maker, err = network.FormatAddress(out.Addresses[0]); err != nil {
				return nil, err
			}
			break
		}
	}

	return &Terms{
		Asset:  sold.String(),
		Amount: amount,
		Price:  price,
		Maker:  maker,
	}, nil
}
