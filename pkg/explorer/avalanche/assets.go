package avalanche

import (
	"context"

	"github.com/xswap-network/xswap/pkg/explorer"
)

type getAssetDescriptionParams struct {
	AssetID string `json:"assetID"`
}

type getAssetDescriptionResult struct {
	AssetID      string   `json:"assetID"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Denomination jsonUint `json:"denomination"`
}

func (s *service) GetAssetDescription(
	ctx context.Context, assetID string,
) (*explorer.AssetDescription, error) {
	if desc, ok := s.assets.Get(assetID); ok {
		return desc, nil
	}

	res := &getAssetDescriptionResult{}
	if err := s.call(
		ctx, xchainPath, "avm.getAssetDescription",
		getAssetDescriptionParams{assetID}, res,
	); err != nil {
		return nil, err
	}

	desc := &explorer.AssetDescription{
		AssetID:      assetID,
		Name:         res.Name,
		Symbol:       res.Symbol,
		Denomination: uint8(res.Denomination),
	}
	s.assets.Set(assetID, desc)
	return desc, nil
}

// GetBalances aggregates the unspents of addr by asset and decorates every
// asset with its description.
func (s *service) GetBalances(
	ctx context.Context, addr string,
) ([]explorer.Asset, error) {
	utxos, err := s.GetUnspents(ctx, addr)
	if err != nil {
		return nil, err
	}
	return explorer.BalancesFromUnspents(ctx, s, s.network, utxos)
}
