package explorer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/mathutil"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentLookups = 4

// BalancesFromUnspents sums the given utxos by asset and decorates every asset
// with its description. The fee asset is described by the network params and
// sorts first, the others are described by svc, at most
// maxConcurrentLookups at a time.
func BalancesFromUnspents(
	ctx context.Context, svc Service, network avm.Network, utxos []Utxo,
) ([]Asset, error) {
	amounts := make(map[string]uint64)
	order := make([]string, 0)
	for _, u := range utxos {
		amount, ok := amounts[u.Asset()]
		if !ok {
			order = append(order, u.Asset())
		}
		sum, err := mathutil.SafeAdd(amount, u.Value())
		if err != nil {
			return nil, fmt.Errorf("balance of asset %s: %w", u.Asset(), err)
		}
		amounts[u.Asset()] = sum
	}

	descriptions := map[string]*AssetDescription{
		network.FeeAsset: {
			AssetID:      network.FeeAsset,
			Name:         network.FeeAssetName,
			Symbol:       network.FeeAssetName,
			Denomination: avm.FeeAssetDenomination,
		},
	}
	lock := &sync.Mutex{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, assetID := range order {
		if assetID == network.FeeAsset {
			continue
		}
		assetID := assetID
		g.Go(func() error {
			desc, err := svc.GetAssetDescription(gctx, assetID)
			if err != nil {
				return err
			}
			lock.Lock()
			descriptions[assetID] = desc
			lock.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(order))
	for _, assetID := range order {
		desc := descriptions[assetID]
		assets = append(assets, Asset{
			AssetID:      assetID,
			Name:         desc.Name,
			Symbol:       desc.Symbol,
			Denomination: desc.Denomination,
			Amount:       amounts[assetID],
		})
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].AssetID == network.FeeAsset && assets[j].AssetID != network.FeeAsset
	})
	return assets, nil
}
