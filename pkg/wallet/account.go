package wallet

import (
	"github.com/xswap-network/xswap/pkg/explorer"
)

// Account is a Wallet plus the snapshot of its unspents, balances and of the
// network fee taken once per command invocation.
type Account struct {
	*Wallet

	utxos  []explorer.Utxo
	assets []explorer.Asset
	txFee  uint64
}

// NewAccount returns an Account for the given snapshot.
func NewAccount(
	w *Wallet, utxos []explorer.Utxo, assets []explorer.Asset, txFee uint64,
) *Account {
	if utxos == nil {
		utxos = []explorer.Utxo{}
	}
	if assets == nil {
		assets = []explorer.Asset{}
	}
	return &Account{w, utxos, assets, txFee}
}

// ListBalances returns the held assets.
func (a *Account) ListBalances() []explorer.Asset {
	return a.assets
}

// GetAsset returns the held asset with the given id, if any.
func (a *Account) GetAsset(assetID string) (explorer.Asset, bool) {
	for _, asset := range a.assets {
		if asset.AssetID == assetID {
			return asset, true
		}
	}
	return explorer.Asset{}, false
}

// ListUnspents returns the unspents of the given asset, or all of them if
// asset is empty.
func (a *Account) ListUnspents(asset string) []explorer.Utxo {
	if len(asset) <= 0 {
		return a.utxos
	}
	return explorer.FilterUnspentsByAsset(a.utxos, asset)
}

// NetworkFee returns the flat fee paid in fee asset by a transaction.
func (a *Account) NetworkFee() uint64 {
	return a.txFee
}
