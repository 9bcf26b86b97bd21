package explorer

import (
	"context"
)

// Asset is the snapshot of the wallet holdings of one asset.
type Asset struct {
	AssetID      string `json:"assetID"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Denomination uint8  `json:"denomination"`
	Amount       uint64 `json:"amount"`
}

// AssetDescription holds the static info of an asset.
type AssetDescription struct {
	AssetID      string `json:"assetID"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Denomination uint8  `json:"denomination"`
}

// Service is the representation of a node that allows to fetch the unspents
// and balances of an address, the description of assets, and to submit
// signed transactions.
type Service interface {
	// GetUnspents returns the list of utxos owned by addr alone and
	// spendable now with its single signature.
	GetUnspents(ctx context.Context, addr string) ([]Utxo, error)
	// GetBalances returns the list of assets held by addr with their
	// aggregate amount.
	GetBalances(ctx context.Context, addr string) ([]Asset, error)
	// GetAssetDescription returns name, symbol and denomination of an asset.
	GetAssetDescription(ctx context.Context, assetID string) (*AssetDescription, error)
	// GetTxFee returns the flat fee charged for a base transaction.
	GetTxFee(ctx context.Context) (uint64, error)
	// BroadcastTransaction submits the signed tx in hex format and returns
	// its id.
	BroadcastTransaction(ctx context.Context, txHex string) (string, error)
}
