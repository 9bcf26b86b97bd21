package swap

import (
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/wallet"
)

// Wallet is the local state of a party: its address and keys, plus the
// snapshot of its balances and unspents.
type Wallet interface {
	wallet.Signer
	Address() string
	Network() avm.Network
	ListBalances() []explorer.Asset
	GetAsset(assetID string) (explorer.Asset, bool)
	ListUnspents(asset string) []explorer.Utxo
	NetworkFee() uint64
}

func checkNetwork(tx *avm.Tx, network avm.Network) error {
	blockchainID, err := network.BlockchainIDBytes()
	if err != nil {
		return err
	}
	if tx.Unsigned.NetworkID != network.ID || tx.Unsigned.BlockchainID != blockchainID {
		return ErrNetworkMismatch
	}
	return nil
}
