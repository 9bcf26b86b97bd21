package application

import (
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/swap"
)

// FeeAssetAlias can be used in place of the fee asset id.
const FeeAssetAlias = "AVAX"

// ExplorerFactory returns the explorer service for the given network.
type ExplorerFactory func(network avm.Network) (explorer.Service, error)

type CreateWalletRequest struct {
	Name        string
	PrivateKey  string
	Description string
	Network     avm.Network
	Password    string
}

type WalletInfo struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PublicKey   string `json:"publicKey"`
	Network     string `json:"network"`
	Description string `json:"description"`
	Encrypted   bool   `json:"encrypted"`
}

type WalletBalances struct {
	Address string
	Assets  []explorer.Asset
	Utxos   []explorer.Utxo
}

type SendRequest struct {
	Wallet   string
	Password string
	// Asset is an asset id or FeeAssetAlias.
	Asset    string
	Quantity string
	Address  string
}

type BurnRequest struct {
	Wallet   string
	Password string
	Asset    string
	Quantity string
}

type TxReply struct {
	TxID  string
	TxHex string
}

type MakeOfferRequest struct {
	Wallet   string
	Password string
	// Asset to sell and its Quantity, in units of the asset denomination.
	Asset    string
	Quantity string
	// FeeAssetQuantity is the amount of fee asset asked in exchange.
	FeeAssetQuantity string
}

type TakeOfferRequest struct {
	Wallet         string
	Password       string
	TxHex          string
	AddrReferences string
}

type AcceptOfferRequest struct {
	Wallet         string
	Password       string
	TxHex          string
	AddrReferences string
	NoBroadcast    bool
	// Asset, Quantity and FeeAssetQuantity are the expected terms, required
	// when the offer is not in the local journal.
	Asset            string
	Quantity         string
	FeeAssetQuantity string
}

type OfferReply struct {
	OfferID string              `json:"offerID"`
	Message swap.EncodedMessage `json:"message"`
	Terms   swap.Terms          `json:"terms"`
}

type AcceptOfferReply struct {
	OfferID     string `json:"offerID"`
	TxID        string `json:"txID"`
	TxHex       string `json:"txHex"`
	Broadcasted bool   `json:"broadcasted"`
}
