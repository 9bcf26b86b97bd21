package explorer

import (
	"time"

	"github.com/xswap-network/xswap/pkg/avm"
)

// Utxo represents an unspent transfer output of the exchange chain.
type Utxo interface {
	// ID is the cb58 identifier of the utxo, cb58(txid || index).
	ID() string
	Hash() string
	Index() uint32
	Value() uint64
	Asset() string
	Address() string
	TypeID() uint32
	Locktime() uint64
	Threshold() uint32
}

func NewUtxo(
	hash string, index uint32, value uint64, asset, address string,
) Utxo {
	return utxo{
		UHash:      hash,
		UIndex:     index,
		UValue:     value,
		UAsset:     asset,
		UAddress:   address,
		UTypeID:    avm.SECPTransferOutputTypeID,
		UThreshold: 1,
	}
}

// NewUtxoFromAVM converts a parsed node utxo. The address is the first (and
// usually only) owner, formatted for the given network.
func NewUtxoFromAVM(u *avm.UTXO, network avm.Network) (Utxo, error) {
	address := ""
	if len(u.Output.Addresses) > 0 {
		addr, err := network.FormatAddress(u.Output.Addresses[0])
		if err != nil {
			return nil, err
		}
		address = addr
	}

	return utxo{
		UHash:      u.TxID.String(),
		UIndex:     u.OutputIndex,
		UValue:     u.Output.Amount,
		UAsset:     u.Output.AssetID.String(),
		UAddress:   address,
		UTypeID:    avm.SECPTransferOutputTypeID,
		ULocktime:  u.Output.Locktime,
		UThreshold: u.Output.Threshold,
	}, nil
}

// IsSpendable returns whether u can be spent at the given time with the
// single signature of its owner.
func IsSpendable(u Utxo, at time.Time) bool {
	if u.Threshold() != 1 {
		return false
	}
	return at.Unix() >= 0 && u.Locktime() <= uint64(at.Unix())
}

type utxo struct {
	UHash      string `json:"txid"`
	UIndex     uint32 `json:"outputIdx"`
	UValue     uint64 `json:"amount"`
	UAsset     string `json:"assetID"`
	UAddress   string `json:"address"`
	UTypeID    uint32 `json:"typeID"`
	ULocktime  uint64 `json:"locktime"`
	UThreshold uint32 `json:"threshold"`
}

func (u utxo) ID() string {
	txID, err := avm.IDFromString(u.UHash)
	if err != nil {
		return ""
	}
	return avm.UTXOID(txID, u.UIndex)
}

func (u utxo) Hash() string {
	return u.UHash
}

func (u utxo) Index() uint32 {
	return u.UIndex
}

func (u utxo) Value() uint64 {
	return u.UValue
}

func (u utxo) Asset() string {
	return u.UAsset
}

func (u utxo) Address() string {
	return u.UAddress
}

func (u utxo) TypeID() uint32 {
	return u.UTypeID
}

func (u utxo) Locktime() uint64 {
	return u.ULocktime
}

func (u utxo) Threshold() uint32 {
	return u.UThreshold
}
