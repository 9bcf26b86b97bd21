package avm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/vms/components/avax"
)

// UTXO is an unspent transfer output as returned by the node.
type UTXO struct {
	TxID        ID
	OutputIndex uint32
	Output      TransferableOutput
}

// ID returns the cb58 identifier of the utxo.
func (u *UTXO) ID() string {
	return UTXOID(u.TxID, u.OutputIndex)
}

// Bytes serializes the utxo.
func (u *UTXO) Bytes() ([]byte, error) {
	out := u.Output.toAVAX()
	return txCodec.Marshal(CodecVersion, &utxo{
		UTXOID: avax.UTXOID{TxID: u.TxID, OutputIndex: u.OutputIndex},
		Asset:  out.Asset,
		Out:    out.Out,
	})
}

// NewUTXOFromBytes parses a serialized utxo. Only secp256k1 transfer outputs
// are supported, ErrUnsupportedType is returned for any other kind.
func NewUTXOFromBytes(buf []byte) (*UTXO, error) {
	if err := checkCodecVersion(buf); err != nil {
		return nil, err
	}

	parsed := &utxo{}
	if _, err := txCodec.Unmarshal(buf, parsed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTx, err)
	}
	out, err := newTransferableOutput(parsed.Asset, parsed.Out)
	if err != nil {
		return nil, err
	}
	return &UTXO{
		TxID:        parsed.UTXOID.TxID,
		OutputIndex: parsed.UTXOID.OutputIndex,
		Output:      *out,
	}, nil
}
