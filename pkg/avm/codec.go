package avm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/vms/components/avax"
	"github.com/ava-labs/avalanchego/vms/components/verify"
	"github.com/ava-labs/avalanchego/vms/nftfx"
	"github.com/ava-labs/avalanchego/vms/propertyfx"
	"github.com/ava-labs/avalanchego/vms/secp256k1fx"
)

// txCodec serializes with the type ids of the exchange chain: the tx types
// come first, followed by the types of the secp256k1, nft and property fxs.
var txCodec codec.Manager

func init() {
	c := linearcodec.NewDefault()
	txCodec = codec.NewDefaultManager()

	errs := []error{c.RegisterType(&baseTx{})}
	// CreateAssetTx, OperationTx, ImportTx and ExportTx are not supported.
	c.SkipRegistrations(4)
	for _, t := range []interface{}{
		&secp256k1fx.TransferInput{},
		&secp256k1fx.MintOutput{},
		&secp256k1fx.TransferOutput{},
		&secp256k1fx.MintOperation{},
		&secp256k1fx.Credential{},
		&nftfx.MintOutput{},
		&nftfx.TransferOutput{},
		&nftfx.MintOperation{},
		&nftfx.TransferOperation{},
		&nftfx.Credential{},
		&propertyfx.MintOutput{},
		&propertyfx.OwnedOutput{},
		&propertyfx.MintOperation{},
		&propertyfx.BurnOperation{},
		&propertyfx.Credential{},
	} {
		errs = append(errs, c.RegisterType(t))
	}
	errs = append(errs, txCodec.RegisterCodec(CodecVersion, c))

	if err := errors.Join(errs...); err != nil {
		panic(fmt.Sprintf("failed to init tx codec: %s", err))
	}
}

type unsignedTx interface {
	base() *avax.BaseTx
}

type baseTx struct {
	avax.BaseTx `serialize:"true"`
}

func (t *baseTx) base() *avax.BaseTx {
	return &t.BaseTx
}

type signedTx struct {
	Unsigned unsignedTx          `serialize:"true"`
	Creds    []verify.Verifiable `serialize:"true"`
}

type utxo struct {
	UTXOID avax.UTXOID       `serialize:"true"`
	Asset  avax.Asset        `serialize:"true"`
	Out    verify.Verifiable `serialize:"true"`
}

func checkCodecVersion(buf []byte) error {
	if len(buf) < 2 {
		return fmt.Errorf("%w: missing codec version", ErrMalformedTx)
	}
	if version := binary.BigEndian.Uint16(buf); version != CodecVersion {
		return fmt.Errorf("%w %d", ErrUnsupportedCodec, version)
	}
	return nil
}

func (out *TransferableOutput) toAVAX() *avax.TransferableOutput {
	addrs := make([]ids.ShortID, len(out.Addresses))
	copy(addrs, out.Addresses)
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})

	return &avax.TransferableOutput{
		Asset: avax.Asset{ID: out.AssetID},
		Out: &secp256k1fx.TransferOutput{
			Amt: out.Amount,
			OutputOwners: secp256k1fx.OutputOwners{
				Locktime:  out.Locktime,
				Threshold: out.Threshold,
				Addrs:     addrs,
			},
		},
	}
}

func newTransferableOutput(asset avax.Asset, out interface{}) (*TransferableOutput, error) {
	transfer, ok := out.(*secp256k1fx.TransferOutput)
	if !ok {
		return nil, fmt.Errorf("%w %T for output", ErrUnsupportedType, out)
	}
	return &TransferableOutput{
		AssetID:   asset.ID,
		Amount:    transfer.Amt,
		Locktime:  transfer.Locktime,
		Threshold: transfer.Threshold,
		Addresses: transfer.Addrs,
	}, nil
}

func (in *TransferableInput) toAVAX() *avax.TransferableInput {
	return &avax.TransferableInput{
		UTXOID: avax.UTXOID{TxID: in.TxID, OutputIndex: in.OutputIndex},
		Asset:  avax.Asset{ID: in.AssetID},
		In: &secp256k1fx.TransferInput{
			Amt:   in.Amount,
			Input: secp256k1fx.Input{SigIndices: in.SigIndices},
		},
	}
}

func newTransferableInput(in *avax.TransferableInput) (*TransferableInput, error) {
	transfer, ok := in.In.(*secp256k1fx.TransferInput)
	if !ok {
		return nil, fmt.Errorf("%w %T for input", ErrUnsupportedType, in.In)
	}
	return &TransferableInput{
		TxID:        in.UTXOID.TxID,
		OutputIndex: in.UTXOID.OutputIndex,
		AssetID:     in.Asset.ID,
		Amount:      transfer.Amt,
		SigIndices:  transfer.SigIndices,
	}, nil
}

func (tx *BaseTx) toAVAX() (*baseTx, error) {
	if len(tx.Memo) > MaxMemoLen {
		return nil, ErrMemoTooLong
	}

	outs := make([]*avax.TransferableOutput, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		outs = append(outs, out.toAVAX())
	}
	ins := make([]*avax.TransferableInput, 0, len(tx.Inputs))
	for _, in := range tx.Inputs {
		ins = append(ins, in.toAVAX())
	}

	return &baseTx{avax.BaseTx{
		NetworkID:    tx.NetworkID,
		BlockchainID: tx.BlockchainID,
		Outs:         outs,
		Ins:          ins,
		Memo:         tx.Memo,
	}}, nil
}

func newBaseTx(tx *avax.BaseTx) (*BaseTx, error) {
	if len(tx.Memo) > MaxMemoLen {
		return nil, ErrMemoTooLong
	}

	res := &BaseTx{
		NetworkID:    tx.NetworkID,
		BlockchainID: tx.BlockchainID,
		Outputs:      make([]*TransferableOutput, 0, len(tx.Outs)),
		Inputs:       make([]*TransferableInput, 0, len(tx.Ins)),
		Memo:         tx.Memo,
	}
	for i, out := range tx.Outs {
		o, err := newTransferableOutput(out.Asset, out.Out)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		res.Outputs = append(res.Outputs, o)
	}
	for i, in := range tx.Ins {
		txIn, err := newTransferableInput(in)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		res.Inputs = append(res.Inputs, txIn)
	}
	return res, nil
}
