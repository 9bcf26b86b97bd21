package avm

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/utils"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/vms/components/avax"
	"github.com/ava-labs/avalanchego/vms/components/verify"
	"github.com/ava-labs/avalanchego/vms/secp256k1fx"
)

const (
	// CodecVersion prefixes every serialized structure.
	CodecVersion uint16 = 0

	BaseTxTypeID             uint32 = 0
	SECPTransferInputTypeID  uint32 = 5
	SECPTransferOutputTypeID uint32 = 7
	SECPCredentialTypeID     uint32 = 9

	// SignatureLen is the length of a recoverable secp256k1 signature
	// (r || s || recovery id).
	SignatureLen = 65
	// MaxMemoLen ...
	MaxMemoLen = 256
)

// Signature is a recoverable secp256k1 signature.
type Signature [SignatureLen]byte

// TransferableOutput sends Amount of AssetID to the given addresses.
type TransferableOutput struct {
	AssetID   ID
	Amount    uint64
	Locktime  uint64
	Threshold uint32
	Addresses []ShortID
}

// NewOutput returns a single-address output spendable by one signature.
func NewOutput(assetID ID, amount uint64, addr ShortID) *TransferableOutput {
	return &TransferableOutput{
		AssetID:   assetID,
		Amount:    amount,
		Threshold: 1,
		Addresses: []ShortID{addr},
	}
}

// TransferableInput consumes the output at OutputIndex of tx TxID.
type TransferableInput struct {
	TxID        ID
	OutputIndex uint32
	AssetID     ID
	Amount      uint64
	SigIndices  []uint32
}

// UTXOID returns the identifier of the consumed output.
func (in *TransferableInput) UTXOID() string {
	return UTXOID(in.TxID, in.OutputIndex)
}

// Credential holds the signatures for one input.
type Credential struct {
	Signatures []Signature
}

// IsEmpty returns whether the credential has no signature yet.
func (c *Credential) IsEmpty() bool {
	return c == nil || len(c.Signatures) <= 0
}

// BaseTx is the unsigned transaction moving assets between addresses.
type BaseTx struct {
	NetworkID    uint32
	BlockchainID ID
	Outputs      []*TransferableOutput
	Inputs       []*TransferableInput
	Memo         []byte
}

// Tx is an unsigned transaction plus one credential per input.
type Tx struct {
	Unsigned    *BaseTx
	Credentials []*Credential
}

// NewTx returns a Tx with an empty credential for every input.
func NewTx(unsigned *BaseTx) *Tx {
	creds := make([]*Credential, 0, len(unsigned.Inputs))
	for range unsigned.Inputs {
		creds = append(creds, &Credential{})
	}
	return &Tx{unsigned, creds}
}

// Bytes serializes the unsigned tx, codec version included.
func (tx *BaseTx) Bytes() ([]byte, error) {
	base, err := tx.toAVAX()
	if err != nil {
		return nil, err
	}
	var unsigned unsignedTx = base
	return txCodec.Marshal(CodecVersion, &unsigned)
}

// Hash returns the sha256 digest of the serialized unsigned tx, the message
// signed for every input.
func (tx *BaseTx) Hash() ([]byte, error) {
	buf, err := tx.Bytes()
	if err != nil {
		return nil, err
	}
	return hashing.ComputeHash256(buf), nil
}

// Sort puts inputs and outputs in the canonical order enforced by the node:
// inputs by utxo id, outputs by asset and serialized bytes. Only txs built
// in one go can be sorted, the ones built incrementally by more parties keep
// the order agreed within the messages.
func (tx *BaseTx) Sort() {
	ins := make([]*avax.TransferableInput, 0, len(tx.Inputs))
	inputs := make(map[*avax.TransferableInput]*TransferableInput, len(tx.Inputs))
	for _, in := range tx.Inputs {
		avaxIn := in.toAVAX()
		ins = append(ins, avaxIn)
		inputs[avaxIn] = in
	}
	utils.Sort(ins)
	for i, in := range ins {
		tx.Inputs[i] = inputs[in]
	}

	outs := make([]*avax.TransferableOutput, 0, len(tx.Outputs))
	outputs := make(map[*avax.TransferableOutput]*TransferableOutput, len(tx.Outputs))
	for _, out := range tx.Outputs {
		avaxOut := out.toAVAX()
		outs = append(outs, avaxOut)
		outputs[avaxOut] = out
	}
	avax.SortTransferableOutputs(outs, txCodec)
	for i, out := range outs {
		tx.Outputs[i] = outputs[out]
	}
}

// IsSorted returns whether inputs are sorted and unique and outputs are
// sorted, as the node requires.
func (tx *BaseTx) IsSorted() bool {
	base, err := tx.toAVAX()
	if err != nil {
		return false
	}
	return utils.IsSortedAndUnique(base.Ins) &&
		avax.IsSortedTransferableOutputs(base.Outs, txCodec)
}

func (tx *Tx) toAVAX() (*signedTx, error) {
	if tx.Unsigned == nil {
		return nil, fmt.Errorf("unsigned tx must not be null")
	}
	if len(tx.Credentials) != len(tx.Unsigned.Inputs) {
		return nil, ErrCredentialsMismatch
	}

	base, err := tx.Unsigned.toAVAX()
	if err != nil {
		return nil, err
	}

	creds := make([]verify.Verifiable, 0, len(tx.Credentials))
	for _, cred := range tx.Credentials {
		c := &secp256k1fx.Credential{}
		if cred != nil {
			for _, sig := range cred.Signatures {
				c.Sigs = append(c.Sigs, sig)
			}
		}
		creds = append(creds, c)
	}
	return &signedTx{Unsigned: base, Creds: creds}, nil
}

// Bytes serializes the unsigned tx followed by the credentials.
func (tx *Tx) Bytes() ([]byte, error) {
	signed, err := tx.toAVAX()
	if err != nil {
		return nil, err
	}
	return txCodec.Marshal(CodecVersion, signed)
}

// ToHex returns the hex encoding of the serialized tx.
func (tx *Tx) ToHex() (string, error) {
	buf, err := tx.Bytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ID returns the transaction id, the cb58 of the sha256 of the signed bytes.
func (tx *Tx) ID() (string, error) {
	buf, err := tx.Bytes()
	if err != nil {
		return "", err
	}
	return ID(hashing.ComputeHash256Array(buf)).String(), nil
}

// IsFullySigned returns whether every input has at least one signature.
func (tx *Tx) IsFullySigned() bool {
	if len(tx.Credentials) != len(tx.Unsigned.Inputs) {
		return false
	}
	for _, cred := range tx.Credentials {
		if cred.IsEmpty() {
			return false
		}
	}
	return true
}

// NewTxFromHex parses a hex encoded signed tx.
func NewTxFromHex(str string) (*Tx, error) {
	if len(str) <= 0 {
		return nil, ErrNullTxHex
	}
	buf, err := hex.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("invalid tx hex: %w", err)
	}
	return NewTxFromBytes(buf)
}

// NewTxFromBytes parses a serialized signed tx. Only base txs spending and
// creating secp256k1 transfer outputs are supported.
func NewTxFromBytes(buf []byte) (*Tx, error) {
	if err := checkCodecVersion(buf); err != nil {
		return nil, err
	}

	signed := &signedTx{}
	if _, err := txCodec.Unmarshal(buf, signed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTx, err)
	}
	if signed.Unsigned == nil {
		return nil, ErrMalformedTx
	}

	unsigned, err := newBaseTx(signed.Unsigned.base())
	if err != nil {
		return nil, err
	}
	if len(signed.Creds) != len(unsigned.Inputs) {
		return nil, ErrCredentialsMismatch
	}

	creds := make([]*Credential, 0, len(signed.Creds))
	for i, c := range signed.Creds {
		cred, ok := c.(*secp256k1fx.Credential)
		if !ok {
			return nil, fmt.Errorf("%w %T for credential %d", ErrUnsupportedType, c, i)
		}
		sigs := make([]Signature, 0, len(cred.Sigs))
		for _, sig := range cred.Sigs {
			sigs = append(sigs, sig)
		}
		creds = append(creds, &Credential{Signatures: sigs})
	}

	return &Tx{unsigned, creds}, nil
}
