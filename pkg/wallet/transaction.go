package wallet

import (
	"fmt"

	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/mathutil"
)

// Output is a desired transaction output.
type Output struct {
	Asset   string
	Amount  uint64
	Address string
}

// SpendOpts is the struct given to SpendOutputs method
type SpendOpts struct {
	Utxo   explorer.Utxo
	Amount uint64
	// Receiver gets Amount. If empty, Amount is burned.
	Receiver string
	// ChangeAddress gets the remainder of the utxo, if any.
	ChangeAddress string
}

func (o SpendOpts) validate() error {
	if o.Utxo == nil {
		return ErrEmptyInputs
	}
	if o.Amount == 0 {
		return ErrZeroOutputAmount
	}
	if o.Utxo.Value() < o.Amount {
		return fmt.Errorf(
			"%w: %d < %d", ErrNotEnoughUtxoValue, o.Utxo.Value(), o.Amount,
		)
	}
	if len(o.ChangeAddress) <= 0 && o.Utxo.Value() > o.Amount {
		return ErrInvalidOutputAddress
	}
	return nil
}

// SpendOutputs returns the outputs for spending Amount out of Utxo: the
// payment to the receiver and the remainder back to the change address,
// omitted when zero.
func SpendOutputs(opts SpendOpts) ([]Output, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	outputs := make([]Output, 0, 2)
	if len(opts.Receiver) > 0 {
		outputs = append(outputs, Output{
			Asset:   opts.Utxo.Asset(),
			Amount:  opts.Amount,
			Address: opts.Receiver,
		})
	}
	if remainder := opts.Utxo.Value() - opts.Amount; remainder > 0 {
		outputs = append(outputs, Output{
			Asset:   opts.Utxo.Asset(),
			Amount:  remainder,
			Address: opts.ChangeAddress,
		})
	}
	return outputs, nil
}

// CreateTxOpts is the struct given to CreateTx method
type CreateTxOpts struct {
	Network avm.Network
	Inputs  []explorer.Utxo
	Outputs []Output
	Memo    []byte
	// Canonical sorts inputs and outputs in the order enforced by the node.
	// Txs that other parties extend with UpdateTx must keep the given order.
	Canonical bool
}

func (o CreateTxOpts) validate() error {
	if len(o.Network.Name) <= 0 {
		return ErrNullNetwork
	}
	if len(o.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	if len(o.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	if len(o.Memo) > avm.MaxMemoLen {
		return avm.ErrMemoTooLong
	}
	return nil
}

// CreateTx crafts a new transaction spending the given inputs into the given
// outputs, in the given order unless Canonical is set, with an empty
// credential for every input.
func CreateTx(opts CreateTxOpts) (*avm.Tx, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	blockchainID, err := opts.Network.BlockchainIDBytes()
	if err != nil {
		return nil, err
	}

	unsigned := &avm.BaseTx{
		NetworkID:    opts.Network.ID,
		BlockchainID: blockchainID,
		Memo:         opts.Memo,
	}
	if err := addInsAndOuts(unsigned, opts.Network, opts.Inputs, opts.Outputs); err != nil {
		return nil, err
	}
	if opts.Canonical {
		unsigned.Sort()
	}

	return avm.NewTx(unsigned), nil
}

// UpdateTxOpts is the struct given to UpdateTx method
type UpdateTxOpts struct {
	Tx      *avm.Tx
	Network avm.Network
	Inputs  []explorer.Utxo
	Outputs []Output
}

func (o UpdateTxOpts) validate() error {
	if o.Tx == nil || o.Tx.Unsigned == nil {
		return ErrNullTx
	}
	if len(o.Network.Name) <= 0 {
		return ErrNullNetwork
	}
	if o.Tx.Unsigned.NetworkID != o.Network.ID {
		return fmt.Errorf(
			"%w: expected %d, got %d", ErrNetworkMismatch, o.Network.ID, o.Tx.Unsigned.NetworkID,
		)
	}
	if len(o.Tx.Credentials) != len(o.Tx.Unsigned.Inputs) {
		return avm.ErrCredentialsMismatch
	}
	return nil
}

// UpdateTx appends the given inputs and outputs to a copy of the given tx.
// Existing inputs, outputs and credentials keep their position, every new
// input gets an empty credential.
func UpdateTx(opts UpdateTxOpts) (*avm.Tx, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	prev := opts.Tx.Unsigned
	unsigned := &avm.BaseTx{
		NetworkID:    prev.NetworkID,
		BlockchainID: prev.BlockchainID,
		Outputs:      append([]*avm.TransferableOutput{}, prev.Outputs...),
		Inputs:       append([]*avm.TransferableInput{}, prev.Inputs...),
		Memo:         prev.Memo,
	}
	if err := addInsAndOuts(unsigned, opts.Network, opts.Inputs, opts.Outputs); err != nil {
		return nil, err
	}

	creds := append([]*avm.Credential{}, opts.Tx.Credentials...)
	for range opts.Inputs {
		creds = append(creds, &avm.Credential{})
	}

	return &avm.Tx{Unsigned: unsigned, Credentials: creds}, nil
}

func addInsAndOuts(
	tx *avm.BaseTx, network avm.Network, ins []explorer.Utxo, outs []Output,
) error {
	spent := make(map[string]struct{})
	for _, in := range tx.Inputs {
		spent[in.UTXOID()] = struct{}{}
	}

	for i, u := range ins {
		if u.Value() == 0 {
			return fmt.Errorf("input %d: %w", i, ErrZeroInputAmount)
		}
		txID, err := avm.IDFromString(u.Hash())
		if err != nil {
			return fmt.Errorf("input %d: invalid tx hash: %w", i, err)
		}
		assetID, err := avm.IDFromString(u.Asset())
		if err != nil {
			return fmt.Errorf("input %d: %w", i, ErrInvalidAsset)
		}

		in := &avm.TransferableInput{
			TxID:        txID,
			OutputIndex: u.Index(),
			AssetID:     assetID,
			Amount:      u.Value(),
			SigIndices:  []uint32{0},
		}
		if _, ok := spent[in.UTXOID()]; ok {
			return fmt.Errorf("input %d: %w", i, ErrDuplicatedInput)
		}
		spent[in.UTXOID()] = struct{}{}
		tx.Inputs = append(tx.Inputs, in)
	}

	for i, o := range outs {
		if o.Amount == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutputAmount)
		}
		assetID, err := avm.IDFromString(o.Asset)
		if err != nil {
			return fmt.Errorf("output %d: %w", i, ErrInvalidAsset)
		}
		addr, err := network.ParseAddress(o.Address)
		if err != nil {
			return fmt.Errorf("output %d: %w: %s", i, ErrInvalidOutputAddress, err)
		}
		tx.Outputs = append(tx.Outputs, avm.NewOutput(assetID, o.Amount, addr))
	}

	return nil
}

// AmountsByAsset returns the sum of input and output amounts of the tx
// grouped by asset id.
func AmountsByAsset(tx *avm.BaseTx) (map[avm.ID]uint64, map[avm.ID]uint64, error) {
	ins := make(map[avm.ID]uint64)
	outs := make(map[avm.ID]uint64)

	for _, in := range tx.Inputs {
		sum, err := mathutil.SafeAdd(ins[in.AssetID], in.Amount)
		if err != nil {
			return nil, nil, err
		}
		ins[in.AssetID] = sum
	}
	for _, out := range tx.Outputs {
		sum, err := mathutil.SafeAdd(outs[out.AssetID], out.Amount)
		if err != nil {
			return nil, nil, err
		}
		outs[out.AssetID] = sum
	}
	return ins, outs, nil
}

// ValidateConservation makes sure that, for every asset, the outputs (plus
// the fee for the fee asset) do not exceed the inputs.
func ValidateConservation(tx *avm.BaseTx, feeAsset avm.ID, fee uint64) error {
	if tx == nil {
		return ErrNullTx
	}
	ins, outs, err := AmountsByAsset(tx)
	if err != nil {
		return err
	}

	if _, ok := outs[feeAsset]; !ok && fee > 0 {
		outs[feeAsset] = 0
	}
	for asset, outAmount := range outs {
		required := outAmount
		if asset == feeAsset {
			if required, err = mathutil.SafeAdd(outAmount, fee); err != nil {
				return err
			}
		}
		if required > ins[asset] {
			return fmt.Errorf(
				"%w: asset %s requires %d, inputs provide %d",
				ErrUnbalancedTx, asset, required, ins[asset],
			)
		}
	}
	return nil
}
