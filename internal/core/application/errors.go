package application

import (
	"errors"

	"github.com/xswap-network/xswap/internal/core/ports"
	"github.com/xswap-network/xswap/pkg/swap"
)

// Error kinds. Every error returned by the services wraps exactly one of
// them.
var (
	// ErrValidation is the kind of errors due to malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrInsufficientFunds is the kind of errors due to the wallet not
	// holding enough of an asset.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoSuitableUtxo is the kind of errors due to no single utxo covering
	// a required amount.
	ErrNoSuitableUtxo = errors.New("no suitable utxo")
	// ErrSignatureIncomplete is the kind of errors due to a swap transaction
	// missing signatures after the last signing step.
	ErrSignatureIncomplete = errors.New("signature incomplete")
	// ErrStorage is the kind of errors due to the wallet store.
	ErrStorage = errors.New("storage error")
	// ErrExplorer is the kind of errors due to the node API.
	ErrExplorer = errors.New("explorer error")
)

var (
	// ErrNullWalletName ...
	ErrNullWalletName = errors.New("wallet name must not be null")
	// ErrNullPassword ...
	ErrNullPassword = errors.New("wallet is encrypted, password must not be null")
	// ErrNullQuantity ...
	ErrNullQuantity = errors.New("quantity must not be null")
	// ErrNullAsset ...
	ErrNullAsset = errors.New("asset must not be null")
	// ErrNullAddress ...
	ErrNullAddress = errors.New("address must not be null")
	// ErrWalletKeyMismatch ...
	ErrWalletKeyMismatch = errors.New("wallet address does not match its private key")
)

// Error is an error tagged with its kind.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

var exitCodes = []struct {
	kind error
	code int
	name string
}{
	{ErrValidation, 2, "validation"},
	{ErrInsufficientFunds, 3, "insufficient_funds"},
	{ErrNoSuitableUtxo, 4, "no_suitable_utxo"},
	{ErrSignatureIncomplete, 5, "signature_incomplete"},
	{ErrStorage, 6, "storage"},
	{ErrExplorer, 7, "explorer"},
}

// ExitCode returns the process exit code for err: 0 for nil, a distinct code
// per error kind and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, c := range exitCodes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return 1
}

// KindName returns a machine readable name of the kind of err.
func KindName(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range exitCodes {
		if errors.Is(err, c.kind) {
			return c.name
		}
	}
	return "internal"
}

func withKind(kind, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{kind, err}
}

// classify tags err with the kind matching the swap and wallet errors it
// wraps. Anything unknown is considered a validation error.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, swap.ErrInsufficientFunds),
		errors.Is(err, swap.ErrNotEnoughAsset):
		return withKind(ErrInsufficientFunds, err)
	case errors.Is(err, swap.ErrNoSuitableUnspent),
		errors.Is(err, swap.ErrNotEnoughFeeAsset):
		return withKind(ErrNoSuitableUtxo, err)
	case errors.Is(err, swap.ErrTxNotFullySigned):
		return withKind(ErrSignatureIncomplete, err)
	default:
		return withKind(ErrValidation, err)
	}
}

func storageError(err error) error {
	if errors.Is(err, ports.ErrInvalidWalletName) {
		return withKind(ErrValidation, err)
	}
	return withKind(ErrStorage, err)
}
