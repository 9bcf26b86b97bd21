package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/xswap-network/xswap/pkg/avm"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullPrivateKey ...
	ErrNullPrivateKey = errors.New("private key must not be null")
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New("private key must be in the form PrivateKey-<cb58>")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrInvalidPassphrase ...
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrNullTx ...
	ErrNullTx = errors.New("transaction must not be null")
	// ErrNullSigner ...
	ErrNullSigner = errors.New("signer must not be null")
	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")
	// ErrZeroInputAmount ...
	ErrZeroInputAmount = errors.New("input amount must not be zero")
	// ErrZeroOutputAmount ...
	ErrZeroOutputAmount = errors.New("output amount must not be zero")
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("output address must be a valid address")
	// ErrInvalidAsset ...
	ErrInvalidAsset = errors.New("asset must be a valid cb58 id")
	// ErrDuplicatedInput ...
	ErrDuplicatedInput = errors.New("input is spent more than once")
	// ErrNetworkMismatch ...
	ErrNetworkMismatch = errors.New("transaction belongs to another network")
	// ErrUnbalancedTx is returned when the outputs of an asset (plus fee)
	// exceed its inputs.
	ErrUnbalancedTx = errors.New("transaction outputs exceed inputs")
	// ErrNotEnoughUtxoValue ...
	ErrNotEnoughUtxoValue = errors.New("utxo value does not cover the amount to spend")
	// ErrAddressNotControlled ...
	ErrAddressNotControlled = errors.New("address is not controlled by the wallet")
	// ErrSignatureVerification ...
	ErrSignatureVerification = errors.New("signature verification failed")
)

// Wallet holds a single secp256k1 key pair and the network its address
// belongs to.
type Wallet struct {
	privateKey *btcec.PrivateKey
	network    avm.Network
	shortID    avm.ShortID
	address    string
}

// NewWalletOpts is the struct given to NewWallet method. A new random key is
// generated if PrivateKey is empty.
type NewWalletOpts struct {
	PrivateKey string
	Network    avm.Network
}

func (o NewWalletOpts) validate() error {
	if len(o.Network.Name) <= 0 || len(o.Network.HRP) <= 0 {
		return ErrNullNetwork
	}
	return nil
}

// NewWallet imports the given private key, or creates a new one.
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var (
		key *btcec.PrivateKey
		err error
	)
	if len(opts.PrivateKey) > 0 {
		key, err = ParsePrivateKey(opts.PrivateKey)
	} else {
		key, err = btcec.NewPrivateKey()
	}
	if err != nil {
		return nil, err
	}

	shortID := ShortIDFromPubKey(key.PubKey())
	address, err := opts.Network.FormatAddress(shortID)
	if err != nil {
		return nil, err
	}

	return &Wallet{key, opts.Network, shortID, address}, nil
}

// Address returns the address of the wallet, ie. X-avax1...
func (w *Wallet) Address() string {
	return w.address
}

func (w *Wallet) ShortID() avm.ShortID {
	return w.shortID
}

func (w *Wallet) Network() avm.Network {
	return w.network
}

// PrivateKey returns the private key in the PrivateKey-<cb58> format.
func (w *Wallet) PrivateKey() string {
	return FormatPrivateKey(w.privateKey)
}

// PublicKey returns the cb58 encoded compressed public key.
func (w *Wallet) PublicKey() string {
	return avm.CB58Encode(w.privateKey.PubKey().SerializeCompressed())
}

func (w *Wallet) validate() error {
	if w == nil || w.privateKey == nil {
		return ErrNullPrivateKey
	}
	if len(w.address) <= 0 {
		return fmt.Errorf("wallet address must not be null")
	}
	return nil
}
