package ports

import (
	"context"
	"errors"
)

var (
	// ErrInvalidWalletName ...
	ErrInvalidWalletName = errors.New(
		"wallet name must contain only letters, digits, dots, dashes or underscores",
	)
	// ErrWalletAlreadyExists ...
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrInvalidWalletFile ...
	ErrInvalidWalletFile = errors.New("wallet file is not valid")
)

// WalletRecord is the persisted form of a named wallet.
type WalletRecord struct {
	Type        string `json:"type"`
	Mnemonic    string `json:"mnemonic"`
	Address     string `json:"address"`
	PrivateKey  string `json:"privateKey"`
	PublicKey   string `json:"publicKey"`
	Description string `json:"description"`
	NetworkID   uint32 `json:"networkID"`
	// Encrypted tells whether PrivateKey holds the ciphertext of the key.
	Encrypted bool `json:"encrypted"`
}

// WalletStore persists wallets by name.
type WalletStore interface {
	// CreateWallet stores a new wallet and fails if the name is taken.
	CreateWallet(ctx context.Context, name string, record WalletRecord) error
	// GetWallet returns the wallet with the given name.
	GetWallet(ctx context.Context, name string) (*WalletRecord, error)
	// ListWallets returns the names of all stored wallets.
	ListWallets(ctx context.Context) ([]string, error)
}
