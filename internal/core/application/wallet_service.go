package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/internal/core/ports"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/mathutil"
	"github.com/xswap-network/xswap/pkg/swap"
	"github.com/xswap-network/xswap/pkg/wallet"
)

const walletTypeSingleKey = "singleton"

type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*WalletInfo, error)
	GetWalletInfo(ctx context.Context, name string) (*WalletInfo, error)
	ListWallets(ctx context.Context) ([]string, error)
	GetBalances(ctx context.Context, name string) (*WalletBalances, error)
	Send(ctx context.Context, req SendRequest) (*TxReply, error)
	Burn(ctx context.Context, req BurnRequest) (*TxReply, error)
}

type walletService struct {
	*accountLoader
}

func NewWalletService(
	walletStore ports.WalletStore, explorerFactory ExplorerFactory,
) WalletService {
	return &walletService{&accountLoader{walletStore, explorerFactory}}
}

// CreateWallet imports the given private key, or generates a new one, and
// stores it under the given name. The key is encrypted if a password is
// given.
func (s *walletService) CreateWallet(
	ctx context.Context, req CreateWalletRequest,
) (*WalletInfo, error) {
	if len(req.Name) <= 0 {
		return nil, withKind(ErrValidation, ErrNullWalletName)
	}

	w, err := wallet.NewWallet(wallet.NewWalletOpts{
		PrivateKey: req.PrivateKey,
		Network:    req.Network,
	})
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}

	privateKey := w.PrivateKey()
	if len(req.Password) > 0 {
		privateKey, err = wallet.Encrypt(wallet.EncryptOpts{
			PlainText:  privateKey,
			Passphrase: req.Password,
		})
		if err != nil {
			return nil, withKind(ErrValidation, err)
		}
	}

	record := ports.WalletRecord{
		Type:        walletTypeSingleKey,
		Address:     w.Address(),
		PrivateKey:  privateKey,
		PublicKey:   w.PublicKey(),
		Description: req.Description,
		NetworkID:   req.Network.ID,
		Encrypted:   len(req.Password) > 0,
	}
	if err := s.walletStore.CreateWallet(ctx, req.Name, record); err != nil {
		return nil, storageError(err)
	}

	log.Debugf("wallet %s created with address %s", req.Name, w.Address())
	return walletInfo(req.Name, record, req.Network), nil
}

// GetWalletInfo returns the public info of a stored wallet. The password is
// not needed since the address is stored in clear.
func (s *walletService) GetWalletInfo(
	ctx context.Context, name string,
) (*WalletInfo, error) {
	if len(name) <= 0 {
		return nil, withKind(ErrValidation, ErrNullWalletName)
	}
	record, err := s.walletStore.GetWallet(ctx, name)
	if err != nil {
		return nil, storageError(err)
	}
	network, err := avm.NetworkByID(record.NetworkID)
	if err != nil {
		return nil, withKind(
			ErrStorage, fmt.Errorf("%w: %s", ports.ErrInvalidWalletFile, err),
		)
	}
	if _, err := network.ParseAddress(record.Address); err != nil {
		return nil, withKind(
			ErrStorage, fmt.Errorf("%w: %s", ports.ErrInvalidWalletFile, err),
		)
	}
	return walletInfo(name, *record, network), nil
}

func (s *walletService) ListWallets(ctx context.Context) ([]string, error) {
	names, err := s.walletStore.ListWallets(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return names, nil
}

func (s *walletService) GetBalances(
	ctx context.Context, name string,
) (*WalletBalances, error) {
	info, err := s.GetWalletInfo(ctx, name)
	if err != nil {
		return nil, err
	}
	network, _ := avm.NetworkByName(info.Network)

	svc, err := s.explorerFor(network)
	if err != nil {
		return nil, err
	}
	utxos, err := svc.GetUnspents(ctx, info.Address)
	if err != nil {
		return nil, withKind(ErrExplorer, err)
	}
	assets, err := explorer.BalancesFromUnspents(ctx, svc, network, utxos)
	if err != nil {
		return nil, withKind(ErrExplorer, err)
	}

	return &WalletBalances{
		Address: info.Address,
		Assets:  assets,
		Utxos:   utxos,
	}, nil
}

// Send pays the given quantity of asset to address. The fee is paid in fee
// asset.
func (s *walletService) Send(
	ctx context.Context, req SendRequest,
) (*TxReply, error) {
	if err := validateQuantity(req.Wallet, req.Quantity); err != nil {
		return nil, err
	}
	if len(req.Address) <= 0 {
		return nil, withKind(ErrValidation, ErrNullAddress)
	}

	acc, svc, err := s.loadAccount(ctx, req.Wallet, req.Password)
	if err != nil {
		return nil, err
	}
	if _, err := acc.Network().ParseAddress(req.Address); err != nil {
		return nil, withKind(ErrValidation, err)
	}

	return s.pay(ctx, acc, svc, req.Asset, req.Quantity, req.Address)
}

// Burn destroys the given quantity of asset. The fee is paid in fee asset.
func (s *walletService) Burn(
	ctx context.Context, req BurnRequest,
) (*TxReply, error) {
	if err := validateQuantity(req.Wallet, req.Quantity); err != nil {
		return nil, err
	}
	if len(req.Asset) <= 0 {
		return nil, withKind(ErrValidation, ErrNullAsset)
	}

	acc, svc, err := s.loadAccount(ctx, req.Wallet, req.Password)
	if err != nil {
		return nil, err
	}

	return s.pay(ctx, acc, svc, req.Asset, req.Quantity, "")
}

func (s *walletService) pay(
	ctx context.Context, acc *wallet.Account, svc explorer.Service,
	asset, quantity, receiver string,
) (*TxReply, error) {
	assetID := resolveAsset(asset, acc.Network())
	denom, err := denomination(acc, assetID)
	if err != nil {
		return nil, err
	}
	amount, err := mathutil.ToBaseUnits(quantity, denom)
	if err != nil {
		return nil, withKind(ErrValidation, err)
	}

	tx, refs, err := buildPayment(paymentOpts{
		account:  acc,
		asset:    assetID,
		amount:   amount,
		receiver: receiver,
	})
	if err != nil {
		return nil, classify(err)
	}

	signed, err := signAll(acc, tx, refs)
	if err != nil {
		return nil, classify(err)
	}

	txHex, err := signed.ToHex()
	if err != nil {
		return nil, classify(err)
	}
	txID, err := svc.BroadcastTransaction(ctx, txHex)
	if err != nil {
		return nil, withKind(ErrExplorer, err)
	}

	log.Debugf("transaction %s broadcasted", txID)
	return &TxReply{TxID: txID, TxHex: txHex}, nil
}

type paymentOpts struct {
	account *wallet.Account
	asset   string
	amount  uint64
	// receiver gets amount. If empty, amount is burned.
	receiver string
}

// buildPayment spends the smallest utxo of asset covering the amount. When
// asset is not the fee asset, the fee is paid with a second input, the
// smallest fee asset utxo covering it.
func buildPayment(opts paymentOpts) (*avm.Tx, swap.References, error) {
	acc := opts.account
	network := acc.Network()
	feeAsset := network.FeeAsset
	fee := acc.NetworkFee()

	inputs := make([]explorer.Utxo, 0, 2)
	outputs := make([]wallet.Output, 0, 3)

	if opts.asset == feeAsset {
		required, err := mathutil.SafeAdd(opts.amount, fee)
		if err != nil {
			return nil, nil, err
		}
		utxo, err := selectUnspent(acc, feeAsset, required)
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, utxo)
		if len(opts.receiver) > 0 {
			outputs = append(outputs, wallet.Output{
				Asset:   feeAsset,
				Amount:  opts.amount,
				Address: opts.receiver,
			})
		}
		if change := utxo.Value() - required; change > 0 {
			outputs = append(outputs, wallet.Output{
				Asset:   feeAsset,
				Amount:  change,
				Address: acc.Address(),
			})
		}
	} else {
		utxo, err := selectUnspent(acc, opts.asset, opts.amount)
		if err != nil {
			return nil, nil, err
		}
		outs, err := wallet.SpendOutputs(wallet.SpendOpts{
			Utxo:          utxo,
			Amount:        opts.amount,
			Receiver:      opts.receiver,
			ChangeAddress: acc.Address(),
		})
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, utxo)
		outputs = append(outputs, outs...)

		if fee > 0 {
			feeUtxo, err := selectUnspent(acc, feeAsset, fee)
			if err != nil {
				return nil, nil, err
			}
			inputs = append(inputs, feeUtxo)
			if change := feeUtxo.Value() - fee; change > 0 {
				outputs = append(outputs, wallet.Output{
					Asset:   feeAsset,
					Amount:  change,
					Address: acc.Address(),
				})
			}
		}
	}

	if len(outputs) <= 0 {
		return nil, nil, fmt.Errorf(
			"%w: the whole utxo would be burned", wallet.ErrEmptyOutputs,
		)
	}

	tx, err := wallet.CreateTx(wallet.CreateTxOpts{
		Network:   network,
		Inputs:    inputs,
		Outputs:   outputs,
		Canonical: true,
	})
	if err != nil {
		return nil, nil, err
	}

	refs := make(swap.References)
	for _, in := range inputs {
		refs[in.ID()] = acc.Address()
	}
	return tx, refs, nil
}

func selectUnspent(
	acc *wallet.Account, asset string, amount uint64,
) (explorer.Utxo, error) {
	if err := swap.CheckBalance(acc, asset, amount); err != nil {
		return nil, err
	}
	utxo, ok := explorer.SelectUnspent(acc.ListUnspents(asset), amount, asset)
	if !ok {
		return nil, fmt.Errorf(
			"%w: asset %s, amount %d", swap.ErrNoSuitableUnspent, asset, amount,
		)
	}
	return utxo, nil
}

// signAll signs a transaction spending only utxos of the account and makes
// sure nothing is left unsigned.
func signAll(
	acc *wallet.Account, tx *avm.Tx, refs swap.References,
) (*avm.Tx, error) {
	feeAsset, err := acc.Network().FeeAssetID()
	if err != nil {
		return nil, err
	}
	if err := wallet.ValidateConservation(
		tx.Unsigned, feeAsset, acc.NetworkFee(),
	); err != nil {
		return nil, err
	}

	signed, err := wallet.PartialSign(wallet.PartialSignOpts{
		Tx:         tx,
		Signer:     acc,
		References: refs,
	})
	if err != nil {
		return nil, err
	}
	if !signed.IsFullySigned() {
		return nil, swap.ErrTxNotFullySigned
	}
	return signed, nil
}

func validateQuantity(walletName, quantity string) error {
	if len(walletName) <= 0 {
		return withKind(ErrValidation, ErrNullWalletName)
	}
	if len(quantity) <= 0 {
		return withKind(ErrValidation, ErrNullQuantity)
	}
	return nil
}

func walletInfo(
	name string, record ports.WalletRecord, network avm.Network,
) *WalletInfo {
	return &WalletInfo{
		Name:        name,
		Address:     record.Address,
		PublicKey:   record.PublicKey,
		Network:     network.Name,
		Description: record.Description,
		Encrypted:   record.Encrypted,
	}
}
