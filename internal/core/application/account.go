package application

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/internal/core/ports"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/swap"
	"github.com/xswap-network/xswap/pkg/wallet"
)

// accountLoader opens named wallets and takes the snapshot of their unspents.
// The node is queried once per command.
type accountLoader struct {
	walletStore     ports.WalletStore
	explorerFactory ExplorerFactory
}

func (l *accountLoader) openWallet(
	ctx context.Context, name, password string,
) (*wallet.Wallet, error) {
	if len(name) <= 0 {
		return nil, withKind(ErrValidation, ErrNullWalletName)
	}

	record, err := l.walletStore.GetWallet(ctx, name)
	if err != nil {
		return nil, storageError(err)
	}

	network, err := avm.NetworkByID(record.NetworkID)
	if err != nil {
		return nil, withKind(
			ErrStorage, fmt.Errorf("%w: %s", ports.ErrInvalidWalletFile, err),
		)
	}
	if len(record.PrivateKey) <= 0 {
		return nil, withKind(
			ErrStorage, fmt.Errorf("%w: missing private key", ports.ErrInvalidWalletFile),
		)
	}

	privateKey := record.PrivateKey
	if record.Encrypted {
		if len(password) <= 0 {
			return nil, withKind(ErrValidation, ErrNullPassword)
		}
		privateKey, err = wallet.Decrypt(wallet.DecryptOpts{
			CypherText: record.PrivateKey,
			Passphrase: password,
		})
		if err != nil {
			return nil, withKind(ErrValidation, err)
		}
	}

	w, err := wallet.NewWallet(wallet.NewWalletOpts{
		PrivateKey: privateKey,
		Network:    network,
	})
	if err != nil {
		return nil, withKind(
			ErrStorage, fmt.Errorf("%w: %s", ports.ErrInvalidWalletFile, err),
		)
	}
	if len(record.Address) > 0 && record.Address != w.Address() {
		return nil, withKind(ErrStorage, ErrWalletKeyMismatch)
	}
	return w, nil
}

func (l *accountLoader) explorerFor(network avm.Network) (explorer.Service, error) {
	svc, err := l.explorerFactory(network)
	if err != nil {
		return nil, withKind(ErrExplorer, err)
	}
	return svc, nil
}

// loadAccount opens the named wallet and fetches its unspents and the
// network fee.
func (l *accountLoader) loadAccount(
	ctx context.Context, name, password string,
) (*wallet.Account, explorer.Service, error) {
	w, err := l.openWallet(ctx, name, password)
	if err != nil {
		return nil, nil, err
	}

	svc, err := l.explorerFor(w.Network())
	if err != nil {
		return nil, nil, err
	}

	utxos, err := svc.GetUnspents(ctx, w.Address())
	if err != nil {
		return nil, nil, withKind(ErrExplorer, err)
	}
	assets, err := explorer.BalancesFromUnspents(ctx, svc, w.Network(), utxos)
	if err != nil {
		return nil, nil, withKind(ErrExplorer, err)
	}

	network := w.Network()
	txFee, err := svc.GetTxFee(ctx)
	if err != nil {
		log.WithError(err).Warnf(
			"failed to fetch network fee, using default %d", network.TxFee,
		)
		txFee = network.TxFee
	}

	log.Debugf(
		"wallet %s: %d utxos, %d assets, fee %d", name, len(utxos), len(assets), txFee,
	)
	return wallet.NewAccount(w, utxos, assets, txFee), svc, nil
}

// resolveAsset returns the fee asset id for the alias, the given id otherwise.
func resolveAsset(asset string, network avm.Network) string {
	if len(asset) <= 0 || strings.EqualFold(asset, FeeAssetAlias) {
		return network.FeeAsset
	}
	return asset
}

// denomination returns the denomination of an asset held by the account.
// Assets not held fail with an insufficient funds error, since there is
// nothing to spend anyway.
func denomination(acc *wallet.Account, assetID string) (uint8, error) {
	if assetID == acc.Network().FeeAsset {
		return avm.FeeAssetDenomination, nil
	}
	asset, ok := acc.GetAsset(assetID)
	if !ok {
		return 0, classify(swap.CheckBalance(acc, assetID, 1))
	}
	return asset.Denomination, nil
}
