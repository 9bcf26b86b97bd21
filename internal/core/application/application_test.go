package application_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xswap-network/xswap/internal/core/application"
	"github.com/xswap-network/xswap/internal/core/ports"
	"github.com/xswap-network/xswap/internal/infrastructure/storage/db/inmemory"
	filestore "github.com/xswap-network/xswap/internal/infrastructure/storage/file"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/wallet"
)

var (
	ctx        = context.Background()
	network    = avm.Mainnet
	feeAsset   = avm.Mainnet.FeeAsset
	assetX     = testID(0xaa)
	assetY     = testID(0xbb)
	networkFee = uint64(1000000)
)

func TestMain(m *testing.M) {
	wallet.KeyStretchingCost = 1 << 10
	os.Exit(m.Run())
}

type testEnv struct {
	explorer    *mockExplorer
	store       ports.WalletStore
	factory     application.ExplorerFactory
	repoManager ports.RepoManager
	walletSvc   application.WalletService
	offerSvc    application.OfferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := filestore.NewWalletStore(t.TempDir())
	require.NoError(t, err)

	ex := &mockExplorer{}
	ex.On("GetTxFee", mock.Anything).Return(networkFee, nil)
	ex.On("GetAssetDescription", mock.Anything, assetX).Return(
		&explorer.AssetDescription{
			AssetID: assetX, Name: "Asset X", Symbol: "AX", Denomination: 2,
		}, nil,
	)
	ex.On("GetAssetDescription", mock.Anything, assetY).Return(
		&explorer.AssetDescription{
			AssetID: assetY, Name: "Asset Y", Symbol: "AY", Denomination: 0,
		}, nil,
	)

	factory := func(avm.Network) (explorer.Service, error) { return ex, nil }
	repoManager := inmemory.NewRepoManager()

	return &testEnv{
		explorer:    ex,
		store:       store,
		factory:     factory,
		repoManager: repoManager,
		walletSvc:   application.NewWalletService(store, factory),
		offerSvc:    application.NewOfferService(store, factory, repoManager),
	}
}

// offerServiceWithEmptyJournal returns an offer service sharing the wallets
// of the env but none of its journaled offers.
func (e *testEnv) offerServiceWithEmptyJournal() application.OfferService {
	return application.NewOfferService(e.store, e.factory, inmemory.NewRepoManager())
}

type testUtxo struct {
	hash   byte
	asset  string
	amount uint64
}

// addWallet creates a wallet owning the given utxos.
func (e *testEnv) addWallet(
	t *testing.T, name, password string, utxos ...testUtxo,
) string {
	t.Helper()

	info, err := e.walletSvc.CreateWallet(ctx, application.CreateWalletRequest{
		Name:     name,
		Network:  network,
		Password: password,
	})
	require.NoError(t, err)

	list := make([]explorer.Utxo, 0, len(utxos))
	for _, u := range utxos {
		list = append(list, explorer.NewUtxo(
			testID(u.hash), 0, u.amount, u.asset, info.Address,
		))
	}
	e.explorer.On("GetUnspents", mock.Anything, info.Address).Return(list, nil)
	return info.Address
}

func testID(b byte) string {
	var id avm.ID
	for i := range id {
		id[i] = b
	}
	return id.String()
}

func decodeTx(t *testing.T, txHex string) *avm.Tx {
	t.Helper()
	tx, err := avm.NewTxFromHex(txHex)
	require.NoError(t, err)
	return tx
}

func outputTo(t *testing.T, out *avm.TransferableOutput) string {
	t.Helper()
	require.Len(t, out.Addresses, 1)
	addr, err := network.FormatAddress(out.Addresses[0])
	require.NoError(t, err)
	return addr
}

// amountTo returns the value of the only output of tx paying asset to addr.
func amountTo(t *testing.T, tx *avm.Tx, asset, addr string) uint64 {
	t.Helper()
	assetID, err := avm.IDFromString(asset)
	require.NoError(t, err)

	var found []uint64
	for _, out := range tx.Unsigned.Outputs {
		if out.AssetID == assetID && outputTo(t, out) == addr {
			found = append(found, out.Amount)
		}
	}
	require.Len(t, found, 1)
	return found[0]
}
