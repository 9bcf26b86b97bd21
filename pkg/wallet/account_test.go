package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xswap-network/xswap/pkg/explorer"
)

func TestAccount(t *testing.T) {
	w := newTestWallet(t)
	utxos := []explorer.Utxo{
		explorer.NewUtxo(testID(1), 0, 100, testAsset, w.Address()),
		explorer.NewUtxo(testID(2), 0, 5000000, testNetwork.FeeAsset, w.Address()),
		explorer.NewUtxo(testID(3), 1, 280, testAsset, w.Address()),
	}
	assets := []explorer.Asset{
		{AssetID: testNetwork.FeeAsset, Symbol: "AVAX", Denomination: 9, Amount: 5000000},
		{AssetID: testAsset, Symbol: "TST", Denomination: 0, Amount: 380},
	}
	account := NewAccount(w, utxos, assets, testNetwork.TxFee)

	require.Equal(t, w.Address(), account.Address())
	require.Equal(t, testNetwork.TxFee, account.NetworkFee())
	require.Equal(t, assets, account.ListBalances())
	require.Len(t, account.ListUnspents(""), 3)
	require.Len(t, account.ListUnspents(testAsset), 2)
	require.Empty(t, account.ListUnspents(testID(9)))

	asset, ok := account.GetAsset(testAsset)
	require.True(t, ok)
	require.Equal(t, uint64(380), asset.Amount)

	_, ok = account.GetAsset(testID(9))
	require.False(t, ok)

	empty := NewAccount(w, nil, nil, 0)
	require.NotNil(t, empty.ListBalances())
	require.NotNil(t, empty.ListUnspents(""))
}
