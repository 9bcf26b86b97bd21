package application_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xswap-network/xswap/internal/core/application"
	"github.com/xswap-network/xswap/internal/core/ports"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/wallet"
)

func TestCreateWallet(t *testing.T) {
	env := newTestEnv(t)

	w, err := wallet.NewWallet(wallet.NewWalletOpts{Network: network})
	require.NoError(t, err)

	info, err := env.walletSvc.CreateWallet(ctx, application.CreateWalletRequest{
		Name:        "imported",
		PrivateKey:  w.PrivateKey(),
		Description: "test wallet",
		Network:     network,
	})
	require.NoError(t, err)
	require.Equal(t, w.Address(), info.Address)
	require.Equal(t, w.PublicKey(), info.PublicKey)
	require.False(t, info.Encrypted)

	got, err := env.walletSvc.GetWalletInfo(ctx, "imported")
	require.NoError(t, err)
	require.Equal(t, info, got)

	encrypted, err := env.walletSvc.CreateWallet(ctx, application.CreateWalletRequest{
		Name:     "encrypted",
		Network:  avm.Fuji,
		Password: "password",
	})
	require.NoError(t, err)
	require.True(t, encrypted.Encrypted)
	require.Equal(t, avm.Fuji.Name, encrypted.Network)

	names, err := env.walletSvc.ListWallets(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"encrypted", "imported"}, names)
}

func TestFailingCreateWallet(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(t, "existing", "")

	tests := []struct {
		name     string
		req      application.CreateWalletRequest
		kind     error
		exitCode int
	}{
		{
			name:     "null name",
			req:      application.CreateWalletRequest{Network: network},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name:     "invalid name",
			req:      application.CreateWalletRequest{Name: "../w", Network: network},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name: "invalid private key",
			req: application.CreateWalletRequest{
				Name: "w", PrivateKey: "deadbeef", Network: network,
			},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name:     "already existing",
			req:      application.CreateWalletRequest{Name: "existing", Network: network},
			kind:     application.ErrStorage,
			exitCode: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := env.walletSvc.CreateWallet(ctx, tt.req)
			require.Error(t, err)
			require.Nil(t, info)
			require.ErrorIs(t, err, tt.kind)
			require.Equal(t, tt.exitCode, application.ExitCode(err))
		})
	}
}

func TestGetBalances(t *testing.T) {
	env := newTestEnv(t)
	addr := env.addWallet(
		t, "w", "",
		testUtxo{0x01, assetX, 380},
		testUtxo{0x02, feeAsset, 5000000},
		testUtxo{0x03, assetX, 20},
	)

	balances, err := env.walletSvc.GetBalances(ctx, "w")
	require.NoError(t, err)
	require.Equal(t, addr, balances.Address)
	require.Len(t, balances.Utxos, 3)
	require.Len(t, balances.Assets, 2)

	// the fee asset comes first
	require.Equal(t, feeAsset, balances.Assets[0].AssetID)
	require.Equal(t, uint64(5000000), balances.Assets[0].Amount)
	require.Equal(t, uint8(avm.FeeAssetDenomination), balances.Assets[0].Denomination)
	require.Equal(t, assetX, balances.Assets[1].AssetID)
	require.Equal(t, uint64(400), balances.Assets[1].Amount)
	require.Equal(t, uint8(2), balances.Assets[1].Denomination)

	_, err = env.walletSvc.GetBalances(ctx, "unknown")
	require.ErrorIs(t, err, ports.ErrWalletNotFound)
	require.Equal(t, 6, application.ExitCode(err))
}

func TestSend(t *testing.T) {
	t.Run("fee asset", func(t *testing.T) {
		env := newTestEnv(t)
		addr := env.addWallet(
			t, "sender", "",
			testUtxo{0x01, feeAsset, 2000000},
			testUtxo{0x02, feeAsset, 5000000},
		)
		receiver := env.addWallet(t, "receiver", "")
		env.explorer.On("BroadcastTransaction", mock.Anything, mock.Anything).
			Return("txid", nil)

		reply, err := env.walletSvc.Send(ctx, application.SendRequest{
			Wallet:   "sender",
			Asset:    application.FeeAssetAlias,
			Quantity: "0.002",
			Address:  receiver,
		})
		require.NoError(t, err)
		require.Equal(t, "txid", reply.TxID)

		tx := decodeTx(t, reply.TxHex)
		require.True(t, tx.IsFullySigned())
		require.Len(t, tx.Unsigned.Inputs, 1)
		require.Equal(t, uint64(5000000), tx.Unsigned.Inputs[0].Amount)
		require.Len(t, tx.Unsigned.Outputs, 2)
		require.True(t, tx.Unsigned.IsSorted())
		require.Equal(t, uint64(2000000), amountTo(t, tx, feeAsset, receiver))
		require.Equal(t, uint64(2000000), amountTo(t, tx, feeAsset, addr))
	})

	t.Run("asset", func(t *testing.T) {
		env := newTestEnv(t)
		addr := env.addWallet(
			t, "sender", "password",
			testUtxo{0x01, assetX, 380},
			testUtxo{0x02, feeAsset, 5000000},
		)
		receiver := env.addWallet(t, "receiver", "")
		env.explorer.On("BroadcastTransaction", mock.Anything, mock.Anything).
			Return("txid", nil)

		reply, err := env.walletSvc.Send(ctx, application.SendRequest{
			Wallet:   "sender",
			Password: "password",
			Asset:    assetX,
			Quantity: "1.5",
			Address:  receiver,
		})
		require.NoError(t, err)

		tx := decodeTx(t, reply.TxHex)
		require.True(t, tx.IsFullySigned())
		require.Len(t, tx.Unsigned.Inputs, 2)
		require.Len(t, tx.Unsigned.Outputs, 3)
		require.True(t, tx.Unsigned.IsSorted())
		require.Equal(t, uint64(150), amountTo(t, tx, assetX, receiver))
		require.Equal(t, uint64(230), amountTo(t, tx, assetX, addr))
		require.Equal(t, uint64(4000000), amountTo(t, tx, feeAsset, addr))
	})

	t.Run("canonical order", func(t *testing.T) {
		env := newTestEnv(t)
		addr := env.addWallet(
			t, "sender", "",
			testUtxo{0x09, assetX, 380},
			testUtxo{0x01, feeAsset, 5000000},
		)
		receiver := env.addWallet(t, "receiver", "")
		env.explorer.On("BroadcastTransaction", mock.Anything, mock.Anything).
			Return("txid", nil)

		reply, err := env.walletSvc.Send(ctx, application.SendRequest{
			Wallet:   "sender",
			Asset:    assetX,
			Quantity: "3",
			Address:  receiver,
		})
		require.NoError(t, err)

		tx := decodeTx(t, reply.TxHex)
		require.True(t, tx.IsFullySigned())
		require.Len(t, tx.Unsigned.Inputs, 2)
		require.Len(t, tx.Unsigned.Outputs, 3)
		require.True(t, tx.Unsigned.IsSorted())
		require.Equal(t, uint64(300), amountTo(t, tx, assetX, receiver))
		require.Equal(t, uint64(80), amountTo(t, tx, assetX, addr))
		require.Equal(t, uint64(4000000), amountTo(t, tx, feeAsset, addr))
	})
}

func TestBurn(t *testing.T) {
	env := newTestEnv(t)
	addr := env.addWallet(
		t, "w", "",
		testUtxo{0x01, assetX, 380},
		testUtxo{0x02, feeAsset, 5000000},
	)
	env.explorer.On("BroadcastTransaction", mock.Anything, mock.Anything).
		Return("txid", nil)

	reply, err := env.walletSvc.Burn(ctx, application.BurnRequest{
		Wallet:   "w",
		Asset:    assetX,
		Quantity: "1.5",
	})
	require.NoError(t, err)

	tx := decodeTx(t, reply.TxHex)
	require.True(t, tx.IsFullySigned())
	require.Len(t, tx.Unsigned.Outputs, 2)
	require.True(t, tx.Unsigned.IsSorted())
	require.Equal(t, uint64(230), amountTo(t, tx, assetX, addr))
	require.Equal(t, uint64(4000000), amountTo(t, tx, feeAsset, addr))
}

func TestFailingSend(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(
		t, "w", "",
		testUtxo{0x01, assetX, 100},
		testUtxo{0x02, assetX, 100},
		testUtxo{0x03, feeAsset, 5000000},
	)
	env.addWallet(t, "locked", "password", testUtxo{0x04, feeAsset, 5000000})
	receiver := env.addWallet(t, "receiver", "")

	w, err := wallet.NewWallet(wallet.NewWalletOpts{Network: avm.Fuji})
	require.NoError(t, err)

	tests := []struct {
		name     string
		req      application.SendRequest
		kind     error
		exitCode int
	}{
		{
			name:     "null wallet",
			req:      application.SendRequest{Quantity: "1", Address: receiver},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name:     "null quantity",
			req:      application.SendRequest{Wallet: "w", Address: receiver},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name:     "null address",
			req:      application.SendRequest{Wallet: "w", Quantity: "1"},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name: "address of another network",
			req: application.SendRequest{
				Wallet: "w", Quantity: "1", Address: w.Address(),
			},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name: "invalid quantity",
			req: application.SendRequest{
				Wallet: "w", Asset: assetX, Quantity: "0.001", Address: receiver,
			},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name: "missing password",
			req: application.SendRequest{
				Wallet: "locked", Quantity: "0.001", Address: receiver,
			},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name: "wrong password",
			req: application.SendRequest{
				Wallet: "locked", Password: "wrong", Quantity: "0.001", Address: receiver,
			},
			kind:     application.ErrValidation,
			exitCode: 2,
		},
		{
			name: "asset not held",
			req: application.SendRequest{
				Wallet: "w", Asset: assetY, Quantity: "1", Address: receiver,
			},
			kind:     application.ErrInsufficientFunds,
			exitCode: 3,
		},
		{
			name: "not enough asset",
			req: application.SendRequest{
				Wallet: "w", Asset: assetX, Quantity: "3", Address: receiver,
			},
			kind:     application.ErrInsufficientFunds,
			exitCode: 3,
		},
		{
			name: "no single utxo covers the amount",
			req: application.SendRequest{
				Wallet: "w", Asset: assetX, Quantity: "1.5", Address: receiver,
			},
			kind:     application.ErrNoSuitableUtxo,
			exitCode: 4,
		},
		{
			name: "wallet not found",
			req: application.SendRequest{
				Wallet: "unknown", Quantity: "1", Address: receiver,
			},
			kind:     application.ErrStorage,
			exitCode: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := env.walletSvc.Send(ctx, tt.req)
			require.Error(t, err)
			require.Nil(t, reply)
			require.ErrorIs(t, err, tt.kind)
			require.Equal(t, tt.exitCode, application.ExitCode(err))
		})
	}
	env.explorer.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
}

func TestSendExplorerFailure(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(t, "w", "", testUtxo{0x01, feeAsset, 5000000})
	receiver := env.addWallet(t, "receiver", "")
	env.explorer.On("BroadcastTransaction", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	_, err := env.walletSvc.Send(ctx, application.SendRequest{
		Wallet: "w", Quantity: "0.001", Address: receiver,
	})
	require.ErrorIs(t, err, application.ErrExplorer)
	require.Equal(t, 7, application.ExitCode(err))
	require.Equal(t, "explorer", application.KindName(err))
}
