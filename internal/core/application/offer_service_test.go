package application_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xswap-network/xswap/internal/core/application"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/swap"
)

func TestOfferSwap(t *testing.T) {
	env := newTestEnv(t)
	makerAddr := env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100})
	takerAddr := env.addWallet(
		t, "taker", "password",
		testUtxo{0x02, feeAsset, 1000000},
		testUtxo{0x03, feeAsset, 5000000},
		testUtxo{0x04, feeAsset, 18000000},
	)
	env.explorer.On("BroadcastTransaction", mock.Anything, mock.Anything).
		Return("txid", nil)

	made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
		Wallet:           "maker",
		Asset:            assetX,
		Quantity:         "1",
		FeeAssetQuantity: "0.002",
	})
	require.NoError(t, err)
	require.NotEmpty(t, made.OfferID)
	require.Equal(t, swap.Terms{
		Asset: assetX, Amount: 100, Price: 2000000, Maker: makerAddr,
	}, made.Terms)

	madeTx := decodeTx(t, made.Message.TxHex)
	require.Len(t, madeTx.Unsigned.Inputs, 1)
	require.Len(t, madeTx.Unsigned.Outputs, 1)
	require.False(t, madeTx.IsFullySigned())

	taken, err := env.offerSvc.TakeOffer(ctx, application.TakeOfferRequest{
		Wallet:         "taker",
		Password:       "password",
		TxHex:          made.Message.TxHex,
		AddrReferences: made.Message.AddrReferences,
	})
	require.NoError(t, err)
	require.NotEmpty(t, taken.OfferID)
	require.Equal(t, made.Terms, taken.Terms)

	takenTx := decodeTx(t, taken.Message.TxHex)
	require.Len(t, takenTx.Unsigned.Inputs, 2)
	require.Equal(t, uint64(5000000), takenTx.Unsigned.Inputs[1].Amount)
	require.Len(t, takenTx.Unsigned.Outputs, 3)
	require.Equal(t, uint64(100), takenTx.Unsigned.Outputs[1].Amount)
	require.Equal(t, takerAddr, outputTo(t, takenTx.Unsigned.Outputs[1]))
	require.Equal(t, uint64(2000000), takenTx.Unsigned.Outputs[2].Amount)
	require.Equal(t, takerAddr, outputTo(t, takenTx.Unsigned.Outputs[2]))
	require.True(t, takenTx.Credentials[0].IsEmpty())
	require.False(t, takenTx.Credentials[1].IsEmpty())

	accepted, err := env.offerSvc.AcceptOffer(ctx, application.AcceptOfferRequest{
		Wallet:         "maker",
		TxHex:          taken.Message.TxHex,
		AddrReferences: taken.Message.AddrReferences,
	})
	require.NoError(t, err)
	require.Equal(t, made.OfferID, accepted.OfferID)
	require.Equal(t, "txid", accepted.TxID)
	require.True(t, accepted.Broadcasted)
	require.True(t, decodeTx(t, accepted.TxHex).IsFullySigned())
	env.explorer.AssertCalled(t, "BroadcastTransaction", mock.Anything, accepted.TxHex)

	makerOffers, err := env.offerSvc.ListOffers(ctx, "maker")
	require.NoError(t, err)
	require.Len(t, makerOffers, 1)
	require.Equal(t, swap.StatusComplete, makerOffers[0].Status)
	require.Equal(t, "txid", makerOffers[0].TxID)

	takerOffers, err := env.offerSvc.ListOffers(ctx, "taker")
	require.NoError(t, err)
	require.Len(t, takerOffers, 1)
	require.Equal(t, swap.StatusAcceptPending, takerOffers[0].Status)

	all, err := env.offerSvc.ListOffers(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestAcceptOfferNoBroadcast(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 380})
	env.addWallet(t, "taker", "", testUtxo{0x02, feeAsset, 3000000})

	made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
		Wallet: "maker", Asset: assetX, Quantity: "1.5", FeeAssetQuantity: "0.002",
	})
	require.NoError(t, err)

	taken, err := env.offerSvc.TakeOffer(ctx, application.TakeOfferRequest{
		Wallet:         "taker",
		TxHex:          made.Message.TxHex,
		AddrReferences: made.Message.AddrReferences,
	})
	require.NoError(t, err)

	// the exact amount leaves no change to the taker
	takenTx := decodeTx(t, taken.Message.TxHex)
	require.Len(t, takenTx.Unsigned.Outputs, 3)

	accepted, err := env.offerSvc.AcceptOffer(ctx, application.AcceptOfferRequest{
		Wallet:         "maker",
		TxHex:          taken.Message.TxHex,
		AddrReferences: taken.Message.AddrReferences,
		NoBroadcast:    true,
	})
	require.NoError(t, err)
	require.False(t, accepted.Broadcasted)
	require.NotEmpty(t, accepted.TxID)

	tx := decodeTx(t, accepted.TxHex)
	txID, err := tx.ID()
	require.NoError(t, err)
	require.Equal(t, txID, accepted.TxID)
	env.explorer.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)

	offers, err := env.offerSvc.ListOffers(ctx, "maker")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Equal(t, swap.StatusAcceptPending, offers[0].Status)
	require.Equal(t, txID, offers[0].TxID)
}

func TestAcceptOfferWithoutJournal(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100})
	env.addWallet(t, "taker", "", testUtxo{0x02, feeAsset, 5000000})

	made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
		Wallet: "maker", Asset: assetX, Quantity: "1", FeeAssetQuantity: "0.002",
	})
	require.NoError(t, err)
	taken, err := env.offerSvc.TakeOffer(ctx, application.TakeOfferRequest{
		Wallet:         "taker",
		TxHex:          made.Message.TxHex,
		AddrReferences: made.Message.AddrReferences,
	})
	require.NoError(t, err)

	svc := env.offerServiceWithEmptyJournal()
	request := func(asset, quantity, feeAssetQuantity string) application.AcceptOfferRequest {
		return application.AcceptOfferRequest{
			Wallet:           "maker",
			TxHex:            taken.Message.TxHex,
			AddrReferences:   taken.Message.AddrReferences,
			NoBroadcast:      true,
			Asset:            asset,
			Quantity:         quantity,
			FeeAssetQuantity: feeAssetQuantity,
		}
	}

	tests := []struct {
		name string
		req  application.AcceptOfferRequest
		err  error
	}{
		{"no expected terms", request("", "", ""), swap.ErrUnknownOffer},
		{"missing price", request(assetX, "1", ""), application.ErrNullQuantity},
		{"higher price", request(assetX, "1", "0.003"), swap.ErrTermsNotHonored},
		{"smaller amount", request(assetX, "0.5", "0.002"), swap.ErrTermsNotHonored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := svc.AcceptOffer(ctx, tt.req)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, reply)
			require.Equal(t, 2, application.ExitCode(err))
		})
	}

	reply, err := svc.AcceptOffer(ctx, request(assetX, "1", "0.002"))
	require.NoError(t, err)
	require.Empty(t, reply.OfferID)
	require.True(t, decodeTx(t, reply.TxHex).IsFullySigned())
	env.explorer.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
}

func TestFailingMakeOffer(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100}, testUtxo{0x02, assetX, 100})

	tests := []struct {
		name     string
		req      application.MakeOfferRequest
		exitCode int
	}{
		{
			name:     "null wallet",
			req:      application.MakeOfferRequest{Asset: assetX, Quantity: "1", FeeAssetQuantity: "1"},
			exitCode: 2,
		},
		{
			name:     "null asset",
			req:      application.MakeOfferRequest{Wallet: "maker", Quantity: "1", FeeAssetQuantity: "1"},
			exitCode: 2,
		},
		{
			name:     "null fee asset quantity",
			req:      application.MakeOfferRequest{Wallet: "maker", Asset: assetX, Quantity: "1"},
			exitCode: 2,
		},
		{
			name: "selling fee asset",
			req: application.MakeOfferRequest{
				Wallet: "maker", Asset: application.FeeAssetAlias, Quantity: "1", FeeAssetQuantity: "1",
			},
			exitCode: 2,
		},
		{
			name: "invalid fee asset quantity",
			req: application.MakeOfferRequest{
				Wallet: "maker", Asset: assetX, Quantity: "1", FeeAssetQuantity: "-1",
			},
			exitCode: 2,
		},
		{
			name: "asset not held",
			req: application.MakeOfferRequest{
				Wallet: "maker", Asset: assetY, Quantity: "1", FeeAssetQuantity: "1",
			},
			exitCode: 3,
		},
		{
			name: "not enough asset",
			req: application.MakeOfferRequest{
				Wallet: "maker", Asset: assetX, Quantity: "2.01", FeeAssetQuantity: "1",
			},
			exitCode: 3,
		},
		{
			name: "no single utxo covers the amount",
			req: application.MakeOfferRequest{
				Wallet: "maker", Asset: assetX, Quantity: "1.5", FeeAssetQuantity: "1",
			},
			exitCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := env.offerSvc.MakeOffer(ctx, tt.req)
			require.Error(t, err)
			require.Nil(t, reply)
			require.Equal(t, tt.exitCode, application.ExitCode(err))
		})
	}

	offers, err := env.offerSvc.ListOffers(ctx, "maker")
	require.NoError(t, err)
	require.Empty(t, offers)
}

func TestFailingTakeOffer(t *testing.T) {
	env := newTestEnv(t)
	env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100})
	env.addWallet(
		t, "fragmented", "",
		testUtxo{0x02, feeAsset, 2000000},
		testUtxo{0x03, feeAsset, 2000000},
	)
	env.addWallet(t, "poor", "", testUtxo{0x04, feeAsset, 1000000})

	made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
		Wallet: "maker", Asset: assetX, Quantity: "1", FeeAssetQuantity: "0.002",
	})
	require.NoError(t, err)
	msg := made.Message

	tests := []struct {
		name     string
		req      application.TakeOfferRequest
		exitCode int
	}{
		{
			name:     "null tx hex",
			req:      application.TakeOfferRequest{Wallet: "poor", AddrReferences: msg.AddrReferences},
			exitCode: 2,
		},
		{
			name:     "null references",
			req:      application.TakeOfferRequest{Wallet: "poor", TxHex: msg.TxHex},
			exitCode: 2,
		},
		{
			name: "invalid tx hex",
			req: application.TakeOfferRequest{
				Wallet: "poor", TxHex: "00", AddrReferences: msg.AddrReferences,
			},
			exitCode: 2,
		},
		{
			name: "missing reference",
			req: application.TakeOfferRequest{
				Wallet: "poor", TxHex: msg.TxHex, AddrReferences: "{}",
			},
			exitCode: 2,
		},
		{
			name: "not enough fee asset",
			req: application.TakeOfferRequest{
				Wallet: "poor", TxHex: msg.TxHex, AddrReferences: msg.AddrReferences,
			},
			exitCode: 3,
		},
		{
			name: "no single utxo covers price and fee",
			req: application.TakeOfferRequest{
				Wallet: "fragmented", TxHex: msg.TxHex, AddrReferences: msg.AddrReferences,
			},
			exitCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := env.offerSvc.TakeOffer(ctx, tt.req)
			require.Error(t, err)
			require.Nil(t, reply)
			require.Equal(t, tt.exitCode, application.ExitCode(err))
		})
	}
}

func TestFailingAcceptOffer(t *testing.T) {
	t.Run("signature incomplete", func(t *testing.T) {
		env := newTestEnv(t)
		env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100})
		env.addWallet(t, "taker", "", testUtxo{0x02, feeAsset, 5000000})

		made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
			Wallet: "maker", Asset: assetX, Quantity: "1", FeeAssetQuantity: "0.002",
		})
		require.NoError(t, err)
		taken, err := env.offerSvc.TakeOffer(ctx, application.TakeOfferRequest{
			Wallet:         "taker",
			TxHex:          made.Message.TxHex,
			AddrReferences: made.Message.AddrReferences,
		})
		require.NoError(t, err)

		// drop the taker signature
		msg, err := taken.Message.Decode()
		require.NoError(t, err)
		msg.Tx.Credentials[1] = &avm.Credential{}
		stripped, err := msg.Encode()
		require.NoError(t, err)

		reply, err := env.offerSvc.AcceptOffer(ctx, application.AcceptOfferRequest{
			Wallet:         "maker",
			TxHex:          stripped.TxHex,
			AddrReferences: stripped.AddrReferences,
		})
		require.Error(t, err)
		require.Nil(t, reply)
		require.ErrorIs(t, err, application.ErrSignatureIncomplete)
		require.ErrorIs(t, err, swap.ErrTxNotFullySigned)
		require.Equal(t, 5, application.ExitCode(err))
		env.explorer.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)

		offers, err := env.offerSvc.ListOffers(ctx, "maker")
		require.NoError(t, err)
		require.Len(t, offers, 1)
		require.Equal(t, swap.StatusFailed, offers[0].Status)
		require.NotEmpty(t, offers[0].FailReason)
	})

	t.Run("offer not taken", func(t *testing.T) {
		env := newTestEnv(t)
		env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100})

		made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
			Wallet: "maker", Asset: assetX, Quantity: "1", FeeAssetQuantity: "0.002",
		})
		require.NoError(t, err)

		reply, err := env.offerSvc.AcceptOffer(ctx, application.AcceptOfferRequest{
			Wallet:         "maker",
			TxHex:          made.Message.TxHex,
			AddrReferences: made.Message.AddrReferences,
		})
		require.Error(t, err)
		require.Nil(t, reply)
		require.Equal(t, 2, application.ExitCode(err))
	})

	t.Run("wallet not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.addWallet(t, "maker", "", testUtxo{0x01, assetX, 100})

		made, err := env.offerSvc.MakeOffer(ctx, application.MakeOfferRequest{
			Wallet: "maker", Asset: assetX, Quantity: "1", FeeAssetQuantity: "0.002",
		})
		require.NoError(t, err)

		_, err = env.offerSvc.AcceptOffer(ctx, application.AcceptOfferRequest{
			Wallet:         "unknown",
			TxHex:          made.Message.TxHex,
			AddrReferences: made.Message.AddrReferences,
		})
		require.Error(t, err)
		require.Equal(t, 6, application.ExitCode(err))
	})
}
