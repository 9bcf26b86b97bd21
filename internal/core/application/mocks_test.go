package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xswap-network/xswap/pkg/explorer"
)

// **** Explorer ****

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	args := m.Called(ctx, addr)

	var res []explorer.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]explorer.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetBalances(
	ctx context.Context, addr string,
) ([]explorer.Asset, error) {
	args := m.Called(ctx, addr)

	var res []explorer.Asset
	if a := args.Get(0); a != nil {
		res = a.([]explorer.Asset)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetAssetDescription(
	ctx context.Context, assetID string,
) (*explorer.AssetDescription, error) {
	args := m.Called(ctx, assetID)

	var res *explorer.AssetDescription
	if a := args.Get(0); a != nil {
		res = a.(*explorer.AssetDescription)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetTxFee(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}
