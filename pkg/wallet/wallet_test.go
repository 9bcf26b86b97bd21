package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xswap-network/xswap/pkg/avm"
)

var testNetwork = avm.Mainnet

func newTestWallet(t *testing.T) *Wallet {
	w, err := NewWallet(NewWalletOpts{Network: testNetwork})
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	w := newTestWallet(t)
	require.True(t, strings.HasPrefix(w.Address(), "X-avax1"))
	require.True(t, strings.HasPrefix(w.PrivateKey(), PrivateKeyPrefix))
	require.NotEmpty(t, w.PublicKey())

	t.Run("import", func(t *testing.T) {
		imported, err := NewWallet(NewWalletOpts{
			PrivateKey: w.PrivateKey(),
			Network:    testNetwork,
		})
		require.NoError(t, err)
		require.Equal(t, w.Address(), imported.Address())
		require.Equal(t, w.PublicKey(), imported.PublicKey())
		require.Equal(t, w.ShortID(), imported.ShortID())
	})

	t.Run("same key on another network", func(t *testing.T) {
		fuji, err := NewWallet(NewWalletOpts{
			PrivateKey: w.PrivateKey(),
			Network:    avm.Fuji,
		})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(fuji.Address(), "X-fuji1"))
		require.Equal(t, w.ShortID(), fuji.ShortID())
	})
}

func TestFailingNewWallet(t *testing.T) {
	valid := newTestWallet(t).PrivateKey()

	tests := []struct {
		name string
		opts NewWalletOpts
		err  error
	}{
		{
			name: "null network",
			opts: NewWalletOpts{PrivateKey: valid},
			err:  ErrNullNetwork,
		},
		{
			name: "missing prefix",
			opts: NewWalletOpts{
				PrivateKey: strings.TrimPrefix(valid, PrivateKeyPrefix),
				Network:    testNetwork,
			},
			err: ErrInvalidPrivateKey,
		},
		{
			name: "bad checksum",
			opts: NewWalletOpts{
				PrivateKey: PrivateKeyPrefix + "2jgTFB6MM4vwLzUNWFYGPfyeQfpLaEqj4XWku6FoW7vaGrrEd6",
				Network:    testNetwork,
			},
			err: ErrInvalidPrivateKey,
		},
		{
			name: "wrong length",
			opts: NewWalletOpts{
				PrivateKey: PrivateKeyPrefix + avm.CB58Encode([]byte{1, 2, 3}),
				Network:    testNetwork,
			},
			err: ErrInvalidPrivateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWallet(tt.opts)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
