package swap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageEncoding(t *testing.T) {
	_, offer := makeTestOffer(t)
	taker := newTestAccount(t, network, testUtxo{2, feeAsset, 5000000})
	taken, err := Take(TakeOpts{Wallet: taker, Message: offer})
	require.NoError(t, err)

	for _, msg := range []*Message{offer, taken} {
		encoded, err := msg.Encode()
		require.NoError(t, err)

		decoded, err := encoded.Decode()
		require.NoError(t, err)
		require.Equal(t, msg.References, decoded.References)
		require.Equal(t, msg.Tx.Unsigned.Inputs, decoded.Tx.Unsigned.Inputs)
		require.Equal(t, msg.Tx.Unsigned.Outputs, decoded.Tx.Unsigned.Outputs)
		require.Equal(t, msg.Tx.Credentials, decoded.Tx.Credentials)

		reencoded, err := decoded.Encode()
		require.NoError(t, err)
		require.Equal(t, encoded.TxHex, reencoded.TxHex)
	}
}

func TestParseReferences(t *testing.T) {
	refs, err := ParseReferences(`{"a":"X-avax1x","b":"X-avax1y"}`)
	require.NoError(t, err)
	require.Equal(t, References{"a": "X-avax1x", "b": "X-avax1y"}, refs)

	again, err := ParseReferences(refs.String())
	require.NoError(t, err)
	require.Equal(t, refs, again)

	merged := refs.Merge(References{"c": "X-avax1z"})
	require.Len(t, merged, 3)
	require.Len(t, refs, 2)

	require.Equal(t, "{}", References(nil).String())
}

func TestFailingDecode(t *testing.T) {
	tests := []struct {
		name string
		msg  EncodedMessage
		err  error
	}{
		{
			name: "null tx hex",
			msg:  EncodedMessage{AddrReferences: "{}"},
			err:  ErrNullTxHex,
		},
		{
			name: "null references",
			msg:  EncodedMessage{TxHex: "00"},
			err:  ErrNullReferences,
		},
		{
			name: "references not an object",
			msg:  EncodedMessage{TxHex: "00", AddrReferences: `["a"]`},
			err:  ErrInvalidReferences,
		},
		{
			name: "references with non string values",
			msg:  EncodedMessage{TxHex: "00", AddrReferences: `{"a":1}`},
			err:  ErrInvalidReferences,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.msg.Decode()
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := EncodedMessage{TxHex: "zz", AddrReferences: "{}"}.Decode()
	require.Error(t, err)
}
