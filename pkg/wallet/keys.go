package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/xswap-network/xswap/pkg/avm"
)

// PrivateKeyPrefix prefixes the cb58 encoding of a private key.
const PrivateKeyPrefix = "PrivateKey-"

// ParsePrivateKey decodes a PrivateKey-<cb58> string.
func ParsePrivateKey(str string) (*btcec.PrivateKey, error) {
	if len(str) <= 0 {
		return nil, ErrNullPrivateKey
	}
	if !strings.HasPrefix(str, PrivateKeyPrefix) {
		return nil, ErrInvalidPrivateKey
	}

	buf, err := avm.CB58Decode(strings.TrimPrefix(str, PrivateKeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrivateKey, err)
	}
	if len(buf) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d", ErrInvalidPrivateKey, btcec.PrivKeyBytesLen, len(buf),
		)
	}

	key, _ := btcec.PrivKeyFromBytes(buf)
	return key, nil
}

// FormatPrivateKey is the inverse of ParsePrivateKey.
func FormatPrivateKey(key *btcec.PrivateKey) string {
	return PrivateKeyPrefix + avm.CB58Encode(key.Serialize())
}

// ShortIDFromPubKey returns the hash160 of the compressed public key, the
// payload of an address.
func ShortIDFromPubKey(pubkey *btcec.PublicKey) avm.ShortID {
	var id avm.ShortID
	copy(id[:], btcutil.Hash160(pubkey.SerializeCompressed()))
	return id
}
