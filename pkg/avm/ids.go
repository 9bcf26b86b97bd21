package avm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/cb58"
	"github.com/ava-labs/avalanchego/utils/formatting"
)

const (
	// IDLen is the length of transaction, asset and blockchain ids.
	IDLen = 32
	// ShortIDLen is the length of an address payload (hash160 of a pubkey).
	ShortIDLen = 20
)

// ID is a 32-byte identifier, displayed in cb58 format.
type ID = ids.ID

// ShortID is a 20-byte identifier, used for addresses.
type ShortID = ids.ShortID

// IDFromString parses a cb58 encoded ID.
func IDFromString(str string) (ID, error) {
	buf, err := CB58Decode(str)
	if err != nil {
		return ids.Empty, err
	}
	id, err := ids.ToID(buf)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %s", ErrInvalidID, err)
	}
	return id, nil
}

// UTXOID returns the identifier of the output at index outputIndex of
// transaction txID, that is cb58(txID || outputIndex).
func UTXOID(txID ID, outputIndex uint32) string {
	buf := make([]byte, IDLen+4)
	copy(buf, txID[:])
	binary.BigEndian.PutUint32(buf[IDLen:], outputIndex)
	return CB58Encode(buf)
}

// CB58Encode encodes the payload in base58 after appending the last 4 bytes
// of its sha256 digest as checksum.
func CB58Encode(payload []byte) string {
	// cb58 only fails for payloads way larger than any id or key.
	str, _ := cb58.Encode(payload)
	return str
}

// CB58Decode decodes and verifies a cb58 string, returning the payload
// without checksum.
func CB58Decode(str string) ([]byte, error) {
	if len(str) <= 0 {
		return nil, ErrNullCB58
	}
	buf, err := cb58.Decode(str)
	if err != nil {
		if errors.Is(err, cb58.ErrBadChecksum) || errors.Is(err, cb58.ErrMissingChecksum) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidChecksum, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, err)
	}
	return buf, nil
}

// EncodeHexWithChecksum returns the 0x prefixed hex encoding of the payload
// followed by its checksum, as expected by the node APIs.
func EncodeHexWithChecksum(payload []byte) (string, error) {
	return formatting.Encode(formatting.Hex, payload)
}

// DecodeHexWithChecksum reverts EncodeHexWithChecksum.
func DecodeHexWithChecksum(str string) ([]byte, error) {
	return formatting.Decode(formatting.Hex, str)
}
