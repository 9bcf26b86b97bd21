package avm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting/address"
)

// ParseAddress splits an address like X-avax1... into its chain alias, its
// human readable part and its 20-byte payload.
func ParseAddress(addr string) (string, string, ShortID, error) {
	chain, hrp, payload, err := address.Parse(addr)
	if err != nil {
		return "", "", ids.ShortEmpty, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if len(chain) <= 0 {
		return "", "", ids.ShortEmpty, fmt.Errorf("%w: missing chain alias in %q", ErrInvalidAddress, addr)
	}
	id, err := ids.ToShortID(payload)
	if err != nil {
		return "", "", ids.ShortEmpty, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	return chain, hrp, id, nil
}

// FormatAddress is the inverse of ParseAddress.
func FormatAddress(chain, hrp string, id ShortID) (string, error) {
	return address.Format(chain, hrp, id[:])
}
