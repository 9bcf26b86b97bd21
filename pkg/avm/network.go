package avm

import "fmt"

const (
	// ChainAlias is the alias of the exchange chain used as address prefix.
	ChainAlias = "X"
	// FeeAssetDenomination is the fixed denomination of the native fee asset.
	FeeAssetDenomination = 9
	// DefaultTxFee is the flat fee in nAVAX charged for a base transaction.
	DefaultTxFee = uint64(1000000)
)

// Network holds the static parameters of a network.
type Network struct {
	Name         string
	ID           uint32
	HRP          string
	BlockchainID string
	FeeAsset     string
	FeeAssetName string
	TxFee        uint64
}

var (
	// Mainnet ...
	Mainnet = Network{
		Name:         "mainnet",
		ID:           1,
		HRP:          "avax",
		BlockchainID: "2oYMBNV4eNHyqk2fjjV5nVQLDbtmNJzq5s3qs3Lo6ftnC6FByM",
		FeeAsset:     "FvwEAhmxKfeiG8SnEvq42hc6whRyY3EFYAvebMqDNDGCgxN5Z",
		FeeAssetName: "AVAX",
		TxFee:        DefaultTxFee,
	}
	// Fuji is the public testnet.
	Fuji = Network{
		Name:         "fuji",
		ID:           5,
		HRP:          "fuji",
		BlockchainID: "2JVSBoinj9C2J33VntvzYtVJNZdN2NKiwwKjcumHUWEb5DbBrm",
		FeeAsset:     "U8iRqJoiJm8xZHAacmvYyZVwqQx6uDNtQeP3CQ6fcgQk3JqnK",
		FeeAssetName: "AVAX",
		TxFee:        DefaultTxFee,
	}

	networks = map[string]Network{
		Mainnet.Name: Mainnet,
		Fuji.Name:    Fuji,
	}
)

// NetworkByName returns the params of the named network.
func NetworkByName(name string) (Network, error) {
	n, ok := networks[name]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
	return n, nil
}

// NetworkByID returns the params of the network with the given id.
func NetworkByID(id uint32) (Network, error) {
	for _, n := range networks {
		if n.ID == id {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("unknown network id %d", id)
}

// BlockchainIDBytes parses the cb58 blockchain id.
func (n Network) BlockchainIDBytes() (ID, error) {
	return IDFromString(n.BlockchainID)
}

// FeeAssetID parses the cb58 fee asset id.
func (n Network) FeeAssetID() (ID, error) {
	return IDFromString(n.FeeAsset)
}

// FormatAddress encodes the 20-byte payload as an address of this network.
func (n Network) FormatAddress(id ShortID) (string, error) {
	return FormatAddress(ChainAlias, n.HRP, id)
}

// ParseAddress decodes an address and makes sure it belongs to this network.
func (n Network) ParseAddress(addr string) (ShortID, error) {
	chain, hrp, id, err := ParseAddress(addr)
	if err != nil {
		return id, err
	}
	if chain != ChainAlias {
		return id, fmt.Errorf("%w: unexpected chain alias %q", ErrInvalidAddress, chain)
	}
	if hrp != n.HRP {
		return id, fmt.Errorf(
			"%w: address %s does not belong to network %s", ErrInvalidAddress, addr, n.Name,
		)
	}
	return id, nil
}
