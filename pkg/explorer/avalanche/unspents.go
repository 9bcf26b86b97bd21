package avalanche

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
)

const maxUtxosPerPage = 1024

type index struct {
	Address string `json:"address"`
	Utxo    string `json:"utxo"`
}

type getUTXOsParams struct {
	Addresses  []string `json:"addresses"`
	Limit      uint32   `json:"limit"`
	Encoding   string   `json:"encoding"`
	StartIndex *index   `json:"startIndex,omitempty"`
}

type getUTXOsResult struct {
	NumFetched jsonUint `json:"numFetched"`
	UTXOs      []string `json:"utxos"`
	EndIndex   index    `json:"endIndex"`
}

func (s *service) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	utxos := make([]explorer.Utxo, 0)
	params := getUTXOsParams{
		Addresses: []string{addr},
		Limit:     maxUtxosPerPage,
		Encoding:  "hex",
	}

	now := time.Now()
	for {
		res := &getUTXOsResult{}
		if err := s.call(ctx, xchainPath, "avm.getUTXOs", params, res); err != nil {
			return nil, err
		}

		for _, str := range res.UTXOs {
			buf, err := avm.DecodeHexWithChecksum(str)
			if err != nil {
				return nil, err
			}
			u, err := avm.NewUTXOFromBytes(buf)
			if err != nil {
				if errors.Is(err, avm.ErrUnsupportedType) {
					log.WithError(err).Debug("explorer: skipping utxo")
					continue
				}
				return nil, err
			}
			// Inputs are always signed by the first and only owner.
			if len(u.Output.Addresses) != 1 {
				log.Debugf("explorer: skipping utxo %s with %d owners", u.ID(), len(u.Output.Addresses))
				continue
			}
			utxo, err := explorer.NewUtxoFromAVM(u, s.network)
			if err != nil {
				return nil, err
			}
			if !explorer.IsSpendable(utxo, now) {
				log.Debugf("explorer: skipping locked utxo %s", u.ID())
				continue
			}
			utxos = append(utxos, utxo)
		}

		if uint32(res.NumFetched) < maxUtxosPerPage || len(res.UTXOs) <= 0 {
			break
		}
		endIndex := res.EndIndex
		params.StartIndex = &endIndex
	}

	return utxos, nil
}
