package avalanche

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/xswap-network/xswap/pkg/avm"
)

type issueTxParams struct {
	Tx       string `json:"tx"`
	Encoding string `json:"encoding"`
}

type issueTxResult struct {
	TxID string `json:"txID"`
}

type getTxFeeResult struct {
	TxFee jsonUint `json:"txFee"`
}

func (s *service) GetTxFee(ctx context.Context) (uint64, error) {
	res := &getTxFeeResult{}
	if err := s.call(ctx, infoPath, "info.getTxFee", struct{}{}, res); err != nil {
		return 0, err
	}
	return uint64(res.TxFee), nil
}

func (s *service) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	buf, err := hex.DecodeString(txHex)
	if err != nil {
		return "", fmt.Errorf("invalid tx hex: %w", err)
	}

	tx, err := avm.EncodeHexWithChecksum(buf)
	if err != nil {
		return "", err
	}

	res := &issueTxResult{}
	if err := s.call(
		ctx, xchainPath, "avm.issueTx", issueTxParams{tx, "hex"}, res,
	); err != nil {
		return "", err
	}
	return res.TxID, nil
}
