package gateway

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// GenerateHashPayload builds the signable transaction hash for an enriched
// EVM transaction. The signer later signs exactly this hash, so the fee
// fields populated during validation are the ones that get signed.
func (m *Manager) GenerateHashPayload(networkKey string, tx *Transaction) (string, error) {
	info, err := m.GetChainInfo(networkKey)
	if err != nil {
		return "", err
	}

	assembled, err := assembleTransaction(info.EVMChainID, tx)
	if err != nil {
		return "", err
	}

	signer := types.NewLondonSigner(big.NewInt(info.EVMChainID))

	return signer.Hash(assembled).Hex(), nil
}

func assembleTransaction(chainID int64, tx *Transaction) (*types.Transaction, error) {
	if tx.Nonce == nil {
		return nil, errors.New("transaction nonce is not populated")
	}

	value := tx.Value
	if value == nil {
		value = big.NewInt(0)
	}

	var to *common.Address

	if tx.To != "" {
		addr := common.HexToAddress(tx.To)
		to = &addr
	}

	if tx.MaxFeePerGas != nil && tx.MaxPriorityFeePerGas != nil {
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   big.NewInt(chainID),
			Nonce:     *tx.Nonce,
			GasTipCap: tx.MaxPriorityFeePerGas,
			GasFeeCap: tx.MaxFeePerGas,
			Gas:       tx.Gas,
			To:        to,
			Value:     value,
			Data:      tx.Data,
		}), nil
	}

	if tx.GasPrice == nil {
		return nil, errors.New("transaction has neither EIP-1559 fees nor a gas price")
	}

	return types.NewTx(&types.LegacyTx{
		Nonce:    *tx.Nonce,
		GasPrice: tx.GasPrice,
		Gas:      tx.Gas,
		To:       to,
		Value:    value,
		Data:     tx.Data,
	}), nil
}
