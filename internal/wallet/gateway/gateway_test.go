package gateway_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
)

func newManager() *gateway.Manager {
	return gateway.NewManager(map[string]gateway.ChainConfig{
		"ethereum": {
			Info: gateway.ChainInfo{
				Slug:          "ethereum",
				Name:          "Ethereum",
				AddressFormat: gateway.AddressFormatEthereum,
				EVMChainID:    1,
				Symbol:        "ETH",
				Decimals:      18,
			},
			Endpoint: "http://localhost:8545",
			Active:   true,
		},
	})
}

func TestGetChainState(t *testing.T) {
	m := newManager()

	assert.True(t, m.GetChainState("ethereum").Active)
	assert.False(t, m.GetChainState("unknown").Active)
}

func TestGetChainInfoUnknownNetwork(t *testing.T) {
	m := newManager()

	_, err := m.GetChainInfo("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestDecodeContractCall(t *testing.T) {
	m := newManager()

	// transfer(address,uint256)
	data := append([]byte{0xa9, 0x05, 0x9c, 0xbb}, make([]byte, 64)...)

	decoded, err := m.DecodeContractCall(context.Background(), "ethereum", data, "0xdead")
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb", decoded.Selector)
	assert.Equal(t, "transfer(address,uint256)", decoded.MethodName)
	assert.Len(t, decoded.Args, 2)
}

func TestDecodeContractCallTooShort(t *testing.T) {
	m := newManager()

	_, err := m.DecodeContractCall(context.Background(), "ethereum", []byte{0x01}, "")
	assert.Error(t, err)
}

func TestGenerateHashPayload(t *testing.T) {
	m := newManager()
	nonce := uint64(7)

	tx := &gateway.Transaction{
		From:                 "0x1111111111111111111111111111111111111111",
		To:                   "0x2222222222222222222222222222222222222222",
		Value:                big.NewInt(1000),
		Gas:                  21000,
		MaxFeePerGas:         big.NewInt(100),
		MaxPriorityFeePerGas: big.NewInt(2),
		Nonce:                &nonce,
	}

	hash, err := m.GenerateHashPayload("ethereum", tx)
	require.NoError(t, err)
	assert.Len(t, hash, 66)

	// Same inputs, same signable hash
	again, err := m.GenerateHashPayload("ethereum", tx)
	require.NoError(t, err)
	assert.Equal(t, hash, again)
}

func TestGenerateHashPayloadLegacy(t *testing.T) {
	m := newManager()
	nonce := uint64(0)

	hash, err := m.GenerateHashPayload("ethereum", &gateway.Transaction{
		From:     "0x1111111111111111111111111111111111111111",
		To:       "0x2222222222222222222222222222222222222222",
		Gas:      21000,
		GasPrice: big.NewInt(55),
		Nonce:    &nonce,
	})
	require.NoError(t, err)
	assert.Len(t, hash, 66)
}

func TestGenerateHashPayloadRequiresFees(t *testing.T) {
	m := newManager()
	nonce := uint64(0)

	_, err := m.GenerateHashPayload("ethereum", &gateway.Transaction{
		From:  "0x1111111111111111111111111111111111111111",
		To:    "0x2222222222222222222222222222222222222222",
		Gas:   21000,
		Nonce: &nonce,
	})
	assert.Error(t, err)

	_, err = m.GenerateHashPayload("ethereum", &gateway.Transaction{
		From:     "0x1111111111111111111111111111111111111111",
		To:       "0x2222222222222222222222222222222222222222",
		Gas:      21000,
		GasPrice: big.NewInt(1),
	})
	assert.Error(t, err)
}
