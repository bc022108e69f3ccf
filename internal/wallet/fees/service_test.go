package fees_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/fees"
	"github.com/hydrawallet/wallet-core/internal/wallet/gateway/gatewaytest"
)

func TestCalculateGasFeeParamsEIP1559(t *testing.T) {
	gw := &gatewaytest.Fake{
		BaseFeeFunc: func(_ context.Context, _ string) (*big.Int, error) {
			return big.NewInt(50), nil
		},
		PriorityFeeFunc: func(_ context.Context, _ string) (*big.Int, error) {
			return big.NewInt(3), nil
		},
	}

	params, err := fees.NewService(gw).CalculateGasFeeParams(context.Background(), "ethereum")
	require.NoError(t, err)

	assert.True(t, params.IsEIP1559())
	assert.Equal(t, big.NewInt(50), params.BaseGasFee)
	assert.Equal(t, big.NewInt(3), params.MaxPriorityFeePerGas)
	// base * 2 + priority
	assert.Equal(t, big.NewInt(103), params.MaxFeePerGas)
	assert.Nil(t, params.GasPrice)
}

func TestCalculateGasFeeParamsLegacy(t *testing.T) {
	gw := &gatewaytest.Fake{
		GasPriceFunc: func(_ context.Context, _ string) (*big.Int, error) {
			return big.NewInt(9), nil
		},
	}

	params, err := fees.NewService(gw).CalculateGasFeeParams(context.Background(), "classic")
	require.NoError(t, err)

	assert.False(t, params.IsEIP1559())
	assert.Equal(t, big.NewInt(9), params.GasPrice)
	assert.Nil(t, params.MaxFeePerGas)
}
