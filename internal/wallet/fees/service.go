package fees

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
)

const eip1559FeeMultiplier = 2

// GasFeeParams is the chain-recommended fee recipe. Exactly one of the two
// shapes is populated: EIP-1559 chains carry BaseGasFee plus the fee cap
// pair, legacy chains carry GasPrice only.
type GasFeeParams struct {
	BaseGasFee           *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	GasPrice             *big.Int
}

// IsEIP1559 reports whether the params carry the dynamic-fee pair.
func (p *GasFeeParams) IsEIP1559() bool {
	return p.BaseGasFee != nil
}

// Service recommends gas fee parameters for a chain.
type Service interface {
	// CalculateGasFeeParams queries the chain for its current fee recipe.
	CalculateGasFeeParams(ctx context.Context, networkKey string) (*GasFeeParams, error)
}

type service struct {
	gateway gateway.Gateway
}

// NewService creates the fee recommendation service.
//
//nolint:ireturn
func NewService(gw gateway.Gateway) Service {
	return &service{gateway: gw}
}

// CalculateGasFeeParams returns EIP-1559 params when the chain exposes a
// base fee; the fee cap is twice the base fee plus the suggested priority
// fee. Chains without a base fee fall back to a legacy gas price.
func (s *service) CalculateGasFeeParams(ctx context.Context, networkKey string) (*GasFeeParams, error) {
	baseFee, err := s.gateway.BaseFee(ctx, networkKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate gas fee params")
	}

	if baseFee == nil || baseFee.Sign() == 0 {
		gasPrice, err := s.gateway.GasPrice(ctx, networkKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to calculate gas fee params")
		}

		return &GasFeeParams{GasPrice: gasPrice}, nil
	}

	priority, err := s.gateway.MaxPriorityFeePerGas(ctx, networkKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate gas fee params")
	}

	maxFee := new(big.Int).Mul(baseFee, big.NewInt(eip1559FeeMultiplier))
	maxFee.Add(maxFee, priority)

	log.Debug().
		Str("component", "fee_service").
		Str("network_key", networkKey).
		Str("base_fee", baseFee.String()).
		Str("max_fee", maxFee.String()).
		Msg("Calculated EIP-1559 fee params")

	return &GasFeeParams{
		BaseGasFee:           baseFee,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: priority,
	}, nil
}
