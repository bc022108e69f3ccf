// Package gatewaytest provides a hook-based Gateway fake for tests.
package gatewaytest

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
)

// Fake implements gateway.Gateway through optional hooks. Unset hooks fall
// back to permissive defaults so each test only wires what it exercises.
// Call counters are atomic because the race-with-retry paths invoke probes
// from their own goroutines.
type Fake struct {
	ChainStateFunc   func(networkKey string) gateway.ChainState
	ChainInfoFunc    func(networkKey string) (*gateway.ChainInfo, error)
	EnableChainFunc  func(ctx context.Context, networkKey string) error
	InitAPIFunc      func(ctx context.Context, networkKey string) error
	BalanceFunc      func(ctx context.Context, networkKey, address string) (*big.Int, error)
	EstimateGasFunc  func(ctx context.Context, networkKey string, tx *gateway.Transaction) (uint64, error)
	NonceFunc        func(ctx context.Context, networkKey, address string) (uint64, error)
	IsContractFunc   func(ctx context.Context, networkKey, address string) (bool, error)
	DecodeFunc       func(ctx context.Context, networkKey string, data []byte, to string) (*gateway.DecodedCall, error)
	GasPriceFunc     func(ctx context.Context, networkKey string) (*big.Int, error)
	BaseFeeFunc      func(ctx context.Context, networkKey string) (*big.Int, error)
	PriorityFeeFunc  func(ctx context.Context, networkKey string) (*big.Int, error)
	enableChainCalls atomic.Int64
	initAPICalls     atomic.Int64
	estimateGasCalls atomic.Int64
}

// EnableChainCalls reports how many times EnableChain was invoked.
func (f *Fake) EnableChainCalls() int64 { return f.enableChainCalls.Load() }

// InitAPICalls reports how many times InitSingleAPI was invoked.
func (f *Fake) InitAPICalls() int64 { return f.initAPICalls.Load() }

// EstimateGasCalls reports how many times EstimateGas was invoked.
func (f *Fake) EstimateGasCalls() int64 { return f.estimateGasCalls.Load() }

func (f *Fake) GetChainState(networkKey string) gateway.ChainState {
	if f.ChainStateFunc != nil {
		return f.ChainStateFunc(networkKey)
	}

	return gateway.ChainState{Active: true}
}

func (f *Fake) GetChainInfo(networkKey string) (*gateway.ChainInfo, error) {
	if f.ChainInfoFunc != nil {
		return f.ChainInfoFunc(networkKey)
	}

	return &gateway.ChainInfo{
		Slug:          networkKey,
		Name:          networkKey,
		AddressFormat: gateway.AddressFormatEthereum,
		EVMChainID:    1,
		Symbol:        "ETH",
		Decimals:      18,
	}, nil
}

func (f *Fake) EnableChain(ctx context.Context, networkKey string) error {
	f.enableChainCalls.Add(1)

	if f.EnableChainFunc != nil {
		return f.EnableChainFunc(ctx, networkKey)
	}

	return nil
}

func (f *Fake) InitSingleAPI(ctx context.Context, networkKey string) error {
	f.initAPICalls.Add(1)

	if f.InitAPIFunc != nil {
		return f.InitAPIFunc(ctx, networkKey)
	}

	return nil
}

func (f *Fake) GetBalance(ctx context.Context, networkKey, address string) (*big.Int, error) {
	if f.BalanceFunc != nil {
		return f.BalanceFunc(ctx, networkKey, address)
	}

	return big.NewInt(0), nil
}

func (f *Fake) EstimateGas(ctx context.Context, networkKey string, tx *gateway.Transaction) (uint64, error) {
	f.estimateGasCalls.Add(1)

	if f.EstimateGasFunc != nil {
		return f.EstimateGasFunc(ctx, networkKey, tx)
	}

	return 21000, nil
}

func (f *Fake) GetTransactionCount(ctx context.Context, networkKey, address string) (uint64, error) {
	if f.NonceFunc != nil {
		return f.NonceFunc(ctx, networkKey, address)
	}

	return 0, nil
}

func (f *Fake) IsContractAddress(ctx context.Context, networkKey, address string) (bool, error) {
	if f.IsContractFunc != nil {
		return f.IsContractFunc(ctx, networkKey, address)
	}

	return false, nil
}

func (f *Fake) DecodeContractCall(ctx context.Context, networkKey string, data []byte, to string) (*gateway.DecodedCall, error) {
	if f.DecodeFunc != nil {
		return f.DecodeFunc(ctx, networkKey, data, to)
	}

	return nil, errors.New("no decode hook")
}

func (f *Fake) GasPrice(ctx context.Context, networkKey string) (*big.Int, error) {
	if f.GasPriceFunc != nil {
		return f.GasPriceFunc(ctx, networkKey)
	}

	return big.NewInt(1), nil
}

func (f *Fake) BaseFee(ctx context.Context, networkKey string) (*big.Int, error) {
	if f.BaseFeeFunc != nil {
		return f.BaseFeeFunc(ctx, networkKey)
	}

	return nil, nil
}

func (f *Fake) MaxPriorityFeePerGas(ctx context.Context, networkKey string) (*big.Int, error) {
	if f.PriorityFeeFunc != nil {
		return f.PriorityFeeFunc(ctx, networkKey)
	}

	return big.NewInt(1), nil
}
