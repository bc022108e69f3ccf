package gateway

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ChainConfig is one configured chain with its RPC endpoint.
type ChainConfig struct {
	Info     ChainInfo
	Endpoint string
	Active   bool
}

type evmAPI struct {
	mu       sync.RWMutex
	info     ChainInfo
	endpoint string
	client   *ethclient.Client
	active   bool
}

func (a *evmAPI) getClient() (*ethclient.Client, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.client == nil {
		return nil, errors.New("connection error: no client for chain " + a.info.Slug)
	}

	return a.client, nil
}

// Manager is the EVM-backed Gateway implementation. Connections are
// long-lived and shared across pipeline runs; concurrent re-initialization
// requests for the same chain key are coalesced through singleflight.
type Manager struct {
	mu    sync.RWMutex
	apis  map[string]*evmAPI
	inits singleflight.Group
}

// NewManager builds a Manager from the configured chain set. Connections
// for active chains are opened lazily on first use.
func NewManager(chains map[string]ChainConfig) *Manager {
	apis := make(map[string]*evmAPI, len(chains))
	for key, cfg := range chains {
		apis[key] = &evmAPI{
			info:     cfg.Info,
			endpoint: cfg.Endpoint,
			active:   cfg.Active,
		}
	}

	return &Manager{apis: apis}
}

func (m *Manager) api(networkKey string) (*evmAPI, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	api, ok := m.apis[networkKey]
	if !ok {
		return nil, errors.New("this network is currently not supported: " + networkKey)
	}

	return api, nil
}

// GetChainState reports whether a chain is active. Unknown chains are
// reported inactive.
func (m *Manager) GetChainState(networkKey string) ChainState {
	api, err := m.api(networkKey)
	if err != nil {
		return ChainState{}
	}

	api.mu.RLock()
	defer api.mu.RUnlock()

	return ChainState{Active: api.active}
}

// GetChainInfo returns the static metadata for a chain.
func (m *Manager) GetChainInfo(networkKey string) (*ChainInfo, error) {
	api, err := m.api(networkKey)
	if err != nil {
		return nil, err
	}

	info := api.info

	return &info, nil
}

// EnableChain marks a chain active and opens its connection. Calling it on
// an already-active chain is a no-op.
func (m *Manager) EnableChain(ctx context.Context, networkKey string) error {
	api, err := m.api(networkKey)
	if err != nil {
		return err
	}

	api.mu.Lock()
	alreadyActive := api.active && api.client != nil
	api.active = true
	api.mu.Unlock()

	if alreadyActive {
		return nil
	}

	return m.InitSingleAPI(ctx, networkKey)
}

// InitSingleAPI re-dials the RPC endpoint for one chain. Concurrent calls
// for the same key share a single dial.
func (m *Manager) InitSingleAPI(ctx context.Context, networkKey string) error {
	api, err := m.api(networkKey)
	if err != nil {
		return err
	}

	_, err, _ = m.inits.Do(networkKey, func() (any, error) {
		rpcClient, err := rpc.DialContext(ctx, api.endpoint)
		if err != nil {
			return nil, errors.Wrap(err, "connection error: failed to dial "+api.endpoint)
		}

		api.mu.Lock()
		if api.client != nil {
			api.client.Close()
		}

		api.client = ethclient.NewClient(rpcClient)
		api.mu.Unlock()

		log.Debug().
			Str("component", "gateway").
			Str("network_key", networkKey).
			Msg("Re-initialized chain connection")

		return nil, nil
	})

	return err
}

// GetBalance returns the native balance of an address.
func (m *Manager) GetBalance(ctx context.Context, networkKey, address string) (*big.Int, error) {
	client, err := m.client(networkKey)
	if err != nil {
		return nil, err
	}

	balance, err := client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

// EstimateGas estimates the gas limit for a normalized transaction.
func (m *Manager) EstimateGas(ctx context.Context, networkKey string, tx *Transaction) (uint64, error) {
	client, err := m.client(networkKey)
	if err != nil {
		return 0, err
	}

	msg := ethereum.CallMsg{
		From:      common.HexToAddress(tx.From),
		Value:     tx.Value,
		GasPrice:  tx.GasPrice,
		GasTipCap: tx.MaxPriorityFeePerGas,
		GasFeeCap: tx.MaxFeePerGas,
		Data:      tx.Data,
	}

	if tx.To != "" {
		to := common.HexToAddress(tx.To)
		msg.To = &to
	}

	gas, err := client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}

	return gas, nil
}

// GetTransactionCount returns the pending nonce for an address.
func (m *Manager) GetTransactionCount(ctx context.Context, networkKey, address string) (uint64, error) {
	client, err := m.client(networkKey)
	if err != nil {
		return 0, err
	}

	nonce, err := client.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction count")
	}

	return nonce, nil
}

// IsContractAddress reports whether code is deployed at an address.
func (m *Manager) IsContractAddress(ctx context.Context, networkKey, address string) (bool, error) {
	if address == "" {
		return false, nil
	}

	client, err := m.client(networkKey)
	if err != nil {
		return false, err
	}

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to get code")
	}

	return len(code) > 0, nil
}

// GasPrice returns the chain-suggested legacy gas price.
func (m *Manager) GasPrice(ctx context.Context, networkKey string) (*big.Int, error) {
	client, err := m.client(networkKey)
	if err != nil {
		return nil, err
	}

	price, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}

	return price, nil
}

// BaseFee returns the pending block base fee, or nil on pre-london chains.
func (m *Manager) BaseFee(ctx context.Context, networkKey string) (*big.Int, error) {
	client, err := m.client(networkKey)
	if err != nil {
		return nil, err
	}

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest header")
	}

	return header.BaseFee, nil
}

// MaxPriorityFeePerGas returns the chain-suggested priority fee.
func (m *Manager) MaxPriorityFeePerGas(ctx context.Context, networkKey string) (*big.Int, error) {
	client, err := m.client(networkKey)
	if err != nil {
		return nil, err
	}

	tip, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get max priority fee")
	}

	return tip, nil
}

func (m *Manager) client(networkKey string) (*ethclient.Client, error) {
	api, err := m.api(networkKey)
	if err != nil {
		return nil, err
	}

	return api.getClient()
}
