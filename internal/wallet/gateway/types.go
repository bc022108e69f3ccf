package gateway

import (
	"context"
	"math/big"
)

// AddressFormat is the address family of a chain.
type AddressFormat string

const (
	AddressFormatEthereum  AddressFormat = "ethereum"
	AddressFormatSubstrate AddressFormat = "substrate"
)

// ChainState is the connection lifecycle state of one chain.
type ChainState struct {
	Active bool
}

// ChainInfo is the static metadata of one chain, provided by the chain
// registry at construction time.
type ChainInfo struct {
	Slug          string
	Name          string
	AddressFormat AddressFormat
	EVMChainID    int64
	Symbol        string
	Decimals      int
}

// Transaction is a normalized EVM transaction. Numeric fields are big.Int
// (amounts must never lose precision); absent optional fields are nil.
type Transaction struct {
	From                 string
	To                   string // empty for contract creation
	Value                *big.Int
	Gas                  uint64
	GasPrice             *big.Int
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	Nonce                *uint64
	Data                 []byte
}

// DecodedCall is a best-effort human-readable description of a contract
// call, produced for the confirmation UI only.
type DecodedCall struct {
	Selector   string
	MethodName string
	Args       []string
}

// Gateway is the per-chain RPC abstraction the validation pipeline and the
// submission flow consult. Re-initialization must be idempotent and safe to
// call concurrently for the same chain key.
type Gateway interface {
	GetChainState(networkKey string) ChainState
	GetChainInfo(networkKey string) (*ChainInfo, error)

	// EnableChain activates an inactive chain and opens its connection.
	EnableChain(ctx context.Context, networkKey string) error

	// InitSingleAPI tears down and re-opens the connection for one chain.
	// Concurrent calls for the same key are coalesced into one dial.
	InitSingleAPI(ctx context.Context, networkKey string) error

	GetBalance(ctx context.Context, networkKey, address string) (*big.Int, error)
	EstimateGas(ctx context.Context, networkKey string, tx *Transaction) (uint64, error)
	GetTransactionCount(ctx context.Context, networkKey, address string) (uint64, error)
	IsContractAddress(ctx context.Context, networkKey, address string) (bool, error)
	DecodeContractCall(ctx context.Context, networkKey string, data []byte, to string) (*DecodedCall, error)

	// GasPrice, BaseFee and MaxPriorityFeePerGas feed the fee service.
	GasPrice(ctx context.Context, networkKey string) (*big.Int, error)
	BaseFee(ctx context.Context, networkKey string) (*big.Int, error)
	MaxPriorityFeePerGas(ctx context.Context, networkKey string) (*big.Int, error)
}
