package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
)

// EvmSendTransactionParams is the raw eth_sendTransaction request body.
// Numeric fields arrive as hex-prefixed strings, decimal strings or JSON
// numbers depending on the dApp; they are normalized before any math.
type EvmSendTransactionParams struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	Value                any    `json:"value"`
	Gas                  any    `json:"gas"`
	GasLimit             any    `json:"gasLimit"`
	GasPrice             any    `json:"gasPrice"`
	MaxPriorityFeePerGas any    `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         any    `json:"maxFeePerGas"`
	Data                 string `json:"data"`
}

// EvmTransactionRequest is the enrichment output: the normalized
// transaction plus everything the confirmation UI and the signer need.
// CanSign is false whenever any error was accumulated during enrichment;
// the UI consults it in addition to the pipeline's own halt.
type EvmTransactionRequest struct {
	Transaction  *gateway.Transaction
	Account      *keyring.Pair
	EstimateGas  string
	HashPayload  string
	IsToContract bool
	ParsedData   *gateway.DecodedCall
	CanSign      bool
}

// EvmTransactionStep normalizes, validates and enriches a raw EVM
// transaction request: address checks, gas estimation with one retry, fee
// math, balance validation, nonce and best-effort contract decoding.
//
// Sub-checks accumulate instead of short-circuiting: a later check still
// runs after an earlier one failed, so the user sees the fullest possible
// diagnostic, although the pipeline halts after this step returns.
func EvmTransactionStep(ctx context.Context, deps *Deps, _ string, payload *Payload) (*Payload, error) {
	fail := func(kind translate.Kind, raw string) {
		log.Error().
			Str("component", "validation").
			Str("network_key", payload.NetworkKey).
			Str("error", raw).
			Msg("EVM transaction validation failed")
		payload.failUI(ConfirmationWatchTransaction, kind, raw)
	}

	params, err := decodeTransactionParams(payload.Request)
	if err != nil {
		fail(translate.KindInvalidAmount, err.Error())

		params = &EvmSendTransactionParams{}
	}

	tx := &gateway.Transaction{
		From: payload.Address,
		To:   params.To,
	}

	if data := strings.TrimPrefix(params.Data, "0x"); data != "" {
		decoded := common.FromHex(params.Data)
		if decoded == nil {
			fail(translate.KindInvalidAmount, "invalid number value in data field")
		}

		tx.Data = decoded
	}

	// Numeric normalization must be exact: these are token amounts.
	normalize := func(field string, raw any) *big.Int {
		n, err := normalizeNumber(raw)
		if err != nil {
			fail(translate.KindInvalidAmount, field+": "+err.Error())

			return nil
		}

		return n
	}

	tx.Value = normalize("value", params.Value)

	gasRaw := params.Gas
	if gasRaw == nil {
		// Some dApps send the limit under gasLimit
		gasRaw = params.GasLimit
	}

	if gas := normalize("gas", gasRaw); gas != nil {
		if gas.IsUint64() {
			tx.Gas = gas.Uint64()
		} else {
			fail(translate.KindInvalidAmount, "gas: invalid number value, exceeds 64 bits")
		}
	}

	tx.GasPrice = normalize("gasPrice", params.GasPrice)
	tx.MaxPriorityFeePerGas = normalize("maxPriorityFeePerGas", params.MaxPriorityFeePerGas)
	tx.MaxFeePerGas = normalize("maxFeePerGas", params.MaxFeePerGas)

	validateAddresses(tx, fail)

	if tx.Gas == 0 {
		estimateGasLimit(ctx, deps, payload.NetworkKey, tx, fail)
	}

	var feeEstimate string

	if tx.Gas == 0 {
		fail(translate.KindGasEstimateFailed, "Can't calculate estimate gas fee")
	} else {
		feeEstimate = resolveFeeEstimate(ctx, deps, payload.NetworkKey, tx, fail)
		validateBalance(ctx, deps, payload, tx, feeEstimate, fail)
	}

	// Nonce fetch is best-effort: a failure degrades the confirmation data
	// but never blocks the user from retrying.
	if nonce, err := deps.Gateway.GetTransactionCount(ctx, payload.NetworkKey, payload.Address); err != nil {
		payload.note(translate.KindInternal, err.Error())
	} else {
		tx.Nonce = &nonce
	}

	pair := payload.Pair
	if pair == nil {
		if resolved, err := deps.Keyring.GetPair(payload.Address); err == nil {
			pair = resolved
		}
	}

	hasError := len(payload.Errors) > 0 || payload.NetworkKey == ""
	result := &EvmTransactionRequest{
		Transaction: tx,
		Account:     pair,
		EstimateGas: feeEstimate,
		CanSign:     !hasError,
	}

	if !hasError {
		if hash, err := deps.TxService.GenerateHashPayload(payload.NetworkKey, tx); err == nil {
			result.HashPayload = hash
		} else {
			payload.note(translate.KindInternal, err.Error())
			result.CanSign = false
		}
	}

	// Contract detection and calldata decoding are cosmetic enrichment for
	// the confirmation screen; failures are logged, never fatal.
	if tx.To != "" {
		if isContract, err := deps.Gateway.IsContractAddress(ctx, payload.NetworkKey, tx.To); err != nil {
			payload.note(translate.KindInternal, err.Error())
		} else if isContract {
			result.IsToContract = true

			if len(tx.Data) > 0 {
				if parsed, err := deps.Gateway.DecodeContractCall(ctx, payload.NetworkKey, tx.Data, tx.To); err != nil {
					log.Warn().
						Str("component", "validation").
						Err(err).
						Msg("Failed to decode contract call")
				} else {
					result.ParsedData = parsed
				}
			}
		}
	}

	payload.Request = result

	return payload, nil
}

func validateAddresses(tx *gateway.Transaction, fail func(translate.Kind, string)) {
	if tx.From == "" || !common.IsHexAddress(tx.From) {
		fail(translate.KindSenderAddressType, "the sender address must be the ethereum address type")
	}

	if tx.To != "" && !common.IsHexAddress(tx.To) {
		fail(translate.KindInvalidRecipient, "invalid recipient address")
	}

	if tx.To != "" && strings.EqualFold(tx.From, tx.To) {
		fail(translate.KindSameAddress, "receiving address must be different from sending address")
	}

	if tx.To == "" {
		// A contract-creation-like call must not also transfer value to
		// nobody.
		switch {
		case len(tx.Data) == 0:
			fail(translate.KindRecipientNotFound, "Recipient address not found")
		case tx.Value != nil && tx.Value.Sign() != 0:
			fail(translate.KindRecipientNotFound, "Recipient address not found")
		}
	}
}

// estimateGasLimit fills tx.Gas via the gateway, racing the estimate call
// against the probe timeout with one re-init retry. Gas estimation is the
// single most failure-prone remote call in the pipeline.
func estimateGasLimit(ctx context.Context, deps *Deps, networkKey string, tx *gateway.Transaction, fail func(translate.Kind, string)) {
	probe := func(ctx context.Context) error {
		gas, err := deps.Gateway.EstimateGas(ctx, networkKey, tx)
		if err != nil {
			return err
		}

		tx.Gas = gas

		return nil
	}

	reinit := func(ctx context.Context) error {
		return deps.Gateway.InitSingleAPI(ctx, networkKey)
	}

	if err := probeWithRetry(ctx, deps.probeTimeout(), probe, reinit); err != nil {
		fail(translate.KindGasEstimateFailed, err.Error())
	}
}

// resolveFeeEstimate computes the worst-case fee in wei and, when the dApp
// supplied no fee fields, stores the chain-recommended values back onto the
// transaction so the signer uses exactly what was estimated.
func resolveFeeEstimate(ctx context.Context, deps *Deps, networkKey string, tx *gateway.Transaction, fail func(translate.Kind, string)) string {
	gas := new(big.Int).SetUint64(tx.Gas)

	if tx.MaxPriorityFeePerGas != nil && tx.MaxFeePerGas != nil {
		return new(big.Int).Mul(tx.MaxFeePerGas, gas).String()
	}

	if tx.GasPrice != nil {
		return new(big.Int).Mul(tx.GasPrice, gas).String()
	}

	params, err := deps.FeeService.CalculateGasFeeParams(ctx, networkKey)
	if err != nil {
		fail(translate.KindGasEstimateFailed, err.Error())

		return ""
	}

	if params.IsEIP1559() {
		tx.MaxPriorityFeePerGas = params.MaxPriorityFeePerGas
		tx.MaxFeePerGas = params.MaxFeePerGas

		return new(big.Int).Mul(params.MaxFeePerGas, gas).String()
	}

	tx.GasPrice = params.GasPrice

	return new(big.Int).Mul(params.GasPrice, gas).String()
}

// validateBalance confirms balance >= fee estimate + value.
func validateBalance(ctx context.Context, deps *Deps, payload *Payload, tx *gateway.Transaction, feeEstimate string, fail func(translate.Kind, string)) {
	balance, err := deps.Gateway.GetBalance(ctx, payload.NetworkKey, payload.Address)
	if err != nil {
		fail(translate.KindNetworkUnreachable, err.Error())

		return
	}

	if feeEstimate == "" {
		fail(translate.KindGasEstimateFailed, "Can't calculate estimate gas fee")

		return
	}

	required, ok := new(big.Int).SetString(feeEstimate, 10)
	if !ok {
		fail(translate.KindGasEstimateFailed, "Can't calculate estimate gas fee")

		return
	}

	if tx.Value != nil {
		required = new(big.Int).Add(required, tx.Value)
	}

	if balance.Cmp(required) < 0 {
		fail(translate.KindInsufficientBalance, "Insufficient balance")
	}
}

func decodeTransactionParams(request any) (*EvmSendTransactionParams, error) {
	switch v := request.(type) {
	case *EvmSendTransactionParams:
		return v, nil
	case EvmSendTransactionParams:
		return &v, nil
	case nil:
		return nil, errors.New("transaction request is empty")
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid transaction request")
		}

		// UseNumber keeps numeric fields as json.Number so amounts wider
		// than 53 bits survive the round-trip intact.
		decoder := json.NewDecoder(bytes.NewReader(encoded))
		decoder.UseNumber()

		var params EvmSendTransactionParams
		if err := decoder.Decode(&params); err != nil {
			return nil, errors.Wrap(err, "invalid transaction request")
		}

		return &params, nil
	}
}

// normalizeNumber converts a raw JSON numeric field into an exact big.Int.
// Hex-prefixed strings parse base-16, plain strings base-10, JSON numbers
// through decimal to avoid float precision loss. Absent fields return nil.
func normalizeNumber(raw any) (*big.Int, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}

		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			n, ok := new(big.Int).SetString(v[2:], 16)
			if !ok {
				return nil, errors.Errorf("%q is not a number", v)
			}

			return n, nil
		}

		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, errors.Errorf("%q is not a number", v)
		}

		return n, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, errors.Errorf("%q is not a number", v.String())
		}

		if !d.IsInteger() {
			return nil, errors.New("invalid number value: amount must be an integer")
		}

		return d.BigInt(), nil
	case float64:
		d := decimal.NewFromFloat(v)
		if !d.IsInteger() {
			return nil, errors.New("invalid number value: amount must be an integer")
		}

		return d.BigInt(), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case *big.Int:
		return v, nil
	default:
		return nil, errors.New("invalid number value")
	}
}
