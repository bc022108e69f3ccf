package validation

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"

	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
	"github.com/hydrawallet/wallet-core/internal/wallet/typeddata"
)

// SignMethod enumerates the supported message-signing methods. The dispatch
// switch below is exhaustive over these variants, so adding a method without
// handling it fails at review rather than at runtime.
type SignMethod int

const (
	MethodPersonalSign SignMethod = iota
	MethodEthSign
	MethodTypedDataLegacy
	MethodTypedDataV1
	MethodTypedDataV3
	MethodTypedDataV4
)

var signMethodNames = map[string]SignMethod{
	"personal_sign":        MethodPersonalSign,
	"eth_sign":             MethodEthSign,
	"eth_signTypedData":    MethodTypedDataLegacy,
	"eth_signTypedData_v1": MethodTypedDataV1,
	"eth_signTypedData_v3": MethodTypedDataV3,
	"eth_signTypedData_v4": MethodTypedDataV4,
}

// ParseSignMethod resolves a requested method name to its variant.
func ParseSignMethod(name string) (SignMethod, bool) {
	method, ok := signMethodNames[name]

	return method, ok
}

// SignaturePayload is the dispatch output handed to the signing flow.
type SignaturePayload struct {
	Account     *keyring.Pair
	Type        string
	Payload     any
	HashPayload string
	CanSign     bool
}

// MessageSignStep dispatches on the requested signing method and validates
// the payload shape per method. An unknown method is a dApp-facing
// rejection; past that allow-list check every failure is UI-facing.
// Externally-custodied accounts can sign personal_sign only.
func MessageSignStep(_ context.Context, deps *Deps, _ string, payload *Payload) (*Payload, error) {
	fail := func(kind translate.Kind, raw string) {
		log.Error().
			Str("component", "validation").
			Str("method", payload.Method).
			Str("error", raw).
			Msg("Sign message validation failed")
		payload.failUI(ConfirmationSignatureRequest, kind, raw)
	}

	if payload.Method == "" {
		payload.reject(translate.KindUnsupportedMethod, "Unsupported method")

		return payload, nil
	}

	method, known := ParseSignMethod(payload.Method)
	if !known {
		payload.reject(translate.KindUnsupportedMethod, "Unsupported action")

		return payload, nil
	}

	if payload.Address == "" || payload.Request == nil {
		fail(translate.KindSignPayloadMissing, "Not found address or payload to sign")
	}

	pair := payload.Pair
	if pair == nil {
		resolved, err := deps.Keyring.GetPair(payload.Address)
		if err != nil {
			fail(translate.KindAccountNotFound, err.Error())
		} else {
			pair = resolved
		}
	}

	external := pair != nil && pair.IsExternal()

	result := &SignaturePayload{
		Account: pair,
		Type:    payload.Method,
		Payload: payload.Request,
	}

	switch method {
	case MethodPersonalSign:
		message, ok := payload.Request.(string)
		if !ok {
			fail(translate.KindSignPayloadMissing, "Not found address or payload to sign")
		} else {
			result.HashPayload = message
			result.CanSign = true
		}

	case MethodEthSign:
		// No content validation is possible for a raw 32-byte sign
		result.CanSign = !external

	case MethodTypedDataLegacy, MethodTypedDataV1:
		fields, err := typeddata.ParseV1(payload.Request)
		if err != nil {
			fail(translate.KindTypedDataSchema, err.Error())

			break
		}

		// The v1 hash computation is the validation oracle
		hash, err := typeddata.HashV1(fields)
		if err != nil {
			fail(translate.KindTypedDataSchema, err.Error())

			break
		}

		result.HashPayload = hexutil.Encode(hash)
		result.Payload = fields
		result.CanSign = !external

	case MethodTypedDataV3, MethodTypedDataV4:
		data, err := typeddata.ParseTypedData(payload.Request)
		if err != nil {
			fail(translate.KindTypedDataSchema, err.Error())

			break
		}

		result.Payload = data
		result.CanSign = !external
	}

	// A payload that failed any check must never stay signable
	if payload.ErrorPosition != ErrorPositionNone {
		result.CanSign = false
	}

	payload.Request = result

	return payload, nil
}
