// Package typeddata validates EIP-712 payloads for the message-signing flow.
//
// Legacy typed data (eth_signTypedData / _v1) is validated by computing the
// canonical v1 hash: a payload that hashes is signable, a payload that does
// not is malformed. Versions 3 and 4 are validated structurally against the
// {types, primaryType, domain, message} schema instead.
package typeddata

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

// Field is one entry of a legacy (v1) typed-data payload.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// ParseV1 decodes a raw payload into the legacy field list. Accepts an
// already-decoded []Field, a generic JSON array or a JSON string.
func ParseV1(raw any) ([]Field, error) {
	switch v := raw.(type) {
	case []Field:
		return v, nil
	case string:
		var fields []Field
		if err := json.Unmarshal([]byte(v), &fields); err != nil {
			return nil, errors.Wrap(err, "typed data is not a field array")
		}

		return fields, nil
	default:
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid typed data payload")
		}

		var fields []Field
		if err := json.Unmarshal(encoded, &fields); err != nil {
			return nil, errors.Wrap(err, "typed data is not a field array")
		}

		return fields, nil
	}
}

// ParseTypedData decodes a v3/v4 payload into apitypes.TypedData and checks
// the structural schema. The hash is intentionally not computed here.
func ParseTypedData(raw any) (*apitypes.TypedData, error) {
	var encoded []byte

	switch v := raw.(type) {
	case string:
		encoded = []byte(v)
	case []byte:
		encoded = v
	default:
		var err error

		encoded, err = json.Marshal(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid typed data payload")
		}
	}

	var data apitypes.TypedData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return nil, errors.Wrap(err, "typed data does not match the expected object shape")
	}

	if err := validateSchema(&data); err != nil {
		return nil, err
	}

	return &data, nil
}

func validateSchema(data *apitypes.TypedData) error {
	if len(data.Types) == 0 {
		return errors.New("typed data is missing types")
	}

	if data.PrimaryType == "" {
		return errors.New("typed data is missing primaryType")
	}

	if _, ok := data.Types[data.PrimaryType]; !ok {
		return errors.Errorf("typed data primaryType %q is not declared in types", data.PrimaryType)
	}

	if data.Message == nil {
		return errors.New("typed data is missing message")
	}

	for name, fields := range data.Types {
		for _, field := range fields {
			if field.Name == "" || field.Type == "" {
				return errors.Errorf("typed data type %q has a field without name or type", name)
			}
		}
	}

	return nil
}
