package typeddata

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// HashV1 computes the legacy eth_signTypedData hash:
//
//	keccak256(pack(keccak256(pack(schema)), keccak256(pack(values))))
//
// where schema entries are "type name" strings packed as strings and values
// are tightly packed per their declared solidity type. Any malformed field
// fails the hash, which is the validation oracle for v1 payloads.
func HashV1(fields []Field) ([]byte, error) {
	if len(fields) == 0 {
		return nil, errors.New("typed data must contain at least one field")
	}

	var schemaPacked, valuesPacked []byte

	for _, field := range fields {
		if field.Name == "" || field.Type == "" {
			return nil, errors.New("typed data field is missing name or type")
		}

		schemaPacked = append(schemaPacked, []byte(fmt.Sprintf("%s %s", field.Type, field.Name))...)

		packed, err := packValue(field.Type, field.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to pack field %q", field.Name)
		}

		valuesPacked = append(valuesPacked, packed...)
	}

	schemaHash := crypto.Keccak256(schemaPacked)
	valuesHash := crypto.Keccak256(valuesPacked)

	return crypto.Keccak256(schemaHash, valuesHash), nil
}

// packValue tightly packs one value per its solidity type, mirroring
// abi.solidityPack for the subset of types legacy typed data supports.
func packValue(solType string, value any) ([]byte, error) {
	switch {
	case solType == "string":
		s, ok := value.(string)
		if !ok {
			return nil, errors.New("string value expected")
		}

		return []byte(s), nil

	case solType == "bytes":
		return packBytes(value)

	case strings.HasPrefix(solType, "bytes"):
		size, err := strconv.Atoi(strings.TrimPrefix(solType, "bytes"))
		if err != nil || size < 1 || size > 32 {
			return nil, errors.Errorf("unsupported type %q", solType)
		}

		b, err := packBytes(value)
		if err != nil {
			return nil, err
		}

		if len(b) != size {
			return nil, errors.Errorf("expected %d bytes, got %d", size, len(b))
		}

		return b, nil

	case solType == "address":
		s, ok := value.(string)
		if !ok || !common.IsHexAddress(s) {
			return nil, errors.New("address value expected")
		}

		return common.HexToAddress(s).Bytes(), nil

	case solType == "bool":
		b, ok := value.(bool)
		if !ok {
			return nil, errors.New("bool value expected")
		}

		if b {
			return []byte{1}, nil
		}

		return []byte{0}, nil

	case strings.HasPrefix(solType, "uint"), strings.HasPrefix(solType, "int"):
		return packInteger(solType, value)

	default:
		return nil, errors.Errorf("unsupported type %q", solType)
	}
}

func packBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		decoded, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "invalid hex bytes")
		}

		return decoded, nil
	default:
		return nil, errors.New("bytes value expected")
	}
}

func packInteger(solType string, value any) ([]byte, error) {
	signed := strings.HasPrefix(solType, "int")

	sizeText := strings.TrimPrefix(solType, "uint")
	if signed {
		sizeText = strings.TrimPrefix(solType, "int")
	}

	if sizeText == "" {
		sizeText = "256"
	}

	bits, err := strconv.Atoi(sizeText)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return nil, errors.Errorf("unsupported type %q", solType)
	}

	n, err := toBigInt(value)
	if err != nil {
		return nil, err
	}

	if n.Sign() < 0 && !signed {
		return nil, errors.New("negative value for unsigned type")
	}

	if n.BitLen() > bits {
		return nil, errors.Errorf("value does not fit in %d bits", bits)
	}

	// Two's complement for negative signed values
	if n.Sign() < 0 {
		n = new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	}

	buf := make([]byte, bits/8)
	n.FillBytes(buf)

	return buf, nil
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		base := 10
		text := v

		if strings.HasPrefix(v, "0x") {
			base = 16
			text = strings.TrimPrefix(v, "0x")
		}

		n, ok := new(big.Int).SetString(text, base)
		if !ok {
			return nil, errors.Errorf("%q is not a number", v)
		}

		return n, nil
	case float64:
		if v != float64(int64(v)) {
			return nil, errors.New("invalid number value: not an integer")
		}

		return big.NewInt(int64(v)), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case *big.Int:
		return v, nil
	default:
		return nil, errors.New("integer value expected")
	}
}
