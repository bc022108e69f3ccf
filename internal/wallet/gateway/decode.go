package gateway

import (
	"context"
	"encoding/hex"

	"github.com/pkg/errors"
)

// wellKnownSelectors maps 4-byte selectors of common token methods to their
// names. Decoding is cosmetic data for the confirmation UI only; unknown
// selectors still decode to their hex form.
var wellKnownSelectors = map[string]string{
	"a9059cbb": "transfer(address,uint256)",
	"095ea7b3": "approve(address,uint256)",
	"23b872dd": "transferFrom(address,address,uint256)",
	"70a08231": "balanceOf(address)",
	"42842e0e": "safeTransferFrom(address,address,uint256)",
	"d0e30db0": "deposit()",
	"2e1a7d4d": "withdraw(uint256)",
}

// DecodeContractCall splits calldata into its selector and 32-byte argument
// words and names the method when the selector is well known.
func (m *Manager) DecodeContractCall(_ context.Context, _ string, data []byte, _ string) (*DecodedCall, error) {
	const selectorLen = 4

	const wordLen = 32

	if len(data) < selectorLen {
		return nil, errors.New("calldata shorter than a method selector")
	}

	selector := hex.EncodeToString(data[:selectorLen])

	decoded := &DecodedCall{
		Selector:   "0x" + selector,
		MethodName: wellKnownSelectors[selector],
	}

	for rest := data[selectorLen:]; len(rest) > 0; {
		end := wordLen
		if len(rest) < end {
			end = len(rest)
		}

		decoded.Args = append(decoded.Args, "0x"+hex.EncodeToString(rest[:end]))
		rest = rest[end:]
	}

	return decoded, nil
}
