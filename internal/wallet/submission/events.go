package submission

import "strings"

// chainFamily groups runtimes that emit transfer and fee events under the
// same pallet names. Everything outside the three special families uses the
// standard balances pallet.
type chainFamily int

const (
	familyDefault chainFamily = iota
	familyAcala
	familyKintsugi
	familyGenshiro
)

var chainFamilies = map[string]chainFamily{
	"acala":                 familyAcala,
	"acala_testnet":         familyAcala,
	"karura":                familyAcala,
	"kintsugi":              familyKintsugi,
	"kintsugi_test":         familyKintsugi,
	"interlay":              familyKintsugi,
	"genshiro":              familyGenshiro,
	"genshiro_testnet":      familyGenshiro,
	"equilibrium_parachain": familyGenshiro,
}

func familyOf(networkKey string) chainFamily {
	return chainFamilies[networkKey]
}

// scanEvents decides the outcome of an included extrinsic from its block
// event log: system.ExtrinsicFailed flips the response to failed with the
// module error decoded when metadata allows, system.ExtrinsicSuccess flips
// it to completed. The transfer summary is updated from the same pass.
func scanEvents(resp *Response, registry Registry, networkKey string, tokenInfo *TokenInfo, events []EventRecord) {
	for i := range events {
		record := &events[i]

		isFailed := record.Section == "system" && record.Method == "ExtrinsicFailed"
		isSuccess := record.Section == "system" && record.Method == "ExtrinsicSuccess"

		switch {
		case isFailed:
			resp.Status = StatusFailed
			applyDispatchError(resp, registry, record.Dispatch)
		case isSuccess:
			resp.Status = StatusCompleted
		}
	}

	applyTxResult(resp, networkKey, tokenInfo, events)
}

func applyDispatchError(resp *Response, registry Registry, dispatch *DispatchError) {
	if dispatch == nil {
		resp.Errors = append(resp.Errors, "extrinsic failed")

		return
	}

	if dispatch.IsModule && registry != nil {
		if meta, ok := registry.FindMetaError(dispatch.Pallet, dispatch.ErrorIndex); ok {
			message := strings.Join(meta.Docs, " ")
			resp.Failure = &Failure{
				Section: meta.Section,
				Method:  meta.Method,
				Message: message,
			}
			resp.Errors = append(resp.Errors, message)

			return
		}
	}

	// Other, CannotLookup, BadOrigin, or metadata lookup failed: no extra
	// info beyond the stringified error
	raw := dispatch.Other
	if raw == "" {
		raw = "extrinsic failed"
	}

	resp.Errors = append(resp.Errors, raw)
}

// applyTxResult maps chain-specific event log entries to the
// {change, fee} transfer summary. Different runtimes emit the transfer and
// fee under different pallets, hence the per-family dispatch.
func applyTxResult(resp *Response, networkKey string, tokenInfo *TokenInfo, events []EventRecord) {
	if resp.TxResult == nil {
		resp.TxResult = &TxResult{Change: "0"}
	}

	result := resp.TxResult
	family := familyOf(networkKey)
	feeUsesMainToken := true

	for index, record := range events {
		method := strings.ToLower(record.Method)

		switch {
		case family == familyAcala && tokenInfo != nil && !tokenInfo.IsMainToken:
			if record.Section == "currencies" && method == "transferred" {
				// The first currencies.Transferred in the block is the fee
				// payment in the transferred token, the next one the
				// transfer itself
				if index == 0 {
					result.Fee = eventData(record, 3)
					result.FeeSymbol = tokenInfo.Symbol
					feeUsesMainToken = false
				} else {
					result.Change = eventData(record, 3)
					result.ChangeSymbol = tokenInfo.Symbol
				}
			}
		case family == familyKintsugi && tokenInfo != nil:
			if record.Section == "tokens" && method == "transfer" {
				result.Change = eventData(record, 3)
				result.ChangeSymbol = tokenInfo.Symbol
			}
		case family == familyGenshiro && tokenInfo != nil:
			if record.Section == "eqBalances" && method == "transfer" {
				result.Change = eventData(record, 3)
				result.ChangeSymbol = tokenInfo.Symbol
			}
		default:
			if record.Section == "balances" && method == "transfer" {
				result.Change = eventData(record, 2)
			}
		}

		if feeUsesMainToken && record.Section == "balances" && method == "withdraw" {
			result.Fee = eventData(record, 1)
		}
	}
}

func eventData(record EventRecord, index int) string {
	if index >= len(record.Data) || record.Data[index] == "" {
		return "0"
	}

	return record.Data[index]
}
