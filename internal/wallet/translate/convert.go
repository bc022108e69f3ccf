package translate

import "strings"

// entry maps a set of known raw-message substrings to one user-facing
// (message, title) pair. Entries are checked top to bottom; the first match
// wins, so broader patterns must stay below narrower ones.
type entry struct {
	patterns []string
	msgID    string
	msg      string
	titleID  string
	title    string
}

var table = []entry{
	// Network / connectivity
	{
		patterns: []string{"connection error", "connection not open", "connection timeout", "can not active chain", "invalid json rpc"},
		msgID:    "error.network.unstable",
		msg:      "Re-enable the network or change RPC endpoint in the wallet settings and try again",
		titleID:  "error.network.unstable.title",
		title:    "Unstable network connection",
	},
	{
		patterns: []string{"network is currently not supported"},
		msgID:    "error.network.unsupported",
		msg:      "This network is not yet supported. Import the network into the wallet and try again",
		titleID:  "error.network.unsupported.title",
		title:    "Network not supported",
	},
	// Authentication
	{
		patterns: []string{"not found address to sign", "unable to find account", "unable to retrieve keypair"},
		msgID:    "error.auth.accountNotFound",
		msg:      "Address not found in the wallet. Re-check the address information and try again",
		titleID:  "error.auth.accountNotFound.title",
		title:    "Account not found",
	},
	{
		patterns: []string{"account not in allowed list"},
		msgID:    "error.auth.notAllowed",
		msg:      "Account disconnected from the dApp. Open the wallet to re-connect the account and try again",
		titleID:  "error.auth.notAllowed.title",
		title:    "Account disconnected",
	},
	// Transaction
	{
		patterns: []string{"recipient address not found"},
		msgID:    "error.tx.recipientNotFound",
		msg:      "Enter recipient address and try again",
		titleID:  "error.tx.recipientNotFound.title",
		title:    "Recipient address not found",
	},
	{
		patterns: []string{"is not a number", "invalid number value", "invalid bignumberish"},
		msgID:    "error.tx.invalidAmount",
		msg:      "Amount must be an integer. Enter an integer and try again",
		titleID:  "error.tx.invalidAmount.title",
		title:    "Invalid amount",
	},
	{
		patterns: []string{"calculate estimate gas fee", "invalidcode"},
		msgID:    "error.tx.gasEstimate",
		msg:      "Unable to calculate estimated gas for this transaction. Try again or contact support",
		titleID:  "error.tx.gasEstimate.title",
		title:    "Gas calculation error",
	},
	{
		patterns: []string{"invalid recipient address"},
		msgID:    "error.tx.invalidRecipient",
		msg:      "Make sure the recipient address is valid and in the same type as the sender address, then try again",
		titleID:  "error.tx.invalidRecipient.title",
		title:    "Invalid recipient address",
	},
	{
		patterns: []string{"must be different from sending address"},
		msgID:    "error.tx.sameAddress",
		msg:      "The recipient address must be different from the sender address",
		titleID:  "error.tx.sameAddress.title",
		title:    "Invalid recipient address",
	},
	{
		patterns: []string{"the sender address must be the ethereum address type"},
		msgID:    "error.tx.senderAddressType",
		msg:      "The sender address must be the ethereum address type",
		titleID:  "error.tx.senderAddressType.title",
		title:    "Invalid address type",
	},
	{
		patterns: []string{"insufficient balance", "insufficient funds"},
		msgID:    "error.tx.insufficientBalance",
		msg:      "Insufficient balance on the sender address. Top up your balance and try again",
		titleID:  "error.tx.insufficientBalance.title",
		title:    "Unable to sign transaction",
	},
	// Sign message
	{
		patterns: []string{"not found address or payload to sign"},
		msgID:    "error.sign.payloadMissing",
		msg:      "An error occurred when signing this request. Try again or contact support",
		titleID:  "error.sign.payloadMissing.title",
		title:    "Unable to sign message",
	},
	{
		patterns: []string{"unsupported method", "unsupported action"},
		msgID:    "error.sign.unsupportedMethod",
		msg:      "This sign method is not supported by the wallet. Try again or contact support",
		titleID:  "error.sign.unsupportedMethod.title",
		title:    "Method not supported",
	},
	{
		patterns: []string{"typed data", "primarytype"},
		msgID:    "error.sign.typedDataSchema",
		msg:      "The typed data of this request is malformed. Re-check the request on the dApp and try again",
		titleID:  "error.sign.typedDataSchema.title",
		title:    "Invalid typed data",
	},
}

// Convert maps a raw internal error message to a user-facing
// (message, title) pair by case-insensitive substring matching against the
// ordered pattern table. Total: unmatched input is returned verbatim with
// the generic "Error" title.
func Convert(raw string) (string, string) {
	lowered := strings.ToLower(raw)

	for _, e := range table {
		for _, p := range e.patterns {
			if strings.Contains(lowered, p) {
				return T(e.msgID, e.msg), T(e.titleID, e.title)
			}
		}
	}

	return raw, T("error.generic.title", "Error")
}
