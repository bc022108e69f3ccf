package translate

// Kind classifies a wallet error at the raising site. Substring matching on
// raw messages (see Convert) remains as a compatibility fallback for errors
// bubbling up from RPC providers, which only carry English message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetworkUnreachable
	KindNetworkUnsupported
	KindAccountNotFound
	KindAccountNotAllowed
	KindRecipientNotFound
	KindInvalidAmount
	KindGasEstimateFailed
	KindInvalidRecipient
	KindSameAddress
	KindSenderAddressType
	KindInsufficientBalance
	KindSignPayloadMissing
	KindUnsupportedMethod
	KindTypedDataSchema
	KindInternal
)

// Error is a wallet error carrying a structured kind, the raw internal
// message and the user-facing translation resolved at construction time.
type Error struct {
	Kind    Kind
	Raw     string
	Message string
	Title   string
}

// Error returns the user-facing message so accumulated errors render
// correctly without another translation pass.
func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error for a raw internal message, resolving the
// user-facing (message, title) pair through the pattern table.
func NewError(kind Kind, raw string) *Error {
	message, title := Convert(raw)

	return &Error{
		Kind:    kind,
		Raw:     raw,
		Message: message,
		Title:   title,
	}
}
