// Package submission drives a signed extrinsic from signature acquisition
// through broadcast to a terminal completed or failed state, scanning the
// block event log to decide the outcome and to build a transfer summary.
package submission

import (
	"context"

	"github.com/pkg/errors"
)

// Status of an in-flight extrinsic submission.
type Status string

const (
	StatusReady        Status = "ready"
	StatusSigning      Status = "signing"
	StatusBroadcasting Status = "broadcasting"
	StatusInBlock      Status = "inBlock"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ErrSigningRejected is returned by a signature provider when the user (or
// the hardware device) refused to sign.
var ErrSigningRejected = errors.New("signing request rejected")

// EventRecord is one decoded runtime event from the block the extrinsic was
// included in. Data holds the stringified event arguments in emission order.
// Dispatch is populated only on system.ExtrinsicFailed records.
type EventRecord struct {
	Section  string
	Method   string
	Data     []string
	Dispatch *DispatchError
}

// DispatchError is the raw failure reason attached to an ExtrinsicFailed
// event. Module errors carry a pallet and error index that a Registry can
// resolve to readable metadata; the rest (BadOrigin, CannotLookup, ...) only
// have a stringified form.
type DispatchError struct {
	IsModule   bool
	Pallet     uint8
	ErrorIndex uint8
	Other      string
}

// MetaError is the human-readable decoding of a module error.
type MetaError struct {
	Section string
	Method  string
	Docs    []string
}

// Registry resolves module error indices against chain runtime metadata.
type Registry interface {
	FindMetaError(pallet, errorIndex uint8) (*MetaError, bool)
}

// StatusEventKind mirrors the extrinsic lifecycle notifications a chain
// connection emits after broadcast.
type StatusEventKind string

const (
	EventBroadcast StatusEventKind = "broadcast"
	EventInBlock   StatusEventKind = "inBlock"
	EventFinalized StatusEventKind = "finalized"
	EventDropped   StatusEventKind = "dropped"
)

// StatusEvent is one lifecycle notification. Events is only populated on
// inBlock, when the containing block's event log becomes available.
type StatusEvent struct {
	Kind      StatusEventKind
	BlockHash string
	Events    []EventRecord
}

// Broadcaster submits a signed extrinsic and streams its lifecycle events.
// The returned channel is closed by the broadcaster once the extrinsic
// reaches finality or is dropped.
type Broadcaster interface {
	Submit(ctx context.Context, networkKey string, signed []byte) (<-chan StatusEvent, error)
	ExtrinsicHash(signed []byte) string
	Registry(networkKey string) Registry
}

// TokenInfo describes the token being transferred; the event scan needs it
// to label amounts on chains that emit token-pallet events.
type TokenInfo struct {
	Symbol      string
	IsMainToken bool
}

// TxResult is the transfer summary assembled from the block event log.
type TxResult struct {
	Change       string
	ChangeSymbol string
	Fee          string
	FeeSymbol    string
}

// Failure is the decoded reason an extrinsic failed.
type Failure struct {
	Section string
	Method  string
	Message string
}

// Response is the accumulated submission state delivered to the callback on
// every transition. It is exclusively owned by the send loop until a
// terminal status, after which ownership passes to the callback's consumer.
type Response struct {
	ID            string
	Status        Status
	ExtrinsicHash string
	BlockHash     string
	IsFinalized   bool
	TxResult      *TxResult
	Failure       *Failure
	Errors        []string
}

// SignRequest is handed to a signature provider. Payload is the encoded
// extrinsic to sign; for interactive providers it is what gets displayed or
// encoded into a QR frame.
type SignRequest struct {
	ID         string
	NetworkKey string
	Address    string
	Payload    []byte
}

// SignatureProvider obtains a signature for an extrinsic. Interactive
// implementations (hardware, air-gapped QR) block for an externally-paced
// wait with no internal timeout; the only bound is ctx.
type SignatureProvider interface {
	RequestSignature(ctx context.Context, req *SignRequest) ([]byte, error)
}

// Request is one extrinsic submission order.
type Request struct {
	NetworkKey string
	Address    string
	Payload    []byte
	TokenInfo  *TokenInfo
}

// Callback receives the response after every state transition.
type Callback func(*Response)

// Service runs extrinsic submissions to a terminal state.
type Service interface {
	// Submit acquires a signature, broadcasts the extrinsic and drives the
	// response through the status machine, invoking callback on every
	// transition. It returns after a terminal status is reached.
	Submit(ctx context.Context, req *Request, callback Callback) (*Response, error)
}
