// Package validation implements the request validation pipeline: a chain of
// middleware steps that take a raw dApp-originated signing request, validate
// and enrich it against live chain state, and produce either a signable
// payload or a structured, user-facing error.
package validation

import (
	"context"
	"time"

	"github.com/hydrawallet/wallet-core/internal/wallet/auth"
	"github.com/hydrawallet/wallet-core/internal/wallet/fees"
	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
	"github.com/hydrawallet/wallet-core/internal/wallet/walletconnect"
)

// ErrorPosition decides how the pipeline reacts to a failing step. DApp
// errors are opaque to the request origin (the runner raises them as plain
// errors and no confirmation UI is shown); UI errors halt the pipeline but
// surface a translated, displayable error to the user.
type ErrorPosition string

const (
	ErrorPositionNone ErrorPosition = ""
	ErrorPositionDApp ErrorPosition = "dApp"
	ErrorPositionUI   ErrorPosition = "ui"
)

// ConfirmationType selects the confirmation screen the UI renders for a
// UI-facing error or request.
type ConfirmationType string

const (
	ConfirmationErrorConnectNetwork ConfirmationType = "errorConnectNetwork"
	ConfirmationWatchTransaction    ConfirmationType = "evmWatchTransactionRequest"
	ConfirmationSignatureRequest    ConfirmationType = "evmSignatureRequest"
)

// Payload is the mutable accumulator threaded through the pipeline. It is
// exclusively owned by one in-flight run; steps mutate it and hand it on.
// Request starts as the raw dApp input and ends as a fully-populated,
// ready-to-sign transaction or message; each step documents its expected
// input and output shape.
type Payload struct {
	NetworkKey       string
	Address          string
	Topic            string
	Pair             *keyring.Pair
	AuthInfo         *auth.Record
	Method           string
	Request          any
	ErrorPosition    ErrorPosition
	ConfirmationType ConfirmationType
	Errors           []error
}

// FirstError returns the first accumulated error; only the first drives
// control flow, the rest are retained for reporting.
func (p *Payload) FirstError() error {
	if len(p.Errors) == 0 {
		return nil
	}

	return p.Errors[0]
}

// reject records a dApp-facing failure. The runner turns it into an opaque
// error raised to the calling code, never rendered to the user.
func (p *Payload) reject(kind translate.Kind, raw string) {
	p.ErrorPosition = ErrorPositionDApp
	p.Errors = append(p.Errors, translate.NewError(kind, raw))
}

// failUI records a UI-facing failure. The first failure fixes the error
// position and confirmation screen; later failures in the same step only
// accumulate so the user sees the fullest possible diagnostic.
func (p *Payload) failUI(confirmation ConfirmationType, kind translate.Kind, raw string) {
	if p.ErrorPosition == ErrorPositionNone {
		p.ErrorPosition = ErrorPositionUI
		p.ConfirmationType = confirmation
	}

	p.Errors = append(p.Errors, translate.NewError(kind, raw))
}

// note records a best-effort failure that degrades only cosmetic fields:
// accumulated for reporting, but the error position is left untouched.
func (p *Payload) note(kind translate.Kind, raw string) {
	p.Errors = append(p.Errors, translate.NewError(kind, raw))
}

// TransactionService produces the signable hash for an enriched transaction.
type TransactionService interface {
	GenerateHashPayload(networkKey string, tx *gateway.Transaction) (string, error)
}

// Deps bundles the external collaborators the pipeline steps consult.
type Deps struct {
	Keyring       keyring.Keyring
	AuthStore     auth.Store
	Gateway       gateway.Gateway
	FeeService    fees.Service
	WalletConnect walletconnect.Service
	TxService     TransactionService

	// ProbeTimeout bounds one connectivity or gas-estimation probe;
	// zero means DefaultProbeTimeout.
	ProbeTimeout time.Duration
}

func (d *Deps) probeTimeout() time.Duration {
	if d.ProbeTimeout > 0 {
		return d.ProbeTimeout
	}

	return DefaultProbeTimeout
}

// Step is one validation middleware. Steps record failures on the payload;
// a returned error is reserved for internal faults and is treated as a
// dApp-facing rejection by the runner.
type Step func(ctx context.Context, deps *Deps, origin string, payload *Payload) (*Payload, error)
