// Package wallet is the service facade: it owns the validation pipeline
// composition for each request family and routes approved transfers to the
// signer backend matching the account's custody.
package wallet

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
	"github.com/hydrawallet/wallet-core/internal/wallet/submission"
	"github.com/hydrawallet/wallet-core/internal/wallet/validation"
)

// Service is the request entry point for the background core.
type Service interface {
	// ValidateTransaction runs the EVM transaction pipeline: authorization,
	// connectivity, then normalization and enrichment.
	ValidateTransaction(ctx context.Context, origin string, req *TransactionRequest) (*validation.Payload, error)

	// ValidateSignMessage runs the message-signing pipeline: authorization,
	// then per-method payload validation.
	ValidateSignMessage(ctx context.Context, origin string, req *SignMessageRequest) (*validation.Payload, error)

	// ValidateWalletConnect authorizes a request against a live session and
	// dispatches it to the transaction or message pipeline by method.
	ValidateWalletConnect(ctx context.Context, origin string, req *WalletConnectRequest) (*validation.Payload, error)

	// SubmitTransfer drives a chain-transfer extrinsic to a terminal state
	// using the signer backend matching the account's custody.
	SubmitTransfer(ctx context.Context, req *submission.Request, callback submission.Callback) (*submission.Response, error)
}

type service struct {
	deps       *validation.Deps
	submitters map[keyring.ExternalKind]submission.Service
}

// Backends bundles one submission service per custody kind.
type Backends struct {
	Local  submission.Service
	Ledger submission.Service
	QR     submission.Service
}

// NewService creates the facade.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(deps *validation.Deps, backends Backends) Service {
	return &service{
		deps: deps,
		submitters: map[keyring.ExternalKind]submission.Service{
			keyring.ExternalNone:   backends.Local,
			keyring.ExternalLedger: backends.Ledger,
			keyring.ExternalQR:     backends.QR,
		},
	}
}

func (s *service) ValidateTransaction(ctx context.Context, origin string, req *TransactionRequest) (*validation.Payload, error) {
	payload := &validation.Payload{
		NetworkKey: req.NetworkKey,
		Address:    req.Address,
		Request:    req.Params,
	}

	return validation.Run(ctx, s.deps, origin, payload,
		validation.AuthStep,
		validation.ConnectStep,
		validation.EvmTransactionStep,
	)
}

func (s *service) ValidateSignMessage(ctx context.Context, origin string, req *SignMessageRequest) (*validation.Payload, error) {
	payload := &validation.Payload{
		Address: req.Address,
		Method:  req.Method,
		Request: req.Payload,
	}

	return validation.Run(ctx, s.deps, origin, payload,
		validation.AuthStep,
		validation.MessageSignStep,
	)
}

func (s *service) ValidateWalletConnect(ctx context.Context, origin string, req *WalletConnectRequest) (*validation.Payload, error) {
	payload := &validation.Payload{
		Topic:      req.Topic,
		NetworkKey: req.NetworkKey,
		Address:    req.Address,
		Method:     req.Method,
		Request:    req.Payload,
	}

	steps := []validation.Step{validation.WalletConnectAuthStep}

	if req.Method == "eth_sendTransaction" {
		steps = append(steps, validation.ConnectStep, validation.EvmTransactionStep)
	} else {
		steps = append(steps, validation.MessageSignStep)
	}

	return validation.Run(ctx, s.deps, origin, payload, steps...)
}

func (s *service) SubmitTransfer(ctx context.Context, req *submission.Request, callback submission.Callback) (*submission.Response, error) {
	pair, err := s.deps.Keyring.GetPair(req.Address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve signing account")
	}

	submitter, ok := s.submitters[pair.External]
	if !ok {
		return nil, errors.Errorf("no signer backend for %q accounts", pair.External)
	}

	return submitter.Submit(ctx, req, callback)
}
