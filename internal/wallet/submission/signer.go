package submission

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SignFunc signs an encoded extrinsic with an in-process key.
type SignFunc func(address string, payload []byte) ([]byte, error)

// LocalSigner signs with keys held in the keyring. Non-interactive: the
// wait is only as long as the key derivation and signature itself.
type LocalSigner struct {
	sign SignFunc
}

func NewLocalSigner(sign SignFunc) *LocalSigner {
	return &LocalSigner{sign: sign}
}

func (s *LocalSigner) RequestSignature(_ context.Context, req *SignRequest) ([]byte, error) {
	signature, err := s.sign(req.Address, req.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign with local keyring")
	}

	return signature, nil
}

// PendingSignature is an interactive signing request awaiting an
// out-of-band resolution: a hardware device confirmation or a scanned QR
// response frame.
type PendingSignature struct {
	Request *SignRequest
	done    chan signOutcome
}

type signOutcome struct {
	signature []byte
	err       error
}

// InteractiveSigner is the side channel shared by the hardware-ledger and
// air-gapped QR flows: RequestSignature parks the request and blocks until
// a UI-driven collaborator resolves or rejects it by ID. There is no
// internal timeout; hardware and QR interactions are externally paced, and
// the only bound on the wait is the caller's ctx.
type InteractiveSigner struct {
	kind string

	mu      sync.Mutex
	pending map[string]*PendingSignature
}

// NewLedgerSigner returns the signer backend for hardware-ledger accounts.
func NewLedgerSigner() *InteractiveSigner {
	return &InteractiveSigner{kind: "ledger", pending: make(map[string]*PendingSignature)}
}

// NewQRSigner returns the signer backend for air-gapped QR accounts.
func NewQRSigner() *InteractiveSigner {
	return &InteractiveSigner{kind: "qr", pending: make(map[string]*PendingSignature)}
}

func (s *InteractiveSigner) RequestSignature(ctx context.Context, req *SignRequest) ([]byte, error) {
	pending := &PendingSignature{
		Request: req,
		done:    make(chan signOutcome, 1),
	}

	s.mu.Lock()
	s.pending[req.ID] = pending
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, req.ID)
		s.mu.Unlock()
	}()

	log.Info().
		Str("component", "submission").
		Str("signer", s.kind).
		Str("request_id", req.ID).
		Msg("Waiting for interactive signature")

	select {
	case outcome := <-pending.done:
		return outcome.signature, outcome.err
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "signing interrupted")
	}
}

// Pending returns the parked request for an ID, for display (ledger prompt,
// QR frame rendering) by the confirmation surface.
func (s *InteractiveSigner) Pending(id string) (*SignRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.pending[id]
	if !ok {
		return nil, false
	}

	return pending.Request, true
}

// PendingRequests lists all parked requests awaiting resolution.
func (s *InteractiveSigner) PendingRequests() []*SignRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]*SignRequest, 0, len(s.pending))
	for _, pending := range s.pending {
		requests = append(requests, pending.Request)
	}

	return requests
}

// Resolve completes a parked request with the externally-produced signature.
func (s *InteractiveSigner) Resolve(id string, signature []byte) error {
	return s.settle(id, signOutcome{signature: signature})
}

// Reject completes a parked request with a user or device refusal.
func (s *InteractiveSigner) Reject(id string) error {
	return s.settle(id, signOutcome{err: ErrSigningRejected})
}

func (s *InteractiveSigner) settle(id string, outcome signOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.pending[id]
	if !ok {
		return ErrRequestNotFound
	}

	delete(s.pending, id)
	pending.done <- outcome

	return nil
}
