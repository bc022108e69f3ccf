package submission

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hydrawallet/wallet-core/internal/wallet/metrics"
)

type service struct {
	broadcaster Broadcaster
	signer      SignatureProvider
	tracker     *Tracker
}

// NewService creates a submission service over one signer backend.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(broadcaster Broadcaster, signer SignatureProvider, tracker *Tracker) Service {
	return &service{
		broadcaster: broadcaster,
		signer:      signer,
		tracker:     tracker,
	}
}

// Submit drives one extrinsic to a terminal state. Every transition is
// reported through callback with the same accumulated Response; the
// terminal transition additionally settles the aggregate tracker entry.
func (s *service) Submit(ctx context.Context, req *Request, callback Callback) (*Response, error) {
	tracked := s.tracker.Create()

	resp := &Response{
		ID:     tracked.ID,
		Status: StatusReady,
	}
	callback(resp)

	logger := log.With().
		Str("component", "submission").
		Str("network_key", req.NetworkKey).
		Str("request_id", tracked.ID).
		Logger()

	resp.Status = StatusSigning
	callback(resp)

	signed, err := s.signer.RequestSignature(ctx, &SignRequest{
		ID:         tracked.ID,
		NetworkKey: req.NetworkKey,
		Address:    req.Address,
		Payload:    req.Payload,
	})
	if err != nil {
		state := RequestFailed
		if errors.Is(err, ErrSigningRejected) {
			state = RequestRejected
		}

		return s.fail(resp, callback, state, errors.Wrap(err, "failed to acquire signature"))
	}

	resp.Status = StatusBroadcasting
	callback(resp)

	events, err := s.broadcaster.Submit(ctx, req.NetworkKey, signed)
	if err != nil {
		return s.fail(resp, callback, RequestFailed, errors.Wrap(err, "failed to broadcast extrinsic"))
	}

	resp.ExtrinsicHash = s.broadcaster.ExtrinsicHash(signed)
	registry := s.broadcaster.Registry(req.NetworkKey)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				// Stream ended without an inBlock observation
				if !resp.Status.Terminal() {
					return s.fail(resp, callback, RequestFailed, errors.New("extrinsic status stream closed before inclusion"))
				}

				return resp, nil
			}

			logger.Debug().
				Str("kind", string(event.Kind)).
				Str("block_hash", event.BlockHash).
				Msg("Extrinsic status event")

			if done := s.handleEvent(resp, req, registry, event, callback); done && resp.IsFinalized {
				return resp, nil
			}

		case <-ctx.Done():
			return s.fail(resp, callback, RequestFailed, errors.Wrap(ctx.Err(), "submission interrupted"))
		}
	}
}

// handleEvent applies one lifecycle notification; returns true once the
// response has reached a terminal status. The loop still drains the stream
// afterwards to observe finality.
func (s *service) handleEvent(resp *Response, req *Request, registry Registry, event StatusEvent, callback Callback) bool {
	switch event.Kind {
	case EventBroadcast:
		resp.Status = StatusBroadcasting
		callback(resp)

	case EventInBlock:
		resp.Status = StatusInBlock
		resp.BlockHash = event.BlockHash
		callback(resp)

		scanEvents(resp, registry, req.NetworkKey, req.TokenInfo, event.Events)
		callback(resp)

		switch resp.Status {
		case StatusCompleted:
			s.settle(resp, RequestCompleted, "")
		case StatusFailed:
			s.settle(resp, RequestFailed, firstError(resp))
		}

	case EventFinalized:
		// Finality is a side observation and never gates the outcome
		resp.IsFinalized = true
		resp.BlockHash = event.BlockHash
		callback(resp)

	case EventDropped:
		resp.Status = StatusFailed
		resp.Errors = append(resp.Errors, "extrinsic dropped from the transaction pool")
		callback(resp)
		s.settle(resp, RequestFailed, firstError(resp))
	}

	return resp.Status.Terminal()
}

func (s *service) settle(resp *Response, state RequestState, message string) {
	if err := s.tracker.Update(resp.ID, state, message); err != nil {
		log.Warn().
			Str("component", "submission").
			Str("request_id", resp.ID).
			Err(err).
			Msg("Failed to settle tracked request")
	}

	outcome := "completed"
	if state != RequestCompleted {
		outcome = "failed"
	}

	metrics.Submissions.WithLabelValues(outcome).Inc()
}

func (s *service) fail(resp *Response, callback Callback, state RequestState, err error) (*Response, error) {
	resp.Status = StatusFailed
	resp.Errors = append(resp.Errors, err.Error())
	callback(resp)
	s.settle(resp, state, err.Error())

	return resp, err
}

func firstError(resp *Response) string {
	if len(resp.Errors) == 0 {
		return ""
	}

	return resp.Errors[0]
}
