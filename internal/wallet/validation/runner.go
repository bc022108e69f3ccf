package validation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hydrawallet/wallet-core/internal/wallet/metrics"
)

// Run executes the middleware steps in order against one payload.
//
// A step that sets the dApp error position short-circuits the run: the first
// accumulated error is returned as a hard rejection and no later step
// executes. A step that sets the UI error position halts the run but returns
// the payload as-is, so the caller can render the confirmation screen named
// by ConfirmationType with the accumulated errors. Otherwise the final
// payload is the validated, ready-to-sign result.
func Run(ctx context.Context, deps *Deps, origin string, payload *Payload, steps ...Step) (*Payload, error) {
	current := payload

	for _, step := range steps {
		next, err := step(ctx, deps, origin, current)
		if err != nil {
			metrics.PipelineRuns.WithLabelValues("dapp_rejected").Inc()

			return nil, err
		}

		current = next

		switch current.ErrorPosition {
		case ErrorPositionDApp:
			metrics.PipelineRuns.WithLabelValues("dapp_rejected").Inc()

			firstErr := current.FirstError()
			if firstErr == nil {
				firstErr = errors.New("request rejected")
			}

			log.Debug().
				Str("component", "validation").
				Str("origin", origin).
				Err(firstErr).
				Msg("Request rejected before reaching UI")

			return nil, firstErr

		case ErrorPositionUI:
			metrics.PipelineRuns.WithLabelValues("ui_error").Inc()

			return current, nil

		case ErrorPositionNone:
		}
	}

	metrics.PipelineRuns.WithLabelValues("validated").Inc()

	return current, nil
}
