package validation

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/hydrawallet/wallet-core/internal/wallet/metrics"
)

// DefaultProbeTimeout bounds one network probe before the one-shot
// re-init-and-retry path kicks in.
const DefaultProbeTimeout = 3 * time.Second

// probeWithRetry races probe against a wall-clock timeout. If the timeout
// fires first, the gateway is re-initialized and the probe retried exactly
// once, bounding worst-case latency to roughly twice the timeout.
//
// The losing probe is not cancelled: if the first attempt resolves after the
// timeout already fired, its result is discarded and the goroutine drains
// into the buffered channel.
func probeWithRetry(ctx context.Context, timeout time.Duration, probe, reinit func(context.Context) error) error {
	first := make(chan error, 1)

	go func() { first <- probe(ctx) }()

	select {
	case err := <-first:
		return err
	case <-time.After(timeout):
	}

	metrics.ProbeRetries.Inc()

	if err := reinit(ctx); err != nil {
		return err
	}

	retry := make(chan error, 1)

	go func() { retry <- probe(ctx) }()

	select {
	case err := <-retry:
		return err
	case <-time.After(timeout):
		return errors.New("connection timeout")
	}
}
