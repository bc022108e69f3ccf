package validation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway/gatewaytest"
	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
	"github.com/hydrawallet/wallet-core/internal/wallet/validation"
)

func recordingStep(called *bool, mutate func(p *validation.Payload)) validation.Step {
	return func(_ context.Context, _ *validation.Deps, _ string, p *validation.Payload) (*validation.Payload, error) {
		*called = true

		if mutate != nil {
			mutate(p)
		}

		return p, nil
	}
}

func TestRunAllStepsComplete(t *testing.T) {
	var first, second bool

	deps := newDeps(&gatewaytest.Fake{})
	payload := &validation.Payload{Address: testAddress}

	result, err := validation.Run(context.Background(), deps, testOrigin, payload,
		recordingStep(&first, nil),
		recordingStep(&second, nil),
	)
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
	assert.Same(t, payload, result)
	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
}

func TestRunDAppShortCircuitThrows(t *testing.T) {
	var first, second, third bool

	deps := newDeps(&gatewaytest.Fake{})
	rejection := translate.NewError(translate.KindAccountNotAllowed, "Account not in allowed list")

	_, err := validation.Run(context.Background(), deps, testOrigin, &validation.Payload{},
		recordingStep(&first, nil),
		recordingStep(&second, func(p *validation.Payload) {
			p.ErrorPosition = validation.ErrorPositionDApp
			p.Errors = append(p.Errors, rejection)
		}),
		recordingStep(&third, nil),
	)

	require.Error(t, err)
	assert.Equal(t, rejection, err)
	assert.True(t, first)
	assert.True(t, second)
	assert.False(t, third, "steps after a dApp rejection must not run")
}

func TestRunUIHaltReturnsPayload(t *testing.T) {
	var first, second, third bool

	deps := newDeps(&gatewaytest.Fake{})
	uiErr := translate.NewError(translate.KindInsufficientBalance, "Insufficient balance")

	result, err := validation.Run(context.Background(), deps, testOrigin, &validation.Payload{},
		recordingStep(&first, nil),
		recordingStep(&second, func(p *validation.Payload) {
			p.ErrorPosition = validation.ErrorPositionUI
			p.ConfirmationType = validation.ConfirmationWatchTransaction
			p.Errors = append(p.Errors, uiErr)
		}),
		recordingStep(&third, nil),
	)

	require.NoError(t, err, "UI-facing errors return, they do not throw")
	assert.True(t, first)
	assert.True(t, second)
	assert.False(t, third, "steps after a UI halt must not run")
	assert.Equal(t, validation.ErrorPositionUI, result.ErrorPosition)
	assert.Equal(t, validation.ConfirmationWatchTransaction, result.ConfirmationType)
	assert.Equal(t, uiErr, result.FirstError())
}

func TestRunStepErrorIsRejection(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	failing := func(_ context.Context, _ *validation.Deps, _ string, _ *validation.Payload) (*validation.Payload, error) {
		return nil, errBoom
	}

	var after bool

	_, err := validation.Run(context.Background(), deps, testOrigin, &validation.Payload{},
		failing,
		recordingStep(&after, nil),
	)

	require.Error(t, err)
	assert.False(t, after)
}
