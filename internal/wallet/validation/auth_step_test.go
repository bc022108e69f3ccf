package validation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/auth"
	"github.com/hydrawallet/wallet-core/internal/wallet/gateway/gatewaytest"
	"github.com/hydrawallet/wallet-core/internal/wallet/validation"
)

func TestAuthStepSuccess(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})
	payload := &validation.Payload{Address: testAddress}

	result, err := validation.AuthStep(context.Background(), deps, testOrigin, payload)
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
	require.NotNil(t, result.Pair)
	assert.Equal(t, testAddress, result.Pair.Address)
	require.NotNil(t, result.AuthInfo)
	assert.True(t, result.AuthInfo.IsAllowed)
}

func TestAuthStepMissingAddress(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, err := validation.AuthStep(context.Background(), deps, testOrigin, &validation.Payload{})
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
	require.Error(t, result.FirstError())
}

func TestAuthStepUnknownPair(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, err := validation.AuthStep(context.Background(), deps, testOrigin, &validation.Payload{Address: testOther})
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
}

func TestAuthStepOriginNotAllowed(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, err := validation.AuthStep(context.Background(), deps, "https://evil.example.com", &validation.Payload{Address: testAddress})
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
}

func TestAuthStepAddressNotInAllowedMap(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})
	deps.AuthStore = &fakeAuthStore{list: map[string]*auth.Record{
		"app.example-dapp.io": {
			IsAllowed:    true,
			IsAllowedMap: map[string]bool{testOther: true},
		},
	}}

	result, err := validation.AuthStep(context.Background(), deps, testOrigin, &validation.Payload{Address: testAddress})
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
}
