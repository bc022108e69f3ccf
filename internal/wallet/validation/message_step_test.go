package validation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway/gatewaytest"
	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
	"github.com/hydrawallet/wallet-core/internal/wallet/typeddata"
	"github.com/hydrawallet/wallet-core/internal/wallet/validation"
)

func runMessageStep(t *testing.T, deps *validation.Deps, method string, request any) (*validation.Payload, *validation.SignaturePayload) {
	t.Helper()

	payload := &validation.Payload{
		NetworkKey: "ethereum",
		Address:    testAddress,
		Method:     method,
		Request:    request,
	}

	result, err := validation.MessageSignStep(context.Background(), deps, testOrigin, payload)
	require.NoError(t, err)

	signature, ok := result.Request.(*validation.SignaturePayload)
	require.True(t, ok, "step must replace the request with the signature payload")

	return result, signature
}

func v1Fields() []typeddata.Field {
	return []typeddata.Field{
		{Name: "message", Type: "string", Value: "hello"},
		{Name: "amount", Type: "uint256", Value: "1000"},
	}
}

func v4TypedData() map[string]any {
	return map[string]any{
		"types": map[string]any{
			"EIP712Domain": []map[string]any{
				{"name": "name", "type": "string"},
				{"name": "chainId", "type": "uint256"},
			},
			"Mail": []map[string]any{
				{"name": "contents", "type": "string"},
			},
		},
		"primaryType": "Mail",
		"domain":      map[string]any{"name": "Mailer", "chainId": "1"},
		"message":     map[string]any{"contents": "hello"},
	}
}

func TestMessageStepUnknownMethodRejected(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	for _, method := range []string{"", "eth_signTypedData_v5", "wallet_addEthereumChain"} {
		payload := &validation.Payload{Address: testAddress, Method: method, Request: "0x00"}

		result, err := validation.MessageSignStep(context.Background(), deps, testOrigin, payload)
		require.NoError(t, err)
		assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition, "method %q", method)
	}
}

func TestMessageStepPersonalSign(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, signature := runMessageStep(t, deps, "personal_sign", "0x48656c6c6f")

	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
	assert.Equal(t, "0x48656c6c6f", signature.HashPayload)
	assert.True(t, signature.CanSign)
}

func TestMessageStepPersonalSignNonString(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, signature := runMessageStep(t, deps, "personal_sign", 42)

	assert.Equal(t, validation.ErrorPositionUI, result.ErrorPosition)
	assert.Equal(t, validation.ConfirmationSignatureRequest, result.ConfirmationType)
	assert.False(t, signature.CanSign)
}

func TestMessageStepTypedDataV1Shape(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	t.Run("v1 accepts the field array", func(t *testing.T) {
		result, signature := runMessageStep(t, deps, "eth_signTypedData_v1", v1Fields())

		assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
		assert.NotEmpty(t, signature.HashPayload)
		assert.True(t, signature.CanSign)
	})

	t.Run("legacy eth_signTypedData routes to v1", func(t *testing.T) {
		result, signature := runMessageStep(t, deps, "eth_signTypedData", v1Fields())

		assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
		assert.NotEmpty(t, signature.HashPayload)
	})

	t.Run("v4 rejects the v1 field array", func(t *testing.T) {
		result, signature := runMessageStep(t, deps, "eth_signTypedData_v4", v1Fields())

		assert.Equal(t, validation.ErrorPositionUI, result.ErrorPosition)
		assert.False(t, signature.CanSign)
	})
}

func TestMessageStepTypedDataV4(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, signature := runMessageStep(t, deps, "eth_signTypedData_v4", v4TypedData())

	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
	assert.True(t, signature.CanSign)
}

func TestMessageStepTypedDataV3MissingPrimaryType(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	data := v4TypedData()
	data["primaryType"] = "Unknown"

	result, signature := runMessageStep(t, deps, "eth_signTypedData_v3", data)

	assert.Equal(t, validation.ErrorPositionUI, result.ErrorPosition)
	assert.False(t, signature.CanSign)
}

func TestMessageStepMissingPayload(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})

	result, signature := runMessageStep(t, deps, "eth_sign", nil)

	assert.Equal(t, validation.ErrorPositionUI, result.ErrorPosition)
	assert.Contains(t, result.FirstError().Error(), "signing this request")
	assert.False(t, signature.CanSign)
}

func TestMessageStepExternalAccountGating(t *testing.T) {
	external := func(kind keyring.ExternalKind) *validation.Deps {
		deps := newDeps(&gatewaytest.Fake{})
		deps.Keyring = &fakeKeyring{pairs: map[string]*keyring.Pair{
			testAddress: {Address: testAddress, Name: "cold", External: kind},
		}}

		return deps
	}

	for _, kind := range []keyring.ExternalKind{keyring.ExternalLedger, keyring.ExternalQR} {
		t.Run(string(kind), func(t *testing.T) {
			// personal_sign stays available for external accounts
			result, signature := runMessageStep(t, external(kind), "personal_sign", "0x48656c6c6f")
			assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
			assert.True(t, signature.CanSign)

			// everything else is display-only
			_, signature = runMessageStep(t, external(kind), "eth_sign", "0x00")
			assert.False(t, signature.CanSign)

			_, signature = runMessageStep(t, external(kind), "eth_signTypedData_v1", v1Fields())
			assert.False(t, signature.CanSign)
			assert.NotEmpty(t, signature.HashPayload, "hash is still computed for display")

			_, signature = runMessageStep(t, external(kind), "eth_signTypedData_v4", v4TypedData())
			assert.False(t, signature.CanSign)
		})
	}
}

func TestMessageStepUnknownAccount(t *testing.T) {
	deps := newDeps(&gatewaytest.Fake{})
	deps.Keyring = &fakeKeyring{pairs: map[string]*keyring.Pair{}}

	result, signature := runMessageStep(t, deps, "personal_sign", "0x48656c6c6f")

	assert.Equal(t, validation.ErrorPositionUI, result.ErrorPosition)
	assert.Contains(t, result.FirstError().Error(), "Address not found")
	assert.False(t, signature.CanSign)
}
