package validation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway/gatewaytest"
	"github.com/hydrawallet/wallet-core/internal/wallet/validation"
	"github.com/hydrawallet/wallet-core/internal/wallet/walletconnect"
)

const testTopic = "b3c1d5a2f4e6"

func wcDeps(accounts ...string) *validation.Deps {
	deps := newDeps(&gatewaytest.Fake{})
	deps.WalletConnect = &fakeWCService{sessions: map[string]*walletconnect.Session{
		testTopic: {
			Topic: testTopic,
			Namespaces: map[string]walletconnect.Namespace{
				walletconnect.NamespaceEIP155: {
					Accounts: accounts,
					Chains:   []string{"eip155:1"},
					Methods:  []string{"eth_sendTransaction", "personal_sign"},
				},
			},
		},
	}}

	return deps
}

func runWCStep(t *testing.T, deps *validation.Deps, topic, address string) *validation.Payload {
	t.Helper()

	payload := &validation.Payload{Topic: topic, Address: address}

	result, err := validation.WalletConnectAuthStep(context.Background(), deps, testOrigin, payload)
	require.NoError(t, err)

	return result
}

func TestWalletConnectStepAuthorized(t *testing.T) {
	deps := wcDeps("eip155:1:" + testAddress)

	result := runWCStep(t, deps, testTopic, testAddress)

	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
	require.NotNil(t, result.Pair)
	assert.Equal(t, testAddress, result.Pair.Address)
}

func TestWalletConnectStepChecksumCaseInsensitive(t *testing.T) {
	// The session stores a differently-cased form of the same address
	deps := wcDeps("eip155:1:0x" + strings.ToUpper(testAddress[2:]))

	result := runWCStep(t, deps, testTopic, testAddress)

	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
}

func TestWalletConnectStepMissingTopic(t *testing.T) {
	deps := wcDeps("eip155:1:" + testAddress)

	result := runWCStep(t, deps, "", testAddress)

	assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
}

func TestWalletConnectStepUnknownSession(t *testing.T) {
	deps := wcDeps("eip155:1:" + testAddress)

	result := runWCStep(t, deps, "expired-topic", testAddress)

	require.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
	assert.Contains(t, result.FirstError().Error(), "session not found")
}

func TestWalletConnectStepAccountNotInSession(t *testing.T) {
	deps := wcDeps("eip155:1:" + testOther)

	result := runWCStep(t, deps, testTopic, testAddress)

	require.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
	assert.Contains(t, result.FirstError().Error(), "disconnected")
}

func TestWalletConnectStepMissingAddress(t *testing.T) {
	deps := wcDeps("eip155:1:" + testAddress)

	result := runWCStep(t, deps, testTopic, "")

	assert.Equal(t, validation.ErrorPositionDApp, result.ErrorPosition)
}

func TestWalletConnectStepMalformedAccountsIgnored(t *testing.T) {
	deps := wcDeps("garbage", "eip155:1", "eip155:1:", "eip155:1:"+testAddress)

	result := runWCStep(t, deps, testTopic, testAddress)

	assert.Equal(t, validation.ErrorPositionNone, result.ErrorPosition)
}
