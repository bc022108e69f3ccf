package keyring_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
)

// testParams keeps scrypt cheap enough for the test suite.
func testParams() keyring.ScryptParams {
	return keyring.ScryptParams{DKLen: 32, N: 4096, R: 8, P: 1}
}

func newUnlockedStore(t *testing.T) (*keyring.Store, *keyring.Pair) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	store := keyring.NewStoreWithParams(testParams())

	pair, err := store.AddLocalPair("main", crypto.FromECDSA(key), "hunter2")
	require.NoError(t, err)

	return store, pair
}

func TestStoreGetPairCaseInsensitive(t *testing.T) {
	store, pair := newUnlockedStore(t)

	for _, lookup := range []string{pair.Address, strings.ToLower(pair.Address), strings.ToUpper(pair.Address)} {
		found, err := store.GetPair(lookup)
		require.NoError(t, err)
		assert.Equal(t, pair.Address, found.Address)
	}
}

func TestStoreUnknownPair(t *testing.T) {
	store := keyring.NewStoreWithParams(testParams())

	_, err := store.GetPair("0x0000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, keyring.ErrPairNotFound)
}

func TestStoreSignRequiresUnlock(t *testing.T) {
	store, pair := newUnlockedStore(t)

	_, err := store.Sign(pair.Address, []byte("payload"))
	require.ErrorIs(t, err, keyring.ErrLocked)

	require.NoError(t, store.Unlock(pair.Address, "hunter2"))

	signature, err := store.Sign(pair.Address, []byte("payload"))
	require.NoError(t, err)
	assert.Len(t, signature, 65)

	// The signature must recover to the pair's address
	recovered, err := crypto.SigToPub(crypto.Keccak256([]byte("payload")), signature)
	require.NoError(t, err)
	assert.Equal(t, pair.Address, crypto.PubkeyToAddress(*recovered).Hex())

	store.Lock(pair.Address)

	_, err = store.Sign(pair.Address, []byte("payload"))
	assert.ErrorIs(t, err, keyring.ErrLocked)
}

func TestStoreUnlockWrongPassword(t *testing.T) {
	store, pair := newUnlockedStore(t)

	err := store.Unlock(pair.Address, "wrong")
	assert.ErrorIs(t, err, keyring.ErrInvalidPassword)
}

func TestStoreExternalPair(t *testing.T) {
	store := keyring.NewStoreWithParams(testParams())
	pair := store.AddExternalPair("0x1111111111111111111111111111111111111111", "cold", keyring.ExternalLedger)

	assert.True(t, pair.IsExternal())

	found, err := store.GetPair(pair.Address)
	require.NoError(t, err)
	assert.Equal(t, keyring.ExternalLedger, found.External)

	// No key material is held for external pairs
	_, err = store.Sign(pair.Address, []byte("payload"))
	assert.ErrorIs(t, err, keyring.ErrLocked)
}
