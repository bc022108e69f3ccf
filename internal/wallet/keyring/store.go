package keyring

import (
	"crypto/ecdsa"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ErrInvalidPassword is returned when a keystore MAC check fails.
var ErrInvalidPassword = errors.New("invalid password: MAC mismatch")

// ErrLocked is returned when signing is requested for a pair whose private
// key has not been unlocked.
var ErrLocked = errors.New("keypair is locked")

// Store is an in-memory keyring. Local pairs keep their private key
// encrypted at rest (keystore v3) and must be unlocked before signing;
// external pairs carry no key material at all.
type Store struct {
	params ScryptParams

	mu        sync.RWMutex
	pairs     map[string]*Pair
	encrypted map[string]*EncryptedKey
	unlocked  map[string]*ecdsa.PrivateKey
}

func NewStore() *Store {
	return NewStoreWithParams(DefaultScryptParams())
}

// NewStoreWithParams creates a store with custom key-derivation cost
// parameters. Lighter parameters are only appropriate for tests.
func NewStoreWithParams(params ScryptParams) *Store {
	return &Store{
		params:    params,
		pairs:     make(map[string]*Pair),
		encrypted: make(map[string]*EncryptedKey),
		unlocked:  make(map[string]*ecdsa.PrivateKey),
	}
}

// AddLocalPair registers an in-process signing key, sealed under password.
// The address is derived from the key itself.
func (s *Store) AddLocalPair(name string, privateKey []byte, password string) (*Pair, error) {
	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	encrypted, err := encryptPrivateKey(privateKey, password, s.params)
	if err != nil {
		return nil, err
	}

	pair := &Pair{Address: address, Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[strings.ToLower(address)] = pair
	s.encrypted[strings.ToLower(address)] = encrypted

	return pair, nil
}

// AddExternalPair registers an externally-custodied account. No key
// material is stored; signatures come from the matching signer backend.
func (s *Store) AddExternalPair(address, name string, kind ExternalKind) *Pair {
	pair := &Pair{Address: address, Name: name, External: kind}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[strings.ToLower(address)] = pair

	return pair
}

// GetPair implements Keyring. Address lookup is case-insensitive.
func (s *Store) GetPair(address string) (*Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pair, ok := s.pairs[strings.ToLower(address)]
	if !ok {
		return nil, ErrPairNotFound
	}

	return pair, nil
}

// Unlock decrypts a local pair's private key and caches it for signing.
func (s *Store) Unlock(address, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(address)

	encrypted, ok := s.encrypted[key]
	if !ok {
		return ErrPairNotFound
	}

	raw, err := decryptPrivateKey(encrypted, password)
	if err != nil {
		return err
	}

	defer zero(raw)

	privateKey, err := crypto.ToECDSA(raw)
	if err != nil {
		return errors.Wrap(err, "failed to parse decrypted key")
	}

	s.unlocked[key] = privateKey

	return nil
}

// Lock drops the cached private key for an address.
func (s *Store) Lock(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unlocked, strings.ToLower(address))
}

// Sign produces a recoverable secp256k1 signature over the Keccak-256 hash
// of payload with an unlocked local key. This is the SignFunc handed to the
// local signer backend.
func (s *Store) Sign(address string, payload []byte) ([]byte, error) {
	s.mu.RLock()
	privateKey, ok := s.unlocked[strings.ToLower(address)]
	s.mu.RUnlock()

	if !ok {
		if _, err := s.GetPair(address); err != nil {
			return nil, err
		}

		return nil, ErrLocked
	}

	signature, err := crypto.Sign(crypto.Keccak256(payload), privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign payload")
	}

	return signature, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
