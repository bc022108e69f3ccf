package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// EncryptedKey is a private key at rest in Ethereum keystore v3 format.
type EncryptedKey struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines the key-derivation cost parameters.
type ScryptParams struct {
	DKLen int
	N     int
	R     int
	P     int
}

// DefaultScryptParams returns the standard Ethereum keystore v3 parameters.
func DefaultScryptParams() ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 262144 // 2^18
		scryptR     = 8
		scryptP     = 1
	)

	return ScryptParams{DKLen: scryptDKLen, N: scryptN, R: scryptR, P: scryptP}
}

// encryptPrivateKey seals a raw private key under a password using
// scrypt + AES-128-CTR with a Keccak-256 MAC, keystore v3 layout.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func encryptPrivateKey(privateKey []byte, password string, params ScryptParams) (*EncryptedKey, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, 16) // AES-128-CTR requires 16-byte IV
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	ciphertext, err := applyAES128CTR(derivedKey[:16], iv, privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt private key")
	}

	mac := crypto.Keccak256(derivedKey[16:32], ciphertext)

	encrypted := &EncryptedKey{
		Version: 3,
		ID:      uuid.New().String(),
	}
	encrypted.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	encrypted.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	encrypted.Crypto.Cipher = "aes-128-ctr"
	encrypted.Crypto.KDF = "scrypt"
	encrypted.Crypto.KDFParams.DKLen = params.DKLen
	encrypted.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	encrypted.Crypto.KDFParams.N = params.N
	encrypted.Crypto.KDFParams.R = params.R
	encrypted.Crypto.KDFParams.P = params.P
	encrypted.Crypto.MAC = hex.EncodeToString(mac)

	return encrypted, nil
}

// decryptPrivateKey opens a keystore v3 entry, verifying the MAC before
// decrypting. A MAC mismatch means a wrong password.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func decryptPrivateKey(encrypted *EncryptedKey, password string) ([]byte, error) {
	salt, err := hex.DecodeString(encrypted.Crypto.KDFParams.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode salt")
	}

	iv, err := hex.DecodeString(encrypted.Crypto.CipherParams.IV)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(encrypted.Crypto.Ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(encrypted.Crypto.MAC)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode MAC")
	}

	derivedKey, err := scrypt.Key(
		[]byte(password),
		salt,
		encrypted.Crypto.KDFParams.N,
		encrypted.Crypto.KDFParams.R,
		encrypted.Crypto.KDFParams.P,
		encrypted.Crypto.KDFParams.DKLen,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	mac := crypto.Keccak256(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return nil, ErrInvalidPassword
	}

	return applyAES128CTR(derivedKey[:16], iv, ciphertext)
}

// applyAES128CTR runs the CTR keystream over data; CTR encryption and
// decryption are the same operation.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func applyAES128CTR(key, iv, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)

	return out, nil
}
