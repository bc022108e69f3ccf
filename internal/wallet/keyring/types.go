package keyring

import "github.com/pkg/errors"

// ErrPairNotFound is returned when no keypair exists for an address.
var ErrPairNotFound = errors.New("unable to retrieve keypair")

// ExternalKind identifies how an externally-custodied account signs.
type ExternalKind string

const (
	ExternalNone     ExternalKind = ""
	ExternalLedger   ExternalKind = "ledger"
	ExternalQR       ExternalKind = "qr"
	ExternalReadOnly ExternalKind = "readonly"
)

// Pair is a reference to a signing key held by the keyring. For
// externally-custodied accounts the private key is not in-process and
// External reports how the signature must be obtained instead.
type Pair struct {
	Address  string
	Name     string
	External ExternalKind
}

// IsExternal reports whether the account cannot sign in-process.
func (p *Pair) IsExternal() bool {
	return p.External != ExternalNone
}

// Keyring resolves addresses to signing key references.
type Keyring interface {
	// GetPair returns the keypair for an address or ErrPairNotFound.
	GetPair(address string) (*Pair, error)
}
