package walletconnect

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Namespace keys for the chain families a session can authorize.
const (
	NamespaceEIP155   = "eip155"
	NamespacePolkadot = "polkadot"
)

// ErrSessionNotFound is returned for unknown or expired session topics.
var ErrSessionNotFound = errors.New("walletconnect session not found")

// Namespace is one authorized chain namespace of a session. Accounts use
// the CAIP-10 form "namespace:chainId:address".
type Namespace struct {
	Accounts []string
	Chains   []string
	Methods  []string
	Events   []string
}

// Session is a live WalletConnect session.
type Session struct {
	Topic      string
	Namespaces map[string]Namespace
}

// Service resolves live sessions by topic.
type Service interface {
	// GetSession returns the session for a topic or ErrSessionNotFound.
	GetSession(topic string) (*Session, error)
}

// AccountAddresses extracts the bare addresses authorized under one
// namespace, dropping entries that do not parse as CAIP-10.
func (s *Session) AccountAddresses(namespace string) []string {
	ns, ok := s.Namespaces[namespace]
	if !ok {
		return nil
	}

	return lo.FilterMap(ns.Accounts, func(account string, _ int) (string, bool) {
		parts := strings.Split(account, ":")
		if len(parts) != 3 || parts[2] == "" {
			return "", false
		}

		return parts[2], true
	})
}
