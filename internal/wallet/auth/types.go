package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Record is the per-origin authorization record. It is created and updated
// by the authorization-completion flow; the validation pipeline only reads it.
type Record struct {
	IsAllowed            bool
	IsAllowedMap         map[string]bool
	CurrentEVMNetworkKey string
	Origin               string
	URL                  string
}

// Store exposes the persisted per-origin authorization list.
type Store interface {
	// GetAuthList returns all authorization records keyed by stripped origin.
	GetAuthList(ctx context.Context) (map[string]*Record, error)
}

// StripURL reduces a dApp URL to its origin key: scheme and path are
// dropped, the host (with port) is kept.
func StripURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("empty url")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse url")
	}

	if parsed.Host != "" {
		return parsed.Host, nil
	}

	// Bare host without scheme
	return strings.SplitN(rawURL, "/", 2)[0], nil
}
