package validation

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
	"github.com/hydrawallet/wallet-core/internal/wallet/walletconnect"
)

// WalletConnectAuthStep authorizes a request against a live WalletConnect
// session instead of a persisted per-origin record. The session's account
// list for the namespace matching the address family is the allow-list.
// Like AuthStep, every failure is dApp-facing.
func WalletConnectAuthStep(_ context.Context, deps *Deps, _ string, payload *Payload) (*Payload, error) {
	if payload.Topic == "" {
		payload.reject(translate.KindAccountNotAllowed, "Unauthorized: missing session topic")

		return payload, nil
	}

	session, err := deps.WalletConnect.GetSession(payload.Topic)
	if err != nil {
		payload.reject(translate.KindAccountNotAllowed, err.Error())

		return payload, nil
	}

	if payload.Address == "" {
		payload.reject(translate.KindAccountNotFound, "Unable to find account")

		return payload, nil
	}

	namespace := walletconnect.NamespacePolkadot
	if common.IsHexAddress(payload.Address) {
		namespace = walletconnect.NamespaceEIP155
	}

	sessionAccounts := session.AccountAddresses(namespace)

	pair, err := deps.Keyring.GetPair(payload.Address)
	if err != nil {
		payload.reject(translate.KindAccountNotFound, "Unable to find account")

		return payload, nil
	}

	payload.Pair = pair

	// EVM addresses compare case-insensitively (mixed-case checksums)
	authorized := lo.ContainsBy(sessionAccounts, func(account string) bool {
		return strings.EqualFold(account, payload.Address)
	})

	if !authorized {
		payload.reject(translate.KindAccountNotAllowed, "Account not in allowed list")
	}

	return payload, nil
}
