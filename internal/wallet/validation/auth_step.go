package validation

import (
	"context"

	"github.com/hydrawallet/wallet-core/internal/wallet/auth"
	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
)

// AuthStep validates the requesting address against the keyring and the
// origin's authorization record. All failures are dApp-facing rejections,
// never UI prompts. No network I/O happens here.
func AuthStep(ctx context.Context, deps *Deps, origin string, payload *Payload) (*Payload, error) {
	if payload.Address == "" {
		payload.reject(translate.KindAccountNotFound, "Not found address to sign")

		return payload, nil
	}

	pair, err := deps.Keyring.GetPair(payload.Address)
	if err != nil {
		payload.reject(translate.KindAccountNotFound, err.Error())

		return payload, nil
	}

	payload.Pair = pair

	authList, err := deps.AuthStore.GetAuthList(ctx)
	if err != nil {
		payload.reject(translate.KindAccountNotFound, err.Error())

		return payload, nil
	}

	originKey, err := auth.StripURL(origin)
	if err != nil {
		payload.reject(translate.KindAccountNotAllowed, "Account not in allowed list")

		return payload, nil
	}

	authInfo := authList[originKey]
	if authInfo == nil || !authInfo.IsAllowed || !authInfo.IsAllowedMap[pair.Address] {
		payload.reject(translate.KindAccountNotAllowed, "Account not in allowed list")
	}

	payload.AuthInfo = authInfo

	return payload, nil
}
