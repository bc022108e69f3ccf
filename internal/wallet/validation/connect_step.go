package validation

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hydrawallet/wallet-core/internal/wallet/translate"
)

// ConnectStep resolves the network key and verifies the chain connection is
// live. The network comes from the explicit request or, when the origin was
// previously fully authorized, from its last-connected EVM network
// (auto-activation). Liveness is checked with a lightweight balance probe
// raced against the probe timeout with one re-init retry.
//
// Every failure here is UI-facing, never a dApp rejection.
func ConnectStep(ctx context.Context, deps *Deps, _ string, payload *Payload) (*Payload, error) {
	fail := func(kind translate.Kind, raw string) {
		log.Error().
			Str("component", "validation").
			Str("network_key", payload.NetworkKey).
			Str("error", raw).
			Msg("Network connectivity check failed")
		payload.failUI(ConfirmationErrorConnectNetwork, kind, raw)
	}

	networkKey := payload.NetworkKey
	if networkKey == "" && payload.AuthInfo != nil && payload.AuthInfo.IsAllowed {
		// Auto-activation only for fully authorized origins
		networkKey = payload.AuthInfo.CurrentEVMNetworkKey
	}

	if networkKey == "" {
		fail(translate.KindNetworkUnsupported, "This network is currently not supported")

		return payload, nil
	}

	payload.NetworkKey = networkKey

	chainInfo, err := deps.Gateway.GetChainInfo(networkKey)
	if err != nil {
		fail(translate.KindNetworkUnsupported, err.Error())

		return payload, nil
	}

	if !deps.Gateway.GetChainState(networkKey).Active {
		if err := deps.Gateway.EnableChain(ctx, networkKey); err != nil {
			fail(translate.KindNetworkUnreachable, "Can not active chain: "+chainInfo.Name)
		}
	}

	probe := func(ctx context.Context) error {
		_, err := deps.Gateway.GetBalance(ctx, networkKey, payload.Address)

		return err
	}

	reinit := func(ctx context.Context) error {
		return deps.Gateway.InitSingleAPI(ctx, networkKey)
	}

	if err := probeWithRetry(ctx, deps.probeTimeout(), probe, reinit); err != nil {
		fail(translate.KindNetworkUnreachable, err.Error())
	}

	return payload, nil
}
