// Package probe provides connectivity checks against the configured chain
// endpoints, for container liveness/readiness wiring.
package probe

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hydrawallet/wallet-core/internal/config"
	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Probe connectivity of the configured chain endpoints",
		Run: func(cmd *cobra.Command, _ []string) {
			run(cmd.Context())
		},
	}
}

func run(ctx context.Context) {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve config")
		os.Exit(1)
	}

	manager := gateway.NewManager(cfg.GatewayChains())
	failed := false

	for slug, chain := range cfg.Chains {
		if !chain.Active {
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
		err := manager.InitSingleAPI(probeCtx, slug)

		cancel()

		if err != nil {
			log.Error().Str("network_key", slug).Err(err).Msg("Chain endpoint unreachable")

			failed = true

			continue
		}

		log.Info().Str("network_key", slug).Msg("Chain endpoint reachable")
	}

	if failed {
		os.Exit(1)
	}
}
