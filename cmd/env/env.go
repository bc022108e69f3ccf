// Package env prints the resolved service configuration.
package env

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hydrawallet/wallet-core/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the resolved service configuration as JSON",
		Run: func(_ *cobra.Command, _ []string) {
			cfg, err := config.FromEnv()
			if err != nil {
				log.Error().Err(err).Msg("Failed to resolve config")
				os.Exit(1)
			}

			encoded, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Error().Err(err).Msg("Failed to marshal config")
				os.Exit(1)
			}

			fmt.Println(string(encoded))
		},
	}
}
