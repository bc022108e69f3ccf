package config

import "fmt"

// ModuleName is the canonical module path, also used as the binary ident.
const ModuleName = "github.com/hydrawallet/wallet-core"

// Build arguments, overridden via -ldflags at build time.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns "<module> @ <commit> (<build date>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
