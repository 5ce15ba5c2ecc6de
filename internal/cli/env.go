package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// envPrefix prefixes every environment variable palex reads.
const envPrefix = "PALEX_"

// applyEnv sets each flag in bindings from its environment variable unless
// the flag was given on the command line.
func applyEnv(flags *pflag.FlagSet, bindings map[string]string) error {
	for name, key := range bindings {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, err)
		}
	}
	return nil
}
