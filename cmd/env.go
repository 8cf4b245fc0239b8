package cmd

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// envDefaults are the fallbacks used when a flag is not given explicitly.
type envDefaults struct {
	Trials   int    `env:"EMBLEM_SIM_TRIALS"    envDefault:"100000"`
	Seed     int64  `env:"EMBLEM_SIM_SEED"      envDefault:"42"`
	Workers  int    `env:"EMBLEM_SIM_WORKERS"   envDefault:"1"`
	LogLevel string `env:"EMBLEM_SIM_LOG_LEVEL" envDefault:"warn"`
	Output   string `env:"EMBLEM_SIM_OUTPUT"    envDefault:"text"`
}

func loadEnvDefaults() (envDefaults, error) {
	var d envDefaults
	if err := env.Parse(&d); err != nil {
		return d, fmt.Errorf("parse env: %w", err)
	}
	if d.Trials <= 0 {
		return d, fmt.Errorf("EMBLEM_SIM_TRIALS must be positive, got %d", d.Trials)
	}
	return d, nil
}

// applyEnvDefaults copies env values into every flag the user left unset.
// Flags not registered on cmd are skipped.
func applyEnvDefaults(cmd *cobra.Command, d envDefaults) error {
	values := map[string]string{
		"trials":  strconv.Itoa(d.Trials),
		"seed":    strconv.FormatInt(d.Seed, 10),
		"workers": strconv.Itoa(d.Workers),
		"log":     d.LogLevel,
		"output":  d.Output,
	}
	for name, v := range values {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("env default for --%s: %w", name, err)
		}
	}
	return nil
}
