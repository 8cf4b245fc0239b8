package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand() (*cobra.Command, *int, *int64, *string) {
	var (
		n      int
		s      int64
		output string
	)
	c := &cobra.Command{Use: "test"}
	c.Flags().IntVar(&n, "trials", 100000, "")
	c.Flags().Int64Var(&s, "seed", 42, "")
	c.Flags().StringVar(&output, "output", OutputText, "")
	return c, &n, &s, &output
}

func TestLoadEnvDefaults_Defaults(t *testing.T) {
	d, err := loadEnvDefaults()
	require.NoError(t, err)
	assert.Equal(t, 100000, d.Trials)
	assert.Equal(t, int64(42), d.Seed)
	assert.Equal(t, 1, d.Workers)
	assert.Equal(t, "warn", d.LogLevel)
	assert.Equal(t, OutputText, d.Output)
}

func TestLoadEnvDefaults_FromEnvironment(t *testing.T) {
	t.Setenv("EMBLEM_SIM_TRIALS", "500")
	t.Setenv("EMBLEM_SIM_SEED", "-3")
	t.Setenv("EMBLEM_SIM_OUTPUT", "json")

	d, err := loadEnvDefaults()
	require.NoError(t, err)
	assert.Equal(t, 500, d.Trials)
	assert.Equal(t, int64(-3), d.Seed)
	assert.Equal(t, OutputJSON, d.Output)
}

func TestLoadEnvDefaults_Invalid(t *testing.T) {
	t.Setenv("EMBLEM_SIM_TRIALS", "many")
	_, err := loadEnvDefaults()
	assert.ErrorContains(t, err, "parse env")

	t.Setenv("EMBLEM_SIM_TRIALS", "0")
	_, err = loadEnvDefaults()
	assert.ErrorContains(t, err, "must be positive")
}

func TestApplyEnvDefaults_ExplicitFlagsWin(t *testing.T) {
	// GIVEN --seed set on the command line
	c, n, s, output := newFlagCommand()
	require.NoError(t, c.Flags().Parse([]string{"--seed", "9"}))

	// WHEN env defaults are applied
	require.NoError(t, applyEnvDefaults(c, envDefaults{Trials: 777, Seed: 1, Workers: 4, LogLevel: "info", Output: OutputYAML}))

	// THEN unset flags take the env value and the explicit one is kept
	assert.Equal(t, 777, *n)
	assert.Equal(t, int64(9), *s)
	assert.Equal(t, OutputYAML, *output)
}

func TestConfigureLogging(t *testing.T) {
	assert.NoError(t, configureLogging("error"))
	assert.ErrorContains(t, configureLogging("loud"), "invalid log level")
}
