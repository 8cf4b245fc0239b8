package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/emblem-sim/sim"
)

const sampleScenarios = `
version: "1"
defaults:
  trials: 2000
  seed: 7
scenarios:
  - name: threes-reroll
    qualities: [3, 3, 3, 3, 3]
    operation: reroll
  - name: floor-upgrade
    qualities: [1, 1, 1, 4]
    operation: increaseTwoDecreaseOne
    trials: 500
    seed: 99
    workers: 2
  - qualities: [5, 5, 1]
    operation: increaseTwoDecreaseOne
`

func TestParseScenarioFile_Valid(t *testing.T) {
	f, err := ParseScenarioFile([]byte(sampleScenarios))
	require.NoError(t, err)
	require.Len(t, f.Scenarios, 3)
	assert.Equal(t, "threes-reroll", f.Scenarios[0].Name)
	assert.Equal(t, []int{1, 1, 1, 4}, f.Scenarios[1].Qualities)
	assert.Equal(t, "scenario[2]", scenarioName(f.Scenarios[2], 2))
}

func TestParseScenarioFile_RejectsUnknownKeys(t *testing.T) {
	// GIVEN a typo in a scenario key
	data := []byte("scenarios:\n  - name: a\n    qualitys: [1, 2]\n    operation: reroll\n")

	_, err := ParseScenarioFile(data)

	// THEN strict parsing refuses it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qualitys")
}

func TestParseScenarioFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no scenarios", "version: \"1\"\n", "at least one scenario"},
		{"bad version", "version: \"9\"\nscenarios:\n  - qualities: [1, 1]\n    operation: reroll\n", "unsupported scenarios version"},
		{"zero trials", "scenarios:\n  - qualities: [1, 1]\n    operation: reroll\n    trials: 0\n", "trials must be positive"},
		{"negative default workers", "defaults:\n  workers: -1\nscenarios:\n  - qualities: [1, 1]\n    operation: reroll\n", "workers must be non-negative"},
		{"duplicate names", "scenarios:\n  - name: a\n    qualities: [1, 1]\n    operation: reroll\n  - name: a\n    qualities: [2, 2]\n    operation: reroll\n", "duplicate scenario name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenarioFile([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenarioFile_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScenarios), 0o644))

	f, err := LoadScenarioFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Scenarios, 3)

	_, err = LoadScenarioFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading scenarios")
}

func TestScenarioFile_ConfigPrecedence(t *testing.T) {
	f, err := ParseScenarioFile([]byte(sampleScenarios))
	require.NoError(t, err)
	base := sim.Config{Trials: 100000, Seed: 42, Workers: 1}

	// File defaults override the base
	cfg := f.Config(f.Scenarios[0], base)
	assert.Equal(t, 2000, cfg.Trials)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 1, cfg.Workers)

	// Scenario fields override file defaults
	cfg = f.Config(f.Scenarios[1], base)
	assert.Equal(t, 500, cfg.Trials)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 2, cfg.Workers)
}

func TestRunBatch_ReportsPerScenarioErrors(t *testing.T) {
	f, err := ParseScenarioFile([]byte(sampleScenarios))
	require.NoError(t, err)

	reports := runBatch(f, sim.Config{Trials: 100000, Seed: 42, Workers: 1})
	require.Len(t, reports, 3)

	assert.Empty(t, reports[0].Error)
	require.NotNil(t, reports[0].Result)
	assert.Equal(t, 2000, reports[0].Result.Trials)

	assert.Empty(t, reports[1].Error)
	require.NotNil(t, reports[1].Result)
	assert.Equal(t, 500, reports[1].Result.Trials)
	assert.Equal(t, 2, reports[1].Workers)

	// [5,5,1] cannot be upgraded; the batch still completes
	assert.Nil(t, reports[2].Result)
	assert.Contains(t, reports[2].Error, "2 of 3")
}
