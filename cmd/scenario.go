package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/emblem-sim/sim"
)

// ScenarioFile is the top-level structure of a batch scenarios YAML file.
// Loaded with KnownFields(true): unrecognized keys (typos) are rejected.
type ScenarioFile struct {
	Version   string           `yaml:"version"`
	Defaults  ScenarioDefaults `yaml:"defaults"`
	Scenarios []Scenario       `yaml:"scenarios"`
}

// ScenarioDefaults apply to every scenario that leaves the field unset.
type ScenarioDefaults struct {
	Trials  *int   `yaml:"trials,omitempty"`
	Seed    *int64 `yaml:"seed,omitempty"`
	Workers *int   `yaml:"workers,omitempty"`
}

// Scenario is one simulation request.
type Scenario struct {
	Name      string `yaml:"name"`
	Qualities []int  `yaml:"qualities"`
	Operation string `yaml:"operation"`
	Trials    *int   `yaml:"trials,omitempty"`
	Seed      *int64 `yaml:"seed,omitempty"`
	Workers   *int   `yaml:"workers,omitempty"`
}

// LoadScenarioFile reads and parses a YAML scenarios file.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}
	return ParseScenarioFile(data)
}

// ParseScenarioFile decodes and validates scenarios YAML.
func ParseScenarioFile(data []byte) (*ScenarioFile, error) {
	var f ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file structure. Qualities and operations are checked
// per scenario at run time so one bad scenario does not sink the batch.
func (f *ScenarioFile) Validate() error {
	if f.Version != "" && f.Version != "1" {
		return fmt.Errorf("unsupported scenarios version %q; valid: 1", f.Version)
	}
	if len(f.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario required")
	}
	if err := validateOverrides("defaults", f.Defaults.Trials, f.Defaults.Workers); err != nil {
		return err
	}
	seen := make(map[string]bool, len(f.Scenarios))
	for i, s := range f.Scenarios {
		prefix := fmt.Sprintf("scenarios[%d]", i)
		if s.Name != "" {
			if seen[s.Name] {
				return fmt.Errorf("%s: duplicate scenario name %q", prefix, s.Name)
			}
			seen[s.Name] = true
		}
		if err := validateOverrides(prefix, s.Trials, s.Workers); err != nil {
			return err
		}
	}
	return nil
}

func validateOverrides(prefix string, trials, workers *int) error {
	if trials != nil && *trials <= 0 {
		return fmt.Errorf("%s: trials must be positive, got %d", prefix, *trials)
	}
	if workers != nil && *workers < 0 {
		return fmt.Errorf("%s: workers must be non-negative, got %d", prefix, *workers)
	}
	return nil
}

// Config resolves s against the file defaults and then base.
func (f *ScenarioFile) Config(s Scenario, base sim.Config) sim.Config {
	cfg := base
	cfg.Trials = pick(s.Trials, f.Defaults.Trials, base.Trials)
	cfg.Workers = pick(s.Workers, f.Defaults.Workers, base.Workers)
	cfg.Seed = pick(s.Seed, f.Defaults.Seed, base.Seed)
	return cfg
}

// pick returns the first non-nil override, or fallback.
func pick[T any](override, def *T, fallback T) T {
	if override != nil {
		return *override
	}
	if def != nil {
		return *def
	}
	return fallback
}

// scenarioName labels unnamed scenarios by position.
func scenarioName(s Scenario, idx int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("scenario[%d]", idx)
}
