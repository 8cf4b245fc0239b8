// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultTrials is the trial count used when none is given.
const DefaultTrials = 100000

// Config holds everything needed for one simulation run.
type Config struct {
	Qualities QualityVector
	Operation Operation
	Trials    int   // number of independent trials; must be positive
	Seed      int64 // master seed for the PartitionedRNG
	// Workers shards the trials across goroutines, each with its own RNG.
	// 0 or 1 runs sequentially.
	Workers int
}

// Simulator runs a validated Config.
type Simulator struct {
	cfg          Config
	initialBonus int
}

// NewSimulator validates cfg once and returns a ready-to-run Simulator.
// Every input error is reported here; Run never fails.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := validateInputs(cfg.Qualities, cfg.Operation, cfg.Trials); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Workers > cfg.Trials {
		cfg.Workers = cfg.Trials
	}
	cfg.Qualities = cfg.Qualities.Clone()
	return &Simulator{
		cfg:          cfg,
		initialBonus: cfg.Qualities.TotalBonus(),
	}, nil
}

// Config returns the normalized configuration.
func (s *Simulator) Config() Config {
	cfg := s.cfg
	cfg.Qualities = cfg.Qualities.Clone()
	return cfg
}

// Run executes all trials and returns the aggregated result. Every call
// starts from a fresh PartitionedRNG, so repeated runs are identical.
func (s *Simulator) Run() Result {
	logrus.Debugf("Starting simulation: qualities=%v, operation=%s, trials=%d, workers=%d, seed=%d",
		s.cfg.Qualities, s.cfg.Operation, s.cfg.Trials, s.cfg.Workers, s.cfg.Seed)

	rng := NewPartitionedRNG(NewSimulationKey(s.cfg.Seed))
	var tally Tally
	if s.cfg.Workers == 1 {
		tally = runTrials(s.cfg.Operation, rng.ForSubsystem(SubsystemTrials), s.cfg.Qualities, s.initialBonus, s.cfg.Trials)
	} else {
		tally = s.runSharded(rng)
	}

	logrus.Debugf("Simulation complete: improved=%d, equal=%d, worsened=%d",
		tally.Improved, tally.Equal, tally.Worsened)
	return tally.Result()
}

// runSharded splits the trials into contiguous shards, one per worker.
func (s *Simulator) runSharded(rng *PartitionedRNG) Tally {
	workers := s.cfg.Workers
	sizes := shardSizes(s.cfg.Trials, workers)
	// PartitionedRNG is single-goroutine; derive every worker RNG up front.
	sources := make([]Source, workers)
	for w := range sources {
		sources[w] = rng.ForSubsystem(SubsystemWorker(w))
	}

	shards := make([]Tally, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			shards[w] = runTrials(s.cfg.Operation, sources[w], s.cfg.Qualities, s.initialBonus, sizes[w])
			logrus.Tracef("worker %d finished %d trials", w, sizes[w])
			return nil
		})
	}
	_ = g.Wait() // shards never return an error

	total := NewTally(s.initialBonus)
	for _, sh := range shards {
		total.Merge(sh)
	}
	return total
}

// shardSizes splits trials into n near-equal parts; the first trials%n get one extra.
func shardSizes(trials, n int) []int {
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = trials / n
		if i < trials%n {
			sizes[i]++
		}
	}
	return sizes
}

func runTrials(op Operation, src Source, initial QualityVector, initialBonus, trials int) Tally {
	t := NewTally(initialBonus)
	for i := 0; i < trials; i++ {
		t.Add(Apply(op, src, initial).TotalBonus())
	}
	return t
}

// RunSimulation validates the inputs, runs trials sequentially with src and
// aggregates the outcomes.
func RunSimulation(initial QualityVector, op Operation, trials int, src Source) (Result, error) {
	if err := validateInputs(initial, op, trials); err != nil {
		return Result{}, err
	}
	return runTrials(op, src, initial, initial.TotalBonus(), trials).Result(), nil
}

// Simulate validates the inputs and returns every trial outcome vector.
// Prefer RunSimulation when only the statistics are needed.
func Simulate(initial QualityVector, op Operation, trials int, src Source) ([]QualityVector, error) {
	if err := validateInputs(initial, op, trials); err != nil {
		return nil, err
	}
	outcomes := make([]QualityVector, trials)
	for i := range outcomes {
		outcomes[i] = Apply(op, src, initial)
	}
	return outcomes, nil
}

func validateInputs(initial QualityVector, op Operation, trials int) error {
	if err := initial.Validate(); err != nil {
		return err
	}
	if trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidTrials, trials)
	}
	return ValidateOperation(op, initial)
}
