package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/emblem-sim/sim"
)

var (
	// CLI flags shared by run and batch
	seed         int64  // Master seed for the simulation RNG
	trials       int    // Number of trials per simulation
	workers      int    // Number of goroutines sharing the trials
	logLevel     string // Log verbosity level
	outputFormat string // text, json or yaml

	// CLI flags for run
	qualities     []int  // Initial quality levels
	operationName string // reroll or increaseTwoDecreaseOne

	// CLI flags for batch
	scenariosPath string // Path to scenarios YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "emblem-sim",
	Short: "Monte Carlo calculator for item upgrade operations",
	Long: "Estimates how likely a random upgrade operation is to improve, keep or worsen " +
		"the total bonus of 2 to 5 items with quality levels 1 to 5.",
	SilenceUsage: true,
}

// runCmd simulates a single set of items using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one operation on one set of items",
	Run: func(cmd *cobra.Command, args []string) {
		setup(cmd)

		cfg := sim.Config{Trials: trials, Seed: seed, Workers: workers}
		logrus.Infof("Starting simulation: qualities=%v, operation=%s, trials=%d, seed=%d",
			qualities, operationName, trials, seed)

		startTime := time.Now()
		rep := simulate("", qualities, operationName, cfg)
		if rep.Error != "" {
			logrus.Fatalf("Simulation rejected: %s", rep.Error)
		}
		if err := writeReport(os.Stdout, outputFormat, rep); err != nil {
			logrus.Fatalf("Writing results failed: %v", err)
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// batchCmd runs every scenario in a YAML file
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Simulate every scenario listed in a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		setup(cmd)

		file, err := LoadScenarioFile(scenariosPath)
		if err != nil {
			logrus.Fatalf("Loading scenarios failed: %v", err)
		}
		base := sim.Config{Trials: trials, Seed: seed, Workers: workers}
		reports := runBatch(file, base)
		if err := writeReports(os.Stdout, outputFormat, reports); err != nil {
			logrus.Fatalf("Writing results failed: %v", err)
		}
	},
}

// runBatch simulates every scenario; per-scenario input errors are reported, not fatal.
func runBatch(file *ScenarioFile, base sim.Config) []RunReport {
	reports := make([]RunReport, 0, len(file.Scenarios))
	for i, s := range file.Scenarios {
		name := scenarioName(s, i)
		rep := simulate(name, s.Qualities, s.Operation, file.Config(s, base))
		if rep.Error != "" {
			logrus.Warnf("%s: %s", name, rep.Error)
		} else {
			logrus.Infof("%s: %d trials done", name, rep.Result.Trials)
		}
		reports = append(reports, rep)
	}
	return reports
}

// setup applies env defaults to unset flags, then configures logging and
// checks the output format.
func setup(cmd *cobra.Command) {
	d, err := loadEnvDefaults()
	if err != nil {
		logrus.Fatalf("Invalid environment: %v", err)
	}
	if err := applyEnvDefaults(cmd, d); err != nil {
		logrus.Fatalf("Invalid environment: %v", err)
	}
	if err := configureLogging(logLevel); err != nil {
		logrus.Fatalf("%v", err)
	}
	if !validOutputs[outputFormat] {
		logrus.Fatalf("Unknown output format %q; valid: text, json, yaml", outputFormat)
	}
}

func configureLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addCommonFlags registers the flags shared by run and batch.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the simulation RNG")
	cmd.Flags().IntVar(&trials, "trials", sim.DefaultTrials, "Number of simulated trials")
	cmd.Flags().IntVar(&workers, "workers", 1, "Goroutines sharing the trials (results depend on seed and workers)")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&outputFormat, "output", OutputText, "Output format (text, json, yaml)")
}

// init sets up CLI flags and subcommands
func init() {
	addCommonFlags(runCmd)
	runCmd.Flags().IntSliceVar(&qualities, "qualities", []int{1, 1, 1, 1, 1}, "Comma-separated quality levels (2 to 5 items, each 1 to 5)")
	runCmd.Flags().StringVar(&operationName, "operation", sim.OperationNameReroll, "Operation (reroll, increaseTwoDecreaseOne)")

	addCommonFlags(batchCmd)
	batchCmd.Flags().StringVar(&scenariosPath, "scenarios", "", "Path to scenarios YAML")
	_ = batchCmd.MarkFlagRequired("scenarios")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
}
