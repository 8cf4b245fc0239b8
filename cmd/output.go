package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/emblem-sim/sim"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var validOutputs = map[string]bool{OutputText: true, OutputJSON: true, OutputYAML: true}

// RunReport is one simulated scenario as rendered to the user. Exactly one of
// Result and Error is set.
type RunReport struct {
	Name      string      `json:"name,omitempty" yaml:"name,omitempty"`
	Qualities []int       `json:"qualities" yaml:"qualities"`
	Operation string      `json:"operation" yaml:"operation"`
	Seed      int64       `json:"seed" yaml:"seed"`
	Workers   int         `json:"workers" yaml:"workers"`
	Result    *sim.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// simulate runs cfg and wraps the outcome in a RunReport. Input errors are
// carried in the report rather than returned.
func simulate(name string, qualities []int, operation string, cfg sim.Config) RunReport {
	rep := RunReport{
		Name:      name,
		Qualities: qualities,
		Operation: operation,
		Seed:      cfg.Seed,
		Workers:   cfg.Workers,
	}
	fail := func(err error) RunReport {
		rep.Error = err.Error()
		return rep
	}

	q, err := sim.NewQualityVector(qualities)
	if err != nil {
		return fail(err)
	}
	op, err := sim.ParseOperation(operation)
	if err != nil {
		return fail(err)
	}
	cfg.Qualities, cfg.Operation = q, op

	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return fail(err)
	}
	rep.Operation = op.String()
	rep.Workers = s.Config().Workers
	res := s.Run()
	rep.Result = &res
	return rep
}

// writeReport renders a single run; structured formats emit one object.
func writeReport(w io.Writer, format string, rep RunReport) error {
	return encodeReports(w, format, rep, []RunReport{rep})
}

// writeReports renders a batch; structured formats always emit a list.
func writeReports(w io.Writer, format string, reports []RunReport) error {
	return encodeReports(w, format, reports, reports)
}

// encodeReports marshals v for structured formats and prints reports as text.
func encodeReports(w io.Writer, format string, v any, reports []RunReport) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case OutputText:
		for i, rep := range reports {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeText(w, rep); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q; valid: text, json, yaml", format)
	}
}

func writeText(w io.Writer, rep RunReport) error {
	header := fmt.Sprintf("Qualities %v, operation %s", rep.Qualities, rep.Operation)
	if rep.Name != "" {
		header = rep.Name + ": " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if rep.Error != "" {
		_, err := fmt.Fprintf(w, "Error: %s\n", rep.Error)
		return err
	}
	return rep.Result.Print(w)
}
