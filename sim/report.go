// Renders a Result as the human-readable summary printed after a run.

package sim

import (
	"fmt"
	"io"
)

// Print writes the result summary to w, mirroring the calculator's result panel.
func (r Result) Print(w io.Writer) error {
	pw := &printer{w: w}
	pw.printf("=== Simulation Results ===\n")
	pw.printf("Simulations run      : %d\n", r.Trials)
	pw.printf("Chance to improve    : %.2f%% (95%% CI %.2f%% - %.2f%%)\n", r.ImproveChance, r.ImproveChanceLow, r.ImproveChanceHigh)
	pw.printf("Chance not to worsen : %.2f%%\n", r.ImproveOrEqualChance)
	pw.printf("Chance to worsen     : %.2f%%\n", r.WorsenChance)
	if gain := r.MeanGainInImproves(); gain != nil {
		pw.printf("Mean gain in improvements : %.2f -> %.2f (+%.2f)\n", r.TotalBonusInitial, *r.MeanBonusInImproves, *gain)
	}
	if loss := r.MeanLossInWorsen(); loss != nil {
		pw.printf("Mean loss in worsenings   : %.2f -> %.2f (-%.2f)\n", r.TotalBonusInitial, *r.MeanBonusInWorsen, *loss)
	}
	return pw.err
}

// printer keeps the first write error so Print can report it once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
