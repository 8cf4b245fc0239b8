// sim/aggregate.go
package sim

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Tally accumulates trial totals against the initial total bonus.
// The zero value is not usable; start from NewTally.
type Tally struct {
	InitialBonus int
	Trials       int
	Improved     int
	Equal        int
	Worsened     int
	ImprovedSum  int64 // sum of totals over improved trials
	WorsenedSum  int64 // sum of totals over worsened trials
}

// NewTally returns an empty Tally classifying totals against initialBonus.
func NewTally(initialBonus int) Tally {
	return Tally{InitialBonus: initialBonus}
}

// Add classifies one trial's total bonus.
func (t *Tally) Add(total int) {
	t.Trials++
	switch {
	case total > t.InitialBonus:
		t.Improved++
		t.ImprovedSum += int64(total)
	case total == t.InitialBonus:
		t.Equal++
	default:
		t.Worsened++
		t.WorsenedSum += int64(total)
	}
}

// Merge folds o into t. Both tallies must share the same InitialBonus.
// Merging is commutative and associative, so shards can be combined in any order.
func (t *Tally) Merge(o Tally) {
	if o.InitialBonus != t.InitialBonus {
		panic("sim: merging tallies with different initial bonus")
	}
	t.Trials += o.Trials
	t.Improved += o.Improved
	t.Equal += o.Equal
	t.Worsened += o.Worsened
	t.ImprovedSum += o.ImprovedSum
	t.WorsenedSum += o.WorsenedSum
}

// Result is the summary of a simulation. Percentages and means are rounded to
// two decimals; everything upstream of rounding is exact.
type Result struct {
	Trials        int `json:"trials" yaml:"trials"`
	ImproveCount  int `json:"improve_count" yaml:"improve_count"`
	EqualCount    int `json:"equal_count" yaml:"equal_count"`
	WorsenCount   int `json:"worsen_count" yaml:"worsen_count"`
	NotWorseCount int `json:"not_worse_count" yaml:"not_worse_count"`

	ImproveChance        float64 `json:"improve_chance" yaml:"improve_chance"`
	ImproveOrEqualChance float64 `json:"improve_or_equal_chance" yaml:"improve_or_equal_chance"`
	WorsenChance         float64 `json:"worsen_chance" yaml:"worsen_chance"`

	// Normal-approximation standard error and 95% interval of ImproveChance.
	ImproveChanceStdErr float64 `json:"improve_chance_stderr" yaml:"improve_chance_stderr"`
	ImproveChanceLow    float64 `json:"improve_chance_low" yaml:"improve_chance_low"`
	ImproveChanceHigh   float64 `json:"improve_chance_high" yaml:"improve_chance_high"`

	TotalBonusInitial   float64  `json:"total_bonus_initial" yaml:"total_bonus_initial"`
	MeanBonusInImproves *float64 `json:"mean_bonus_in_improves" yaml:"mean_bonus_in_improves"`
	MeanBonusInWorsen   *float64 `json:"mean_bonus_in_worsen" yaml:"mean_bonus_in_worsen"`
}

// ConfidenceLevel is the coverage of the ImproveChance interval.
const ConfidenceLevel = 0.95

// Result derives the rounded statistics from the tally.
func (t Tally) Result() Result {
	r := Result{
		Trials:            t.Trials,
		ImproveCount:      t.Improved,
		EqualCount:        t.Equal,
		WorsenCount:       t.Worsened,
		NotWorseCount:     t.Improved + t.Equal,
		TotalBonusInitial: round2(float64(t.InitialBonus)),
	}
	if t.Trials == 0 {
		return r
	}
	n := float64(t.Trials)
	improve := float64(t.Improved) / n * 100
	improveOrEqual := float64(t.Improved+t.Equal) / n * 100

	r.ImproveChance = round2(improve)
	r.ImproveOrEqualChance = round2(improveOrEqual)
	// Derived from the rounded value so the three classes sum to 100.
	r.WorsenChance = round2(100 - r.ImproveOrEqualChance)

	p := float64(t.Improved) / n
	stderr := math.Sqrt(p*(1-p)/n) * 100
	z := distuv.UnitNormal.Quantile(1 - (1-ConfidenceLevel)/2)
	r.ImproveChanceStdErr = round2(stderr)
	r.ImproveChanceLow = round2(math.Max(0, improve-z*stderr))
	r.ImproveChanceHigh = round2(math.Min(100, improve+z*stderr))

	if t.Improved > 0 {
		m := round2(float64(t.ImprovedSum) / float64(t.Improved))
		r.MeanBonusInImproves = &m
	}
	if t.Worsened > 0 {
		m := round2(float64(t.WorsenedSum) / float64(t.Worsened))
		r.MeanBonusInWorsen = &m
	}
	return r
}

// MeanGainInImproves is the average bonus gained over improving trials, or
// nil when no trial improved.
func (r Result) MeanGainInImproves() *float64 {
	if r.MeanBonusInImproves == nil {
		return nil
	}
	g := round2(*r.MeanBonusInImproves - r.TotalBonusInitial)
	return &g
}

// MeanLossInWorsen is the average bonus lost over worsening trials, or nil
// when no trial worsened.
func (r Result) MeanLossInWorsen() *float64 {
	if r.MeanBonusInWorsen == nil {
		return nil
	}
	l := round2(r.TotalBonusInitial - *r.MeanBonusInWorsen)
	return &l
}

// Aggregate reduces explicit outcome vectors against initial. It is a pure
// function of its inputs.
func Aggregate(initial QualityVector, outcomes []QualityVector) Result {
	t := NewTally(initial.TotalBonus())
	for _, o := range outcomes {
		t.Add(o.TotalBonus())
	}
	return t.Result()
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
