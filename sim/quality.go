// sim/quality.go
package sim

import (
	"fmt"
	"strings"
)

// Quality is the quality level of a single item.
type Quality int

const (
	MinQuality Quality = 1
	MaxQuality Quality = 5

	// MinItems and MaxItems bound the length of a QualityVector.
	MinItems = 2
	MaxItems = 5
)

// bonusTable maps quality level (index q-1) to its raw bonus value.
var bonusTable = [...]int{10, 30, 60, 100, 150}

// Valid reports whether q lies in [MinQuality, MaxQuality].
func (q Quality) Valid() bool {
	return q >= MinQuality && q <= MaxQuality
}

// Bonus returns the raw bonus for q. Panics on an invalid quality; callers
// validate vectors at the input boundary.
func (q Quality) Bonus() int {
	if !q.Valid() {
		panic(fmt.Sprintf("quality %d out of range [%d, %d]", q, MinQuality, MaxQuality))
	}
	return bonusTable[q-MinQuality]
}

// QualityVector is an ordered set of item quality levels.
type QualityVector []Quality

// NewQualityVector converts raw integers into a validated QualityVector.
func NewQualityVector(levels []int) (QualityVector, error) {
	v := make(QualityVector, len(levels))
	for i, l := range levels {
		v[i] = Quality(l)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the vector length and every element's range.
func (v QualityVector) Validate() error {
	if len(v) < MinItems || len(v) > MaxItems {
		return fmt.Errorf("%w: need between %d and %d items, got %d", ErrInvalidQualities, MinItems, MaxItems, len(v))
	}
	for i, q := range v {
		if !q.Valid() {
			return fmt.Errorf("%w: item[%d] has quality %d, valid range is [%d, %d]", ErrInvalidQualities, i, q, MinQuality, MaxQuality)
		}
	}
	return nil
}

// Clone returns an independent copy of v.
func (v QualityVector) Clone() QualityVector {
	out := make(QualityVector, len(v))
	copy(out, v)
	return out
}

// Count returns how many items sit at quality q.
func (v QualityVector) Count(q Quality) int {
	n := 0
	for _, x := range v {
		if x == q {
			n++
		}
	}
	return n
}

// TotalBonus sums the bonus table over every item.
func (v QualityVector) TotalBonus() int {
	total := 0
	for _, q := range v {
		total += q.Bonus()
	}
	return total
}

// Ints returns the vector as plain integers (for rendering and YAML/JSON).
func (v QualityVector) Ints() []int {
	out := make([]int, len(v))
	for i, q := range v {
		out[i] = int(q)
	}
	return out
}

func (v QualityVector) String() string {
	parts := make([]string, len(v))
	for i, q := range v {
		parts[i] = fmt.Sprintf("%d", q)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
