// sim/operation.go
package sim

import (
	"fmt"
	"strings"
)

// Operation selects the transition rule applied in every trial.
type Operation int

const (
	// Reroll draws every item's quality again, uniformly in [1, 5].
	Reroll Operation = iota + 1
	// IncreaseTwoDecreaseOne raises two distinct items and lowers at most one other.
	IncreaseTwoDecreaseOne
)

// Wire names, kept identical to the calculator's form values.
const (
	OperationNameReroll                 = "reroll"
	OperationNameIncreaseTwoDecreaseOne = "increaseTwoDecreaseOne"
)

var operationNames = map[Operation]string{
	Reroll:                 OperationNameReroll,
	IncreaseTwoDecreaseOne: OperationNameIncreaseTwoDecreaseOne,
}

// operationAliases is keyed by the lower-cased name.
var operationAliases = map[string]Operation{
	"reroll":                    Reroll,
	"increasetwodecreaseone":    IncreaseTwoDecreaseOne,
	"increase-two-decrease-one": IncreaseTwoDecreaseOne,
}

// ParseOperation resolves a wire name (case-insensitive) to an Operation.
func ParseOperation(name string) (Operation, error) {
	if op, ok := operationAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q; valid: %s, %s", ErrInvalidOperation, name, OperationNameReroll, OperationNameIncreaseTwoDecreaseOne)
}

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	_, ok := operationNames[op]
	return ok
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// ValidateOperation checks that op can be applied to initial. It runs once
// per simulation, never per trial.
func ValidateOperation(op Operation, initial QualityVector) error {
	switch op {
	case Reroll:
		return nil
	case IncreaseTwoDecreaseOne:
		n := len(initial)
		if n < 3 {
			return fmt.Errorf("%w: %s needs at least 3 items, got %d", ErrInsufficientItems, op, n)
		}
		if maxed := initial.Count(MaxQuality); maxed >= n-1 {
			return &SaturatedError{Count: maxed, Items: n}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOperation, op)
	}
}
