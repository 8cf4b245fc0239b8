package sim

import (
	"errors"
	"fmt"
)

// Input errors. All of them are reported before any trial runs.
var (
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrInsufficientItems  = errors.New("insufficient items")
	ErrOperationSaturated = errors.New("operation saturated")
	ErrInvalidQualities   = errors.New("invalid qualities")
	ErrInvalidTrials      = errors.New("invalid trial count")
)

// SaturatedError reports that too many items are already at MaxQuality for
// IncreaseTwoDecreaseOne to pick two distinct increase targets.
type SaturatedError struct {
	Count int // items already at MaxQuality
	Items int // vector length
}

func (e *SaturatedError) Error() string {
	return fmt.Sprintf("cannot improve: %d of %d item(s) already at quality %d", e.Count, e.Items, MaxQuality)
}

func (e *SaturatedError) Unwrap() error {
	return ErrOperationSaturated
}
