package methylstat

import "fmt"

// StatisticalComputationError is returned when the input is too degenerate for
// a statistic to be defined, e.g. a regression over a single distinct age.
type StatisticalComputationError struct {
	Op     string
	Reason string
}

func (e *StatisticalComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
