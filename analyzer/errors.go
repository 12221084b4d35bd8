package analyzer

import "fmt"

// GroupNotFoundError is returned when a metadata value selects no sample that
// has methylation data.
type GroupNotFoundError struct {
	Field string
	Value string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("no samples with methylation data have %s = %q", e.Field, e.Value)
}

type ProbeNotFoundError struct {
	Probe string
}

func (e *ProbeNotFoundError) Error() string {
	return fmt.Sprintf("probe %s is not in the methylation matrix", e.Probe)
}
