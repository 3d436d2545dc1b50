package planstats

import "fmt"

// StructureError reports an input that is not shaped like an EXPLAIN plan.
type StructureError struct {
	// Path locates the offending value, e.g. "Plan.Plans[1]".
	Path   string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid plan structure: %s", e.Reason)
	}
	return fmt.Sprintf("invalid plan structure at %s: %s", e.Path, e.Reason)
}

func structureErrorf(path, format string, args ...any) *StructureError {
	return &StructureError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
