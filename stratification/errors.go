package stratification

import "fmt"

// Code identifies a structural validation failure.
type Code string

const (
	// CodeDuplicateID indicates two input strata share an identifier.
	CodeDuplicateID Code = "strat-duplicate-id"
	// CodeAmbientExceeded indicates a stratum dimension above the ambient dimension.
	CodeAmbientExceeded Code = "strat-ambient-exceeded"
	// CodeNegativeDimension indicates a stratum with negative dimension.
	CodeNegativeDimension Code = "strat-negative-dimension"
	// CodeUnknownReference indicates a closure relation naming a missing stratum.
	CodeUnknownReference Code = "strat-unknown-reference"
	// CodeSelfClosure indicates a stratum declared in its own closure.
	CodeSelfClosure Code = "strat-self-closure"
	// CodeCycle indicates a cycle in the closure relation graph.
	CodeCycle Code = "strat-closure-cycle"
	// CodeDimension indicates a closure edge that fails to strictly decrease dimension.
	CodeDimension Code = "strat-dimension-violation"
	// CodeFrontier indicates a closure relation that is not transitively closed.
	CodeFrontier Code = "strat-frontier-violation"
)

// ValidationError reports a structural defect in the input strata. From and To
// identify the offending pair; Via names the intermediate stratum for frontier
// violations. Structural errors abort construction and are never retried: the
// input itself is at fault.
type ValidationError struct {
	Code Code
	From string
	To   string
	Via  string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeDuplicateID:
		return fmt.Sprintf("%s: stratum %q declared more than once", e.Code, e.From)
	case CodeAmbientExceeded, CodeNegativeDimension:
		return fmt.Sprintf("%s: stratum %q", e.Code, e.From)
	case CodeUnknownReference:
		return fmt.Sprintf("%s: stratum %q references unknown stratum %q", e.Code, e.From, e.To)
	case CodeSelfClosure:
		return fmt.Sprintf("%s: stratum %q lists itself in its closure", e.Code, e.From)
	case CodeCycle:
		return fmt.Sprintf("%s: closure cycle through %q and %q", e.Code, e.From, e.To)
	case CodeDimension:
		return fmt.Sprintf("%s: %q must have strictly smaller dimension than %q", e.Code, e.To, e.From)
	case CodeFrontier:
		return fmt.Sprintf("%s: %q is in the closure of %q via %q but is not declared", e.Code, e.To, e.From, e.Via)
	default:
		return fmt.Sprintf("%s: %q -> %q", e.Code, e.From, e.To)
	}
}
