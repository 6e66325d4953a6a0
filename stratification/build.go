package stratification

import (
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Build validates the input strata and assembles a Stratification. Checks run
// in order: identity constraints (uniqueness, dimension bounds, reference
// existence, self-loops), closure acyclicity, dimension monotonicity along
// closure edges, and finally the frontier condition (transitive closedness of
// the declared closure relations). The first violation aborts construction.
func Build(ambientDimension int, strata []Stratum) (*Stratification, error) {
	byID := make(map[string]Stratum, len(strata))
	for _, st := range strata {
		if _, dup := byID[st.ID]; dup {
			return nil, &ValidationError{Code: CodeDuplicateID, From: st.ID}
		}
		if st.Dimension < 0 {
			return nil, &ValidationError{Code: CodeNegativeDimension, From: st.ID}
		}
		if st.Dimension > ambientDimension {
			return nil, &ValidationError{Code: CodeAmbientExceeded, From: st.ID}
		}
		byID[st.ID] = st
	}

	closure := make(map[string]map[string]bool, len(strata))
	for _, st := range strata {
		set := make(map[string]bool, len(st.Closure))
		for _, ref := range st.Closure {
			if ref == st.ID {
				return nil, &ValidationError{Code: CodeSelfClosure, From: st.ID}
			}
			if _, ok := byID[ref]; !ok {
				return nil, &ValidationError{Code: CodeUnknownReference, From: st.ID, To: ref}
			}
			set[ref] = true
		}
		closure[st.ID] = set
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if err := detectCycle(ids, closure); err != nil {
		return nil, err
	}

	// Pairwise edge checks are independent; fan out per source stratum.
	var dims errgroup.Group
	for _, id := range ids {
		id := id
		dims.Go(func() error {
			src := byID[id]
			for to := range closure[id] {
				if byID[to].Dimension >= src.Dimension {
					return &ValidationError{Code: CodeDimension, From: id, To: to}
				}
			}
			return nil
		})
	}
	if err := dims.Wait(); err != nil {
		return nil, err
	}

	// Frontier condition: everything reachable through a declared closure
	// member must itself be declared. Checked per source stratum in parallel.
	var frontier errgroup.Group
	for _, id := range ids {
		id := id
		frontier.Go(func() error {
			for via := range closure[id] {
				for indirect := range closure[via] {
					if !closure[id][indirect] {
						return &ValidationError{Code: CodeFrontier, From: id, To: indirect, Via: via}
					}
				}
			}
			return nil
		})
	}
	if err := frontier.Wait(); err != nil {
		return nil, err
	}

	// Normalize stored closure slices so Get is deterministic.
	normalized := make(map[string]Stratum, len(byID))
	for id, st := range byID {
		st.Closure = sortedKeys(closure[id])
		normalized[id] = st
	}

	return &Stratification{
		ambient: ambientDimension,
		strata:  normalized,
		closure: closure,
		ids:     ids,
	}, nil
}

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// detectCycle runs a tri-color depth-first traversal over the closure edges.
// Dimension monotonicity rules cycles out on valid input, but a user-supplied
// edge set can contain one, and it must be reported as a cycle rather than
// surface as an arbitrary dimension violation.
func detectCycle(ids []string, closure map[string]map[string]bool) error {
	states := make(map[string]visitState, len(ids))

	var visit func(id string) error
	visit = func(id string) error {
		switch states[id] {
		case stateVisiting:
			return &ValidationError{Code: CodeCycle, From: id}
		case stateDone:
			return nil
		}
		states[id] = stateVisiting
		for _, next := range sortedKeys(closure[id]) {
			if err := visit(next); err != nil {
				var verr *ValidationError
				if errors.As(err, &verr) && verr.Code == CodeCycle && verr.To == "" && verr.From != id {
					verr.To = id
				}
				return err
			}
		}
		states[id] = stateDone
		return nil
	}

	for _, id := range ids {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
