// Package stratification builds and validates decompositions of a space into
// strata. A Stratification is constructed once through Build, which enforces
// the structural axioms (closure acyclicity, dimension monotonicity, the
// frontier condition), and is read-only afterwards: every query is pure.
package stratification

import "sort"

// Stratum is a locally smooth piece of a decomposed space. Closure lists the
// identifiers of the strata contained in this stratum's topological closure.
type Stratum struct {
	ID        string
	Dimension int
	Closure   []string
}

// Stratification is a validated decomposition of a space of a fixed ambient
// dimension into uniquely identified strata. Instances are only produced by
// Build and never mutated afterwards.
type Stratification struct {
	ambient int
	strata  map[string]Stratum
	closure map[string]map[string]bool
	ids     []string
}

// AmbientDimension returns the dimension of the ambient space.
func (s *Stratification) AmbientDimension() int { return s.ambient }

// Len returns the number of strata.
func (s *Stratification) Len() int { return len(s.strata) }

// IDs returns the stratum identifiers in sorted order.
func (s *Stratification) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Get returns the stratum with the given identifier.
func (s *Stratification) Get(id string) (Stratum, bool) {
	st, ok := s.strata[id]
	if !ok {
		return Stratum{}, false
	}
	cl := make([]string, len(st.Closure))
	copy(cl, st.Closure)
	st.Closure = cl
	return st, true
}

// InClosure reports whether stratum to lies in the closure of stratum from.
func (s *Stratification) InClosure(from, to string) bool {
	return s.closure[from][to]
}

// Codimension returns the codimension of the identified stratum.
func (s *Stratification) Codimension(id string) (int, bool) {
	st, ok := s.strata[id]
	if !ok {
		return 0, false
	}
	return s.ambient - st.Dimension, true
}

// ByCodimension returns all strata of the given codimension, sorted by ID.
func (s *Stratification) ByCodimension(codim int) []Stratum {
	var out []Stratum
	for _, id := range s.ids {
		st := s.strata[id]
		if s.ambient-st.Dimension == codim {
			out = append(out, st)
		}
	}
	return out
}

// MaximalStrata returns the top-dimensional (codimension zero) strata.
func (s *Stratification) MaximalStrata() []Stratum { return s.ByCodimension(0) }

// SingularStrata returns all strata of positive codimension, sorted by ID.
func (s *Stratification) SingularStrata() []Stratum {
	var out []Stratum
	for _, id := range s.ids {
		st := s.strata[id]
		if s.ambient-st.Dimension > 0 {
			out = append(out, st)
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
