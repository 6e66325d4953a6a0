// Package charcycle computes the characteristic cycle of a perverse graded
// object, the multiplicity-weighted union of conormal components to strata,
// and tropicalizes it into a polyhedral shadow for fast invariant extraction.
//
// Sign convention: all degree computations work with compactified, oriented
// cycles. The local intersection number of a conormal component with the zero
// section is normalized to +1 under the perverse normalization, so the degree
// of a cycle is the plain sum of its multiplicities and agrees with the
// alternating sum of normalized ranks.
package charcycle

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"stratinv/perverse"
	"stratinv/stratification"
)

// Convention names the global normalization choices the engine computes
// under. The zero value selects the perverse normalization: rank is read off
// at degree -dim(S) and multiplicities are gated by the middle perversity.
type Convention struct {
	// NormalizationDegree maps a stratum dimension to the cohomological
	// degree whose rank becomes the conormal multiplicity. Nil means -dim.
	NormalizationDegree func(dim int) int
	// Perversity gates Compute: objects failing it have no characteristic
	// cycle. The zero value means the middle perversity for the ambient
	// dimension.
	Perversity *perverse.Perversity
}

func (c Convention) normalization(dim int) int {
	if c.NormalizationDegree == nil {
		return -dim
	}
	return c.NormalizationDegree(dim)
}

func (c Convention) perversity(ambient int) perverse.Perversity {
	if c.Perversity == nil {
		return perverse.Middle(ambient)
	}
	return *c.Perversity
}

// ConormalComponent is one conormal variety in a characteristic cycle,
// weighted by a non-negative multiplicity.
type ConormalComponent struct {
	StratumID    string
	Multiplicity int
}

// CharacteristicCycle is an ordered, immutable sequence of conormal
// components, sorted by stratum identifier.
type CharacteristicCycle struct {
	components []ConormalComponent
}

// Components returns a copy of the cycle's components.
func (c CharacteristicCycle) Components() []ConormalComponent {
	out := make([]ConormalComponent, len(c.components))
	copy(out, c.components)
	return out
}

// Len returns the number of components.
func (c CharacteristicCycle) Len() int { return len(c.components) }

// Multiplicity returns the multiplicity of the component over the given
// stratum, zero when absent.
func (c CharacteristicCycle) Multiplicity(stratumID string) int {
	for _, comp := range c.components {
		if comp.StratumID == stratumID {
			return comp.Multiplicity
		}
	}
	return 0
}

// Positive reports whether every multiplicity is strictly positive. Holds by
// construction for cycles produced by Compute.
func (c CharacteristicCycle) Positive() bool {
	for _, comp := range c.components {
		if comp.Multiplicity <= 0 {
			return false
		}
	}
	return true
}

// NotPerverseError gates the characteristic-cycle construction: the
// construction is only defined for objects passing the perverse check, and
// the report pinpoints the violations.
type NotPerverseError struct {
	Report perverse.Report
}

func (e *NotPerverseError) Error() string {
	if len(e.Report.Violations) == 0 {
		return "object is not perverse"
	}
	return fmt.Sprintf("object is not perverse: %s", e.Report.Violations[0])
}

// Compute derives the characteristic cycle of obj over strat. The
// multiplicity over a stratum S is the rank of the local system at the
// normalization degree for dim(S); strata with no rank there are omitted.
// Objects failing the perverse check yield a *NotPerverseError.
func Compute(obj *perverse.GradedObject, strat *stratification.Stratification, conv Convention) (CharacteristicCycle, error) {
	p := conv.perversity(strat.AmbientDimension())
	if report := perverse.Check(obj, strat, p); !report.OK() {
		return CharacteristicCycle{}, &NotPerverseError{Report: report}
	}

	ids := strat.IDs()
	mults := make([]int, len(ids))

	// Components are independent per stratum.
	var eg errgroup.Group
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			st, _ := strat.Get(id)
			mults[i] = obj.Rank(conv.normalization(st.Dimension), id)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return CharacteristicCycle{}, err
	}

	var components []ConormalComponent
	for i, id := range ids {
		if mults[i] != 0 {
			components = append(components, ConormalComponent{StratumID: id, Multiplicity: mults[i]})
		}
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].StratumID < components[j].StratumID
	})
	return CharacteristicCycle{components: components}, nil
}
