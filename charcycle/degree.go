package charcycle

import (
	"stratinv/perverse"
	"stratinv/stratification"
)

// Degree returns the degree of a characteristic cycle: the sum over
// components of multiplicity times the local intersection number with the
// zero section, which the package convention normalizes to +1.
func Degree(cc CharacteristicCycle) int {
	total := 0
	for _, comp := range cc.components {
		total += comp.Multiplicity
	}
	return total
}

// TropicalDegree returns the degree of a tropical cycle, computed
// combinatorially as the sum of its face weights. For a cycle produced by
// Tropicalize it equals Degree of the source cycle exactly.
func TropicalDegree(t TropicalCycle) int {
	total := 0
	for _, f := range t.faces {
		total += f.Weight
	}
	return total
}

// EulerCharacteristic computes the alternating sum of ranks of obj with the
// perverse normalization absorbed: a cell at (degree i, stratum S) contributes
// (-1)^(i - n(dim S)) times its rank, where n is the normalization degree.
// For cycles produced by Compute this equals Degree of the cycle.
func EulerCharacteristic(obj *perverse.GradedObject, strat *stratification.Stratification, conv Convention) int {
	total := 0
	for _, e := range obj.Entries() {
		st, ok := strat.Get(e.StratumID)
		if !ok {
			continue
		}
		offset := e.Degree - conv.normalization(st.Dimension)
		sign := 1
		if offset%2 != 0 {
			sign = -1
		}
		total += sign * e.Rank
	}
	return total
}
