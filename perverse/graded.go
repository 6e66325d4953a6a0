// Package perverse carries degree-indexed local data over a stratification and
// decides membership in the perverse subcategory: the support and cosupport
// dimension bounds. "Not perverse" is an expected outcome returned as data,
// never as an error.
package perverse

import (
	"sort"

	"stratinv/stratification"
)

// LocalSystem is the local data attached to one stratum in one cohomological
// degree: a rank and a scalar monodromy multiplier per generator loop.
// Monodromy is recorded, not resolved; an empty slice means trivial monodromy.
type LocalSystem struct {
	Rank      int
	Monodromy []float64
}

// Trivial reports whether every recorded monodromy multiplier is the identity.
func (l LocalSystem) Trivial() bool {
	for _, m := range l.Monodromy {
		if m != 1 {
			return false
		}
	}
	return true
}

// Entry is one (degree, stratum) cell of a graded object.
type Entry struct {
	Degree    int
	StratumID string
	Rank      int
	Monodromy []float64
}

// GradedObject maps cohomological degree to per-stratum local systems. It is
// the engine's stand-in for a constructible complex: constructed once from
// entries and read-only thereafter.
type GradedObject struct {
	layers map[int]map[string]LocalSystem
}

// New assembles a graded object from entries. Duplicate (degree, stratum)
// cells accumulate rank with monodromy concatenated; cells whose accumulated
// rank is zero are dropped, so Support only ever reports nonzero local
// systems. Negative ranks are carried as-is: they fail the perverse scans,
// which is where malformed rank data surfaces.
func New(entries ...Entry) *GradedObject {
	g := &GradedObject{layers: make(map[int]map[string]LocalSystem)}
	for _, e := range entries {
		if e.Rank == 0 {
			continue
		}
		layer := g.layers[e.Degree]
		if layer == nil {
			layer = make(map[string]LocalSystem)
			g.layers[e.Degree] = layer
		}
		ls := layer[e.StratumID]
		ls.Rank += e.Rank
		ls.Monodromy = append(ls.Monodromy, e.Monodromy...)
		layer[e.StratumID] = ls
	}
	for d, layer := range g.layers {
		for id, ls := range layer {
			if ls.Rank == 0 {
				delete(layer, id)
			}
		}
		if len(layer) == 0 {
			delete(g.layers, d)
		}
	}
	return g
}

// Local returns the local system at (degree, stratumID).
func (g *GradedObject) Local(degree int, stratumID string) (LocalSystem, bool) {
	ls, ok := g.layers[degree][stratumID]
	return ls, ok
}

// Rank returns the rank at (degree, stratumID), zero when absent.
func (g *GradedObject) Rank(degree int, stratumID string) int {
	return g.layers[degree][stratumID].Rank
}

// Degrees returns the occupied cohomological degrees in ascending order.
func (g *GradedObject) Degrees() []int {
	out := make([]int, 0, len(g.layers))
	for d := range g.layers {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Support returns the identifiers of strata with nonzero rank at the given
// degree, sorted.
func (g *GradedObject) Support(degree int) []string {
	layer := g.layers[degree]
	out := make([]string, 0, len(layer))
	for id := range layer {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Entries returns the object's cells in canonical (degree, stratum) order.
func (g *GradedObject) Entries() []Entry {
	var out []Entry
	for _, d := range g.Degrees() {
		for _, id := range g.Support(d) {
			ls := g.layers[d][id]
			mono := make([]float64, len(ls.Monodromy))
			copy(mono, ls.Monodromy)
			out = append(out, Entry{Degree: d, StratumID: id, Rank: ls.Rank, Monodromy: mono})
		}
	}
	return out
}

// Shift returns the object shifted by n: the cell at degree d moves to d-n.
func (g *GradedObject) Shift(n int) *GradedObject {
	var entries []Entry
	for _, e := range g.Entries() {
		e.Degree -= n
		entries = append(entries, e)
	}
	return New(entries...)
}

// Dual returns the dualized object: per stratum, the degree-indexed rank
// multiplicities are reversed around that stratum's normalization degree
// -dim(S), so the cell at degree d moves to -2*dim(S)-d. Monodromy multipliers
// are inverted. Applying Dual twice returns an object equal to the original.
func (g *GradedObject) Dual(strat *stratification.Stratification) *GradedObject {
	var entries []Entry
	for _, e := range g.Entries() {
		dim := 0
		if st, ok := strat.Get(e.StratumID); ok {
			dim = st.Dimension
		}
		mono := make([]float64, len(e.Monodromy))
		for i, m := range e.Monodromy {
			if m != 0 {
				mono[i] = 1 / m
			}
		}
		entries = append(entries, Entry{
			Degree:    -2*dim - e.Degree,
			StratumID: e.StratumID,
			Rank:      e.Rank,
			Monodromy: mono,
		})
	}
	return New(entries...)
}

// ConstantObject places a rank-one local system on every maximal stratum at
// degree -shift, the graded shadow of the shifted constant sheaf.
func ConstantObject(strat *stratification.Stratification, shift int) *GradedObject {
	var entries []Entry
	for _, st := range strat.MaximalStrata() {
		entries = append(entries, Entry{Degree: -shift, StratumID: st.ID, Rank: 1})
	}
	return New(entries...)
}

// ICObject places a rank-one local system on every maximal stratum at that
// stratum's perverse normalization degree -dim(S).
func ICObject(strat *stratification.Stratification) *GradedObject {
	var entries []Entry
	for _, st := range strat.MaximalStrata() {
		entries = append(entries, Entry{Degree: -st.Dimension, StratumID: st.ID, Rank: 1})
	}
	return New(entries...)
}
