package charcycle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"stratinv/stratification"
)

// ValuationMap sends the generators of conormal components into the valuation
// lattice: a monotone, additive stand-in for "log of absolute value". Every
// generator of a component over S — the stratum itself and each member of its
// closure — must valuate to a lattice point of a fixed dimension.
type ValuationMap interface {
	// LatticeDim is the dimension of the valuation lattice.
	LatticeDim() int
	// Valuate returns the lattice coordinates of a stratum generator.
	Valuate(stratumID string) ([]int, error)
	// Signature identifies the valuation for content-addressed caching:
	// equal signatures must imply identical Valuate results.
	Signature() string
}

// DimensionValuation is the canonical valuation: a stratum valuates to the
// point (dim, codim) in the rank-two lattice. Monotone in dimension and
// additive across the dim/codim split.
type DimensionValuation struct {
	strat *stratification.Stratification
}

// NewDimensionValuation builds the canonical valuation over strat.
func NewDimensionValuation(strat *stratification.Stratification) DimensionValuation {
	return DimensionValuation{strat: strat}
}

// LatticeDim returns 2.
func (v DimensionValuation) LatticeDim() int { return 2 }

// Valuate returns (dim, codim) for the identified stratum.
func (v DimensionValuation) Valuate(stratumID string) ([]int, error) {
	st, ok := v.strat.Get(stratumID)
	if !ok {
		return nil, fmt.Errorf("valuation: unknown stratum %q", stratumID)
	}
	return []int{st.Dimension, v.strat.AmbientDimension() - st.Dimension}, nil
}

// Signature encodes the valuation family and the (id, dim) table it reads
// from, which together determine every Valuate result.
func (v DimensionValuation) Signature() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dimval:%d", v.strat.AmbientDimension())
	for _, id := range v.strat.IDs() {
		st, _ := v.strat.Get(id)
		fmt.Fprintf(&sb, ";%s=%d", id, st.Dimension)
	}
	return sb.String()
}

// Face is one weighted cell of a tropical cycle. Vertices index into the
// owning cycle's vertex table and are sorted.
type Face struct {
	Vertices []int
	Weight   int
}

// TropicalCycle is a weighted polyhedral complex in the valuation lattice:
// deduplicated lattice vertices and weighted faces over them. Immutable once
// produced.
type TropicalCycle struct {
	vertices [][]int
	faces    []Face
}

// Vertices returns a copy of the vertex table.
func (t TropicalCycle) Vertices() [][]int {
	out := make([][]int, len(t.vertices))
	for i, v := range t.vertices {
		c := make([]int, len(v))
		copy(c, v)
		out[i] = c
	}
	return out
}

// Faces returns a copy of the weighted faces.
func (t TropicalCycle) Faces() []Face {
	out := make([]Face, len(t.faces))
	for i, f := range t.faces {
		idx := make([]int, len(f.Vertices))
		copy(idx, f.Vertices)
		out[i] = Face{Vertices: idx, Weight: f.Weight}
	}
	return out
}

// cone is the valuated image of one conormal component before merging.
type cone struct {
	points [][]int
	weight int
}

// Tropicalize applies the valuation to every generator of every conormal
// component of cc, producing polyhedral cones, then merges cones sharing a
// face signature into a single complex. Multiplicities survive as face
// weights; cones landing on the same face accumulate.
func Tropicalize(cc CharacteristicCycle, strat *stratification.Stratification, val ValuationMap) (TropicalCycle, error) {
	comps := cc.Components()
	cones := make([]cone, len(comps))

	// Valuation is independent per component.
	var eg errgroup.Group
	for i, comp := range comps {
		i, comp := i, comp
		eg.Go(func() error {
			st, ok := strat.Get(comp.StratumID)
			if !ok {
				return fmt.Errorf("tropicalize: component over unknown stratum %q", comp.StratumID)
			}
			generators := append([]string{st.ID}, st.Closure...)
			points := make([][]int, 0, len(generators))
			for _, gen := range generators {
				pt, err := val.Valuate(gen)
				if err != nil {
					return err
				}
				if len(pt) != val.LatticeDim() {
					return fmt.Errorf("tropicalize: generator %q valuates to dimension %d, lattice has %d", gen, len(pt), val.LatticeDim())
				}
				points = append(points, pt)
			}
			cones[i] = cone{points: points, weight: comp.Multiplicity}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return TropicalCycle{}, err
	}

	// Sequential merge: dedupe vertices, accumulate weights of faces that
	// share a signature.
	var vertices [][]int
	vertexIndex := make(map[string]int)
	faceWeight := make(map[string]int)
	var faceOrder []string
	faceVerts := make(map[string][]int)

	for _, c := range cones {
		indices := make([]int, 0, len(c.points))
		seen := make(map[int]bool)
		for _, pt := range c.points {
			key := pointKey(pt)
			idx, ok := vertexIndex[key]
			if !ok {
				idx = len(vertices)
				vertexIndex[key] = idx
				vertices = append(vertices, pt)
			}
			if !seen[idx] {
				seen[idx] = true
				indices = append(indices, idx)
			}
		}
		sort.Ints(indices)
		sig := faceKey(indices)
		if _, ok := faceWeight[sig]; !ok {
			faceOrder = append(faceOrder, sig)
			faceVerts[sig] = indices
		}
		faceWeight[sig] += c.weight
	}

	faces := make([]Face, 0, len(faceOrder))
	for _, sig := range faceOrder {
		faces = append(faces, Face{Vertices: faceVerts[sig], Weight: faceWeight[sig]})
	}
	return TropicalCycle{vertices: vertices, faces: faces}, nil
}

// StableIntersection computes the pairwise stable intersection of two
// tropical cycles: faces meeting in a common vertex set produce a face over
// that set with multiplicative weight.
func StableIntersection(a, b TropicalCycle) TropicalCycle {
	var vertices [][]int
	vertexIndex := make(map[string]int)
	intern := func(pt []int) int {
		key := pointKey(pt)
		if idx, ok := vertexIndex[key]; ok {
			return idx
		}
		idx := len(vertices)
		vertexIndex[key] = idx
		vertices = append(vertices, pt)
		return idx
	}

	faceWeight := make(map[string]int)
	var faceOrder []string
	faceVerts := make(map[string][]int)

	for _, fa := range a.faces {
		aPoints := make(map[string]bool, len(fa.Vertices))
		for _, vi := range fa.Vertices {
			aPoints[pointKey(a.vertices[vi])] = true
		}
		for _, fb := range b.faces {
			var common []int
			for _, vi := range fb.Vertices {
				pt := b.vertices[vi]
				if aPoints[pointKey(pt)] {
					common = append(common, intern(pt))
				}
			}
			if len(common) == 0 {
				continue
			}
			sort.Ints(common)
			sig := faceKey(common)
			if _, ok := faceWeight[sig]; !ok {
				faceOrder = append(faceOrder, sig)
				faceVerts[sig] = common
			}
			faceWeight[sig] += fa.Weight * fb.Weight
		}
	}

	faces := make([]Face, 0, len(faceOrder))
	for _, sig := range faceOrder {
		faces = append(faces, Face{Vertices: faceVerts[sig], Weight: faceWeight[sig]})
	}
	return TropicalCycle{vertices: vertices, faces: faces}
}

func pointKey(pt []int) string {
	parts := make([]string, len(pt))
	for i, c := range pt {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func faceKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "|")
}
