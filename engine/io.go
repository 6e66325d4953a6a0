package engine

import (
	"stratinv/charcycle"
	"stratinv/perverse"
	"stratinv/spectral"
	"stratinv/stratification"
)

// The types below are the interface contract with presentation and
// persistence collaborators: plain structs mirroring the structured input and
// output descriptions. Serialization format choice stays with the consumer.

// StratumInput describes one stratum of an input stratification.
type StratumInput struct {
	ID               string
	Dimension        int
	ClosureRelations []string
}

// GradedInput describes one (degree, stratum, rank) cell of a graded object.
type GradedInput struct {
	Degree    int
	StratumID string
	Rank      int
}

// CycleOutput is one component of a characteristic cycle.
type CycleOutput struct {
	StratumID    string
	Multiplicity int
}

// FaceOutput is one weighted face of a tropical cycle.
type FaceOutput struct {
	VertexIndices []int
	Weight        int
}

// TropicalOutput is the polyhedral complex of a tropical cycle.
type TropicalOutput struct {
	Vertices [][]int
	Faces    []FaceOutput
}

// TermOutput is one term of a spectral page.
type TermOutput struct {
	P    int
	Q    int
	Rank int
}

// PageOutput is one spectral page.
type PageOutput struct {
	PageNumber int
	Terms      []TermOutput
}

// BuildStratification validates input strata and assembles a Stratification.
func BuildStratification(ambientDimension int, in []StratumInput) (*stratification.Stratification, error) {
	strata := make([]stratification.Stratum, len(in))
	for i, s := range in {
		strata[i] = stratification.Stratum{
			ID:        s.ID,
			Dimension: s.Dimension,
			Closure:   s.ClosureRelations,
		}
	}
	return stratification.Build(ambientDimension, strata)
}

// BuildGradedObject assembles a GradedObject from input cells.
func BuildGradedObject(in []GradedInput) *perverse.GradedObject {
	entries := make([]perverse.Entry, len(in))
	for i, c := range in {
		entries[i] = perverse.Entry{Degree: c.Degree, StratumID: c.StratumID, Rank: c.Rank}
	}
	return perverse.New(entries...)
}

// CycleOutputs renders a characteristic cycle for consumers.
func CycleOutputs(cc charcycle.CharacteristicCycle) []CycleOutput {
	comps := cc.Components()
	out := make([]CycleOutput, len(comps))
	for i, c := range comps {
		out[i] = CycleOutput{StratumID: c.StratumID, Multiplicity: c.Multiplicity}
	}
	return out
}

// TropicalOutputOf renders a tropical cycle for consumers.
func TropicalOutputOf(tc charcycle.TropicalCycle) TropicalOutput {
	faces := tc.Faces()
	out := TropicalOutput{Vertices: tc.Vertices(), Faces: make([]FaceOutput, len(faces))}
	for i, f := range faces {
		out.Faces[i] = FaceOutput{VertexIndices: f.Vertices, Weight: f.Weight}
	}
	return out
}

// PageOutputOf renders a spectral page for consumers.
func PageOutputOf(p *spectral.Page) PageOutput {
	occupied := p.Occupied()
	out := PageOutput{PageNumber: p.Number(), Terms: make([]TermOutput, len(occupied))}
	for i, b := range occupied {
		out.Terms[i] = TermOutput{P: b.P, Q: b.Q, Rank: p.Term(b).Rank}
	}
	return out
}
