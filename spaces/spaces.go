// Package spaces provides canonical stratified spaces used as worked examples
// and test fixtures: each constructor returns a validated stratification and
// its intersection-cohomology graded object.
package spaces

import (
	"fmt"

	"stratinv/perverse"
	"stratinv/stratification"
)

// TwoBranchNode is the node curve xy = 0 seen as a space of its own: two
// 1-dimensional branches meeting at a 0-dimensional origin.
func TwoBranchNode() (*stratification.Stratification, *perverse.GradedObject) {
	strat := mustBuild(1, []stratification.Stratum{
		{ID: "origin", Dimension: 0},
		{ID: "branch_x", Dimension: 1, Closure: []string{"origin"}},
		{ID: "branch_y", Dimension: 1, Closure: []string{"origin"}},
	})
	return strat, perverse.ICObject(strat)
}

// NodeInPlane is the node xy = 0 inside the plane: the origin, the two
// punctured branches, and the smooth complement.
func NodeInPlane() (*stratification.Stratification, *perverse.GradedObject) {
	strat := mustBuild(2, []stratification.Stratum{
		{ID: "origin", Dimension: 0},
		{ID: "branch_x", Dimension: 1, Closure: []string{"origin"}},
		{ID: "branch_y", Dimension: 1, Closure: []string{"origin"}},
		{ID: "smooth", Dimension: 2, Closure: []string{"origin", "branch_x", "branch_y"}},
	})
	return strat, perverse.ICObject(strat)
}

// ConeOverCircle is the cone over S^1: apex, base circle, open cone.
func ConeOverCircle() (*stratification.Stratification, *perverse.GradedObject) {
	strat := mustBuild(2, []stratification.Stratum{
		{ID: "apex", Dimension: 0},
		{ID: "base_circle", Dimension: 1, Closure: []string{"apex"}},
		{ID: "cone_interior", Dimension: 2, Closure: []string{"apex", "base_circle"}},
	})
	return strat, perverse.ICObject(strat)
}

// WhitneyUmbrella is the pinch point surface embedded in three-space: pinch
// point, double line, two sheets. Every stratum has positive codimension, so
// the graded object is spelled out cell by cell at each stratum's
// normalization degree rather than derived from maximal strata.
func WhitneyUmbrella() (*stratification.Stratification, *perverse.GradedObject) {
	strat := mustBuild(3, []stratification.Stratum{
		{ID: "pinch", Dimension: 0},
		{ID: "double_line", Dimension: 1, Closure: []string{"pinch"}},
		{ID: "sheets", Dimension: 2, Closure: []string{"pinch", "double_line"}},
	})
	obj := perverse.New(
		perverse.Entry{Degree: -2, StratumID: "sheets", Rank: 1},
		perverse.Entry{Degree: -1, StratumID: "double_line", Rank: 1},
		perverse.Entry{Degree: 0, StratumID: "pinch", Rank: 1},
	)
	return strat, obj
}

// mustBuild panics on validation failure; the fixtures here are constants and
// a failure is a programming error in this package.
func mustBuild(ambient int, strata []stratification.Stratum) *stratification.Stratification {
	strat, err := stratification.Build(ambient, strata)
	if err != nil {
		panic(fmt.Sprintf("spaces: invalid fixture: %v", err))
	}
	return strat
}
