package stratification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeStrata() []Stratum {
	return []Stratum{
		{ID: "origin", Dimension: 0},
		{ID: "branch_x", Dimension: 1, Closure: []string{"origin"}},
		{ID: "branch_y", Dimension: 1, Closure: []string{"origin"}},
	}
}

func TestBuildNode(t *testing.T) {
	strat, err := Build(1, nodeStrata())
	require.NoError(t, err)

	assert.Equal(t, 1, strat.AmbientDimension())
	assert.Equal(t, 3, strat.Len())
	assert.Equal(t, []string{"branch_x", "branch_y", "origin"}, strat.IDs())

	assert.True(t, strat.InClosure("branch_x", "origin"))
	assert.False(t, strat.InClosure("origin", "branch_x"))

	codim, ok := strat.Codimension("origin")
	require.True(t, ok)
	assert.Equal(t, 1, codim)

	maximal := strat.MaximalStrata()
	require.Len(t, maximal, 2)
	assert.Equal(t, "branch_x", maximal[0].ID)
	assert.Equal(t, "branch_y", maximal[1].ID)

	singular := strat.SingularStrata()
	require.Len(t, singular, 1)
	assert.Equal(t, "origin", singular[0].ID)
}

func TestBuildDuplicateID(t *testing.T) {
	_, err := Build(1, []Stratum{
		{ID: "a", Dimension: 0},
		{ID: "a", Dimension: 1},
	})
	requireCode(t, err, CodeDuplicateID)
}

func TestBuildAmbientExceeded(t *testing.T) {
	_, err := Build(1, []Stratum{{ID: "a", Dimension: 2}})
	requireCode(t, err, CodeAmbientExceeded)
}

func TestBuildNegativeDimension(t *testing.T) {
	_, err := Build(1, []Stratum{{ID: "a", Dimension: -1}})
	requireCode(t, err, CodeNegativeDimension)
}

func TestBuildUnknownReference(t *testing.T) {
	_, err := Build(1, []Stratum{
		{ID: "a", Dimension: 1, Closure: []string{"ghost"}},
	})
	verr := requireCode(t, err, CodeUnknownReference)
	assert.Equal(t, "a", verr.From)
	assert.Equal(t, "ghost", verr.To)
}

func TestBuildSelfClosure(t *testing.T) {
	_, err := Build(1, []Stratum{{ID: "a", Dimension: 1, Closure: []string{"a"}}})
	requireCode(t, err, CodeSelfClosure)
}

func TestBuildCycleDetected(t *testing.T) {
	// Cycles are reported as cycles, not as the dimension violation every
	// cycle necessarily contains.
	_, err := Build(2, []Stratum{
		{ID: "a", Dimension: 1, Closure: []string{"b"}},
		{ID: "b", Dimension: 1, Closure: []string{"a"}},
	})
	requireCode(t, err, CodeCycle)
}

func TestBuildDimensionViolation(t *testing.T) {
	// A closure edge from a dimension-1 stratum to a dimension-2 stratum.
	_, err := Build(2, []Stratum{
		{ID: "curve", Dimension: 1, Closure: []string{"surface"}},
		{ID: "surface", Dimension: 2},
	})
	verr := requireCode(t, err, CodeDimension)
	assert.Equal(t, "curve", verr.From)
	assert.Equal(t, "surface", verr.To)
}

func TestBuildEqualDimensionViolation(t *testing.T) {
	_, err := Build(2, []Stratum{
		{ID: "a", Dimension: 1, Closure: []string{"b"}},
		{ID: "b", Dimension: 1},
	})
	requireCode(t, err, CodeDimension)
}

func TestBuildFrontierViolation(t *testing.T) {
	// surface's closure contains curve, curve's closure contains point, but
	// surface does not declare point.
	_, err := Build(2, []Stratum{
		{ID: "point", Dimension: 0},
		{ID: "curve", Dimension: 1, Closure: []string{"point"}},
		{ID: "surface", Dimension: 2, Closure: []string{"curve"}},
	})
	verr := requireCode(t, err, CodeFrontier)
	assert.Equal(t, "surface", verr.From)
	assert.Equal(t, "point", verr.To)
	assert.Equal(t, "curve", verr.Via)
}

func TestBuildFrontierTransitivity(t *testing.T) {
	strat, err := Build(3, []Stratum{
		{ID: "point", Dimension: 0},
		{ID: "curve", Dimension: 1, Closure: []string{"point"}},
		{ID: "surface", Dimension: 2, Closure: []string{"curve", "point"}},
		{ID: "volume", Dimension: 3, Closure: []string{"surface", "curve", "point"}},
	})
	require.NoError(t, err)

	// If T is in the closure of S and U in the closure of T, U must be in
	// the closure of S.
	for _, s := range strat.IDs() {
		for _, u := range strat.IDs() {
			for _, v := range strat.IDs() {
				if strat.InClosure(s, u) && strat.InClosure(u, v) {
					assert.True(t, strat.InClosure(s, v), "closure(%s) must contain %s", s, v)
				}
			}
		}
	}
}

func TestDimensionMonotonicity(t *testing.T) {
	strat, err := Build(2, []Stratum{
		{ID: "apex", Dimension: 0},
		{ID: "base_circle", Dimension: 1, Closure: []string{"apex"}},
		{ID: "cone_interior", Dimension: 2, Closure: []string{"apex", "base_circle"}},
	})
	require.NoError(t, err)

	for _, from := range strat.IDs() {
		s, _ := strat.Get(from)
		for _, to := range s.Closure {
			u, ok := strat.Get(to)
			require.True(t, ok)
			assert.Less(t, u.Dimension, s.Dimension)
		}
	}
}

func TestGetCopiesClosure(t *testing.T) {
	strat, err := Build(1, nodeStrata())
	require.NoError(t, err)

	st, ok := strat.Get("branch_x")
	require.True(t, ok)
	st.Closure[0] = "mutated"

	again, _ := strat.Get("branch_x")
	assert.Equal(t, []string{"origin"}, again.Closure)
}

func requireCode(t *testing.T, err error, code Code) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "error %v is not a ValidationError", err)
	require.Equal(t, code, verr.Code)
	return verr
}
