package charcycle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratinv/perverse"
	"stratinv/stratification"
)

func nodeTropical(t *testing.T) (CharacteristicCycle, TropicalCycle, *stratification.Stratification) {
	t.Helper()
	strat := twoBranchNode(t)
	cc, err := Compute(perverse.ICObject(strat), strat, Convention{})
	require.NoError(t, err)
	tc, err := Tropicalize(cc, strat, NewDimensionValuation(strat))
	require.NoError(t, err)
	return cc, tc, strat
}

func TestTropicalizeNode(t *testing.T) {
	_, tc, _ := nodeTropical(t)

	// Both branch components valuate to the cone over {(1,0), (0,1)} and
	// merge into a single face of weight 2.
	want := [][]int{{1, 0}, {0, 1}}
	if diff := cmp.Diff(want, tc.Vertices()); diff != "" {
		t.Fatalf("vertices mismatch (-want +got):\n%s", diff)
	}

	faces := tc.Faces()
	require.Len(t, faces, 1)
	assert.Equal(t, []int{0, 1}, faces[0].Vertices)
	assert.Equal(t, 2, faces[0].Weight)
}

func TestKashiwaraEquality(t *testing.T) {
	cc, tc, _ := nodeTropical(t)
	assert.Equal(t, Degree(cc), TropicalDegree(tc))
	assert.Equal(t, 2, TropicalDegree(tc))
}

func TestKashiwaraEqualityAcrossSpaces(t *testing.T) {
	cases := []struct {
		name    string
		ambient int
		strata  []stratification.Stratum
		entries []perverse.Entry
		degree  int
	}{
		{
			name:    "cone over circle",
			ambient: 2,
			strata: []stratification.Stratum{
				{ID: "apex", Dimension: 0},
				{ID: "base_circle", Dimension: 1, Closure: []string{"apex"}},
				{ID: "cone_interior", Dimension: 2, Closure: []string{"apex", "base_circle"}},
			},
			entries: []perverse.Entry{
				{Degree: -2, StratumID: "cone_interior", Rank: 1},
			},
			degree: 1,
		},
		{
			name:    "whitney umbrella",
			ambient: 3,
			strata: []stratification.Stratum{
				{ID: "pinch", Dimension: 0},
				{ID: "double_line", Dimension: 1, Closure: []string{"pinch"}},
				{ID: "sheets", Dimension: 2, Closure: []string{"pinch", "double_line"}},
			},
			entries: []perverse.Entry{
				{Degree: -2, StratumID: "sheets", Rank: 1},
				{Degree: -1, StratumID: "double_line", Rank: 1},
				{Degree: 0, StratumID: "pinch", Rank: 1},
			},
			degree: 3,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			strat, err := stratification.Build(tc.ambient, tc.strata)
			require.NoError(t, err)
			obj := perverse.New(tc.entries...)
			cc, err := Compute(obj, strat, Convention{})
			require.NoError(t, err)
			trop, err := Tropicalize(cc, strat, NewDimensionValuation(strat))
			require.NoError(t, err)

			assert.Equal(t, tc.degree, Degree(cc))
			assert.Equal(t, Degree(cc), TropicalDegree(trop))
			assert.Equal(t, Degree(cc), EulerCharacteristic(obj, strat, Convention{}))
		})
	}
}

func TestTropicalizeUnknownValuation(t *testing.T) {
	strat := twoBranchNode(t)
	cc, err := Compute(perverse.ICObject(strat), strat, Convention{})
	require.NoError(t, err)

	other, err := stratification.Build(1, []stratification.Stratum{{ID: "elsewhere", Dimension: 0}})
	require.NoError(t, err)

	_, err = Tropicalize(cc, strat, NewDimensionValuation(other))
	require.Error(t, err)
}

func TestStableIntersection(t *testing.T) {
	_, tc, _ := nodeTropical(t)

	self := StableIntersection(tc, tc)
	faces := self.Faces()
	require.Len(t, faces, 1)
	// Weight multiplies: 2 * 2.
	assert.Equal(t, 4, faces[0].Weight)
	assert.Equal(t, TropicalDegree(tc)*TropicalDegree(tc), TropicalDegree(self))
}

func TestStableIntersectionDisjoint(t *testing.T) {
	a := TropicalCycle{
		vertices: [][]int{{0, 0}},
		faces:    []Face{{Vertices: []int{0}, Weight: 1}},
	}
	b := TropicalCycle{
		vertices: [][]int{{5, 5}},
		faces:    []Face{{Vertices: []int{0}, Weight: 1}},
	}
	out := StableIntersection(a, b)
	assert.Empty(t, out.Faces())
	assert.Zero(t, TropicalDegree(out))
}

func TestFacesAndVerticesAreCopies(t *testing.T) {
	_, tc, _ := nodeTropical(t)
	v := tc.Vertices()
	v[0][0] = 99
	f := tc.Faces()
	f[0].Weight = 99

	assert.Equal(t, 1, tc.Vertices()[0][0])
	assert.Equal(t, 2, tc.Faces()[0].Weight)
}
