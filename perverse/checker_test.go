package perverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICObjectIsPerverse(t *testing.T) {
	strat := twoBranchNode(t)
	ic := ICObject(strat)
	p := Middle(strat.AmbientDimension())

	assert.True(t, CheckSupport(ic, strat, p).OK())
	assert.True(t, CheckCosupport(ic, strat, p).OK())
	assert.True(t, IsPerverse(ic, strat, p))
}

func TestSupportViolationIsReported(t *testing.T) {
	strat := twoBranchNode(t)
	// Rank on a 1-dimensional stratum at degree 0: bound is 0.
	g := New(Entry{Degree: 0, StratumID: "branch_x", Rank: 1})
	p := Middle(strat.AmbientDimension())

	report := CheckSupport(g, strat, p)
	require.False(t, report.OK())
	require.Len(t, report.Violations, 1)

	v := report.Violations[0]
	assert.Equal(t, 0, v.Degree)
	assert.Equal(t, "branch_x", v.StratumID)
	assert.Equal(t, 1, v.Dim)
	assert.Equal(t, 0, v.Bound)
	assert.False(t, v.Cosupport)

	assert.False(t, IsPerverse(g, strat, p))
}

func TestCosupportViolationIsReported(t *testing.T) {
	strat := twoBranchNode(t)
	// The shifted branch passes the support scan but its dual lands at
	// degree 0 and fails there.
	g := New(Entry{Degree: -2, StratumID: "branch_x", Rank: 1})
	p := Middle(strat.AmbientDimension())

	assert.True(t, CheckSupport(g, strat, p).OK())

	report := CheckCosupport(g, strat, p)
	require.False(t, report.OK())
	require.Len(t, report.Violations, 1)
	assert.True(t, report.Violations[0].Cosupport)
	assert.Equal(t, 0, report.Violations[0].Degree)

	assert.False(t, IsPerverse(g, strat, p))
}

func TestCheckCombinesBothScans(t *testing.T) {
	strat := twoBranchNode(t)
	g := New(
		Entry{Degree: 0, StratumID: "branch_x", Rank: 1},  // support violation
		Entry{Degree: -2, StratumID: "branch_y", Rank: 1}, // cosupport violation
	)
	report := Check(g, strat, Middle(strat.AmbientDimension()))
	require.Len(t, report.Violations, 2)
}

func TestSkyscraperAtOriginIsPerverse(t *testing.T) {
	strat := twoBranchNode(t)
	g := New(Entry{Degree: 0, StratumID: "origin", Rank: 3})
	assert.True(t, IsPerverse(g, strat, Middle(strat.AmbientDimension())))
}

func TestNegativeRankCellViolates(t *testing.T) {
	strat := twoBranchNode(t)
	// Degree -1 on a 1-dimensional stratum is within the support bound, so
	// only the rank itself can be at fault.
	g := New(Entry{Degree: -1, StratumID: "branch_x", Rank: -1})
	p := Middle(strat.AmbientDimension())

	report := CheckSupport(g, strat, p)
	require.False(t, report.OK())

	v := report.Violations[0]
	assert.Equal(t, -1, v.Degree)
	assert.Equal(t, "branch_x", v.StratumID)
	assert.Equal(t, -1, v.Rank)
	assert.Contains(t, v.String(), "negative rank")

	assert.False(t, IsPerverse(g, strat, p))
}

func TestUnknownStratumCellViolates(t *testing.T) {
	strat := twoBranchNode(t)
	g := New(Entry{Degree: -1, StratumID: "ghost", Rank: 1})
	report := CheckSupport(g, strat, Middle(strat.AmbientDimension()))
	require.False(t, report.OK())
	assert.Equal(t, "ghost", report.Violations[0].StratumID)
}
