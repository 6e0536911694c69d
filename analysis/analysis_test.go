package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/lang"
)

func TestEffectJoinAbsorption(t *testing.T) {
	require.Equal(t, lang.Diverge, lang.Diverge.Join(lang.Pure))
	require.Equal(t, lang.Panic, lang.Panic.Join(lang.ReadOnly))
	require.Equal(t, lang.ReadWrite, lang.ReadOnly.Join(lang.WriteOnly))
}

func TestConstraintSetMergeFirstWriterWins(t *testing.T) {
	owned := lang.Owned
	a := analysis.ConstraintSet{}
	b := analysis.ConstraintSet{Ownership: &owned}

	changed := a.Merge(b)
	require.True(t, changed)
	require.NotNil(t, a.Ownership)
	require.Equal(t, lang.Owned, *a.Ownership)

	// Merging again is a no-op: already has an ownership.
	changed2 := a.Merge(b)
	require.False(t, changed2)
}

func TestConstraintSetConflictDetection(t *testing.T) {
	owned := lang.Owned
	shared := lang.Shared
	a := analysis.ConstraintSet{Ownership: &owned}
	b := analysis.ConstraintSet{Ownership: &shared}

	require.False(t, a.CanMerge(b))
	require.NotEmpty(t, a.CheckConflict(b))
}

func TestConcretizationMergeLayoutWins(t *testing.T) {
	a := analysis.ConcretizationData{}
	b := analysis.ConcretizationData{Layout: analysis.LayoutSoA}

	changed := a.Merge(b)
	require.True(t, changed)
	require.Equal(t, analysis.LayoutSoA, a.Layout)
}

func TestDebugDataDedupsLocations(t *testing.T) {
	d := analysis.DebugData{}
	loc := analysis.Loc{File: "x.ir", Line: 1, Col: 1}

	a := analysis.DebugAnalysis{}
	a.OnAdd(&d, loc)
	a.OnAdd(&d, loc)

	require.Len(t, d.Locs, 1)
}

func TestProductIsCompatibleDelegatesToConstraint(t *testing.T) {
	owned := lang.Owned
	shared := lang.Shared
	p := analysis.Product{}

	a := analysis.ProductData{Constraint: analysis.ConstraintSet{Ownership: &owned}}
	b := analysis.ProductData{Constraint: analysis.ConstraintSet{Ownership: &shared}}

	require.False(t, p.IsCompatible(a, b))
}
