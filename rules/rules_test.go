package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/rules"
	"github.com/uir-sat/uirsat/unionfind"
)

func newGraph() *egraph.Graph[analysis.ProductData, analysis.Product] {
	return egraph.New[analysis.ProductData, analysis.Product]()
}

func TestConstantFoldingAdd(t *testing.T) {
	g := newGraph()

	a := g.Add(lang.NewConstant(2))
	b := g.Add(lang.NewConstant(3))
	addID := g.Add(lang.NewExtension("add", []unionfind.Id{a, b}))

	rules.ConstantFolding[analysis.ProductData]{}.Apply(g)

	five := g.Add(lang.NewConstant(5))
	require.Equal(t, g.Find(five), g.Find(addID))
}

func TestConstantFoldingSkipsDivByZero(t *testing.T) {
	g := newGraph()

	a := g.Add(lang.NewConstant(7))
	zero := g.Add(lang.NewConstant(0))
	divID := g.Add(lang.NewExtension("div", []unionfind.Id{a, zero}))

	rules.ConstantFolding[analysis.ProductData]{}.Apply(g)

	require.Equal(t, divID, g.Find(divID))
}

func TestAlgebraicSimplificationAddZero(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	zero := g.Add(lang.NewConstant(0))
	addID := g.Add(lang.NewExtension("add", []unionfind.Id{x, zero}))

	rules.AlgebraicSimplification[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(x), g.Find(addID))
}

func TestAlgebraicSimplificationSubSelf(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	subID := g.Add(lang.NewExtension("sub", []unionfind.Id{x, x}))

	rules.AlgebraicSimplification[analysis.ProductData]{}.Apply(g)

	zero := g.Add(lang.NewConstant(0))
	require.Equal(t, g.Find(zero), g.Find(subID))
}

func TestStrengthReductionMulPowerOfTwo(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	eight := g.Add(lang.NewConstant(8))
	mulID := g.Add(lang.NewExtension("mul", []unionfind.Id{x, eight}))

	rules.StrengthReduction[analysis.ProductData]{}.Apply(g)

	three := g.Add(lang.NewConstant(3))
	shlID := g.Add(lang.NewExtension("shl", []unionfind.Id{x, three}))
	require.Equal(t, g.Find(shlID), g.Find(mulID))
}

func TestStrengthReductionIgnoresNonPowerOfTwo(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	three := g.Add(lang.NewConstant(3))
	mulID := g.Add(lang.NewExtension("mul", []unionfind.Id{x, three}))

	rules.StrengthReduction[analysis.ProductData]{}.Apply(g)

	require.Equal(t, mulID, g.Find(mulID))
}

func TestPeepholeAddSelf(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	addID := g.Add(lang.NewExtension("add", []unionfind.Id{x, x}))

	rules.Peephole[analysis.ProductData]{}.Apply(g)

	two := g.Add(lang.NewConstant(2))
	mulID := g.Add(lang.NewExtension("mul", []unionfind.Id{x, two}))
	require.Equal(t, g.Find(mulID), g.Find(addID))
}

func TestTrapSimplificationCollapsesNesting(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	inner := g.Add(lang.NewTrap(x))
	outer := g.Add(lang.NewTrap(inner))

	rules.TrapSimplification[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(inner), g.Find(outer))
}

func TestMetaSimplificationCollapsesNesting(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	inner := g.Add(lang.NewMeta(x))
	outer := g.Add(lang.NewMeta(inner))

	rules.MetaSimplification[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(inner), g.Find(outer))
}

func TestLifeCycleSimplificationEmptyBoth(t *testing.T) {
	g := newGraph()

	emptySeq := g.Add(lang.NewSeq(nil))
	lc := g.Add(lang.NewLifeCycle(emptySeq, emptySeq))

	rules.LifeCycleSimplification[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(emptySeq), g.Find(lc))
}

func TestSafeEliminationDropsWrapper(t *testing.T) {
	g := newGraph()

	x := g.Add(lang.NewSymbol("x"))
	safeCtx := g.Add(lang.NewSafeContext())
	wrapped := g.Add(lang.NewWithContext(safeCtx, x))

	rules.SafeElimination[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(x), g.Find(wrapped))
}

func TestMapFusionComposesFunctions(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	h := g.Add(lang.NewSymbol("h"))
	x := g.Add(lang.NewSymbol("x"))

	inner := g.Add(lang.NewMap(h, x))
	outer := g.Add(lang.NewMap(f, inner))

	rules.MapFusion[analysis.ProductData]{}.Apply(g)

	composed := g.Add(lang.NewCompose(f, h))
	fused := g.Add(lang.NewMap(composed, x))
	require.Equal(t, g.Find(fused), g.Find(outer))
}

func TestFilterMapFusionProducesExtension(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	p := g.Add(lang.NewSymbol("p"))
	x := g.Add(lang.NewSymbol("x"))

	filtered := g.Add(lang.NewFilter(p, x))
	mapped := g.Add(lang.NewMap(f, filtered))

	rules.FilterMapFusion[analysis.ProductData]{}.Apply(g)

	fm := g.Add(lang.NewExtension("filter_map", []unionfind.Id{f, p, x}))
	require.Equal(t, g.Find(fm), g.Find(mapped))
}

func TestMapReduceFusionProducesExtension(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	h := g.Add(lang.NewSymbol("h"))
	init := g.Add(lang.NewConstant(0))
	x := g.Add(lang.NewSymbol("x"))

	mapped := g.Add(lang.NewMap(f, x))
	reduced := g.Add(lang.NewReduce(h, init, mapped))

	rules.MapReduceFusion[analysis.ProductData]{}.Apply(g)

	fused := g.Add(lang.NewExtension("loop_map_reduce", []unionfind.Id{f, h, init, x}))
	require.Equal(t, g.Find(fused), g.Find(reduced))
}

func TestLoopTilingExposesTiledAlternative(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	x := g.Add(lang.NewSymbol("x"))
	mapped := g.Add(lang.NewMap(f, x))

	rules.LoopTiling[analysis.ProductData]{}.Apply(g)

	tiled := g.Add(lang.NewTiledMap(32, f, x))
	require.Equal(t, g.Find(tiled), g.Find(mapped))
}

func TestMapToLoopLowersAllThreeCombinators(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	p := g.Add(lang.NewSymbol("p"))
	init := g.Add(lang.NewConstant(0))
	x := g.Add(lang.NewSymbol("x"))

	mapped := g.Add(lang.NewMap(f, x))
	filtered := g.Add(lang.NewFilter(p, x))
	reduced := g.Add(lang.NewReduce(f, init, x))

	rules.MapToLoop[analysis.ProductData]{}.Apply(g)

	loopMap := g.Add(lang.NewExtension("loop_map", []unionfind.Id{f, x}))
	loopFilter := g.Add(lang.NewExtension("loop_filter", []unionfind.Id{p, x}))
	loopReduce := g.Add(lang.NewExtension("loop_reduce", []unionfind.Id{f, init, x}))

	require.Equal(t, g.Find(loopMap), g.Find(mapped))
	require.Equal(t, g.Find(loopFilter), g.Find(filtered))
	require.Equal(t, g.Find(loopReduce), g.Find(reduced))
}

func TestContextSimplificationCollapsesIdenticalContext(t *testing.T) {
	g := newGraph()

	ctx := g.Add(lang.NewGpuContext())
	x := g.Add(lang.NewSymbol("x"))
	inner := g.Add(lang.NewWithContext(ctx, x))
	outer := g.Add(lang.NewWithContext(ctx, inner))

	rules.ContextSimplification[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(inner), g.Find(outer))
}

func TestUniversalSemanticOptimizationFollowsUnionedContexts(t *testing.T) {
	g := newGraph()

	ctx1 := g.Add(lang.NewGpuContext())
	ctx2 := g.Add(lang.NewSpatialContext())
	x := g.Add(lang.NewSymbol("x"))

	inner := g.Add(lang.NewWithContext(ctx2, x))
	outer := g.Add(lang.NewWithContext(ctx1, inner))

	g.Union(ctx1, ctx2)

	rules.UniversalSemanticOptimization[analysis.ProductData]{}.Apply(g)

	require.Equal(t, g.Find(inner), g.Find(outer))
}

func TestRegistryByCategoryFiltersRegisteredRules(t *testing.T) {
	reg := rules.NewRegistry[analysis.ProductData]()
	reg.Register(rules.Algebraic, rules.ConstantFolding[analysis.ProductData]{})
	reg.Register(rules.Architectural, rules.MapFusion[analysis.ProductData]{})

	algebraic := reg.ByCategory(rules.Algebraic)
	require.Len(t, algebraic, 1)
	require.Equal(t, "constant-folding", algebraic[0].Name())

	require.Len(t, reg.All(), 2)
}
