package extractor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/extractor"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

func newGraph() *egraph.Graph[analysis.ProductData, analysis.Product] {
	return egraph.New[analysis.ProductData, analysis.Product]()
}

func TestExtractorPicksCheapestOfUnionedAlternatives(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	x := g.Add(lang.NewSymbol("x"))
	mapID := g.Add(lang.NewMap(f, x))
	vecID := g.Add(lang.NewVectorizedMap(8, f, x))
	g.Union(mapID, vecID)

	ex := extractor.New[analysis.ProductData](g, extractor.JSCostModel{})

	node, ok := ex.GetBestNode(mapID)
	require.True(t, ok)
	require.Equal(t, lang.VectorizedMap, node.Op)

	tree, err := ex.Extract(mapID)
	require.NoError(t, err)
	require.Equal(t, lang.VectorizedMap, tree.Op)
	require.Len(t, tree.Children, 2)
}

func TestExtractorPrefersLoopLoweringWhenModelPrefersIt(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	x := g.Add(lang.NewSymbol("x"))
	mapID := g.Add(lang.NewMap(f, x))
	loopID := g.Add(lang.NewExtension("loop_map", []unionfind.Id{f, x}))
	g.Union(mapID, loopID)

	preferLoop := extractor.New[analysis.ProductData](g, extractor.JSCostModel{PreferLoop: true})
	node, ok := preferLoop.GetBestNode(mapID)
	require.True(t, ok)
	require.Equal(t, lang.Extension, node.Op)
	require.Equal(t, "loop_map", node.Str)
}

func TestGetBestCostIsPositiveAndExtractSucceeds(t *testing.T) {
	g := newGraph()

	a := g.Add(lang.NewConstant(1))
	b := g.Add(lang.NewConstant(2))
	addID := g.Add(lang.NewExtension("add", []unionfind.Id{a, b}))

	ex := extractor.New[analysis.ProductData](g, extractor.JSCostModel{})
	cost, ok := ex.GetBestCost(addID)
	require.True(t, ok)
	require.Greater(t, cost.Score(), 0.0)

	_, err := ex.Extract(addID)
	require.NoError(t, err)
}

func TestCPUCostModelNeverPicksGpuMapOverFiniteAlternative(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	x := g.Add(lang.NewSymbol("x"))
	cpuID := g.Add(lang.NewCpuMap(f, x))
	gpuID := g.Add(lang.NewGpuMap(f, x))
	g.Union(cpuID, gpuID)

	ex := extractor.New[analysis.ProductData](g, extractor.CPUCostModel{})
	node, ok := ex.GetBestNode(cpuID)
	require.True(t, ok)
	require.Equal(t, lang.CpuMap, node.Op)
}

func TestGPUCostModelNeverPicksCpuMapOverFiniteAlternative(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	x := g.Add(lang.NewSymbol("x"))
	cpuID := g.Add(lang.NewCpuMap(f, x))
	gpuID := g.Add(lang.NewGpuMap(f, x))
	g.Union(cpuID, gpuID)

	ex := extractor.New[analysis.ProductData](g, extractor.GPUCostModel{})
	node, ok := ex.GetBestNode(gpuID)
	require.True(t, ok)
	require.Equal(t, lang.GpuMap, node.Op)
}

func TestExtractStampsLocFromAccumulatedDebugInfo(t *testing.T) {
	g := newGraph()

	loc := analysis.Loc{File: "a.src", Line: 3, Col: 1}
	id := g.AddWithLoc(lang.NewConstant(9), loc)

	ex := extractor.New[analysis.ProductData](g, extractor.DefaultCostModel{})
	tree, err := ex.Extract(id)
	require.NoError(t, err)
	require.NotNil(t, tree.Loc)
	require.Equal(t, loc, *tree.Loc)
}

func TestExtractLeavesLocNilWithoutDebugInfo(t *testing.T) {
	g := newGraph()
	id := g.Add(lang.NewConstant(9))

	ex := extractor.New[analysis.ProductData](g, extractor.DefaultCostModel{})
	tree, err := ex.Extract(id)
	require.NoError(t, err)
	require.Nil(t, tree.Loc)
}

func TestEvaluatorBestBackendPicksGpuForGpuMap(t *testing.T) {
	eval := extractor.NewEvaluator()
	best := eval.BestBackend(lang.NewGpuMap(0, 0))
	require.Equal(t, extractor.GPU, best.Backend)
}

func TestIlpExtractorFallsBackToGreedyExtraction(t *testing.T) {
	g := newGraph()

	f := g.Add(lang.NewSymbol("f"))
	x := g.Add(lang.NewSymbol("x"))
	mapID := g.Add(lang.NewMap(f, x))
	vecID := g.Add(lang.NewVectorizedMap(8, f, x))
	g.Union(mapID, vecID)

	ilp := extractor.NewIlpExtractor[analysis.ProductData](g, extractor.JSCostModel{})
	tree, err := ilp.Extract(mapID)
	require.NoError(t, err)
	require.Equal(t, lang.VectorizedMap, tree.Op)
}

func TestCostScoreIsInfiniteForInfiniteCost(t *testing.T) {
	require.True(t, math.IsInf(extractor.Infinite().Score(), 1))
}

func TestCostAddTakesMinThroughput(t *testing.T) {
	a := extractor.Cost{Throughput: 4}
	b := extractor.Cost{Throughput: 2}
	require.Equal(t, 2.0, a.Add(b).Throughput)
}
