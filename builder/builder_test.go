package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/builder"
	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/lang"
)

func newGraph() *egraph.Graph[analysis.ProductData, analysis.Product] {
	return egraph.New[analysis.ProductData, analysis.Product]()
}

func TestIntentBuildsMapOverFilter(t *testing.T) {
	g := newGraph()
	b := builder.New[analysis.ProductData](g)

	f := b.Symbol("f")
	p := b.Symbol("p")
	xs := b.Symbol("xs")
	filtered := b.Filter(p, xs)
	mapped := b.Map(f, filtered)

	class, err := g.GetClass(g.Find(mapped))
	require.NoError(t, err)
	require.Equal(t, lang.Map, class.Nodes[0].Op)
}

func TestIntentAssignWrapsSymbolAndStateUpdate(t *testing.T) {
	g := newGraph()
	b := builder.New[analysis.ProductData](g)

	val := b.Constant(1)
	assignID := b.Assign("x", val)

	class, err := g.GetClass(g.Find(assignID))
	require.NoError(t, err)
	require.Equal(t, lang.StateUpdate, class.Nodes[0].Op)
}

func TestIntentIfDefaultsEmptyElse(t *testing.T) {
	g := newGraph()
	b := builder.New[analysis.ProductData](g)

	cond := b.Bool(true)
	then := b.Constant(1)
	ifID := b.If(cond, then, nil)

	class, err := g.GetClass(g.Find(ifID))
	require.NoError(t, err)
	require.Equal(t, lang.Choice, class.Nodes[0].Op)
}

func TestIntentAtAttachesForkedLocation(t *testing.T) {
	g := newGraph()
	base := builder.New[analysis.ProductData](g)

	forked := base.At(analysis.Loc{File: "a.ir", Line: 3})
	id := forked.Constant(9)

	class, err := g.GetClass(g.Find(id))
	require.NoError(t, err)
	require.Equal(t, []analysis.Loc{{File: "a.ir", Line: 3}}, class.Data.Debug.Locs)
}

func TestContextInjectorWrapsGpuContext(t *testing.T) {
	g := newGraph()
	x := g.Add(lang.NewSymbol("x"))

	wrapped := builder.ContextInjector{}.InjectGpu(g, x)

	class, err := g.GetClass(g.Find(wrapped))
	require.NoError(t, err)

	node := class.Nodes[0]
	require.Equal(t, lang.WithContext, node.Op)
	require.Equal(t, x, node.Kids[1])

	ctxClass, err := g.GetClass(g.Find(node.Kids[0]))
	require.NoError(t, err)
	require.Equal(t, lang.GpuContext, ctxClass.Nodes[0].Op)
}

func TestContextInjectorGenericInjectContext(t *testing.T) {
	g := newGraph()
	x := g.Add(lang.NewSymbol("x"))

	wrapped := builder.ContextInjector{}.InjectContext(g, x, lang.NewSafeContext())

	class, err := g.GetClass(g.Find(wrapped))
	require.NoError(t, err)

	ctxClass, err := g.GetClass(g.Find(class.Nodes[0].Kids[0]))
	require.NoError(t, err)
	require.Equal(t, lang.SafeContext, ctxClass.Nodes[0].Op)
}
