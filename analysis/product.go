package analysis

import (
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// ProductData is the datum Product computes: one e-graph instance
// running Constraint, Layout, and Debug simultaneously rather than
// requiring three separate e-graphs (and three separate copies of
// every rewrite rule) to get all three lattices gating the same
// Unions.
type ProductData struct {
	Constraint ConstraintSet
	Layout     ConcretizationData
	Debug      DebugData
}

// GetLocs satisfies HasDebugInfo by delegating to the embedded Debug
// datum, so any consumer generic over HasDebugInfo (e.g. extractor)
// works against ProductData without knowing about Product's other two
// lattices.
func (d ProductData) GetLocs() []Loc { return d.Debug.GetLocs() }

// Product composes ConstraintAnalysis, LayoutAnalysis, and
// DebugAnalysis into a single Analysis[ProductData].
type Product struct {
	Constraint ConstraintAnalysis
	Layout     LayoutAnalysis
	Debug      DebugAnalysis
}

type constraintView struct{ g ClassData[ProductData] }

func (v constraintView) Data(id unionfind.Id) ConstraintSet { return v.g.Data(id).Constraint }

type layoutView struct{ g ClassData[ProductData] }

func (v layoutView) Data(id unionfind.Id) ConcretizationData { return v.g.Data(id).Layout }

type debugView struct{ g ClassData[ProductData] }

func (v debugView) Data(id unionfind.Id) DebugData { return v.g.Data(id).Debug }

func (p Product) Make(g ClassData[ProductData], n lang.Node) ProductData {
	return ProductData{
		Constraint: p.Constraint.Make(constraintView{g}, n),
		Layout:     p.Layout.Make(layoutView{g}, n),
		Debug:      p.Debug.Make(debugView{g}, n),
	}
}

func (p Product) Merge(to *ProductData, from ProductData) bool {
	c := p.Constraint.Merge(&to.Constraint, from.Constraint)
	l := p.Layout.Merge(&to.Layout, from.Layout)
	d := p.Debug.Merge(&to.Debug, from.Debug)
	return c || l || d
}

func (p Product) OnAdd(data *ProductData, loc Loc) {
	p.Constraint.OnAdd(&data.Constraint, loc)
	p.Layout.OnAdd(&data.Layout, loc)
	p.Debug.OnAdd(&data.Debug, loc)
}

// IsCompatible only the constraint lattice actually vetoes a Union;
// layout and debug never refuse a merge (a class can always gain a
// second candidate layout, to be pruned later by cost, and debug
// locations just accumulate).
func (p Product) IsCompatible(a, b ProductData) bool {
	return p.Constraint.IsCompatible(a.Constraint, b.Constraint)
}
