package rules

import (
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// LayoutTransformation rewrites Map(f, x) bodies found under a
// WithContext(SpatialContext|GpuContext, ...) wrapper into SoAMap(f,
// x), since a spatial/GPU context favors struct-of-arrays traversal.
type LayoutTransformation[D any] struct{}

func (LayoutTransformation[D]) Name() string { return "layout-transformation" }

func (LayoutTransformation[D]) Apply(g EGraph[D]) {
	type match struct {
		bodyID unionfind.Id
		f, x   unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		class := ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.WithContext {
				continue
			}
			ctxID, bodyID := n.Kids[0], n.Kids[1]

			ctxClass, err := g.GetClass(g.Find(ctxID))
			if err != nil {
				continue
			}
			isSpatial := false
			for _, cn := range ctxClass.Nodes {
				if cn.Op == lang.SpatialContext || cn.Op == lang.GpuContext {
					isSpatial = true
					break
				}
			}
			if !isSpatial {
				continue
			}

			bodyClass, err := g.GetClass(g.Find(bodyID))
			if err != nil {
				continue
			}
			for _, bn := range bodyClass.Nodes {
				if bn.Op == lang.Map {
					matches = append(matches, match{bodyID, bn.Kids[0], bn.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		soaMap := g.Add(lang.NewSoAMap(m.f, m.x))
		g.Union(m.bodyID, soaMap)
	}
}

// LoopTiling unions every Map(f, x) with a TiledMap(32, f, x)
// alternative, exposing a tiled traversal for the extractor's cost
// model to choose between. It fires unconditionally: the decision of
// whether tiling wins is left to extraction, not to this rule.
type LoopTiling[D any] struct{}

func (LoopTiling[D]) Name() string { return "loop-tiling" }

func (LoopTiling[D]) Apply(g EGraph[D]) {
	type match struct {
		id   unionfind.Id
		f, x unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op == lang.Map {
				matches = append(matches, match{id, n.Kids[0], n.Kids[1]})
			}
		}
	}

	for _, m := range matches {
		tiled := g.Add(lang.NewTiledMap(32, m.f, m.x))
		g.Union(m.id, tiled)
	}
}

// AutoVectorization unions every Map(f, x) with a VectorizedMap(8, f,
// x) alternative, for the same reason LoopTiling does: expose the
// shape, let the cost model pick.
type AutoVectorization[D any] struct{}

func (AutoVectorization[D]) Name() string { return "auto-vectorization" }

func (AutoVectorization[D]) Apply(g EGraph[D]) {
	type match struct {
		id   unionfind.Id
		f, x unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op == lang.Map {
				matches = append(matches, match{id, n.Kids[0], n.Kids[1]})
			}
		}
	}

	for _, m := range matches {
		vectorized := g.Add(lang.NewVectorizedMap(8, m.f, m.x))
		g.Union(m.id, vectorized)
	}
}

// GpuSpecialization is a no-op placeholder: a dedicated GPU backend
// form is left for a later specialization pass. It exists so a
// registry caller can select Architectural rules without special-
// casing "everything except GPU/CPU specialization".
type GpuSpecialization[D any] struct{}

func (GpuSpecialization[D]) Name() string { return "gpu-specialization" }

func (GpuSpecialization[D]) Apply(g EGraph[D]) {}

// CpuSpecialization is a no-op placeholder, matching its upstream
// counterpart, held for the same registration-symmetry reason as
// GpuSpecialization.
type CpuSpecialization[D any] struct{}

func (CpuSpecialization[D]) Name() string { return "cpu-specialization" }

func (CpuSpecialization[D]) Apply(g EGraph[D]) {}

// MapToLoop lowers the functional combinators Map, Filter and Reduce
// down to explicit loop_map/loop_filter/loop_reduce Extension nodes,
// giving an imperative backend something to target directly instead
// of re-deriving loop structure from the combinator shape.
type MapToLoop[D any] struct{}

func (MapToLoop[D]) Name() string { return "map-to-loop" }

func (MapToLoop[D]) Apply(g EGraph[D]) {
	type pair struct{ id, f, x unionfind.Id }
	type triple struct{ id, f, init, x unionfind.Id }

	var maps, filters []pair
	var reduces []triple

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			switch n.Op {
			case lang.Map:
				maps = append(maps, pair{id, n.Kids[0], n.Kids[1]})
			case lang.Filter:
				filters = append(filters, pair{id, n.Kids[0], n.Kids[1]})
			case lang.Reduce:
				reduces = append(reduces, triple{id, n.Kids[0], n.Kids[1], n.Kids[2]})
			}
		}
	}

	for _, m := range maps {
		loopNode := g.Add(lang.NewExtension("loop_map", []unionfind.Id{m.f, m.x}))
		g.Union(m.id, loopNode)
	}
	for _, m := range filters {
		loopNode := g.Add(lang.NewExtension("loop_filter", []unionfind.Id{m.f, m.x}))
		g.Union(m.id, loopNode)
	}
	for _, m := range reduces {
		loopNode := g.Add(lang.NewExtension("loop_reduce", []unionfind.Id{m.f, m.init, m.x}))
		g.Union(m.id, loopNode)
	}
}
