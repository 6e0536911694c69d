package rules

import (
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// MapFusion rewrites Map(f, Map(g, x)) into Map(Compose(f, g), x),
// collapsing two traversals of x into one.
type MapFusion[D any] struct{}

func (MapFusion[D]) Name() string { return "map-fusion" }

func (MapFusion[D]) Apply(g EGraph[D]) {
	type match struct {
		id   unionfind.Id
		f, h unionfind.Id
		x    unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Map {
				continue
			}
			f, inner := n.Kids[0], n.Kids[1]
			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.Map {
					matches = append(matches, match{id, f, in.Kids[0], in.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		composeID := g.Add(lang.NewCompose(m.f, m.h))
		newMapID := g.Add(lang.NewMap(composeID, m.x))
		g.Union(m.id, newMapID)
	}
}

// FilterFusion rewrites Filter(p1, Filter(p2, x)) into a single
// Filter under a conjoined predicate, combining p2 and p1 in the
// order they were originally applied.
type FilterFusion[D any] struct{}

func (FilterFusion[D]) Name() string { return "filter-fusion" }

func (FilterFusion[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		p1, p2 unionfind.Id
		x      unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Filter {
				continue
			}
			p1, inner := n.Kids[0], n.Kids[1]
			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.Filter {
					matches = append(matches, match{id, p1, in.Kids[0], in.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		combined := g.Add(lang.NewExtension("and_predicate", []unionfind.Id{m.p2, m.p1}))
		newFilterID := g.Add(lang.NewFilter(combined, m.x))
		g.Union(m.id, newFilterID)
	}
}

// FilterMapFusion rewrites Map(f, Filter(p, x)) into a single
// Extension("filter_map", [f, p, x]) node, avoiding a materialized
// intermediate between the filter and the map.
type FilterMapFusion[D any] struct{}

func (FilterMapFusion[D]) Name() string { return "filter-map-fusion" }

func (FilterMapFusion[D]) Apply(g EGraph[D]) {
	type match struct {
		id   unionfind.Id
		f, p unionfind.Id
		x    unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Map {
				continue
			}
			f, inner := n.Kids[0], n.Kids[1]
			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.Filter {
					matches = append(matches, match{id, f, in.Kids[0], in.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		fm := g.Add(lang.NewExtension("filter_map", []unionfind.Id{m.f, m.p, m.x}))
		g.Union(m.id, fm)
	}
}

// MapFilterFusion rewrites Filter(p, Map(f, x)) into a single
// Extension("map_filter", [p, f, x]) node.
type MapFilterFusion[D any] struct{}

func (MapFilterFusion[D]) Name() string { return "map-filter-fusion" }

func (MapFilterFusion[D]) Apply(g EGraph[D]) {
	type match struct {
		id   unionfind.Id
		p, f unionfind.Id
		x    unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Filter {
				continue
			}
			p, inner := n.Kids[0], n.Kids[1]
			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.Map {
					matches = append(matches, match{id, p, in.Kids[0], in.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		mf := g.Add(lang.NewExtension("map_filter", []unionfind.Id{m.p, m.f, m.x}))
		g.Union(m.id, mf)
	}
}

// MapReduceFusion rewrites Reduce(g, init, Map(f, x)) into
// Extension("loop_map_reduce", [f, g, init, x]), fusing the map's
// transform directly into the reduction loop.
type MapReduceFusion[D any] struct{}

func (MapReduceFusion[D]) Name() string { return "map-reduce-fusion" }

func (MapReduceFusion[D]) Apply(g EGraph[D]) {
	type match struct {
		id         unionfind.Id
		f, h, init unionfind.Id
		x          unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Reduce {
				continue
			}
			h, init, inner := n.Kids[0], n.Kids[1], n.Kids[2]
			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.Map {
					matches = append(matches, match{id, in.Kids[0], h, init, in.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		fused := g.Add(lang.NewExtension("loop_map_reduce", []unionfind.Id{m.f, m.h, m.init, m.x}))
		g.Union(m.id, fused)
	}
}

// FilterReduceFusion rewrites Reduce(f, init, Filter(p, x)) into
// Extension("loop_filter_reduce", [p, f, init, x]), fusing the
// predicate test directly into the reduction loop.
type FilterReduceFusion[D any] struct{}

func (FilterReduceFusion[D]) Name() string { return "filter-reduce-fusion" }

func (FilterReduceFusion[D]) Apply(g EGraph[D]) {
	type match struct {
		id         unionfind.Id
		p, f, init unionfind.Id
		x          unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Reduce {
				continue
			}
			f, init, inner := n.Kids[0], n.Kids[1], n.Kids[2]
			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.Filter {
					matches = append(matches, match{id, in.Kids[0], f, init, in.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		fused := g.Add(lang.NewExtension("loop_filter_reduce", []unionfind.Id{m.p, m.f, m.init, m.x}))
		g.Union(m.id, fused)
	}
}
