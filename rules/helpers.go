package rules

import (
	"sort"

	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// sortedClasses returns g's snapshot as (id, class) pairs ordered by
// ascending id, so a rule's Apply visits classes in a deterministic
// order regardless of Go's randomized map iteration.
func sortedClasses[D any](g EGraph[D]) []idClass[D] {
	snap := g.Snapshot()
	out := make([]idClass[D], 0, len(snap))
	for id, class := range snap {
		out = append(out, idClass[D]{id: id, class: class})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

type idClass[D any] struct {
	id    unionfind.Id
	class *egraph.EClass[D]
}

func getConst[D any](g EGraph[D], id unionfind.Id) (int64, bool) {
	root := g.Find(id)
	class, err := g.GetClass(root)
	if err != nil {
		return 0, false
	}
	for _, n := range class.Nodes {
		if n.Op == lang.Constant {
			return n.I64, true
		}
	}
	return 0, false
}

func isConst[D any](g EGraph[D], id unionfind.Id, val int64) bool {
	v, ok := getConst[D](g, id)
	return ok && v == val
}

func getBool[D any](g EGraph[D], id unionfind.Id) (bool, bool) {
	root := g.Find(id)
	class, err := g.GetClass(root)
	if err != nil {
		return false, false
	}
	for _, n := range class.Nodes {
		if n.Op == lang.BooleanConstant {
			return n.Bool, true
		}
	}
	return false, false
}
