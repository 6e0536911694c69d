package rules

import (
	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// EGraph is the minimal surface a Rule needs: enough to read every
// class and write new nodes/unions, without depending on a concrete
// analysis implementation. Any *egraph.Graph[D, A] satisfies this for
// its own D, since Snapshot/Add/Union/Find are already generic over A.
type EGraph[D any] interface {
	Snapshot() map[unionfind.Id]*egraph.EClass[D]
	Add(enode lang.Node) unionfind.Id
	Union(id1, id2 unionfind.Id) unionfind.Id
	Find(id unionfind.Id) unionfind.Id
	GetClass(id unionfind.Id) (*egraph.EClass[D], error)
}

// Rule is one rewrite rule. Apply must read-then-write: gather every
// match from the current Snapshot first, then perform Add/Union calls
// afterward, exactly as every rule in this package does.
type Rule[D any] interface {
	Name() string
	Apply(g EGraph[D])
}

// Category groups rules for selective scheduling (e.g. running only
// Algebraic rules, or excluding Aggressive ones from a conservative
// pass).
type Category int

const (
	Algebraic Category = iota
	Architectural
	Aggressive
	Concretization
)

func (c Category) String() string {
	switch c {
	case Algebraic:
		return "Algebraic"
	case Architectural:
		return "Architectural"
	case Aggressive:
		return "Aggressive"
	case Concretization:
		return "Concretization"
	default:
		return "Category(invalid)"
	}
}

type entry[D any] struct {
	category Category
	rule     Rule[D]
}

// Registry holds the rules a scheduler run applies, each tagged with
// its Category, registered in a fixed order so saturation is
// deterministic.
type Registry[D any] struct {
	entries []entry[D]
}

// NewRegistry returns an empty Registry.
func NewRegistry[D any]() *Registry[D] {
	return &Registry[D]{}
}

// Register appends rule under category, at the end of the current
// registration order.
func (r *Registry[D]) Register(category Category, rule Rule[D]) {
	r.entries = append(r.entries, entry[D]{category: category, rule: rule})
}

// ByCategory returns the rules registered under category, in
// registration order.
func (r *Registry[D]) ByCategory(category Category) []Rule[D] {
	var out []Rule[D]
	for _, e := range r.entries {
		if e.category == category {
			out = append(out, e.rule)
		}
	}
	return out
}

// All returns every registered rule, in registration order.
func (r *Registry[D]) All() []Rule[D] {
	out := make([]Rule[D], 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.rule)
	}
	return out
}
