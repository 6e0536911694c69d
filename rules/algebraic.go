package rules

import (
	"math/bits"

	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// ConstantFolding evaluates Extension("add"|"sub"|"mul"|"div", [a,b])
// nodes whose both arguments are constant, replacing the call with the
// computed Constant.
type ConstantFolding[D any] struct{}

func (ConstantFolding[D]) Name() string { return "constant-folding" }

func (ConstantFolding[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		result int64
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Extension || len(n.Kids) != 2 {
				continue
			}
			v1, ok1 := getConst(g, n.Kids[0])
			v2, ok2 := getConst(g, n.Kids[1])
			if !ok1 || !ok2 {
				continue
			}
			switch n.Str {
			case "add":
				matches = append(matches, match{id, v1 + v2})
			case "sub":
				matches = append(matches, match{id, v1 - v2})
			case "mul":
				matches = append(matches, match{id, v1 * v2})
			case "div":
				if v2 != 0 {
					matches = append(matches, match{id, v1 / v2})
				}
			}
		}
	}

	for _, m := range matches {
		constID := g.Add(lang.NewConstant(m.result))
		g.Union(m.id, constID)
	}
}

// AlgebraicSimplification applies identity-element simplifications to
// Extension("add"|"sub"|"mul"|"div", [a,b]) nodes: x+0=x, 0+x=x, x-0=x,
// x-x=0, x*1=x, 1*x=x, x*0=0, 0*x=0, x/1=x, x/x=1.
type AlgebraicSimplification[D any] struct{}

func (AlgebraicSimplification[D]) Name() string { return "algebraic-simplification" }

func (AlgebraicSimplification[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		target unionfind.Id
		mkZero bool
		mkOne  bool
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.Extension || len(n.Kids) != 2 {
				continue
			}
			a, b := n.Kids[0], n.Kids[1]
			rootA, rootB := g.Find(a), g.Find(b)

			switch n.Str {
			case "add":
				if isConst(g, b, 0) {
					matches = append(matches, match{id: id, target: a})
				} else if isConst(g, a, 0) {
					matches = append(matches, match{id: id, target: b})
				}
			case "sub":
				if isConst(g, b, 0) {
					matches = append(matches, match{id: id, target: a})
				} else if rootA == rootB {
					matches = append(matches, match{id: id, mkZero: true})
				}
			case "mul":
				if isConst(g, b, 1) {
					matches = append(matches, match{id: id, target: a})
				} else if isConst(g, a, 1) {
					matches = append(matches, match{id: id, target: b})
				} else if isConst(g, b, 0) {
					matches = append(matches, match{id: id, target: rootB})
				} else if isConst(g, a, 0) {
					matches = append(matches, match{id: id, target: rootA})
				}
			case "div":
				if isConst(g, b, 1) {
					matches = append(matches, match{id: id, target: a})
				} else if rootA == rootB {
					matches = append(matches, match{id: id, mkOne: true})
				}
			}
		}
	}

	for _, m := range matches {
		target := m.target
		if m.mkZero {
			target = g.Add(lang.NewConstant(0))
		} else if m.mkOne {
			target = g.Add(lang.NewConstant(1))
		}
		g.Union(m.id, target)
	}
}

// StrengthReduction rewrites Extension("mul"|"div", [x, c]) to a shift
// when c is a positive power of two: x*2^n -> x<<n, x/2^n -> x>>n.
type StrengthReduction[D any] struct{}

func (StrengthReduction[D]) Name() string { return "strength-reduction" }

func (StrengthReduction[D]) Apply(g EGraph[D]) {
	type match struct {
		id  unionfind.Id
		op  string
		arg unionfind.Id
		n   int64
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, node := range class.Nodes {
			if node.Op != lang.Extension || len(node.Kids) != 2 {
				continue
			}
			val, ok := getConst(g, node.Kids[1])
			if !ok || val <= 0 || val&(val-1) != 0 {
				continue
			}
			shift := int64(bits.TrailingZeros64(uint64(val)))
			switch node.Str {
			case "mul":
				matches = append(matches, match{id, "shl", node.Kids[0], shift})
			case "div":
				matches = append(matches, match{id, "shr", node.Kids[0], shift})
			}
		}
	}

	for _, m := range matches {
		nID := g.Add(lang.NewConstant(m.n))
		newID := g.Add(lang.NewExtension(m.op, []unionfind.Id{m.arg, nID}))
		g.Union(m.id, newID)
	}
}

// Peephole turns Extension("add", [x, x]) into Extension("mul", [x, 2]).
type Peephole[D any] struct{}

func (Peephole[D]) Name() string { return "peephole" }

func (Peephole[D]) Apply(g EGraph[D]) {
	type match struct {
		id  unionfind.Id
		arg unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, node := range class.Nodes {
			if node.Op != lang.Extension || len(node.Kids) != 2 || node.Str != "add" {
				continue
			}
			if g.Find(node.Kids[0]) == g.Find(node.Kids[1]) {
				matches = append(matches, match{id, node.Kids[0]})
			}
		}
	}

	for _, m := range matches {
		twoID := g.Add(lang.NewConstant(2))
		newID := g.Add(lang.NewExtension("mul", []unionfind.Id{m.arg, twoID}))
		g.Union(m.id, newID)
	}
}

// TrapSimplification collapses Trap(Trap(x)) into Trap(x).
type TrapSimplification[D any] struct{}

func (TrapSimplification[D]) Name() string { return "trap-simplification" }

func (TrapSimplification[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		target unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, node := range class.Nodes {
			if node.Op != lang.Trap {
				continue
			}
			innerRoot := g.Find(node.Kids[0])
			innerClass, err := g.GetClass(innerRoot)
			if err != nil {
				continue
			}
			for _, innerNode := range innerClass.Nodes {
				if innerNode.Op == lang.Trap {
					matches = append(matches, match{id, node.Kids[0]})
				}
			}
		}
	}

	for _, m := range matches {
		g.Union(m.id, m.target)
	}
}

// MetaSimplification drops a redundant Meta(Meta(x)) wrapper down to a
// single Meta(x): a Meta body that is itself already Meta-wrapped
// carries no extra information over just the inner wrapper.
type MetaSimplification[D any] struct{}

func (MetaSimplification[D]) Name() string { return "meta-simplification" }

func (MetaSimplification[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		target unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, node := range class.Nodes {
			if node.Op != lang.Meta {
				continue
			}
			innerRoot := g.Find(node.Kids[0])
			innerClass, err := g.GetClass(innerRoot)
			if err != nil {
				continue
			}
			for _, innerNode := range innerClass.Nodes {
				if innerNode.Op == lang.Meta {
					matches = append(matches, match{id, node.Kids[0]})
				}
			}
		}
	}

	for _, m := range matches {
		g.Union(m.id, m.target)
	}
}

// LifeCycleSimplification drops a LifeCycle whose setup and cleanup are
// both no-op Seq([]) bodies down to an empty Seq.
type LifeCycleSimplification[D any] struct{}

func (LifeCycleSimplification[D]) Name() string { return "lifecycle-simplification" }

func (LifeCycleSimplification[D]) Apply(g EGraph[D]) {
	var matches []unionfind.Id

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, node := range class.Nodes {
			if node.Op != lang.LifeCycle {
				continue
			}
			if isEmptySeq(g, node.Kids[0]) && isEmptySeq(g, node.Kids[1]) {
				matches = append(matches, id)
			}
		}
	}

	for _, id := range matches {
		emptyID := g.Add(lang.NewSeq(nil))
		g.Union(id, emptyID)
	}
}

func isEmptySeq[D any](g EGraph[D], id unionfind.Id) bool {
	class, err := g.GetClass(g.Find(id))
	if err != nil {
		return false
	}
	for _, n := range class.Nodes {
		if n.Op == lang.Seq && len(n.Kids) == 0 {
			return true
		}
	}
	return false
}

// SafeElimination drops a WithContext(SafeContext, x) wrapper by
// unioning it with x. It matches on node shape alone: the body's
// analysis data (its effect included) is not consulted, so the wrapper
// is dropped whatever the body does.
type SafeElimination[D any] struct{}

func (SafeElimination[D]) Name() string { return "safe-elimination" }

func (SafeElimination[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		target unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, node := range class.Nodes {
			if node.Op != lang.WithContext {
				continue
			}
			ctxRoot := g.Find(node.Kids[0])
			ctxClass, err := g.GetClass(ctxRoot)
			if err != nil {
				continue
			}
			for _, ctxNode := range ctxClass.Nodes {
				if ctxNode.Op == lang.SafeContext {
					matches = append(matches, match{id, node.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		g.Union(m.id, m.target)
	}
}
