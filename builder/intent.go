package builder

import (
	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// EGraph is the minimal surface Intent needs to add nodes with debug
// locations attached. Any *egraph.Graph[D, A] satisfies this.
type EGraph[D any] interface {
	AddWithLoc(enode lang.Node, loc analysis.Loc) unionfind.Id
}

// Intent wraps an EGraph and exposes one short, chainable method per
// e-node shape, so callers build trees by calling methods instead of
// assembling lang.Node values and wiring ids together by hand.
//
// Loc defaults to the zero analysis.Loc unless overridden with At; a
// fresh Intent always starts at the zero Loc, matching a builder call
// with no location info supplied.
type Intent[D any] struct {
	g   EGraph[D]
	loc analysis.Loc
}

// New returns an Intent over g, with the zero analysis.Loc.
func New[D any](g EGraph[D]) *Intent[D] {
	return &Intent[D]{g: g}
}

// At returns a copy of the Intent with loc set as the location every
// subsequent constructor call attaches. It does not mutate the
// receiver, so a caller can fork per-statement locations from one base
// Intent.
func (b *Intent[D]) At(loc analysis.Loc) *Intent[D] {
	return &Intent[D]{g: b.g, loc: loc}
}

func (b *Intent[D]) add(n lang.Node) unionfind.Id {
	return b.g.AddWithLoc(n, b.loc)
}

// --- Basic atoms ---

func (b *Intent[D]) Constant(v int64) unionfind.Id      { return b.add(lang.NewConstant(v)) }
func (b *Intent[D]) Int(v int64) unionfind.Id            { return b.Constant(v) }
func (b *Intent[D]) Float(bits uint64) unionfind.Id      { return b.add(lang.NewFloatConstant(bits)) }
func (b *Intent[D]) Bool(v bool) unionfind.Id            { return b.add(lang.NewBooleanConstant(v)) }
func (b *Intent[D]) String(s string) unionfind.Id        { return b.add(lang.NewStringConstant(s)) }
func (b *Intent[D]) Symbol(s string) unionfind.Id        { return b.add(lang.NewSymbol(s)) }
func (b *Intent[D]) Import(module, name string) unionfind.Id {
	return b.add(lang.NewImport(module, name))
}
func (b *Intent[D]) Export(name string, body unionfind.Id) unionfind.Id {
	return b.add(lang.NewExport(name, body))
}

// --- Structure ---

func (b *Intent[D]) Seq(items []unionfind.Id) unionfind.Id { return b.add(lang.NewSeq(items)) }
func (b *Intent[D]) Map(f, input unionfind.Id) unionfind.Id {
	return b.add(lang.NewMap(f, input))
}
func (b *Intent[D]) Reduce(f, init, list unionfind.Id) unionfind.Id {
	return b.add(lang.NewReduce(f, init, list))
}
func (b *Intent[D]) Filter(f, input unionfind.Id) unionfind.Id {
	return b.add(lang.NewFilter(f, input))
}
func (b *Intent[D]) Call(fn unionfind.Id, args []unionfind.Id) unionfind.Id {
	return b.add(lang.NewApply(fn, args))
}
func (b *Intent[D]) Lambda(params []string, body unionfind.Id) unionfind.Id {
	return b.add(lang.NewLambda(params, body))
}
func (b *Intent[D]) Assign(name string, value unionfind.Id) unionfind.Id {
	sym := b.Symbol(name)
	return b.add(lang.NewStateUpdate(sym, value))
}
func (b *Intent[D]) AssignToID(target, value unionfind.Id) unionfind.Id {
	return b.add(lang.NewStateUpdate(target, value))
}
func (b *Intent[D]) Block(stmts []unionfind.Id) unionfind.Id { return b.Seq(stmts) }
func (b *Intent[D]) Module(name string, items []unionfind.Id) unionfind.Id {
	return b.add(lang.NewModule(name, items))
}

// --- Control flow ---

func (b *Intent[D]) Branch(cond, then, els unionfind.Id) unionfind.Id {
	return b.add(lang.NewChoice(cond, then, els))
}

// If defaults the else branch to an empty Block when elseBranch is
// nil, matching a two-armed if with no explicit else clause.
func (b *Intent[D]) If(cond, then unionfind.Id, elseBranch *unionfind.Id) unionfind.Id {
	elseID := elseBranch
	if elseID == nil {
		empty := b.Block(nil)
		elseID = &empty
	}
	return b.Branch(cond, then, *elseID)
}
func (b *Intent[D]) Loop(count, body unionfind.Id) unionfind.Id {
	return b.add(lang.NewRepeat(count, body))
}

// WhileLoop has no dedicated e-node shape: it lowers to
// Extension("while", [cond, body]), the same placeholder encoding the
// IR used before a proper while construct existed.
func (b *Intent[D]) WhileLoop(cond, body unionfind.Id) unionfind.Id {
	return b.Extension("while", []unionfind.Id{cond, body})
}
func (b *Intent[D]) Break() unionfind.Id    { return b.Extension("break", nil) }
func (b *Intent[D]) Continue() unionfind.Id { return b.Extension("continue", nil) }
func (b *Intent[D]) Return(value unionfind.Id) unionfind.Id {
	return b.add(lang.NewReturn(value))
}

func (b *Intent[D]) CrossLangCall(language, modulePath, functionName string, args []unionfind.Id) unionfind.Id {
	return b.add(lang.NewCrossLangCall(language, modulePath, functionName, args))
}

// --- Operations ---

func (b *Intent[D]) Extension(name string, args []unionfind.Id) unionfind.Id {
	return b.add(lang.NewExtension(name, args))
}
func (b *Intent[D]) BinaryOp(op string, left, right unionfind.Id) unionfind.Id {
	return b.Extension(op, []unionfind.Id{left, right})
}
func (b *Intent[D]) AddOp(left, right unionfind.Id) unionfind.Id { return b.BinaryOp("add", left, right) }
func (b *Intent[D]) SubOp(left, right unionfind.Id) unionfind.Id { return b.BinaryOp("sub", left, right) }
func (b *Intent[D]) MulOp(left, right unionfind.Id) unionfind.Id { return b.BinaryOp("mul", left, right) }
func (b *Intent[D]) DivOp(left, right unionfind.Id) unionfind.Id { return b.BinaryOp("div", left, right) }

// --- Resource management ---

func (b *Intent[D]) ResourceClone(target unionfind.Id) unionfind.Id {
	return b.add(lang.NewResourceClone(target))
}
func (b *Intent[D]) ResourceDrop(target unionfind.Id) unionfind.Id {
	return b.add(lang.NewResourceDrop(target))
}
func (b *Intent[D]) ResourceContext() unionfind.Id { return b.add(lang.NewResourceContext()) }
