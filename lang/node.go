package lang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uir-sat/uirsat/unionfind"
)

// Node is one e-node: a tagged variant plus its ordered children and
// any non-id payload the variant carries. Not every field is used by
// every Op — see the per-constant comments in op.go for which fields a
// given Op reads.
//
// Node is deliberately a value type (no pointers into shared state) so
// that copying, storing in slices, and comparing by value all behave
// the way an e-node must: structural equality, no aliasing surprises.
type Node struct {
	Op   Op
	Kids []unionfind.Id

	I64   int64
	U64   uint64
	Bool  bool
	Str   string
	Str2  string
	Str3  string
	Strs  []string
	N     int
	Eff   Effect
	Own   Ownership
}

// --- Constructors ---
//
// Each constructor builds exactly one Op variant with the fields that
// variant reads left populated and the rest zero. Prefer these over
// building a Node literal directly.

func NewConstant(v int64) Node             { return Node{Op: Constant, I64: v} }
func NewFloatConstant(bits uint64) Node    { return Node{Op: FloatConstant, U64: bits} }
func NewBooleanConstant(v bool) Node       { return Node{Op: BooleanConstant, Bool: v} }
func NewStringConstant(s string) Node      { return Node{Op: StringConstant, Str: s} }
func NewSymbol(s string) Node              { return Node{Op: Symbol, Str: s} }
func NewImport(module, symbol string) Node { return Node{Op: Import, Str: module, Str2: symbol} }
func NewExport(symbol string, body unionfind.Id) Node {
	return Node{Op: Export, Str: symbol, Kids: []unionfind.Id{body}}
}
func NewModule(name string, items []unionfind.Id) Node {
	return Node{Op: Module, Str: name, Kids: items}
}

func NewMap(f, x unionfind.Id) Node    { return Node{Op: Map, Kids: []unionfind.Id{f, x}} }
func NewFilter(f, x unionfind.Id) Node { return Node{Op: Filter, Kids: []unionfind.Id{f, x}} }
func NewReduce(f, init, xs unionfind.Id) Node {
	return Node{Op: Reduce, Kids: []unionfind.Id{f, init, xs}}
}
func NewStateUpdate(target, val unionfind.Id) Node {
	return Node{Op: StateUpdate, Kids: []unionfind.Id{target, val}}
}
func NewChoice(cond, then, els unionfind.Id) Node {
	return Node{Op: Choice, Kids: []unionfind.Id{cond, then, els}}
}
func NewRepeat(count, body unionfind.Id) Node {
	return Node{Op: Repeat, Kids: []unionfind.Id{count, body}}
}
func NewLifeCycle(setup, cleanup unionfind.Id) Node {
	return Node{Op: LifeCycle, Kids: []unionfind.Id{setup, cleanup}}
}
func NewMeta(body unionfind.Id) Node   { return Node{Op: Meta, Kids: []unionfind.Id{body}} }
func NewTrap(body unionfind.Id) Node   { return Node{Op: Trap, Kids: []unionfind.Id{body}} }
func NewReturn(val unionfind.Id) Node  { return Node{Op: Return, Kids: []unionfind.Id{val}} }
func NewSeq(items []unionfind.Id) Node { return Node{Op: Seq, Kids: items} }
func NewCompose(a, b unionfind.Id) Node {
	return Node{Op: Compose, Kids: []unionfind.Id{a, b}}
}
func NewWithContext(ctx, body unionfind.Id) Node {
	return Node{Op: WithContext, Kids: []unionfind.Id{ctx, body}}
}
func NewWithConstraint(constraint, body unionfind.Id) Node {
	return Node{Op: WithConstraint, Kids: []unionfind.Id{constraint, body}}
}

func NewCpuContext() Node       { return Node{Op: CpuContext} }
func NewGpuContext() Node       { return Node{Op: GpuContext} }
func NewAsyncContext() Node     { return Node{Op: AsyncContext} }
func NewSpatialContext() Node   { return Node{Op: SpatialContext} }
func NewComptimeContext() Node  { return Node{Op: ComptimeContext} }
func NewResourceContext() Node  { return Node{Op: ResourceContext} }
func NewSafeContext() Node      { return Node{Op: SafeContext} }

func NewEffectConstraint(e Effect) Node       { return Node{Op: EffectConstraint, Eff: e} }
func NewOwnershipConstraint(o Ownership) Node { return Node{Op: OwnershipConstraint, Own: o} }
func NewTypeConstraint(t string) Node         { return Node{Op: TypeConstraint, Str: t} }
func NewAtomicConstraint() Node               { return Node{Op: AtomicConstraint} }

func NewExtension(name string, args []unionfind.Id) Node {
	return Node{Op: Extension, Str: name, Kids: args}
}

// CrossLanguageCall payload fields fold into the node's structural
// identity: two calls differing only in function name are distinct
// nodes even with identical arguments.
func NewCrossLangCall(language, modulePath, functionName string, arguments []unionfind.Id) Node {
	return Node{Op: CrossLangCall, Str: language, Str2: modulePath, Str3: functionName, Kids: arguments}
}

func NewSoALayout(x unionfind.Id) Node { return Node{Op: SoALayout, Kids: []unionfind.Id{x}} }
func NewAoSLayout(x unionfind.Id) Node { return Node{Op: AoSLayout, Kids: []unionfind.Id{x}} }
func NewTiled(factor int, x unionfind.Id) Node {
	return Node{Op: Tiled, N: factor, Kids: []unionfind.Id{x}}
}
func NewUnrolled(factor int, x unionfind.Id) Node {
	return Node{Op: Unrolled, N: factor, Kids: []unionfind.Id{x}}
}
func NewVectorized(width int, x unionfind.Id) Node {
	return Node{Op: Vectorized, N: width, Kids: []unionfind.Id{x}}
}

func NewTiledMap(factor int, f, x unionfind.Id) Node {
	return Node{Op: TiledMap, N: factor, Kids: []unionfind.Id{f, x}}
}
func NewVectorizedMap(width int, f, x unionfind.Id) Node {
	return Node{Op: VectorizedMap, N: width, Kids: []unionfind.Id{f, x}}
}
func NewUnrolledMap(factor int, f, x unionfind.Id) Node {
	return Node{Op: UnrolledMap, N: factor, Kids: []unionfind.Id{f, x}}
}
func NewSoAMap(f, x unionfind.Id) Node { return Node{Op: SoAMap, Kids: []unionfind.Id{f, x}} }
func NewGpuMap(f, x unionfind.Id) Node { return Node{Op: GpuMap, Kids: []unionfind.Id{f, x}} }
func NewCpuMap(f, x unionfind.Id) Node { return Node{Op: CpuMap, Kids: []unionfind.Id{f, x}} }

func NewPipe(body, metadata unionfind.Id) Node {
	return Node{Op: Pipe, Kids: []unionfind.Id{body, metadata}}
}
func NewReg(value unionfind.Id) Node { return Node{Op: Reg, Kids: []unionfind.Id{value}} }

func NewLambda(params []string, body unionfind.Id) Node {
	return Node{Op: Lambda, Strs: params, Kids: []unionfind.Id{body}}
}
func NewApply(fn unionfind.Id, args []unionfind.Id) Node {
	kids := make([]unionfind.Id, 0, 1+len(args))
	kids = append(kids, fn)
	kids = append(kids, args...)
	return Node{Op: Apply, Kids: kids}
}
func NewClosure(body unionfind.Id, captured []unionfind.Id) Node {
	kids := make([]unionfind.Id, 0, 1+len(captured))
	kids = append(kids, body)
	kids = append(kids, captured...)
	return Node{Op: Closure, Kids: kids}
}

func NewResourceClone(target unionfind.Id) Node { return Node{Op: ResourceClone, Kids: []unionfind.Id{target}} }
func NewResourceDrop(target unionfind.Id) Node  { return Node{Op: ResourceDrop, Kids: []unionfind.Id{target}} }

// Children returns this node's child ids in the fixed order its variant
// defines. Leaves return nil.
func (n Node) Children() []unionfind.Id {
	return n.Kids
}

// MapChildren rebuilds n with every child id replaced by f(child),
// preserving every non-id payload field verbatim. This is the single
// operation the e-graph uses to canonicalize a node against the
// union-find (f = uf.Find).
func (n Node) MapChildren(f func(unionfind.Id) unionfind.Id) Node {
	out := n
	if n.Kids == nil {
		return out
	}
	out.Kids = make([]unionfind.Id, len(n.Kids))
	for i, k := range n.Kids {
		out.Kids[i] = f(k)
	}
	return out
}

// Key returns a canonical, comparable, totally-ordered string encoding
// of the node's full structural identity (op, children, and payload).
// It underlies both hash-consing (egraph's memo is keyed by Key()) and
// the deterministic total order Less derives from it.
func (n Node) Key() string {
	var b strings.Builder
	b.WriteString(n.Op.String())
	b.WriteByte('(')
	for i, k := range n.Kids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(k), 10))
	}
	b.WriteByte(')')
	fmt.Fprintf(&b, "|i=%d|u=%d|b=%t|s=%q|s2=%q|s3=%q|n=%d|eff=%d|own=%d|strs=",
		n.I64, n.U64, n.Bool, n.Str, n.Str2, n.Str3, n.N, n.Eff, n.Own)
	for i, s := range n.Strs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(s))
	}
	return b.String()
}

// Equal reports whether two nodes have identical structural identity.
func (n Node) Equal(other Node) bool { return n.Key() == other.Key() }

// Less imposes a stable total order, derived from the canonical Key()
// encoding.
func (n Node) Less(other Node) bool { return n.Key() < other.Key() }

// IsLeaf reports whether this variant carries no children.
func (n Node) IsLeaf() bool { return len(n.Kids) == 0 }
