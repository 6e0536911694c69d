package lang

// Op tags which variant of the node language a Node represents.
type Op int

// The closed set of e-node variants: leaf atoms, fixed-arity
// structural constructors, variadic constructors, and the two
// module-level atoms.
const (
	opInvalid Op = iota

	// --- Data atoms (leaves) ---
	Constant        // I64
	FloatConstant   // U64 (raw IEEE-754 bit pattern; NaN payloads compare distinct)
	BooleanConstant // Bool
	StringConstant  // Str
	Symbol          // Str

	// --- Module and symbols ---
	Import // Str (module), Str2 (symbol) — leaf
	Export // Str (symbol), Kids[0] (body)
	Module // Str (name), Kids (items)

	// --- Basic intents ---
	Map         // Kids[0]=f, Kids[1]=x
	Filter      // Kids[0]=f, Kids[1]=x
	Reduce      // Kids[0]=f, Kids[1]=init, Kids[2]=xs
	StateUpdate // Kids[0]=target, Kids[1]=val
	Choice      // Kids[0]=cond, Kids[1]=then, Kids[2]=els
	Repeat      // Kids[0]=count, Kids[1]=body
	LifeCycle   // Kids[0]=setup, Kids[1]=cleanup
	Meta        // Kids[0]=body
	Trap        // Kids[0]=body
	Return      // Kids[0]=value

	// --- Composition ---
	Seq     // Kids (ordered statements)
	Compose // Kids[0]=a, Kids[1]=b

	// --- Context and constraints ---
	WithContext    // Kids[0]=ctx, Kids[1]=body
	WithConstraint // Kids[0]=constraint, Kids[1]=body

	// --- Context atoms (leaves) ---
	CpuContext
	GpuContext
	AsyncContext
	SpatialContext
	ComptimeContext
	ResourceContext
	SafeContext

	// --- Constraint atoms (leaves) ---
	EffectConstraint    // Eff
	OwnershipConstraint // Own
	TypeConstraint      // Str
	AtomicConstraint

	// --- Extension point ---
	Extension // Str (name), Kids (args)

	// --- Cross-language ---
	CrossLangCall // Str=language, Str2=module_path, Str3=function_name, Kids=arguments

	// --- Concretization layer ---
	SoALayout  // Kids[0]
	AoSLayout  // Kids[0]
	Tiled      // N (factor), Kids[0]
	Unrolled   // N (factor), Kids[0]
	Vectorized // N (width), Kids[0]

	// --- Optimized specialized intents (avoid pure-wrapper e-graph cycles) ---
	TiledMap      // N (factor), Kids[0]=f, Kids[1]=x
	VectorizedMap // N (width), Kids[0]=f, Kids[1]=x
	UnrolledMap   // N (factor), Kids[0]=f, Kids[1]=x
	SoAMap        // Kids[0]=f, Kids[1]=x
	GpuMap        // Kids[0]=f, Kids[1]=x
	CpuMap        // Kids[0]=f, Kids[1]=x

	// --- Spatial layer ---
	Pipe // Kids[0]=body, Kids[1]=metadata
	Reg  // Kids[0]=value

	// --- Function and closure ---
	Lambda  // Strs=params, Kids[0]=body
	Apply   // Kids[0]=func, Kids[1:]=args
	Closure // Kids[0]=body, Kids[1:]=captured

	// --- Resource management ---
	ResourceClone // Kids[0]
	ResourceDrop  // Kids[0]
)

var opNames = map[Op]string{
	Constant: "Constant", FloatConstant: "FloatConstant", BooleanConstant: "BooleanConstant",
	StringConstant: "StringConstant", Symbol: "Symbol", Import: "Import", Export: "Export",
	Module: "Module", Map: "Map", Filter: "Filter", Reduce: "Reduce", StateUpdate: "StateUpdate",
	Choice: "Choice", Repeat: "Repeat", LifeCycle: "LifeCycle", Meta: "Meta", Trap: "Trap",
	Return: "Return", Seq: "Seq", Compose: "Compose", WithContext: "WithContext",
	WithConstraint: "WithConstraint", CpuContext: "CpuContext", GpuContext: "GpuContext",
	AsyncContext: "AsyncContext", SpatialContext: "SpatialContext", ComptimeContext: "ComptimeContext",
	ResourceContext: "ResourceContext", SafeContext: "SafeContext", EffectConstraint: "EffectConstraint",
	OwnershipConstraint: "OwnershipConstraint", TypeConstraint: "TypeConstraint",
	AtomicConstraint: "AtomicConstraint", Extension: "Extension", CrossLangCall: "CrossLangCall",
	SoALayout: "SoALayout", AoSLayout: "AoSLayout", Tiled: "Tiled", Unrolled: "Unrolled",
	Vectorized: "Vectorized", TiledMap: "TiledMap", VectorizedMap: "VectorizedMap",
	UnrolledMap: "UnrolledMap", SoAMap: "SoAMap", GpuMap: "GpuMap", CpuMap: "CpuMap",
	Pipe: "Pipe", Reg: "Reg", Lambda: "Lambda", Apply: "Apply", Closure: "Closure",
	ResourceClone: "ResourceClone", ResourceDrop: "ResourceDrop",
}

// String returns the variant's name, for debug output and error messages.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Op(invalid)"
}

// Effect is one point on the effect lattice:
// Pure ⊑ {ReadOnly, WriteOnly} ⊑ ReadWrite ⊑ Panic ⊑ Diverge.
type Effect int

const (
	Pure Effect = iota
	ReadOnly
	WriteOnly
	ReadWrite
	Panic
	Diverge
)

var effectNames = [...]string{"Pure", "ReadOnly", "WriteOnly", "ReadWrite", "Panic", "Diverge"}

func (e Effect) String() string {
	if int(e) >= 0 && int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "Effect(invalid)"
}

// Join computes the least upper bound of two effects: Diverge absorbs
// all; Panic absorbs all below; ReadOnly⊔WriteOnly=ReadWrite; Pure⊔x=x.
func (e Effect) Join(other Effect) Effect {
	if e == Diverge || other == Diverge {
		return Diverge
	}
	if e == Panic || other == Panic {
		return Panic
	}
	if e == ReadWrite || other == ReadWrite {
		return ReadWrite
	}
	if (e == WriteOnly && other == ReadOnly) || (e == ReadOnly && other == WriteOnly) {
		return ReadWrite
	}
	if e == WriteOnly || other == WriteOnly {
		return WriteOnly
	}
	if e == ReadOnly || other == ReadOnly {
		return ReadOnly
	}
	// Both Pure.
	return Pure
}

// Ownership is a "present or absent, first-writer-wins" constraint atom.
type Ownership int

const (
	Borrowed Ownership = iota
	Owned
	Shared
	Linear
)

var ownershipNames = [...]string{"Borrowed", "Owned", "Shared", "Linear"}

func (o Ownership) String() string {
	if int(o) >= 0 && int(o) < len(ownershipNames) {
		return ownershipNames[o]
	}
	return "Ownership(invalid)"
}
