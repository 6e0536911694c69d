package analysis

import "github.com/uir-sat/uirsat/lang"

// MemoryLayout is the concretization layer's memory-layout lattice
// element: Unknown is bottom, SoA and AoS are incomparable facts a
// node can be tagged with once a LayoutTransformation rule fires.
type MemoryLayout int

const (
	LayoutUnknown MemoryLayout = iota
	LayoutSoA
	LayoutAoS
)

func (l MemoryLayout) String() string {
	switch l {
	case LayoutSoA:
		return "SoA"
	case LayoutAoS:
		return "AoS"
	default:
		return "Unknown"
	}
}

// ConcretizationData is the per-class datum LayoutAnalysis computes:
// the memory layout (if decided), plus optional tiling/unroll/vector
// factors a scheduling rule attached to this class.
type ConcretizationData struct {
	Layout        MemoryLayout
	TilingFactor  *int
	UnrollFactor  *int
	VectorWidth   *int
}

// Merge folds other into d in place; Layout resolves Unknown-wins-lose
// (the first concrete layout seen sticks), and each factor is
// first-writer-wins, matching ConstraintSet's merge policy.
func (d *ConcretizationData) Merge(other ConcretizationData) bool {
	changed := false

	if d.Layout == LayoutUnknown && other.Layout != LayoutUnknown {
		d.Layout = other.Layout
		changed = true
	}
	if d.TilingFactor == nil && other.TilingFactor != nil {
		d.TilingFactor = other.TilingFactor
		changed = true
	}
	if d.UnrollFactor == nil && other.UnrollFactor != nil {
		d.UnrollFactor = other.UnrollFactor
		changed = true
	}
	if d.VectorWidth == nil && other.VectorWidth != nil {
		d.VectorWidth = other.VectorWidth
		changed = true
	}

	return changed
}

// LayoutAnalysis propagates the concretization lattice bottom-up: the
// layout/tiling/unroll/vector wrapper nodes seed their respective
// field from their child's existing data, everything else merges its
// children's data unchanged.
type LayoutAnalysis struct{}

func (LayoutAnalysis) Make(g ClassData[ConcretizationData], n lang.Node) ConcretizationData {
	var data ConcretizationData

	switch n.Op {
	case lang.SoALayout, lang.SoAMap:
		data = g.Data(n.Kids[0])
		data.Layout = LayoutSoA

	case lang.AoSLayout:
		data = g.Data(n.Kids[0])
		data.Layout = LayoutAoS

	case lang.Tiled, lang.TiledMap:
		data = g.Data(n.Kids[0])
		factor := n.N
		data.TilingFactor = &factor

	case lang.Unrolled, lang.UnrolledMap:
		data = g.Data(n.Kids[0])
		factor := n.N
		data.UnrollFactor = &factor

	case lang.Vectorized, lang.VectorizedMap:
		data = g.Data(n.Kids[0])
		width := n.N
		data.VectorWidth = &width

	default:
		for _, kid := range n.Children() {
			childData := g.Data(kid)
			data.Merge(childData)
		}
	}

	return data
}

func (LayoutAnalysis) Merge(to *ConcretizationData, from ConcretizationData) bool {
	return to.Merge(from)
}

func (LayoutAnalysis) OnAdd(*ConcretizationData, Loc) {}

func (LayoutAnalysis) IsCompatible(ConcretizationData, ConcretizationData) bool { return true }
