package extractor

import (
	"math"

	"github.com/uir-sat/uirsat/lang"
)

// Cost is a four-dimensional measure of one e-node's execution
// profile: Latency and Size and Energy accumulate additively up a
// tree, while Throughput is bounded by the slowest stage (min, not
// sum) since a pipeline's throughput is limited by its narrowest
// stage.
type Cost struct {
	Latency    float64
	Throughput float64
	Size       float64
	Energy     float64
}

// DefaultCost is the cost of a node with no measurable overhead: zero
// latency/size/energy and a throughput of 1.0. Since Add takes the
// minimum throughput, adding it to a cost caps that cost's throughput
// at 1.0.
func DefaultCost() Cost {
	return Cost{Throughput: 1.0}
}

// Infinite marks a node as uncomputable under a given cost model (for
// example, a GPU-only node under the CPU model): Score always returns
// +Inf for it, so the extractor never selects it while any finite
// alternative exists.
func Infinite() Cost {
	return Cost{
		Latency:    math.Inf(1),
		Throughput: 0,
		Size:       math.Inf(1),
		Energy:     math.Inf(1),
	}
}

// Add combines a node's own cost with one child's already-computed
// cost, accumulating Latency/Size/Energy and tightening Throughput to
// the slower of the two.
func (c Cost) Add(other Cost) Cost {
	return Cost{
		Latency:    c.Latency + other.Latency,
		Throughput: math.Min(c.Throughput, other.Throughput),
		Size:       c.Size + other.Size,
		Energy:     c.Energy + other.Energy,
	}
}

// Score scalarizes Cost into the single number the extractor minimizes:
// (latency / throughput) + size*0.5 + energy*0.2. Any Inf component, or
// non-positive throughput, always scores +Inf.
func (c Cost) Score() float64 {
	if math.IsInf(c.Latency, 1) || math.IsInf(c.Size, 1) || math.IsInf(c.Energy, 1) || c.Throughput <= 0 {
		return math.Inf(1)
	}
	return (c.Latency / c.Throughput) + c.Size*0.5 + c.Energy*0.2
}

// WeightedScore scalarizes Cost under caller-supplied weights instead
// of Score's fixed ones, for callers that want to bias selection
// toward a particular dimension (e.g. GPUCostModel's own weights).
func (c Cost) WeightedScore(latencyWeight, sizeWeight, energyWeight float64) float64 {
	if math.IsInf(c.Latency, 1) || math.IsInf(c.Size, 1) || math.IsInf(c.Energy, 1) {
		return math.Inf(1)
	}
	return c.Latency*latencyWeight + c.Size*sizeWeight + c.Energy*energyWeight
}

// CostModel assigns a Cost to one e-node's own work, independent of
// its children; Weights returns the (latency, size, energy) weighting
// this model prefers for WeightedScore.
type CostModel interface {
	Cost(n lang.Node) Cost
	Weights() (latency, size, energy float64)
}

// DefaultCostModel assigns every node the identity Cost, useful for
// tests that care about tree shape rather than numeric selection.
type DefaultCostModel struct{}

func (DefaultCostModel) Cost(lang.Node) Cost { return DefaultCost() }
func (DefaultCostModel) Weights() (float64, float64, float64) {
	return 1.0, 0.5, 0.2
}

// JSCostModel favors fused/vectorized forms over naive Map/Filter,
// and optionally favors the loop_* Extension lowering over the
// unlowered combinator form depending on PreferLoop.
type JSCostModel struct {
	PreferLoop bool
}

func (m JSCostModel) Weights() (float64, float64, float64) { return 1.0, 0.5, 0.2 }

func (m JSCostModel) Cost(n lang.Node) Cost {
	switch n.Op {
	case lang.Map, lang.Filter:
		return Cost{Latency: 5.0, Throughput: 1.0, Size: 1.0, Energy: 1.0}
	case lang.SoAMap:
		return Cost{Latency: 1.0, Throughput: 10.0, Size: 1.0, Energy: 0.5}
	case lang.TiledMap:
		return Cost{Latency: 1.5, Throughput: 20.0, Size: 2.0, Energy: 1.0}
	case lang.VectorizedMap:
		return Cost{Latency: 0.8, Throughput: 40.0, Size: 1.5, Energy: 0.8}
	case lang.Return:
		return Cost{Latency: 1.0, Throughput: 1.0, Size: 1.0, Energy: 0.1}
	case lang.Reduce:
		return Cost{Latency: 6.0, Throughput: 1.0, Size: 1.0, Energy: 1.2}
	case lang.Extension:
		switch n.Str {
		case "loop_map", "loop_filter", "loop_reduce", "loop_map_reduce":
			if m.PreferLoop {
				return Cost{Latency: 2.0, Throughput: 10.0, Size: 2.0, Energy: 1.0}
			}
			return Cost{Latency: 5.0, Throughput: 2.0, Size: 10.0, Energy: 2.0}
		case "and_predicate":
			return Cost{Latency: 0.5, Throughput: 1.0, Size: 1.0, Energy: 0.5}
		case "filter_map":
			return Cost{Latency: 1.0, Throughput: 5.0, Size: 2.0, Energy: 1.0}
		case "add", "sub":
			return Cost{Latency: 0.6, Throughput: 2.0, Size: 1.0, Energy: 0.2}
		case "shl", "shr":
			return Cost{Latency: 0.4, Throughput: 2.0, Size: 1.0, Energy: 0.1}
		case "mul":
			return Cost{Latency: 0.8, Throughput: 1.5, Size: 1.2, Energy: 0.3}
		default:
			return Cost{Latency: 1.0, Throughput: 1.0, Size: 1.0, Energy: 1.0}
		}
	case lang.Seq:
		n := float64(len(n.Kids))
		return Cost{Latency: n * 0.1, Throughput: 1.0, Size: n * 0.1, Energy: n * 0.1}
	default:
		return DefaultCost()
	}
}

// CPUCostModel favors scalar/vectorized CPU forms and marks GPU-only
// forms as unrunnable.
type CPUCostModel struct{}

func (CPUCostModel) Weights() (float64, float64, float64) { return 1.0, 0.5, 0.2 }

func (CPUCostModel) Cost(n lang.Node) Cost {
	switch n.Op {
	case lang.Constant, lang.FloatConstant, lang.BooleanConstant:
		return Cost{Latency: 1.0, Throughput: 4.0, Size: 1.0, Energy: 0.1}
	case lang.Symbol:
		return Cost{Latency: 1.0, Throughput: 4.0, Size: 0, Energy: 0}
	case lang.Return:
		return Cost{Latency: 1.0, Throughput: 4.0, Size: 1.0, Energy: 0.1}
	case lang.Map:
		return Cost{Latency: 10.0, Throughput: 1.0, Size: 5.0, Energy: 2.0}
	case lang.VectorizedMap:
		return Cost{Latency: 2.0, Throughput: 8.0, Size: 10.0, Energy: 1.0}
	case lang.TiledMap:
		return Cost{Latency: 5.0, Throughput: 2.0, Size: 8.0, Energy: 1.5}
	case lang.CpuMap:
		return Cost{Latency: 1.0, Throughput: 4.0, Size: 1.0, Energy: 0.5}
	case lang.GpuMap:
		return Infinite()
	default:
		return Cost{Latency: 2.0, Throughput: 1.0, Size: 2.0, Energy: 1.0}
	}
}

// GPUCostModel favors GpuMap and marks CPU-only forms as unrunnable;
// it also weights throughput far more heavily than latency, since a
// GPU is worth using only when it is saturated.
type GPUCostModel struct{}

func (GPUCostModel) Weights() (float64, float64, float64) { return 0.1, 1.0, 2.0 }

func (GPUCostModel) Cost(n lang.Node) Cost {
	switch n.Op {
	case lang.Constant, lang.FloatConstant, lang.BooleanConstant:
		return Cost{Latency: 1.0, Throughput: 32.0, Size: 1.0, Energy: 0.05}
	case lang.GpuMap:
		return Cost{Latency: 5.0, Throughput: 100.0, Size: 10.0, Energy: 5.0}
	case lang.CpuMap:
		return Infinite()
	case lang.Map:
		return Cost{Latency: 20.0, Throughput: 0.5, Size: 10.0, Energy: 10.0}
	default:
		return Cost{Latency: 10.0, Throughput: 10.0, Size: 5.0, Energy: 2.0}
	}
}

// Backend names the target an Evaluator scored a node under.
type Backend int

const (
	JS Backend = iota
	CPU
	GPU
)

func (b Backend) String() string {
	switch b {
	case JS:
		return "JS"
	case CPU:
		return "CPU"
	case GPU:
		return "GPU"
	default:
		return "Backend(invalid)"
	}
}

// BackendCost pairs one Evaluator.EvaluateAll result with the backend
// it was computed under.
type BackendCost struct {
	Backend Backend
	Cost    Cost
}

// Evaluator scores a single e-node under all three built-in backends
// at once, for a caller that wants to know which target a given
// operation runs best on rather than pre-committing to one CostModel.
type Evaluator struct {
	JS  JSCostModel
	CPU CPUCostModel
	GPU GPUCostModel
}

// NewEvaluator returns an Evaluator with JS's PreferLoop set true,
// matching the default construction used everywhere else in this
// module.
func NewEvaluator() Evaluator {
	return Evaluator{JS: JSCostModel{PreferLoop: true}}
}

// EvaluateAll scores n under JS, CPU, and GPU, in that order.
func (e Evaluator) EvaluateAll(n lang.Node) []BackendCost {
	return []BackendCost{
		{JS, e.JS.Cost(n)},
		{CPU, e.CPU.Cost(n)},
		{GPU, e.GPU.Cost(n)},
	}
}

// BestBackend returns whichever of the three backends scores n's Cost
// lowest.
func (e Evaluator) BestBackend(n lang.Node) BackendCost {
	costs := e.EvaluateAll(n)
	best := costs[0]
	for _, c := range costs[1:] {
		if c.Cost.Score() < best.Cost.Score() {
			best = c
		}
	}
	return best
}

// GetModel returns the CostModel backing one named backend.
func (e Evaluator) GetModel(backend Backend) CostModel {
	switch backend {
	case JS:
		return e.JS
	case CPU:
		return e.CPU
	case GPU:
		return e.GPU
	default:
		return DefaultCostModel{}
	}
}
