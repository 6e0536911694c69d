package extractor

import (
	"fmt"
	"sort"

	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// EGraph is the minimal surface Extractor needs: enough to enumerate
// every class's nodes and resolve canonical roots.
type EGraph[D analysis.HasDebugInfo] interface {
	Snapshot() map[unionfind.Id]*egraph.EClass[D]
	Find(id unionfind.Id) unionfind.Id
	GetClass(id unionfind.Id) (*egraph.EClass[D], error)
}

// Tree is a materialized e-node tree: one concrete choice per class,
// fully expanded into a rooted structure with no remaining ids. It
// mirrors lang.Node's single-struct-per-closed-set shape (Op plus
// typed children and payload) rather than forty leaf types, since
// every Tree a caller inspects still switches on the same closed Op
// tag a Node does.
type Tree struct {
	Op       lang.Op
	Children []*Tree

	I64  int64
	U64  uint64
	Bool bool
	Str  string
	Str2 string
	Str3 string
	Strs []string
	N    int
	Eff  lang.Effect
	Own  lang.Ownership

	// Loc carries the root class's first known debug location, when
	// any exists; nil otherwise.
	Loc *analysis.Loc
}

// Extractor runs the bottom-up cost fixpoint once at construction
// time (find-best), then serves Extract/GetBestNode/GetBestCost from
// the resulting per-class cost table.
type Extractor[D analysis.HasDebugInfo] struct {
	g         EGraph[D]
	model     CostModel
	bestCosts map[unionfind.Id]Cost
	bestNodes map[unionfind.Id]lang.Node
}

// New runs find-best over g under model and returns a ready Extractor.
// Complexity: each find-best pass is O(classes * nodes-per-class), and
// the fixpoint runs until no class's best cost improves, matching the
// same loop-to-fixpoint shape egraph.Rebuild uses for dirty classes.
func New[D analysis.HasDebugInfo](g EGraph[D], model CostModel) *Extractor[D] {
	e := &Extractor[D]{
		g:         g,
		model:     model,
		bestCosts: make(map[unionfind.Id]Cost),
		bestNodes: make(map[unionfind.Id]lang.Node),
	}
	e.findBest()
	return e
}

// findBest runs a cheapest-children-first fixpoint over the graph's
// classes, visited in ascending id order each pass so which e-node
// wins a tie is deterministic regardless of Go's randomized map
// iteration.
func (e *Extractor[D]) findBest() {
	snap := e.g.Snapshot()
	ids := make([]unionfind.Id, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	changed := true
	for changed {
		changed = false
		for _, id := range ids {
			class := snap[id]
			for _, n := range class.Nodes {
				nodeCost := e.model.Cost(n)
				canCompute := true
				for _, child := range n.Children() {
					childRoot := e.g.Find(child)
					childCost, ok := e.bestCosts[childRoot]
					if !ok {
						canCompute = false
						break
					}
					nodeCost = nodeCost.Add(childCost)
				}
				if !canCompute {
					continue
				}

				current, has := e.bestCosts[id]
				if !has || nodeCost.Score() < current.Score() {
					e.bestCosts[id] = nodeCost
					e.bestNodes[id] = n
					changed = true
				}
			}
		}
	}
}

// Extract materializes the cheapest tree rooted at id's class,
// recursively extracting each child by its own root's best node, and
// stamping Loc from the root class's debug data if it carries any.
func (e *Extractor[D]) Extract(id unionfind.Id) (*Tree, error) {
	root := e.g.Find(id)
	n, ok := e.bestNodes[root]
	if !ok {
		return nil, fmt.Errorf("extractor: no cost computed for class %d", root)
	}

	tree := &Tree{
		Op: n.Op, I64: n.I64, U64: n.U64, Bool: n.Bool,
		Str: n.Str, Str2: n.Str2, Str3: n.Str3, Strs: n.Strs,
		N: n.N, Eff: n.Eff, Own: n.Own,
	}
	for _, child := range n.Children() {
		childTree, err := e.Extract(child)
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, childTree)
	}

	if class, err := e.g.GetClass(root); err == nil {
		if locs := class.Data.GetLocs(); len(locs) > 0 {
			loc := locs[0]
			tree.Loc = &loc
		}
	}

	return tree, nil
}

// GetBestNode returns the e-node Extract would expand id's root into,
// without recursing into children.
func (e *Extractor[D]) GetBestNode(id unionfind.Id) (lang.Node, bool) {
	n, ok := e.bestNodes[e.g.Find(id)]
	return n, ok
}

// GetBestCost returns the total cost Extract would realize for id.
func (e *Extractor[D]) GetBestCost(id unionfind.Id) (Cost, bool) {
	c, ok := e.bestCosts[e.g.Find(id)]
	return c, ok
}

// IlpExtractor is a placeholder for a DAG-aware extraction that
// accounts for node sharing across the materialized tree; absent a
// real ILP solver it falls back to the greedy per-class Extractor,
// which can duplicate shared subexpressions in the output tree.
type IlpExtractor[D analysis.HasDebugInfo] struct {
	g     EGraph[D]
	model CostModel
}

func NewIlpExtractor[D analysis.HasDebugInfo](g EGraph[D], model CostModel) *IlpExtractor[D] {
	return &IlpExtractor[D]{g: g, model: model}
}

func (e *IlpExtractor[D]) Extract(id unionfind.Id) (*Tree, error) {
	return New(e.g, e.model).Extract(id)
}
