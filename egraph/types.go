package egraph

import (
	"sync"

	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// EClass is one equivalence class: a set of structurally-congruent
// e-nodes (all eventually interchangeable under the rewrite system)
// plus the analysis data computed over them.
type EClass[D any] struct {
	ID    unionfind.Id
	Nodes []lang.Node
	Data  D
}

// GraphOption configures a Graph at construction time.
type GraphOption[D any, A analysis.Analysis[D]] func(g *Graph[D, A])

// WithAnalysis overrides the zero-value analysis instance the Graph
// would otherwise use. Most analyses are stateless (A's methods close
// over no fields), so the zero value is usually correct; this exists
// for analyses that do carry configuration.
func WithAnalysis[D any, A analysis.Analysis[D]](a A) GraphOption[D, A] {
	return func(g *Graph[D, A]) { g.analysis = a }
}

// Graph is the e-graph: a union-find of e-classes, hash-consed so that
// adding a structurally-identical node twice returns the same id.
//
// D is the analysis datum type; A is the concrete analysis
// implementation (analysis.Analysis[D]) run over every e-class.
type Graph[D any, A analysis.Analysis[D]] struct {
	mu sync.RWMutex

	uf       *unionfind.UnionFind
	classes  map[unionfind.Id]*EClass[D]
	memo     map[string]unionfind.Id
	dirty    map[unionfind.Id]struct{}
	analysis A
	nextID   uint64
}

// New returns an empty Graph with the zero value of A as its analysis
// instance, then applies opts left to right.
func New[D any, A analysis.Analysis[D]](opts ...GraphOption[D, A]) *Graph[D, A] {
	g := &Graph[D, A]{
		uf:      unionfind.New(),
		classes: make(map[unionfind.Id]*EClass[D]),
		memo:    make(map[string]unionfind.Id),
		dirty:   make(map[unionfind.Id]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
