package analysis

import (
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// Loc is a source-location reference attached to an e-node at Add time.
// It carries no meaning to the e-graph itself; only DebugAnalysis (and
// analyses composed with it via Product) consume it.
type Loc struct {
	File string
	Line int
	Col  int
}

// ClassData is the minimal view of an e-graph an Analysis.Make
// implementation needs: the already-computed analysis datum for any
// child id. Every child of a node being added was added (and so
// analyzed) first, so Data is always defined for ids a node's
// Children() returns.
type ClassData[D any] interface {
	Data(id unionfind.Id) D
}

// Analysis is the abstract-interpretation contract an e-graph runs
// per e-class. D is the analysis datum type; implementations are
// typically a zero-size struct (the methods close over no state) since
// the actual per-class state lives in D, not in the Analysis value.
type Analysis[D any] interface {
	// Make computes the analysis datum for a freshly hash-consed
	// canonical node, given access to its children's already-computed
	// data via g.
	Make(g ClassData[D], enode lang.Node) D

	// Merge folds from into *to in place, returning true if *to
	// changed. Called whenever two e-classes (each with their own
	// datum) are unioned; the surviving class's datum is to.
	Merge(to *D, from D) bool

	// OnAdd is invoked when a node is added with location provenance
	// attached (egraph.Graph.AddWithLoc). Most analyses ignore it;
	// Debug (and Product, when composed with Debug) folds loc into
	// data.
	OnAdd(data *D, loc Loc)

	// IsCompatible gates Union: if it returns false for the two
	// candidate classes' data, Union refuses to merge them and
	// returns the left-hand root unchanged.
	IsCompatible(d1, d2 D) bool
}
