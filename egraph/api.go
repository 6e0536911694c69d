// File: api.go
// Role: thin, deterministic public facade over the mutating methods in
// methods.go. No algorithms live here beyond simple lock-and-read.

package egraph

import "github.com/uir-sat/uirsat/unionfind"

// Find returns the current canonical root of id, per the underlying
// union-find. Safe to call concurrently with Add/Union/Rebuild.
func (g *Graph[D, A]) Find(id unionfind.Id) unionfind.Id {
	return g.uf.Find(id)
}

// GetClass returns the e-class currently rooted at id's root. Returns
// ErrClassNotFound only if id was never produced by this Graph.
//
// Complexity: O(1) plus Find's near-O(1) walk.
func (g *Graph[D, A]) GetClass(id unionfind.Id) (*EClass[D], error) {
	root := g.uf.Find(id)

	g.mu.RLock()
	defer g.mu.RUnlock()

	class, ok := g.classes[root]
	if !ok {
		return nil, ErrClassNotFound
	}
	return class, nil
}

// Data implements analysis.ClassData[D]: it returns the analysis datum
// for id's class, or the zero value of D if id is unknown. Analysis.Make
// implementations call this (via the ClassData view passed to them) to
// read a child's already-computed data.
func (g *Graph[D, A]) Data(id unionfind.Id) D {
	class, err := g.GetClass(id)
	if err != nil {
		var zero D
		return zero
	}
	return class.Data
}

// Snapshot returns a shallow copy of the current id->class mapping, for
// rule implementations that need to scan every class without holding
// the graph's lock across calls back into Add/Union (which is
// forbidden: it would deadlock on g.mu). The EClass pointers themselves
// are shared, not cloned, so a snapshot observes later in-place Nodes/
// Data mutations to classes that survive; it never observes classes
// removed by a concurrent Union (they are simply absent on the next
// Snapshot) but also never re-adds one that was already copied out.
func (g *Graph[D, A]) Snapshot() map[unionfind.Id]*EClass[D] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[unionfind.Id]*EClass[D], len(g.classes))
	for id, class := range g.classes {
		out[id] = class
	}
	return out
}

// NumClasses returns the number of live e-classes. O(1).
func (g *Graph[D, A]) NumClasses() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.classes)
}

// Stats is a point-in-time diagnostic snapshot, the e-graph analogue of
// core.Graph's Stats()-style getters: no logging dependency, just a
// cheap struct a caller can print or assert on.
type Stats struct {
	Classes  int
	Nodes    int
	MemoSize int
	Dirty    int
}

// Stats returns a snapshot of the graph's current size. O(number of
// classes).
func (g *Graph[D, A]) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := 0
	for _, c := range g.classes {
		nodes += len(c.Nodes)
	}
	return Stats{
		Classes:  len(g.classes),
		Nodes:    nodes,
		MemoSize: len(g.memo),
		Dirty:    len(g.dirty),
	}
}
