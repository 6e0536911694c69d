// Package unionfind provides a disjoint-set forest over dense integer
// handles (Id), with path compression on Find and deterministic root
// selection on Union.
//
// This is the leaf-most component of the e-graph: the e-graph's
// congruence invariant and hash-consing both reduce to "does this Id
// resolve to the same root as that Id", which is exactly what
// UnionFind.Find answers in amortized near-constant time.
//
// Concurrency: UnionFind guards its parent map with a single
// sync.Mutex (Find itself mutates the map via path compression, so a
// plain Mutex rather than core.Graph's split RWMutex pattern), so
// Find/Union are safe to call from multiple goroutines. A losing
// writer's path compression is always benign: it just means a future
// Find walks one extra hop, never an incorrect root.
package unionfind
