package unionfind

import "sync"

// Id is an opaque dense handle identifying an e-class. Ids are never
// recycled: once allocated by the e-graph, an Id remains a valid key
// into the union-find forest for the lifetime of the graph.
type Id uint64

// UnionFind is a parent-pointer forest with path compression. The zero
// value is ready to use: an unseen Id self-initializes as its own root
// on first Find.
//
// mu guards parents; Find takes the lock for both the read of existing
// parents and any path-compression writes it performs along the way.
type UnionFind struct {
	mu      sync.Mutex
	parents map[Id]Id
}

// New returns an empty UnionFind.
func New() *UnionFind {
	return &UnionFind{parents: make(map[Id]Id)}
}
