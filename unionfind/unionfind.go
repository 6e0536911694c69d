package unionfind

// Find returns the root of i's set. If i has never been seen before, it
// is self-initialized (parents[i] = i) and returned as its own root.
//
// Path compression: every node visited on the walk to the root is
// repointed directly at the root before returning, so the next Find
// through any of them is O(1).
//
// Complexity: amortized near-O(1) with path compression alone; no
// rank/size heuristic is applied, so a pathological union order can
// still produce an O(log n) walk rather than the O(inverse-Ackermann)
// bound a ranked DSU gives.
func (uf *UnionFind) Find(i Id) Id {
	uf.mu.Lock()
	defer uf.mu.Unlock()

	if uf.parents == nil {
		uf.parents = make(map[Id]Id)
	}

	if _, ok := uf.parents[i]; !ok {
		uf.parents[i] = i
		return i
	}

	// Walk to the root, recording the path for compression.
	root := i
	var path []Id
	for uf.parents[root] != root {
		path = append(path, root)
		root = uf.parents[root]
	}

	// Compress: every visited node now points straight at root.
	for _, id := range path {
		uf.parents[id] = root
	}

	return root
}

// Union merges the sets containing i and j and returns the resulting
// root. If i and j already share a root, that root is returned
// unchanged and no mutation happens.
//
// Root-selection policy: the root of j's set becomes the parent of the
// root of i's set (i.e. find(j) wins), which is deterministic given a
// fixed insertion/call order — callers relying on determinism (the
// e-graph's congruence tie-break) must call Union with a consistent
// argument order, which egraph.Graph does.
func (uf *UnionFind) Union(i, j Id) Id {
	rootI := uf.Find(i)
	rootJ := uf.Find(j)
	if rootI == rootJ {
		return rootI
	}

	uf.mu.Lock()
	defer uf.mu.Unlock()
	uf.parents[rootI] = rootJ

	return rootJ
}
