// File: methods.go
// Mutating Graph operations: Add, AddWithLoc, Union, Rebuild.
//
// Add never holds g.mu while calling Analysis.Make, and Union never
// holds it while calling Analysis.IsCompatible: Make may read a child's
// data via g.Data, which takes its own RLock, and sync.RWMutex is not
// safe to re-enter from the same goroutine while a writer may be
// queued. Merge (in Union) and OnAdd (in AddWithLoc) are handed no
// graph to read from and run with the write lock held.

package egraph

import (
	"github.com/uir-sat/uirsat/analysis"
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// Add canonicalizes enode's children against the current union-find,
// hash-conses it against memo, and returns its id. Adding a node that
// already has a structurally-identical entry in the graph is a no-op
// that returns the existing id's current root.
//
// Complexity: O(len(children)) for canonicalization, plus whatever
// Analysis.Make costs.
func (g *Graph[D, A]) Add(enode lang.Node) unionfind.Id {
	canonical := enode.MapChildren(g.uf.Find)
	key := canonical.Key()

	g.mu.RLock()
	if id, ok := g.memo[key]; ok {
		g.mu.RUnlock()
		return g.uf.Find(id)
	}
	g.mu.RUnlock()

	data := g.analysis.Make(g, canonical)

	g.mu.Lock()
	defer g.mu.Unlock()

	// Another goroutine may have added the same canonical node while we
	// were computing data; defer to whichever id won that race.
	if id, ok := g.memo[key]; ok {
		return g.uf.Find(id)
	}

	id := unionfind.Id(g.nextID)
	g.nextID++
	g.memo[key] = id
	g.classes[id] = &EClass[D]{ID: id, Nodes: []lang.Node{canonical}, Data: data}

	return id
}

// AddWithLoc is Add plus a source-location provenance hint folded into
// the resulting class's data via Analysis.OnAdd. Analyses that don't
// track location (most of them) treat OnAdd as a no-op.
func (g *Graph[D, A]) AddWithLoc(enode lang.Node, loc analysis.Loc) unionfind.Id {
	id := g.Add(enode)
	root := g.uf.Find(id)

	g.mu.Lock()
	defer g.mu.Unlock()

	if class, ok := g.classes[root]; ok {
		g.analysis.OnAdd(&class.Data, loc)
	}

	return root
}

// Union merges the e-classes rooted at id1 and id2, provided
// Analysis.IsCompatible accepts their data. If the classes are already
// the same, or IsCompatible refuses the merge, Union is a no-op and
// returns id1's root unchanged.
//
// The merged class's node set is the union (deduplicated by structural
// equality) of both classes' nodes, and its data is Analysis.Merge'd
// from the absorbed class into the survivor. The surviving root is
// marked dirty so the next Rebuild restores congruence for any node
// that referenced either root.
func (g *Graph[D, A]) Union(id1, id2 unionfind.Id) unionfind.Id {
	root1 := g.uf.Find(id1)
	root2 := g.uf.Find(id2)
	if root1 == root2 {
		return root1
	}

	g.mu.RLock()
	class1, ok1 := g.classes[root1]
	class2, ok2 := g.classes[root2]
	var data1, data2 D
	if ok1 {
		data1 = class1.Data
	}
	if ok2 {
		data2 = class2.Data
	}
	g.mu.RUnlock()

	if !ok1 || !ok2 {
		return root1
	}
	if !g.analysis.IsCompatible(data1, data2) {
		return root1
	}

	newRoot := g.uf.Union(root1, root2)
	oldRoot := root1
	if newRoot == root1 {
		oldRoot = root2
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.dirty[newRoot] = struct{}{}

	oldClass, ok := g.classes[oldRoot]
	if !ok {
		return newRoot
	}
	delete(g.classes, oldRoot)

	newClass, ok := g.classes[newRoot]
	if !ok {
		return newRoot
	}
	for _, n := range oldClass.Nodes {
		if !containsNode(newClass.Nodes, n) {
			newClass.Nodes = append(newClass.Nodes, n)
		}
	}
	g.analysis.Merge(&newClass.Data, oldClass.Data)

	return newRoot
}

// Rebuild restores the congruence invariant after a batch of Union
// calls: every node stored in a class is re-canonicalized against the
// current union-find, re-hash-consed, and any congruence conflict this
// surfaces (two syntactically-different-but-now-canonically-identical
// nodes pointing at different roots) is resolved by unioning those
// roots too. Runs to a fixpoint: a union performed while rebuilding may
// dirty further classes, so the loop repeats until dirty is empty.
//
// Callers should call Rebuild after every batch of Union calls (a
// single saturation iteration's worth) rather than after each
// individual Union: each round that finds the dirty set non-empty
// re-canonicalizes every class, so its cost is dominated by the total
// node count, not by how many Unions produced the dirty set.
func (g *Graph[D, A]) Rebuild() {
	for {
		g.mu.Lock()
		if len(g.dirty) == 0 {
			g.mu.Unlock()
			return
		}
		// A congruence conflict shows up in the classes whose nodes
		// point at a merged class, not in the merged class itself, so
		// every class is re-canonicalized, not only the dirty ones.
		dirtyList := make([]unionfind.Id, 0, len(g.classes))
		for id := range g.classes {
			dirtyList = append(dirtyList, id)
		}
		g.dirty = make(map[unionfind.Id]struct{})
		g.mu.Unlock()

		var todo [][2]unionfind.Id

		for _, id := range dirtyList {
			root := g.uf.Find(id)

			g.mu.Lock()
			class, ok := g.classes[root]
			if !ok {
				g.mu.Unlock()
				continue
			}
			oldNodes := class.Nodes
			class.Nodes = nil
			g.mu.Unlock()

			var newNodes []lang.Node
			for _, node := range oldNodes {
				canonical := node.MapChildren(g.uf.Find)
				key := canonical.Key()

				g.mu.Lock()
				if oldID, ok := g.memo[key]; ok {
					oldRoot := g.uf.Find(oldID)
					if oldRoot != root {
						todo = append(todo, [2]unionfind.Id{oldRoot, root})
					}
				}
				g.memo[key] = root
				g.mu.Unlock()

				newNodes = appendIfMissingNode(newNodes, canonical)
			}

			g.mu.Lock()
			if class, ok := g.classes[root]; ok {
				class.Nodes = newNodes
			}
			g.mu.Unlock()
		}

		for _, pair := range todo {
			g.Union(pair[0], pair[1])
		}
	}
}

func containsNode(nodes []lang.Node, n lang.Node) bool {
	for _, x := range nodes {
		if x.Equal(n) {
			return true
		}
	}
	return false
}

func appendIfMissingNode(nodes []lang.Node, n lang.Node) []lang.Node {
	if containsNode(nodes, n) {
		return nodes
	}
	return append(nodes, n)
}
