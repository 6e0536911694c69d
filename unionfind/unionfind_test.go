package unionfind_test

import (
	"testing"

	"github.com/frankban/quicktest"

	"github.com/uir-sat/uirsat/unionfind"
)

func TestFindSelfInitializes(t *testing.T) {
	c := quicktest.New(t)
	uf := unionfind.New()

	c.Assert(uf.Find(42), quicktest.Equals, unionfind.Id(42))
	// Repeated Find is idempotent once initialized.
	c.Assert(uf.Find(42), quicktest.Equals, unionfind.Id(42))
}

func TestUnionSelfIsNoop(t *testing.T) {
	c := quicktest.New(t)
	uf := unionfind.New()

	root := uf.Union(1, 1)
	c.Assert(root, quicktest.Equals, unionfind.Id(1))
	c.Assert(uf.Find(1), quicktest.Equals, unionfind.Id(1))
}

func TestUnionMergesSets(t *testing.T) {
	c := quicktest.New(t)
	uf := unionfind.New()

	root := uf.Union(1, 2)
	c.Assert(uf.Find(1), quicktest.Equals, root)
	c.Assert(uf.Find(2), quicktest.Equals, root)

	// Idempotent: unioning an already-merged pair again changes nothing.
	root2 := uf.Union(1, 2)
	c.Assert(root2, quicktest.Equals, root)
}

func TestUnionChainsTransitively(t *testing.T) {
	c := quicktest.New(t)
	uf := unionfind.New()

	uf.Union(1, 2)
	uf.Union(2, 3)
	uf.Union(3, 4)

	r1, r2, r3, r4 := uf.Find(1), uf.Find(2), uf.Find(3), uf.Find(4)
	c.Assert(r1, quicktest.Equals, r2)
	c.Assert(r2, quicktest.Equals, r3)
	c.Assert(r3, quicktest.Equals, r4)
}

func TestUnionDeterministicGivenSameOrder(t *testing.T) {
	c := quicktest.New(t)

	build := func() unionfind.Id {
		uf := unionfind.New()
		uf.Union(10, 20)
		uf.Union(20, 30)
		return uf.Find(10)
	}

	c.Assert(build(), quicktest.Equals, build())
}
