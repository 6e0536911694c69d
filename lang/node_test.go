package lang_test

import (
	"testing"

	"github.com/frankban/quicktest"
	gofuzz "github.com/google/gofuzz"

	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

func TestConstantIsLeaf(t *testing.T) {
	c := quicktest.New(t)
	n := lang.NewConstant(7)

	c.Assert(n.IsLeaf(), quicktest.IsTrue)
	c.Assert(n.Children(), quicktest.HasLen, 0)
}

func TestMapHasOrderedChildren(t *testing.T) {
	c := quicktest.New(t)
	n := lang.NewMap(unionfind.Id(1), unionfind.Id(2))

	c.Assert(n.Children(), quicktest.DeepEquals, []unionfind.Id{1, 2})
}

func TestMapChildrenPreservesPayload(t *testing.T) {
	c := quicktest.New(t)
	n := lang.NewTiled(32, unionfind.Id(5))

	mapped := n.MapChildren(func(id unionfind.Id) unionfind.Id { return id + 100 })

	c.Assert(mapped.Children(), quicktest.DeepEquals, []unionfind.Id{105})
	c.Assert(mapped.N, quicktest.Equals, n.N)
	c.Assert(mapped.Op, quicktest.Equals, n.Op)
}

func TestEqualNodesHaveEqualKeys(t *testing.T) {
	c := quicktest.New(t)
	a := lang.NewMap(unionfind.Id(1), unionfind.Id(2))
	b := lang.NewMap(unionfind.Id(1), unionfind.Id(2))

	c.Assert(a.Equal(b), quicktest.IsTrue)
	c.Assert(a.Key(), quicktest.Equals, b.Key())
}

func TestDifferentChildOrderIsNotEqual(t *testing.T) {
	c := quicktest.New(t)
	a := lang.NewMap(unionfind.Id(1), unionfind.Id(2))
	b := lang.NewMap(unionfind.Id(2), unionfind.Id(1))

	c.Assert(a.Equal(b), quicktest.IsFalse)
}

func TestCrossLangCallDistinguishesFunctionName(t *testing.T) {
	c := quicktest.New(t)
	a := lang.NewCrossLangCall("js", "mod", "f", nil)
	b := lang.NewCrossLangCall("js", "mod", "g", nil)

	c.Assert(a.Equal(b), quicktest.IsFalse)
}

func TestKeyIsTotallyOrderedAndConsistent(t *testing.T) {
	c := quicktest.New(t)
	a := lang.NewConstant(1)
	b := lang.NewConstant(2)

	lessAB := a.Less(b)
	lessBA := b.Less(a)
	// Exactly one direction holds for distinct nodes (no cycle).
	c.Assert(lessAB != lessBA || a.Equal(b), quicktest.IsTrue)
}

func TestEffectJoinIsCommutativeAndAbsorbing(t *testing.T) {
	c := quicktest.New(t)

	c.Assert(lang.Pure.Join(lang.Pure), quicktest.Equals, lang.Pure)
	c.Assert(lang.ReadOnly.Join(lang.WriteOnly), quicktest.Equals, lang.ReadWrite)
	c.Assert(lang.WriteOnly.Join(lang.ReadOnly), quicktest.Equals, lang.ReadWrite)
	c.Assert(lang.Diverge.Join(lang.Pure), quicktest.Equals, lang.Diverge)
	c.Assert(lang.Panic.Join(lang.ReadWrite), quicktest.Equals, lang.Panic)
	c.Assert(lang.ReadWrite.Join(lang.Pure), quicktest.Equals, lang.ReadWrite)
}

// TestFuzzedNodesRoundtripThroughKey generates TiledMap nodes with random
// factors and child ids and checks Key()'s two required properties: reflexivity
// (a node always equals itself) and that MapChildren never touches the
// op tag or non-id payload.
func TestFuzzedNodesRoundtripThroughKey(t *testing.T) {
	c := quicktest.New(t)
	fz := gofuzz.New().NilChance(0).NumElements(0, 4)

	for i := 0; i < 200; i++ {
		var factor int
		var a, b, cc uint64
		fz.Fuzz(&factor)
		fz.Fuzz(&a)
		fz.Fuzz(&b)
		fz.Fuzz(&cc)

		n := lang.NewTiledMap(factor, unionfind.Id(a), unionfind.Id(b))
		c.Assert(n.Equal(n), quicktest.IsTrue)

		remapped := n.MapChildren(func(id unionfind.Id) unionfind.Id { return id })
		c.Assert(remapped.Equal(n), quicktest.IsTrue)

		_ = cc
	}
}
