package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaGenerationCheck(t *testing.T) {
	var a arena[string]
	first := a.insert("a")
	second := a.insert("b")
	assert.Equal(t, 2, a.len())

	v, ok := a.get(first)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = a.remove(first)
	require.True(t, ok)
	_, ok = a.get(first)
	assert.False(t, ok)

	reused := a.insert("c")
	assert.Equal(t, first.slot, reused.slot)
	assert.NotEqual(t, first.gen, reused.gen)
	_, ok = a.get(first)
	assert.False(t, ok)
	v, ok = a.get(reused)
	require.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = a.get(index{})
	assert.False(t, ok)
	_, ok = a.remove(first)
	assert.False(t, ok)

	var seen []string
	a.each(func(_ index, v string) bool {
		seen = append(seen, v)
		return true
	})
	assert.Equal(t, []string{"c", "b"}, seen)
	assert.True(t, a.contains(second))
}

func TestTreeRemoveIsPostorder(t *testing.T) {
	var tr tree
	system := SystemId{idx: index{slot: 0, gen: 1}}

	root, err := tr.insert(&node{system: system})
	require.NoError(t, err)
	a, err := tr.insert(&node{parent: root, system: system})
	require.NoError(t, err)
	a1, err := tr.insert(&node{parent: a, system: system})
	require.NoError(t, err)
	b, err := tr.insert(&node{parent: root, system: system})
	require.NoError(t, err)
	other, err := tr.insert(&node{system: system})
	require.NoError(t, err)

	var removed []ActorId
	require.NoError(t, tr.remove(root, func(id ActorId, n *node) {
		// 父节点在子节点之后移除
		if !n.parent.IsZero() {
			assert.True(t, tr.contains(n.parent) || n.parent == root)
		}
		removed = append(removed, id)
	}))

	assert.Equal(t, []ActorId{a1, a, b, root}, removed)
	assert.Equal(t, 1, tr.len())
	assert.True(t, tr.contains(other))
}

func TestTreeRemoveUnlinksFromParent(t *testing.T) {
	var tr tree
	root, _ := tr.insert(&node{})
	child, _ := tr.insert(&node{parent: root})

	require.NoError(t, tr.remove(child, nil))
	n, ok := tr.get(root)
	require.True(t, ok)
	assert.Empty(t, n.children)
}

func TestTreeInsertMissingParent(t *testing.T) {
	var tr tree
	_, err := tr.insert(&node{parent: ActorId{idx: index{slot: 3, gen: 1}}})
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestTreeRemoveMissing(t *testing.T) {
	var tr tree
	err := tr.remove(ActorId{idx: index{slot: 0, gen: 1}}, nil)
	assert.Error(t, err)
}

func TestTreeWalkAndCounts(t *testing.T) {
	var tr tree
	s1 := SystemId{idx: index{slot: 0, gen: 1}}
	s2 := SystemId{idx: index{slot: 1, gen: 1}}
	root, _ := tr.insert(&node{system: s1})
	child, _ := tr.insert(&node{parent: root, system: s2})
	grand, _ := tr.insert(&node{parent: child, system: s2})

	var walked []ActorId
	tr.walk(root, func(id ActorId, _ *node) {
		walked = append(walked, id)
	})
	assert.Equal(t, []ActorId{root, child, grand}, walked)
	assert.Equal(t, map[SystemId]int{s1: 1, s2: 2}, tr.counts())
}
