package actor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledger struct {
	Name  string
	count int
	seen  map[string]int
	log   []string
}

func ledgerSystem[I any](get func(*I) *ledger) SystemFunc[I, string] {
	return func(ctx *Context, inst *I, inbox *Inbox[string]) (After, error) {
		l := get(inst)
		for msg, ok := inbox.Next(); ok; msg, ok = inbox.Next() {
			l.Name = "changed"
			l.count++
			l.seen[msg]++
			l.log = append(l.log[:0:0], msg)
			if msg == "boom" {
				return Continue, fmt.Errorf("boom")
			}
		}
		return Continue, nil
	}
}

func TestRollbackRestoresPointerInstanceInPlace(t *testing.T) {
	captureLog(t)
	w := NewWorld()
	system := Register[*ledger, string](w, ledgerSystem(func(l **ledger) *ledger {
		return *l
	}), WithRollback())

	id, err := w.Create(system, ActorId{})
	require.NoError(t, err)
	state := &ledger{Name: "a", count: 7, seen: map[string]int{"x": 1}, log: []string{"init"}}
	require.NoError(t, Start(w, id, state))

	AddrOf[string](id).Send(w, "ok")
	AddrOf[string](id).Send(w, "boom")
	require.NoError(t, w.RunUntilIdle())

	// 外部持有的指针看到的是恢复后的状态
	assert.Equal(t, "a", state.Name)
	assert.Equal(t, 7, state.count)
	assert.Equal(t, map[string]int{"x": 1}, state.seen)
	assert.Equal(t, []string{"init"}, state.log)

	require.NoError(t, With(w, id, func(ctx *Context, l **ledger) (After, error) {
		assert.Same(t, state, *l)
		return Continue, nil
	}))

	AddrOf[string](id).Send(w, "ok")
	require.NoError(t, w.RunUntilIdle())
	assert.Equal(t, 8, state.count)
	assert.Equal(t, 1, state.seen["ok"])
}

func TestRollbackRestoresValueInstanceMaps(t *testing.T) {
	captureLog(t)
	w := NewWorld()
	system := Register[ledger, string](w, ledgerSystem(func(l *ledger) *ledger {
		return l
	}), WithRollback())

	id, err := w.Create(system, ActorId{})
	require.NoError(t, err)
	require.NoError(t, Start(w, id, ledger{Name: "v", seen: map[string]int{}}))

	AddrOf[string](id).Send(w, "boom")
	require.NoError(t, w.RunUntilIdle())

	require.NoError(t, With(w, id, func(ctx *Context, l *ledger) (After, error) {
		assert.Equal(t, "v", l.Name)
		assert.Equal(t, 0, l.count)
		assert.Empty(t, l.seen)
		assert.Empty(t, l.log)
		return Continue, nil
	}))
}

type chain struct {
	Next  *chain
	items map[string]entryState
	pairs [2][]int
}

type entryState struct {
	hits int
	tags []string
}

func TestSnapshotKeepsUnexportedNestedState(t *testing.T) {
	c := &chain{
		Next:  &chain{},
		items: map[string]entryState{"a": {hits: 3, tags: []string{"t"}}},
		pairs: [2][]int{{1}, {2}},
	}
	next := c.Next

	snap := takeSnapshot(&c)
	require.NotNil(t, snap)

	tags := c.items["a"].tags
	tags[0] = "mutated"
	c.items["b"] = entryState{hits: 1}
	c.pairs[0][0] = 9
	c.Next = nil
	snap.restore()

	assert.Equal(t, map[string]entryState{"a": {hits: 3, tags: []string{"t"}}}, c.items)
	assert.Equal(t, [2][]int{{1}, {2}}, c.pairs)
	assert.Same(t, next, c.Next)
}

func TestSnapshotNilInstance(t *testing.T) {
	var l *ledger
	snap := takeSnapshot(&l)
	assert.Nil(t, snap)
	snap.restore()
}
