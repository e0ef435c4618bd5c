package schedule

import (
	"errors"
	"testing"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hello struct {
	schedule  *Schedule
	queue     []string
	processed [][]string
	repeat    int
}

func (h *hello) Process(ctx *actor.Context) (actor.After, error) {
	h.processed = append(h.processed, h.queue)
	h.queue = nil
	if h.repeat > 0 {
		h.repeat--
		PushProcess[*hello](h.schedule, ctx.Current())
	}
	return actor.Continue, nil
}

func helloSystem() actor.SystemFunc[*hello, string] {
	return func(ctx *actor.Context, h **hello, inbox *actor.Inbox[string]) (actor.After, error) {
		inbox.Drain(func(msg string) {
			(*h).queue = append((*h).queue, msg)
			PushProcess[*hello]((*h).schedule, ctx.Current())
		})
		return actor.Continue, nil
	}
}

func startHello(t *testing.T, w *actor.World, s *Schedule) (actor.Addr[string], *hello) {
	t.Helper()
	system := actor.Ensure[*hello, string](w, helloSystem())
	id, err := w.Create(system, actor.ActorId{})
	require.NoError(t, err)
	h := &hello{schedule: s}
	require.NoError(t, actor.Start(w, id, h))
	return actor.AddrOf[string](id), h
}

func TestScheduledBatchProcessing(t *testing.T) {
	w := actor.NewWorld()
	s := New()
	addr, h := startHello(t, w, s)

	addr.Send(w, "World")
	addr.Send(w, "Actors")
	require.NoError(t, s.RunUntilIdle(w))

	assert.Equal(t, [][]string{{"World", "Actors"}}, h.processed)
	assert.Equal(t, 0, s.Len())
}

func TestPushDeduplicates(t *testing.T) {
	w := actor.NewWorld()
	s := New()
	addr, h := startHello(t, w, s)
	require.NoError(t, w.RunUntilIdle())

	assert.True(t, PushProcess[*hello](s, addr.ID()))
	assert.False(t, PushProcess[*hello](s, addr.ID()))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(addr.ID()))

	require.NoError(t, s.RunUntilIdle(w))
	assert.Len(t, h.processed, 1)
}

func TestApplyMayRepush(t *testing.T) {
	w := actor.NewWorld()
	s := New()
	addr, h := startHello(t, w, s)
	h.repeat = 3

	addr.Send(w, "tick")
	require.NoError(t, s.RunUntilIdle(w))

	assert.Len(t, h.processed, 4)
	assert.Equal(t, []string{"tick"}, h.processed[0])
}

func TestFifoAcrossActors(t *testing.T) {
	w := actor.NewWorld()
	s := New()
	var order []int
	for i := 0; i < 3; i++ {
		n := i
		s.Push(actor.ActorId{}, func(*actor.World, actor.ActorId) error {
			order = append(order, n)
			return nil
		})
	}
	// 零值 id 也参与去重
	assert.Equal(t, 1, s.Len())
	require.NoError(t, s.RunUntilIdle(w))
	assert.Equal(t, []int{0}, order)

	a, _ := startHello(t, w, s)
	b, _ := startHello(t, w, s)
	order = nil
	for i, id := range []actor.ActorId{b.ID(), a.ID()} {
		n := i
		s.Push(id, func(*actor.World, actor.ActorId) error {
			order = append(order, n)
			return nil
		})
	}
	require.NoError(t, s.RunUntilIdle(w))
	assert.Equal(t, []int{0, 1}, order)
}

func TestApplyErrorDoesNotStopDrain(t *testing.T) {
	w := actor.NewWorld()
	s := New()
	a, _ := startHello(t, w, s)
	b, hb := startHello(t, w, s)

	s.Push(a.ID(), func(*actor.World, actor.ActorId) error {
		return errors.New("failed")
	})
	PushProcess[*hello](s, b.ID())
	require.NoError(t, s.RunUntilIdle(w))

	assert.Len(t, hb.processed, 1)
}

func TestProcessMissingActor(t *testing.T) {
	w := actor.NewWorld()
	err := Process[*hello]()(w, actor.ActorId{})
	assert.ErrorIs(t, err, actor.ErrActorNotFound)
}
