// Package schedule 批处理调度
// actor 在收到消息时先积累，再把自己推入调度队列，等到 drain 时统一处理一次。
// 调度队列完全建立在 World 的公开接口之上。
package schedule

import (
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// ApplyFunc 对调度到的 actor 执行处理
type ApplyFunc func(w *actor.World, id actor.ActorId) error

// Processor 可被调度处理的实例
type Processor interface {
	Process(ctx *actor.Context) (actor.After, error)
}

type item struct {
	id    actor.ActorId
	apply ApplyFunc
}

// Schedule 共享的调度队列，同一 actor 最多只有一个待处理条目
type Schedule struct {
	items []item
}

func New() *Schedule {
	return &Schedule{}
}

// Push 把 actor 加入调度队列，已在队列中时忽略
// 返回是否真正加入
func (s *Schedule) Push(id actor.ActorId, apply ApplyFunc) bool {
	if apply == nil || s.Contains(id) {
		return false
	}
	s.items = append(s.items, item{id: id, apply: apply})
	return true
}

// PushProcess 调度实例类型为 I 的 actor，处理时调用其 Process
func PushProcess[I Processor](s *Schedule, id actor.ActorId) bool {
	return s.Push(id, Process[I]())
}

// Contains actor 是否已在队列中
func (s *Schedule) Contains(id actor.ActorId) bool {
	return slices.ContainsFunc(s.items, func(it item) bool {
		return it.id == id
	})
}

// Len 待处理条目数
func (s *Schedule) Len() int {
	return len(s.items)
}

// RunUntilIdle 按 FIFO 顺序处理所有条目直到队列为空
// 处理过程中可能再次推入条目，因此不保证返回
func (s *Schedule) RunUntilIdle(w *actor.World) error {
	if err := w.RunUntilIdle(); err != nil {
		return err
	}

	for len(s.items) > 0 {
		it := s.items[0]
		s.items = slices.Delete(s.items, 0, 1)

		if err := it.apply(w, it.id); err != nil {
			glog.Error("actor failed to process", zap.Stringer("actor", it.id), zap.Error(err))
		}

		if err := w.RunUntilIdle(); err != nil {
			return err
		}
	}
	return nil
}

// Process 借出实例并调用其 Process
func Process[I Processor]() ApplyFunc {
	return func(w *actor.World, id actor.ActorId) error {
		return actor.With(w, id, func(ctx *actor.Context, instance *I) (actor.After, error) {
			return (*instance).Process(ctx)
		})
	}
}
